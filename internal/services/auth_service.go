package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/dto"
	mailer "github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password accepted anywhere a password is chosen.
const MinPasswordLength = 8

var (
	ErrValidation          = errors.New("invalid request")
	ErrAlreadyExists       = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidOTP          = auth.ErrInvalidOTP
	ErrOTPExpired          = auth.ErrOTPExpired
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
	ErrPasswordAlreadySet  = errors.New("password already set, use change password instead")
	ErrNoPasswordSet       = errors.New("no password set for this account, use set password instead")
	ErrProviderRejected    = errors.New("google authentication failed")
	ErrProviderUnavailable = errors.New("google sign-in is temporarily unavailable")
	ErrDeliveryFailed      = errors.New("failed to send verification code")
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type SessionIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type OTPChallenger interface {
	Issue(email string) (code, challenge string, err error)
	Verify(email, code, challenge string) error
}

type IdentityVerifier interface {
	Verify(ctx context.Context, assertion string) (*auth.ExternalIdentity, error)
}

// DataClearer removes every record a user owns in one resource.
type DataClearer interface {
	ID() string
	ClearOwner(ctx context.Context, owner uuid.UUID) (int64, error)
}

type AuthService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	tokens   SessionIssuer
	otp      OTPChallenger
	google   IdentityVerifier
	mailer   mailer.Mailer
	otpTTL   time.Duration
	clearers []DataClearer

	dummyOnce sync.Once
	dummyHash string
}

type AuthDeps struct {
	Users    repository.UserRepository
	Hasher   PasswordHasher
	Tokens   SessionIssuer
	OTP      OTPChallenger
	Google   IdentityVerifier
	Mailer   mailer.Mailer
	OTPTTL   time.Duration
	Clearers []DataClearer
}

func NewAuthService(deps AuthDeps) *AuthService {
	if deps.OTPTTL <= 0 {
		deps.OTPTTL = auth.DefaultOTPTTL
	}
	return &AuthService{
		users:    deps.Users,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		otp:      deps.OTP,
		google:   deps.Google,
		mailer:   deps.Mailer,
		otpTTL:   deps.OTPTTL,
		clearers: deps.Clearers,
	}
}

// SendOTP emails a verification code and returns the challenge the client must
// echo back on registration. A delivery failure fails the whole call.
func (s *AuthService) SendOTP(ctx context.Context, req *dto.SendOTPRequest) (*dto.SendOTPResponse, error) {
	email, err := parseEmail(req.Email)
	if err != nil {
		return nil, err
	}

	code, challenge, err := s.otp.Issue(email)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, mailer.VerificationMessage(email, code, s.otpTTL)); err != nil {
		slog.ErrorContext(ctx, "verification email failed", "action", "send_otp", "error", err)
		return nil, ErrDeliveryFailed
	}
	return &dto.SendOTPResponse{ChallengeToken: challenge}, nil
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.OTP)
	challenge := req.Challenge()
	if name == "" || req.Password == "" || code == "" || challenge == "" {
		return nil, fmt.Errorf("%w: name, email, password, otp and challengeToken are required", ErrValidation)
	}
	email, err := parseEmail(req.Email)
	if err != nil {
		return nil, err
	}

	// Existence is checked first so a taken email fails the same way whatever
	// code or password came with it.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.otp.Verify(email, code, challenge); err != nil {
		return nil, err
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID.String())
	return s.session(user)
}

// Login collapses unknown email, Google-only account and wrong password into
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.burnHash(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() {
		s.burnHash(req.Password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(req.Password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *AuthService) GoogleSignIn(ctx context.Context, req *dto.GoogleSignInRequest) (*dto.AuthResponse, error) {
	assertion := req.Token()
	if assertion == "" {
		return nil, fmt.Errorf("%w: assertion is required", ErrValidation)
	}

	ident, err := s.google.Verify(ctx, assertion)
	if err != nil {
		if errors.Is(err, auth.ErrProviderUnavailable) {
			slog.ErrorContext(ctx, "google verification unavailable", "action", "google_sign_in", "error", err)
			return nil, ErrProviderUnavailable
		}
		slog.WarnContext(ctx, "google assertion rejected", "error", err)
		return nil, ErrProviderRejected
	}

	user, err := s.findOrCreateExternal(ctx, ident)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *AuthService) findOrCreateExternal(ctx context.Context, ident *auth.ExternalIdentity) (*models.User, error) {
	user, err := s.findExternal(ctx, ident)
	if !errors.Is(err, repository.ErrNotFound) {
		return user, err
	}

	name := strings.TrimSpace(ident.Name)
	if name == "" {
		name = strings.Split(ident.Email, "@")[0]
	}
	externalID := ident.ExternalID
	user = &models.User{
		ID:         uuid.New(),
		Name:       name,
		Email:      ident.Email,
		ExternalID: &externalID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// a concurrent sign-in created it first
			return s.findExternal(ctx, ident)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "user created from google sign-in", "user_id", user.ID.String())
	return user, nil
}

// findExternal resolves the Google subject first and falls back to email, so an
// unlinked email match is never linked to a subject another account holds.
func (s *AuthService) findExternal(ctx context.Context, ident *auth.ExternalIdentity) (*models.User, error) {
	user, err := s.users.FindByExternalID(ctx, ident.ExternalID)
	if !errors.Is(err, repository.ErrNotFound) {
		return user, err
	}

	user, err = s.users.FindByEmail(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	if user.IsLinked() {
		slog.WarnContext(ctx, "google sign-in matched by email an account linked to another google subject",
			"user_id", user.ID.String())
		return user, nil
	}
	if err := s.users.LinkExternalID(ctx, user.ID, ident.ExternalID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// linked to another account concurrently
			return s.users.FindByExternalID(ctx, ident.ExternalID)
		}
		return nil, fmt.Errorf("failed to link google account: %w", err)
	}
	user.ExternalID = &ident.ExternalID
	return user, nil
}

func (s *AuthService) Me(user *models.User) dto.UserResponse {
	return dto.NewUserResponse(user)
}

// SetPassword enables password login for an account that has none yet.
func (s *AuthService) SetPassword(ctx context.Context, user *models.User, req *dto.SetPasswordRequest) error {
	if user.HasPassword() {
		return ErrPasswordAlreadySet
	}
	if len(req.NewPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := s.hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.SetPasswordHash(ctx, user.ID, hash)
}

// ChangePassword replaces the stored hash after checking the current password.
// On any failure the stored hash is left untouched.
func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, req *dto.ChangePasswordRequest) error {
	if !user.HasPassword() {
		return ErrNoPasswordSet
	}
	if !s.hasher.Verify(req.CurrentPassword, *user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if len(req.NewPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := s.hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.SetPasswordHash(ctx, user.ID, hash)
}

// ClearData deletes every transaction, budget and investment the user owns.
// The account itself is kept.
func (s *AuthService) ClearData(ctx context.Context, user *models.User) (map[string]int64, error) {
	deleted := make(map[string]int64, len(s.clearers))
	for _, c := range s.clearers {
		n, err := c.ClearOwner(ctx, user.ID)
		if err != nil {
			return deleted, fmt.Errorf("failed to clear %s: %w", c.ID(), err)
		}
		deleted[c.ID()] = n
	}
	slog.InfoContext(ctx, "user data cleared", "user_id", user.ID.String(), "deleted", deleted)
	return deleted, nil
}

func (s *AuthService) session(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return hash, err
}

// burnHash spends the same time as a real comparison so response timing does
// not reveal whether an email is registered.
func (s *AuthService) burnHash(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("timing-equalizer")
	})
	s.hasher.Verify(password, s.dummyHash)
}

func parseEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	return email, nil
}
