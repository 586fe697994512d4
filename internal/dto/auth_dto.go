package dto

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/google/uuid"
)

type SendOTPRequest struct {
	Email string `json:"email"`
}

type SendOTPResponse struct {
	ChallengeToken string `json:"challengeToken"`
}

type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	OTP            string `json:"otp"`
	ChallengeToken string `json:"challengeToken"`
	// Hash is the name older web clients use for the challenge token.
	Hash string `json:"hash,omitempty"`
}

// Challenge returns the challenge token from whichever field the client used.
func (r *RegisterRequest) Challenge() string {
	if r.ChallengeToken != "" {
		return strings.TrimSpace(r.ChallengeToken)
	}
	return strings.TrimSpace(r.Hash)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleSignInRequest struct {
	Assertion string `json:"assertion"`
	// Credential is the field name Google Identity Services hands to web clients.
	Credential string `json:"credential,omitempty"`
}

func (r *GoogleSignInRequest) Token() string {
	if r.Assertion != "" {
		return strings.TrimSpace(r.Assertion)
	}
	return strings.TrimSpace(r.Credential)
}

type SetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse is the only shape in which a user leaves the service.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	HasPassword bool      `json:"hasPassword"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		HasPassword: u.HasPassword(),
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ClearDataResponse struct {
	Message string           `json:"message"`
	Deleted map[string]int64 `json:"deleted"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
