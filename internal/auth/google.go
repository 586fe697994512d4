package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultGoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

var (
	ErrProviderRejected    = errors.New("identity assertion rejected")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// ExternalIdentity is what a verified Google ID token tells us about the user.
type ExternalIdentity struct {
	ExternalID string
	Email      string
	Name       string
}

type GoogleClaims struct {
	jwt.RegisteredClaims
	Email         string      `json:"email"`
	EmailVerified interface{} `json:"email_verified"`
	Name          string      `json:"name"`
}

// GoogleVerifier validates Google ID tokens against Google's published keys.
// The key set is fetched on first use and refreshed in the background.
type GoogleVerifier struct {
	clientID string
	jwksURL  string
	client   *http.Client
	timeout  time.Duration
	now      func() time.Time

	mu   sync.Mutex
	jwks *keyfunc.JWKS
}

func NewGoogleVerifier(clientID, jwksURL string, timeout time.Duration) *GoogleVerifier {
	if jwksURL == "" {
		jwksURL = DefaultGoogleJWKSURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleVerifier{
		clientID: clientID,
		jwksURL:  jwksURL,
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
		now:      time.Now,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, assertion string) (*ExternalIdentity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google client id not configured", ErrProviderUnavailable)
	}
	if assertion == "" {
		return nil, fmt.Errorf("%w: empty assertion", ErrProviderRejected)
	}

	jwks, err := v.keys()
	if err != nil {
		return nil, err
	}

	claims := &GoogleClaims{}
	_, err = jwt.ParseWithClaims(assertion, claims, jwks.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}
	if !googleIssuers[claims.Issuer] {
		return nil, fmt.Errorf("%w: invalid issuer %q", ErrProviderRejected, claims.Issuer)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing subject or email", ErrProviderRejected)
	}
	if isFalse(claims.EmailVerified) {
		return nil, fmt.Errorf("%w: email not verified", ErrProviderRejected)
	}

	return &ExternalIdentity{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
	}, nil
}

// Close stops the background key refresh.
func (v *GoogleVerifier) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		v.jwks.EndBackground()
		v.jwks = nil
	}
}

func (v *GoogleVerifier) keys() (*keyfunc.JWKS, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		return v.jwks, nil
	}

	jwks, err := keyfunc.Get(v.jwksURL, keyfunc.Options{
		Client:            v.client,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    v.timeout,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			slog.Warn("google jwks refresh failed", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	v.jwks = jwks
	return jwks, nil
}

// email_verified arrives as a bool or, from older endpoints, a string.
func isFalse(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return !b
	case string:
		return b == "false"
	}
	return false
}
