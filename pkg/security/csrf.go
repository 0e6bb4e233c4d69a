// Package security holds request-forgery protection and text sanitizing.
package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CSRF errors.
var (
	ErrInvalidToken     = errors.New("invalid CSRF token")
	ErrMissingToken     = errors.New("missing CSRF token")
	ErrTokenExpired     = errors.New("CSRF token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// CSRFConfig configures CSRFProtection.
type CSRFConfig struct {
	// Secret signs tokens. A random secret is generated when empty, which
	// invalidates tokens on restart.
	Secret []byte

	// TokenLen is the number of random bytes per token.
	TokenLen int

	MaxAge     time.Duration
	HeaderName string
	FormField  string
}

// CSRFProtection issues and checks HMAC-signed tokens bound to a session ID.
// Token layout: base64(random)|unix-seconds|sessionID.base64(hmac).
type CSRFProtection struct {
	secret     []byte
	tokenLen   int
	maxAge     time.Duration
	headerName string
	formField  string
	now        func() time.Time
}

// NewCSRFProtection fills unset config fields with defaults.
func NewCSRFProtection(cfg CSRFConfig) *CSRFProtection {
	if len(cfg.Secret) == 0 {
		cfg.Secret = make([]byte, 32)
		rand.Read(cfg.Secret)
	}
	if cfg.TokenLen == 0 {
		cfg.TokenLen = 32
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 24 * time.Hour
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRF-Token"
	}
	if cfg.FormField == "" {
		cfg.FormField = "_csrf"
	}

	return &CSRFProtection{
		secret:     cfg.Secret,
		tokenLen:   cfg.TokenLen,
		maxAge:     cfg.MaxAge,
		headerName: cfg.HeaderName,
		formField:  cfg.FormField,
		now:        time.Now,
	}
}

// FormField is the form input name carrying the token.
func (c *CSRFProtection) FormField() string {
	return c.formField
}

// GenerateToken returns a fresh token for sessionID.
func (c *CSRFProtection) GenerateToken(sessionID string) (string, error) {
	random := make([]byte, c.tokenLen)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}

	payload := base64.StdEncoding.EncodeToString(random) + "|" +
		strconv.FormatInt(c.now().Unix(), 10) + "|" + sessionID
	sig := c.sign([]byte(payload))

	return payload + "." + base64.StdEncoding.EncodeToString(sig), nil
}

// ValidateToken checks signature, age and session binding.
func (c *CSRFProtection) ValidateToken(token, sessionID string) error {
	if token == "" {
		return ErrMissingToken
	}

	payload, sigB64, ok := strings.Cut(token, ".")
	if !ok {
		return ErrInvalidToken
	}
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return ErrInvalidToken
	}
	if subtle.ConstantTimeCompare(sig, c.sign([]byte(payload))) != 1 {
		return ErrInvalidSignature
	}

	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return ErrInvalidToken
	}
	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrInvalidToken
	}
	if c.now().Sub(time.Unix(issued, 0)) > c.maxAge {
		return ErrTokenExpired
	}
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(sessionID)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// TokenFromRequest reads the token from the header, then the form body.
func (c *CSRFProtection) TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(c.headerName); token != "" {
		return token
	}
	return r.PostFormValue(c.formField)
}

// Middleware rejects unsafe requests whose token does not match the
// session returned by sessionID.
func (c *CSRFProtection) Middleware(sessionID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if err := c.ValidateToken(c.TokenFromRequest(r), sessionID(r)); err != nil {
				http.Error(w, "Forbidden - Invalid CSRF Token", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Hidden renders a hidden form input carrying token.
func (c *CSRFProtection) Hidden(token string) string {
	return `<input type="hidden" name="` + c.formField + `" value="` + html.EscapeString(token) + `">`
}

func (c *CSRFProtection) sign(data []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(data)
	return mac.Sum(nil)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
