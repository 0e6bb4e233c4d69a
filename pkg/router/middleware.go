package router

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
)

// Common errors.
var (
	ErrNilRenderer = errors.New("component returned nil renderer")
)

// Chain wraps h with mw so that mw[0] runs first.
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Recover turns a panic into a 500 and logs it with the stack. The
// request-scoped logger is preferred when RequestLogger ran first.
func Recover(logger logging.Logger) Middleware {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log := logging.LoggerFromContext(r.Context())
				if log == nil {
					log = logger
				}
				log.Error("panic recovered",
					logging.String("panic", fmt.Sprint(rec)),
					logging.String("path", r.URL.Path),
					logging.String("stack", string(debug.Stack())),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeadersConfig configures SecureHeaders.
type SecureHeadersConfig struct {
	FrameOptions      string
	ReferrerPolicy    string
	PermissionsPolicy string

	// HSTSMaxAge is sent only over HTTPS; 0 disables the header.
	HSTSMaxAge int

	// ContentSecurityPolicy overrides the generated nonce policy.
	ContentSecurityPolicy string

	// CSPNonce generates a per-request nonce, available via CSPNonce(ctx).
	CSPNonce bool
}

// DefaultSecureHeadersConfig returns the policy used by SecureHeaders.
func DefaultSecureHeadersConfig() SecureHeadersConfig {
	return SecureHeadersConfig{
		FrameOptions:      "DENY",
		ReferrerPolicy:    "strict-origin-when-cross-origin",
		PermissionsPolicy: "geolocation=(), microphone=(), camera=()",
		HSTSMaxAge:        31536000,
		CSPNonce:          true,
	}
}

type cspNonceKey struct{}

// CSPNonce returns the nonce SecureHeaders placed in ctx, or "".
func CSPNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(cspNonceKey{}).(string)
	return nonce
}

func generateNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// SecureHeaders sets the default browser hardening headers.
func SecureHeaders() Middleware {
	return SecureHeadersWithConfig(DefaultSecureHeadersConfig())
}

// SecureHeadersWithConfig sets browser hardening headers from cfg.
func SecureHeadersWithConfig(cfg SecureHeadersConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}
			if cfg.HSTSMaxAge > 0 && (r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https") {
				h.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(cfg.HSTSMaxAge)+"; includeSubDomains")
			}

			ctx := r.Context()
			switch {
			case cfg.ContentSecurityPolicy != "":
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			case cfg.CSPNonce:
				nonce := generateNonce()
				ctx = context.WithValue(ctx, cspNonceKey{}, nonce)
				h.Set("Content-Security-Policy", "default-src 'self'; "+
					"script-src 'self' 'nonce-"+nonce+"'; "+
					"style-src 'self' 'nonce-"+nonce+"'; "+
					"img-src 'self' data: https:; "+
					"connect-src 'self' ws: wss:; "+
					"frame-ancestors 'none'; "+
					"base-uri 'self'; "+
					"form-action 'self'")
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
