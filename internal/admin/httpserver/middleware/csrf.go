package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"io"
	"net/http"
	"time"
)

type csrfContextKey string

const csrfStateContextKey csrfContextKey = "csrf.state"

// csrfState is shared between the middleware and RotateCSRFToken so a rotated
// token is visible to templates rendered later in the same request.
type csrfState struct {
	token  string
	cookie http.Cookie
}

// CSRFFormField is the hidden input name accepted when the header is absent.
const CSRFFormField = "csrf_token"

// CSRFConfig controls cookie/header behaviour.
type CSRFConfig struct {
	CookieName string
	CookiePath string
	HeaderName string
	MaxAge     time.Duration
	Secure     bool
}

// CSRF attaches double-submit cookie protection. Safe methods ensure a token is issued;
// unsafe methods validate that the header or form field matches the cookie value.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "apotek_csrf"
	}
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-CSRF-Token"
	}
	cookiePath := cfg.CookiePath
	if cookiePath == "" {
		cookiePath = "/"
	}
	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = 24 * time.Hour
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			template := http.Cookie{
				Name:     cookieName,
				Path:     cookiePath,
				HttpOnly: true,
				Secure:   secureCookies(r, cfg.Secure),
				SameSite: http.SameSiteStrictMode,
				MaxAge:   int(maxAge.Seconds()),
			}
			token, err := ensureCSRFToken(w, r, template)
			if err != nil {
				http.Error(w, "csrf token error", http.StatusInternalServerError)
				return
			}

			if isUnsafeMethod(r.Method) {
				submitted := r.Header.Get(headerName)
				if submitted == "" {
					submitted = r.PostFormValue(CSRFFormField)
				}
				if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
			}

			state := &csrfState{token: token, cookie: template}
			ctx := context.WithValue(r.Context(), csrfStateContextKey, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFTokenFromContext returns the token issued for the current request (to embed in forms or meta tags).
func CSRFTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if state, ok := ctx.Value(csrfStateContextKey).(*csrfState); ok && state != nil {
		return state.token
	}
	return ""
}

// RotateCSRFToken issues a fresh token after a privilege change such as login
// or logout, so a token planted before sign-in cannot be replayed afterwards.
// It is a no-op outside the CSRF middleware.
func RotateCSRFToken(w http.ResponseWriter, r *http.Request) error {
	state, ok := r.Context().Value(csrfStateContextKey).(*csrfState)
	if !ok || state == nil {
		return nil
	}
	token, err := generateToken(32)
	if err != nil {
		return err
	}
	cookie := state.cookie
	cookie.Value = token
	http.SetCookie(w, &cookie)
	state.token = token
	return nil
}

func ensureCSRFToken(w http.ResponseWriter, r *http.Request, template http.Cookie) (string, error) {
	if c, err := r.Cookie(template.Name); err == nil && c.Value != "" {
		return c.Value, nil
	}

	token, err := generateToken(32)
	if err != nil {
		return "", err
	}
	cookie := template
	cookie.Value = token
	http.SetCookie(w, &cookie)
	return token, nil
}

func generateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}
