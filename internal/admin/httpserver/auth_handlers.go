package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	appsession "finitefield.org/apotek-admin/internal/admin/session"
	"finitefield.org/apotek-admin/internal/admin/templates/auth"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

const (
	msgAuthFailed   = "Autentikasi gagal. Periksa kembali data yang dimasukkan."
	msgTokenExpired = "Sesi Anda telah berakhir. Silakan masuk kembali."
)

type authHandlers struct {
	authenticator custommw.Authenticator
	basePath      string
	loginPath     string
}

func newAuthHandlers(authenticator custommw.Authenticator, basePath, loginPath string) *authHandlers {
	if authenticator == nil {
		panic("auth: authenticator is required")
	}
	basePath = custommw.NormaliseBase(basePath)
	if strings.TrimSpace(loginPath) == "" {
		loginPath = navigation.Join(basePath, "/login")
	}
	return &authHandlers{
		authenticator: authenticator,
		basePath:      basePath,
		loginPath:     loginPath,
	}
}

func (h *authHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) && r.URL.Query().Get("reason") == "" {
		http.Redirect(w, r, h.redirectTarget(r.URL.Query().Get("next")), http.StatusFound)
		return
	}

	q := r.URL.Query()
	data := h.loginPageData(r, strings.TrimSpace(q.Get("email")), q.Get("next"), "")
	data.Message = messageForQuery(q)
	h.renderLoginPage(w, r, data, http.StatusOK)
}

func (h *authHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := h.loginPageData(r, "", "", "Formulir gagal dikirim. Silakan coba lagi.")
		h.renderLoginPage(w, r, data, http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	next := r.PostFormValue("next")
	token := strings.TrimSpace(r.PostFormValue("id_token"))

	if token == "" {
		data := h.loginPageData(r, email, next, "Token wajib diisi.")
		h.renderLoginPage(w, r, data, http.StatusBadRequest)
		return
	}

	user, err := h.authenticator.Authenticate(r, token)
	if err != nil || user == nil {
		observability.FromContext(r.Context()).Warn("login failed", zap.String("email", email), zap.Error(err))
		data := h.loginPageData(r, email, next, errorMessageFor(err))
		h.renderLoginPage(w, r, data, http.StatusUnauthorized)
		return
	}

	if user.Email == "" {
		user.Email = email
	}
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.SetUser(&appsession.User{
			UID:   user.UID,
			Email: user.Email,
			Roles: append([]string(nil), user.Roles...),
		})
		sess.AddFlash("Selamat datang kembali.", "success")
	}

	issued := token
	if user.Token != "" {
		issued = user.Token
	}
	h.setAuthCookie(w, r, issued)
	if err := custommw.RotateCSRFToken(w, r); err != nil {
		observability.FromContext(r.Context()).Warn("rotate csrf token", zap.Error(err))
	}
	observability.FromContext(r.Context()).Info("login succeeded", zap.String("uid", user.UID))

	target := h.redirectTarget(next)
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.Destroy()
	}
	h.clearAuthCookie(w)
	if err := custommw.RotateCSRFToken(w, r); err != nil {
		observability.FromContext(r.Context()).Warn("rotate csrf token", zap.Error(err))
	}

	target := h.loginPath + "?status=logged_out"
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *authHandlers) loginPageData(r *http.Request, email, next, errText string) auth.LoginPageData {
	return auth.LoginPageData{
		Email:     email,
		Error:     errText,
		Next:      h.normalizeNext(next),
		LoginPath: h.loginPath,
		BasePath:  h.basePath,
		CSRFToken: custommw.CSRFTokenFromContext(r.Context()),
	}
}

func (h *authHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, data auth.LoginPageData, status int) {
	templ.Handler(auth.LoginPage(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *authHandlers) isAuthenticated(r *http.Request) bool {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok {
		return false
	}
	user := sess.User()
	return user != nil && strings.TrimSpace(user.UID) != ""
}

func errorMessageFor(err error) string {
	var authErr *custommw.AuthError
	if errors.As(err, &authErr) && authErr.Reason == custommw.ReasonTokenExpired {
		return msgTokenExpired
	}
	return msgAuthFailed
}

func messageForQuery(q url.Values) string {
	if q.Get("status") == "logged_out" {
		return "Anda telah keluar."
	}
	switch q.Get("reason") {
	case "expired", custommw.ReasonTokenExpired:
		return msgTokenExpired
	case custommw.ReasonMissingToken:
		return "Silakan masuk untuk melanjutkan."
	case custommw.ReasonTokenInvalid:
		return "Data masuk tidak valid. Silakan coba lagi."
	default:
		return ""
	}
}

func (h *authHandlers) redirectTarget(raw string) string {
	if next := h.normalizeNext(raw); next != "" {
		return next
	}
	return navigation.Join(h.basePath, "/dashboard")
}

func (h *authHandlers) setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	value := token
	if !strings.HasPrefix(strings.ToLower(token), "bearer ") {
		value = "Bearer " + token
	}
	http.SetCookie(w, &http.Cookie{
		Name:     custommw.TokenCookieName,
		Value:    value,
		Path:     h.basePath,
		HttpOnly: true,
		Secure:   r.TLS != nil || custommw.DeploymentFromContext(r.Context()).Production,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *authHandlers) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     custommw.TokenCookieName,
		Value:    "",
		Path:     h.basePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// normalizeNext keeps only same-origin targets under the base path, and never the login page itself.
func (h *authHandlers) normalizeNext(raw string) string {
	target := sanitizeNextTarget(h.basePath, raw)
	if target == "" {
		return ""
	}
	if parsed, err := url.Parse(target); err == nil && strings.TrimRight(parsed.Path, "/") == strings.TrimRight(h.loginPath, "/") {
		return ""
	}
	return target
}

func sanitizeNextTarget(basePath, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return ""
	}

	unescaped, err := url.PathUnescape(parsed.Path)
	if err != nil || strings.Contains(unescaped, "\\") {
		return ""
	}
	cleaned := path.Clean("/" + strings.TrimPrefix(unescaped, "/"))
	if strings.HasPrefix(unescaped, "//") {
		return ""
	}

	base := custommw.NormaliseBase(basePath)
	if base != "/" && cleaned != base && !strings.HasPrefix(cleaned, base+"/") {
		return ""
	}

	if parsed.RawQuery != "" {
		cleaned += "?" + parsed.RawQuery
	}
	return cleaned
}
