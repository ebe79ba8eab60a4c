package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/rbac"
)

type mockAuthenticator struct {
	token string
	user  *User
	err   error
}

func (m *mockAuthenticator) Authenticate(_ *http.Request, token string) (*User, error) {
	if token != m.token {
		return nil, ErrUnauthorized
	}
	return m.user, m.err
}

func TestAuthMiddleware(t *testing.T) {
	auth := &mockAuthenticator{
		token: "valid",
		user:  &User{UID: "apoteker-1", Roles: []string{"pharmacist"}},
	}

	handler := HTMX()(Auth(auth, "/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok, "expected user in context")
		require.Equal(t, "apoteker-1", user.UID)
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("missing token redirects with next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resep", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusFound, rr.Code)

		location, err := url.Parse(rr.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "/login", location.Path)
		require.Equal(t, "/resep", location.Query().Get("next"))
	})

	t.Run("htmx unauthorized returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resep/table", nil)
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "/login", rr.Header().Get("HX-Redirect"))
	})

	t.Run("valid token passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resep", nil)
		req.Header.Set("Authorization", "Bearer valid")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("token from cookie passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resep", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "valid"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("expired token triggers refresh header", func(t *testing.T) {
		auth.err = NewAuthError(ReasonTokenExpired, errors.New("expired"))
		defer func() { auth.err = nil }()

		req := httptest.NewRequest(http.MethodGet, "/resep", nil)
		req.Header.Set("Authorization", "Bearer valid")
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "true", rr.Header().Get("HX-Refresh"))
	})
}

func TestDefaultAuthenticatorParsesRolePrefix(t *testing.T) {
	auth := DefaultAuthenticator()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	user, err := auth.Authenticate(req, "manager:budi")
	require.NoError(t, err)
	require.Equal(t, "budi", user.UID)
	require.Equal(t, []string{"manager"}, user.Roles)

	user, err = auth.Authenticate(req, "dev-token")
	require.NoError(t, err)
	require.Equal(t, "dev-token", user.UID)
	require.Equal(t, []string{"admin"}, user.Roles)

	_, err = auth.Authenticate(req, " ")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCSRFMiddleware(t *testing.T) {
	mw := CSRF(CSRFConfig{CookieName: "csrf", HeaderName: "X-CSRF-Token"})
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("issues cookie on GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/supplier", nil)
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NotEmpty(t, CSRFTokenFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		found := false
		for _, c := range rr.Result().Cookies() {
			if c.Name == "csrf" && c.Value != "" {
				found = true
			}
		}
		require.True(t, found, "expected csrf cookie to be set")
	})

	t.Run("rejects unsafe request without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/supplier", nil)
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		rr := httptest.NewRecorder()
		mw(ok).ServeHTTP(rr, req)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("allows unsafe request with matching header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/supplier", nil)
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		req.Header.Set("X-CSRF-Token", "token")
		rr := httptest.NewRecorder()
		mw(ok).ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("allows form post with matching field", func(t *testing.T) {
		form := url.Values{CSRFFormField: {"token"}, "nama": {"PT Kimia Farma"}}
		req := httptest.NewRequest(http.MethodPost, "/supplier", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		rr := httptest.NewRecorder()
		mw(ok).ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rejects mismatched field", func(t *testing.T) {
		form := url.Values{CSRFFormField: {"other"}}
		req := httptest.NewRequest(http.MethodPost, "/supplier", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		rr := httptest.NewRecorder()
		mw(ok).ServeHTTP(rr, req)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestHTMXMiddleware(t *testing.T) {
	base := HTMX()

	t.Run("detects htmx", func(t *testing.T) {
		handler := base(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.True(t, IsHTMXRequest(r.Context()))
			require.Equal(t, "jenis-obat-table", HTMXInfoFromContext(r.Context()).Target)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/jenis-obat/table", nil)
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Target", "jenis-obat-table")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("boosted navigation is a full page request", func(t *testing.T) {
		handler := base(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.False(t, IsHTMXRequest(r.Context()))
		}))
		req := httptest.NewRequest(http.MethodGet, "/qr", nil)
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Boosted", "true")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})

	t.Run("RequireHTMX blocks non-htmx", func(t *testing.T) {
		handler := base(RequireHTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))
		req := httptest.NewRequest(http.MethodGet, "/jenis-obat/table", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Contains(t, rr.Header().Values("Vary"), "HX-Request")
	})

	t.Run("history restore gets the full page", func(t *testing.T) {
		handler := base(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.False(t, IsHTMXRequest(r.Context()))
			require.True(t, HTMXInfoFromContext(r.Context()).HistoryRestore)
		}))
		req := httptest.NewRequest(http.MethodGet, "/resep", nil)
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-History-Restore-Request", "true")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		fragment := base(RequireHTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("fragment handler must not serve a history restore")
		})))
		rr := httptest.NewRecorder()
		fragment.ServeHTTP(rr, req.Clone(req.Context()))
		require.Equal(t, http.StatusSeeOther, rr.Code)
		require.Equal(t, "/", rr.Header().Get("Location"))

		tableReq := httptest.NewRequest(http.MethodGet, "/jenis-obat/table", nil)
		tableReq.Header.Set("HX-Request", "true")
		tableReq.Header.Set("HX-History-Restore-Request", "true")
		rr = httptest.NewRecorder()
		fragment.ServeHTTP(rr, tableReq)
		require.Equal(t, "/jenis-obat", rr.Header().Get("Location"))
	})
}

func TestCSRFRotation(t *testing.T) {
	t.Parallel()

	mw := Environment("production")(CSRF(CSRFConfig{CookieName: "csrf"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		before := CSRFTokenFromContext(r.Context())
		require.NoError(t, RotateCSRFToken(w, r))
		after := CSRFTokenFromContext(r.Context())
		require.NotEqual(t, before, after)
		_, _ = w.Write([]byte(after))
	})))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "csrf", Value: "planted"})
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, rr.Body.String(), cookies[0].Value)
	require.NotEqual(t, "planted", cookies[0].Value)
	require.True(t, cookies[0].Secure, "production cookies must be Secure")
	require.True(t, cookies[0].HttpOnly)

	outside := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, RotateCSRFToken(httptest.NewRecorder(), outside))
}

func TestParseDeployment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label      string
		name       string
		code       string
		tone       string
		production bool
	}{
		{label: "", name: "Development", code: "DEV", tone: "neutral"},
		{label: " Production ", name: "Production", code: "PROD", tone: "danger", production: true},
		{label: "prod", name: "prod", code: "PROD", tone: "danger", production: true},
		{label: "Staging", name: "Staging", code: "STG", tone: "warning"},
		{label: "sandbox", name: "sandbox", code: "SAND", tone: "neutral"},
	}
	for _, tc := range cases {
		d := ParseDeployment(tc.label)
		require.Equal(t, tc.name, d.Name, tc.label)
		require.Equal(t, tc.code, d.Code, tc.label)
		require.Equal(t, tc.tone, d.Tone(), tc.label)
		require.Equal(t, tc.production, d.Production, tc.label)
	}
}

func TestNoStoreMiddleware(t *testing.T) {
	handler := NoStore()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "no-store, max-age=0", rr.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", rr.Header().Get("Pragma"))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireCapability(t *testing.T) {
	handler := RequireCapability(rbac.CapSupplierManage)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name string
		user *User
		want int
	}{
		{name: "no user", user: nil, want: http.StatusForbidden},
		{name: "pharmacist denied", user: &User{UID: "a", Roles: []string{"pharmacist"}}, want: http.StatusForbidden},
		{name: "admin allowed", user: &User{UID: "b", Roles: []string{"admin"}}, want: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/supplier", nil)
			if tc.user != nil {
				req = req.WithContext(ContextWithUser(req.Context(), tc.user))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			require.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(rbac.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ContextWithUser(req.Context(), &User{UID: "m", Roles: []string{"manager"}}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ContextWithUser(req.Context(), &User{UID: "p", Roles: []string{"pharmacist"}}))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequestInfoAndEnvironment(t *testing.T) {
	handler := RequestInfoMiddleware("apotek/")(Environment(" Staging ")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/apotek", BasePathFromContext(r.Context()))
		require.Equal(t, "/apotek/qr/scan", RequestPathFromContext(r.Context()))
		require.Equal(t, "qr", SectionFromContext(r.Context()))
		require.Equal(t, "Staging", DeploymentFromContext(r.Context()).Name)
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/apotek/qr/scan", nil))

	require.Equal(t, "/", BasePathFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
	require.Equal(t, "Development", DeploymentFromContext(nil).Name) //nolint:staticcheck // nil context is handled explicitly
}

func TestSectionOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, "supplier", SectionOf("/", "/supplier/3/edit"))
	require.Equal(t, "resep", SectionOf("/apotek", "/apotek/resep"))
	require.Empty(t, SectionOf("/apotek", "/apotek"))
	require.Empty(t, SectionOf("/apotek", "/apotekku/resep"))
	require.Empty(t, SectionOf("/", "/"))
}

func TestNormaliseBase(t *testing.T) {
	cases := map[string]string{
		"":         "/",
		"/":        "/",
		"apotek":   "/apotek",
		"/apotek/": "/apotek",
		"///":      "/",
	}
	for in, want := range cases {
		require.Equal(t, want, NormaliseBase(in), "input %q", in)
	}
}
