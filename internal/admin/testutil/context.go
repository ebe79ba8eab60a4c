package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/rbac"
)

// RequestContext returns the context a console handler would see for
// requestPath under basePath, signed in with role.
func RequestContext(t testing.TB, basePath, requestPath string, role rbac.Role) context.Context {
	t.Helper()

	var ctx context.Context
	handler := middleware.RequestInfoMiddleware(basePath)(middleware.Environment("Development")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, requestPath, nil))
	if ctx == nil {
		t.Fatal("middleware stack did not provide a context")
	}

	if role == "" {
		return ctx
	}
	return middleware.ContextWithUser(ctx, &middleware.User{
		UID:   "tester",
		Email: "tester@example.com",
		Roles: []string{string(role)},
	})
}
