package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/templates/auth"
	"finitefield.org/apotek-admin/internal/admin/testutil"
)

func TestLoginPageRendersForm(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/apotek", "/apotek/login", "")
	doc := testutil.Render(t, ctx, auth.LoginPage(auth.LoginPageData{
		Email:     "apoteker@example.com",
		Message:   "Silakan masuk untuk melanjutkan.",
		Next:      "/apotek/resep",
		LoginPath: "/apotek/login",
		BasePath:  "/apotek",
		CSRFToken: "tok",
	}))

	require.Equal(t, "Masuk | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, 0, doc.Find("[data-sidebar]").Length())

	form := doc.Find("form#login-form")
	require.Equal(t, "/apotek/login", form.AttrOr("action", ""))
	require.Equal(t, "tok", form.Find(`input[name="csrf_token"]`).AttrOr("value", ""))
	require.Equal(t, "/apotek/resep", form.Find(`input[name="next"]`).AttrOr("value", ""))
	require.Equal(t, "apoteker@example.com", form.Find(`input[name="email"]`).AttrOr("value", ""))
	require.Equal(t, "password", form.Find(`input[name="id_token"]`).AttrOr("type", ""))
	require.Equal(t, "Silakan masuk untuk melanjutkan.", strings.TrimSpace(doc.Find("[data-login-message]").Text()))
	require.Equal(t, 0, doc.Find("[data-form-error]").Length())
}

func TestLoginPageShowsError(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/", "/login", "")
	doc := testutil.Render(t, ctx, auth.LoginPage(auth.LoginPageData{LoginPath: "/login", Error: "Token wajib diisi."}))

	require.Contains(t, doc.Find("[data-form-error]").Text(), "Token wajib diisi.")
	require.Equal(t, 0, doc.Find("[data-login-message]").Length())
}
