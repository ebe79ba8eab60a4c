package httpserver

import (
	"testing"

	"github.com/stretchr/testify/require"

	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
)

func TestSanitizeNextTarget(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		base string
		raw  string
		want string
	}{
		{name: "empty", base: "/", raw: "", want: ""},
		{name: "relative path", base: "/", raw: "/resep?status=pending", want: "/resep?status=pending"},
		{name: "absolute url", base: "/", raw: "https://evil.example/resep", want: ""},
		{name: "protocol relative", base: "/", raw: "//evil.example", want: ""},
		{name: "backslash", base: "/", raw: "/%5Cevil.example", want: ""},
		{name: "dot segments cleaned", base: "/", raw: "/jenis-obat/../supplier", want: "/supplier"},
		{name: "inside base", base: "/apotek", raw: "/apotek/qr", want: "/apotek/qr"},
		{name: "base itself", base: "/apotek", raw: "/apotek", want: "/apotek"},
		{name: "outside base", base: "/apotek", raw: "/admin/qr", want: ""},
		{name: "sibling prefix", base: "/apotek", raw: "/apotek-lain/qr", want: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, sanitizeNextTarget(tc.base, tc.raw))
		})
	}
}

func TestNormalizeNextRejectsLoginPage(t *testing.T) {
	t.Parallel()

	h := newAuthHandlers(custommw.DefaultAuthenticator(), "/apotek", "")
	require.Equal(t, "/apotek/login", h.loginPath)
	require.Equal(t, "", h.normalizeNext("/apotek/login?next=%2Fapotek%2Fqr"))
	require.Equal(t, "/apotek/dashboard", h.redirectTarget("/apotek/login"))
	require.Equal(t, "/apotek/resep", h.redirectTarget("/apotek/resep"))
}
