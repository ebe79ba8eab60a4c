package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/rbac"
)

func TestNumberUsesIndonesianGrouping(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0", Number(0))
	require.Equal(t, "1.200", Number(1200))
	require.Equal(t, "1.234.567", Number(1234567))
}

func TestDateFormatting(t *testing.T) {
	t.Parallel()

	require.Equal(t, "-", Date(time.Time{}))
	require.Equal(t, "1 Mei 2024", Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "31 Desember 2023", Date(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "baru saja", Relative(now.Add(-10*time.Second), now))
	require.Equal(t, "5 menit lalu", Relative(now.Add(-5*time.Minute), now))
	require.Equal(t, "3 jam lalu", Relative(now.Add(-3*time.Hour), now))
	require.Equal(t, "28 April 2024", Relative(now.AddDate(0, 0, -3), now))
}

func TestSetRawQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawQuery string
		key      string
		value    string
		want     map[string]string
	}{
		{
			name:     "updates existing key",
			rawQuery: "status=active&q=farma",
			key:      "q",
			value:    "kimia",
			want:     map[string]string{"status": "active", "q": "kimia"},
		},
		{
			name:     "adds new key when missing",
			rawQuery: "status=active",
			key:      "q",
			value:    "sehat",
			want:     map[string]string{"status": "active", "q": "sehat"},
		},
		{
			name:     "handles empty input",
			key:      "status",
			value:    "pending",
			want:     map[string]string{"status": "pending"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			values, err := url.ParseQuery(SetRawQuery(tc.rawQuery, tc.key, tc.value))
			require.NoError(t, err)
			for k, expected := range tc.want {
				require.Equal(t, expected, values.Get(k))
			}
		})
	}
}

func TestDelRawQueryAndBuildURL(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery(DelRawQuery("status=active&q=farma", "q"))
	require.NoError(t, err)
	require.Empty(t, values.Get("q"))
	require.Equal(t, "active", values.Get("status"))

	require.Equal(t, "/supplier?q=farma", BuildURL("/supplier", "q=farma"))
	require.Equal(t, "/supplier", BuildURL("/supplier?q=old", ""))
}

func TestHighlightSegments(t *testing.T) {
	t.Parallel()

	require.Nil(t, HighlightSegments("", "x"))
	require.Equal(t, []HighlightSegment{{Text: "Tablet"}}, HighlightSegments("Tablet", " "))
	require.Equal(t, []HighlightSegment{
		{Text: "Obat "},
		{Text: "Tetes", Match: true},
		{Text: " Mata "},
		{Text: "tetes", Match: true},
	}, HighlightSegments("Obat Tetes Mata tetes", "TETES"))
	require.Equal(t, []HighlightSegment{{Text: "Kapsul"}}, HighlightSegments("Kapsul", "sirup"))
}

func contextFor(t *testing.T, basePath, requestPath string, roles ...string) context.Context {
	t.Helper()

	var ctx context.Context
	handler := middleware.RequestInfoMiddleware(basePath)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, requestPath, nil))
	require.NotNil(t, ctx)
	if len(roles) > 0 {
		ctx = middleware.ContextWithUser(ctx, &middleware.User{UID: "u1", Roles: roles})
	}
	return ctx
}

func TestNavActive(t *testing.T) {
	t.Parallel()

	ctx := contextFor(t, "/", "/supplier/create")
	require.True(t, NavActive(ctx, "/supplier", true))
	require.False(t, NavActive(ctx, "/supplier", false))
	require.False(t, NavActive(ctx, "/resep", true))
	require.False(t, NavActive(ctx, "/", true))
	require.False(t, NavActive(ctx, "", true))

	exact := contextFor(t, "/", "/qr/")
	require.True(t, NavActive(exact, "/qr", false))
	require.True(t, NavActive(exact, "/qr/", false))
	require.Equal(t, "/qr", RequestPath(exact))

	mounted := contextFor(t, "/apotek", "/apotek/resep/R1")
	require.Equal(t, "resep", Section(mounted))
	require.True(t, NavActive(mounted, "/apotek/resep", true))
	require.False(t, NavActive(mounted, "/apotek/resep-arsip", true))
	require.False(t, NavActive(mounted, "/apotek", true))
}

func TestLinkUsesBasePath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/apotek/jenis-obat/create", Link(contextFor(t, "/apotek", "/apotek/jenis-obat"), "/jenis-obat/create"))
	require.Equal(t, "/resep", Link(contextFor(t, "/", "/resep"), "resep"))
}

func TestHasCapability(t *testing.T) {
	t.Parallel()

	anon := contextFor(t, "/", "/")
	require.True(t, HasCapability(anon, ""))
	require.False(t, HasCapability(anon, rbac.CapResepView))

	manager := contextFor(t, "/", "/", "manager")
	require.True(t, HasCapability(manager, rbac.CapResepView))
	require.False(t, HasCapability(manager, rbac.CapResepManage))
	require.Equal(t, "Manajer", RoleLabel(manager))
	require.Empty(t, RoleLabel(anon))
}
