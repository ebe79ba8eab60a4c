package partials

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	"finitefield.org/apotek-admin/internal/admin/rbac"
)

func TestVisibleItemsFiltersByCapability(t *testing.T) {
	t.Parallel()

	group := navigation.MenuGroup{
		Key:   "master",
		Label: "Master Data",
		Items: []navigation.MenuItem{
			{Key: "jenis-obat", Label: "Jenis Obat", Capability: rbac.CapJenisObatView, Href: "/jenis-obat"},
			{Key: "restricted", Label: "Tersembunyi", Capability: rbac.Capability("made.up"), Href: "/x"},
		},
	}

	ctx := middleware.ContextWithUser(context.Background(), &middleware.User{Roles: []string{string(rbac.RoleManager)}})
	items := visibleItems(group, ctx)
	require.Len(t, items, 1)
	require.Equal(t, "jenis-obat", items[0].Key)

	require.False(t, hasVisibleItems(group, context.Background()), "anonymous users see nothing")
}

func TestSidebarRenderingFiltersAndHighlights(t *testing.T) {
	t.Parallel()

	menu := navigation.BuildMenu("/")
	ctx := requestContext(t, "/", "/supplier/create", "Development")
	ctx = middleware.ContextWithUser(ctx, &middleware.User{Roles: []string{string(rbac.RoleManager)}})

	var buf bytes.Buffer
	require.NoError(t, Sidebar(menu).Render(ctx, &buf))
	doc := parseHTML(t, buf.Bytes())

	supplierLink := doc.Find(`a[href="/supplier"]`)
	require.Equal(t, 1, supplierLink.Length())
	require.Equal(t, "page", supplierLink.AttrOr("aria-current", ""))
	require.Contains(t, supplierLink.AttrOr("class", ""), "bg-slate-900")

	resepLink := doc.Find(`a[href="/resep"]`)
	require.Equal(t, 1, resepLink.Length())
	require.Empty(t, resepLink.AttrOr("aria-current", ""))

	for _, key := range []string{"dashboard", "resep", "qr", "jenis-obat", "supplier", "faq", "dokumentasi"} {
		require.Equal(t, 1, doc.Find(`[data-nav-item="`+key+`"]`).Length(), key)
	}
	require.Equal(t, "truck", supplierLink.Find("svg").AttrOr("data-icon", ""))
}

func TestSidebarHonoursBasePath(t *testing.T) {
	t.Parallel()

	ctx := requestContext(t, "/apotek", "/apotek/qr", "Development")
	ctx = middleware.ContextWithUser(ctx, &middleware.User{Roles: []string{string(rbac.RoleAdmin)}})

	var buf bytes.Buffer
	require.NoError(t, Sidebar(navigation.BuildMenu("/apotek")).Render(ctx, &buf))
	doc := parseHTML(t, buf.Bytes())

	require.Equal(t, "page", doc.Find(`a[href="/apotek/qr"]`).AttrOr("aria-current", ""))
	require.Equal(t, 0, doc.Find(`a[href="/qr"]`).Length())
}

func TestBreadcrumbsMarkCurrentPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Breadcrumbs([]Breadcrumb{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "Resep", Href: "/resep"},
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	links := parseHTML(t, buf.Bytes()).Find("[data-breadcrumbs] li a")
	require.Equal(t, 2, links.Length())
	require.Equal(t, "Dashboard", strings.TrimSpace(links.Eq(0).Text()))
	require.Empty(t, links.Eq(0).AttrOr("aria-current", ""))
	require.Equal(t, "/resep", links.Eq(1).AttrOr("href", ""))
	require.Equal(t, "page", links.Eq(1).AttrOr("aria-current", ""))
}

func TestPageHeaderHidesActionWithoutCapability(t *testing.T) {
	t.Parallel()

	header := Header{
		Title:  "Supplier",
		Action: &PageAction{Label: "Tambah Supplier", Href: "/supplier/create", Icon: "plus", Capability: rbac.CapSupplierManage},
	}

	render := func(role rbac.Role) *goquery.Document {
		ctx := middleware.ContextWithUser(context.Background(), &middleware.User{Roles: []string{string(role)}})
		var buf bytes.Buffer
		require.NoError(t, PageHeader(header).Render(ctx, &buf))
		return parseHTML(t, buf.Bytes())
	}

	admin := render(rbac.RoleAdmin)
	require.Equal(t, "/supplier/create", admin.Find("a[data-page-action]").AttrOr("href", ""))
	require.Equal(t, "Supplier", strings.TrimSpace(admin.Find("h1").Text()))

	pharmacist := render(rbac.RolePharmacist)
	require.Equal(t, 0, pharmacist.Find("a[data-page-action]").Length())
}

func requestContext(t *testing.T, basePath, requestPath, environment string) context.Context {
	t.Helper()

	var ctx context.Context
	handler := middleware.RequestInfoMiddleware(basePath)(middleware.Environment(environment)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, requestPath, nil))

	require.NotNil(t, ctx, "middleware stack must provide context")
	return ctx
}

func parseHTML(t *testing.T, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}
