package supplier_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/rbac"
	adminsupplier "finitefield.org/apotek-admin/internal/admin/supplier"
	"finitefield.org/apotek-admin/internal/admin/templates/supplier"
	"finitefield.org/apotek-admin/internal/admin/testutil"
)

func TestIndexRendersShell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role       rbac.Role
		wantAction bool
	}{
		{role: rbac.RoleAdmin, wantAction: true},
		{role: rbac.RolePharmacist},
		{role: rbac.RoleManager},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.role), func(t *testing.T) {
			t.Parallel()

			ctx := testutil.RequestContext(t, "/apotek", "/apotek/supplier", tc.role)
			doc := testutil.Render(t, ctx, supplier.Index(supplier.BuildPageData("/apotek", supplier.QueryState{}, nil, "")))

			require.Equal(t, "Supplier | Apotek Admin", doc.Find("title").Text())
			require.Equal(t, "Supplier", strings.TrimSpace(doc.Find("h1").Text()))
			require.Equal(t, "Kelola data supplier obat", strings.TrimSpace(doc.Find("[data-page-subtitle]").Text()))
			require.Equal(t, []testutil.Crumb{
				{Label: "Dashboard", Href: "/apotek/dashboard"},
				{Label: "Supplier", Href: "/apotek/supplier"},
			}, testutil.Breadcrumbs(doc))

			action := doc.Find("a[data-page-action]")
			if tc.wantAction {
				require.Equal(t, "/apotek/supplier/create", action.AttrOr("href", ""))
				require.Contains(t, action.Text(), "Tambah Supplier")
			} else {
				require.Equal(t, 0, action.Length())
			}

			empty := doc.Find("#supplier-table [data-empty-state]")
			require.Equal(t, "truck", empty.Find("svg").AttrOr("data-icon", ""))
			require.Equal(t, "Halaman Supplier", strings.TrimSpace(empty.Find("[data-empty-caption]").Text()))
		})
	}
}

func TestTablePrefersOfficePhone(t *testing.T) {
	t.Parallel()

	rows := []adminsupplier.Supplier{
		{ID: "S1", Code: "SUP-001", Name: "PT Kimia Farma", Phone: "021-111", ContactPhone: "0812", Status: adminsupplier.StatusActive},
		{ID: "S2", Code: "SUP-002", Name: "CV Sehat", ContactPhone: "0813", Status: adminsupplier.StatusInactive},
	}
	ctx := testutil.RequestContext(t, "/", "/supplier/table", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, supplier.Table(supplier.TablePayload(supplier.QueryState{}, rows, "")))

	require.Equal(t, 2, doc.Find("tr[data-row-id]").Length())
	require.Contains(t, doc.Find(`tr[data-row-id="S1"]`).Text(), "021-111")
	require.NotContains(t, doc.Find(`tr[data-row-id="S1"]`).Text(), "0812")
	require.Contains(t, doc.Find(`tr[data-row-id="S2"]`).Text(), "0813")
}

func TestFilteredEmptyMessage(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/", "/supplier/table", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, supplier.Table(supplier.TablePayload(supplier.QueryState{Status: "inactive"}, nil, "")))
	require.Equal(t, "Tidak ada supplier yang cocok dengan pencarian.", strings.TrimSpace(doc.Find("[data-empty-message]").Text()))
}

func TestCreatePageBreadcrumbsAndStatusOptions(t *testing.T) {
	t.Parallel()

	form := supplier.DefaultForm()
	form.Errors = map[string]string{"kode": "Kode supplier sudah digunakan."}
	ctx := testutil.RequestContext(t, "/", "/supplier/create", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, supplier.Create(supplier.BuildCreatePageData("/", "tok", form)))

	require.Equal(t, "Tambah Supplier | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, []testutil.Crumb{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "Supplier", Href: "/supplier"},
		{Label: "Tambah", Href: "/supplier/create"},
	}, testutil.Breadcrumbs(doc))
	require.Equal(t, 2, doc.Find(`select[name="status"] option`).Length())
	require.Equal(t, "active", doc.Find(`select[name="status"] option[selected]`).AttrOr("value", ""))
	require.Equal(t, "Kode supplier sudah digunakan.", strings.TrimSpace(doc.Find("[data-field-error=kode]").Text()))
}

func TestTableRowActionsFollowCapability(t *testing.T) {
	t.Parallel()

	rows := []adminsupplier.Supplier{
		{ID: "S1", Code: "SUP-1", Name: "PT Satu", Status: adminsupplier.StatusActive},
		{ID: "S2", Code: "SUP-2", Name: "PT Dua", Status: adminsupplier.StatusInactive},
	}

	ctx := testutil.RequestContext(t, "/", "/supplier", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, supplier.Table(supplier.TablePayload(supplier.QueryState{}, rows, "")))
	first := doc.Find(`tr[data-row-id="S1"] [data-row-actions]`)
	require.Equal(t, "/supplier/S1/edit", first.Find(`a[data-action="edit"]`).AttrOr("href", ""))
	require.Equal(t, "/supplier/S1/toggle-status", first.Find(`[data-action="toggle"] form`).AttrOr("action", ""))
	require.Equal(t, "Nonaktifkan", strings.TrimSpace(first.Find(`[data-action="toggle"] button`).Text()))
	require.Equal(t, "/supplier/S1/delete", first.Find(`[data-action="delete"] form`).AttrOr("action", ""))
	require.Equal(t, "Aktifkan", strings.TrimSpace(doc.Find(`tr[data-row-id="S2"] [data-action="toggle"] button`).Text()))

	// Pharmacists can view but not manage suppliers.
	ctx = testutil.RequestContext(t, "/", "/supplier", rbac.RolePharmacist)
	doc = testutil.Render(t, ctx, supplier.Table(supplier.TablePayload(supplier.QueryState{}, rows, "")))
	require.Equal(t, 0, doc.Find("[data-row-actions]").Length())
}

func TestEditPagePrefillsSupplier(t *testing.T) {
	t.Parallel()

	form := supplier.FormFromSupplier(adminsupplier.Supplier{
		ID: "S1", Code: "SUP-1", Name: "PT Satu", Email: "a@b.example", Status: adminsupplier.StatusInactive,
	})
	ctx := testutil.RequestContext(t, "/apotek", "/apotek/supplier/S1/edit", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, supplier.Edit(supplier.BuildEditPageData("/apotek", "tok", "S1", form)))

	require.Equal(t, "Ubah Supplier | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, "/apotek/supplier/S1/edit", testutil.Breadcrumbs(doc)[2].Href)
	require.Equal(t, "/apotek/supplier/S1/edit", doc.Find("form#supplier-form").AttrOr("action", ""))
	require.Equal(t, "SUP-1", doc.Find(`input[name="kode"]`).AttrOr("value", ""))
	require.Equal(t, "inactive", doc.Find(`select[name="status"] option[selected]`).AttrOr("value", ""))
}
