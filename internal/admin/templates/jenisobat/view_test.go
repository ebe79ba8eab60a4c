package jenisobat_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adminjenisobat "finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	"finitefield.org/apotek-admin/internal/admin/templates/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/testutil"
)

func TestIndexRendersEmptyState(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/", "/jenis-obat", rbac.RolePharmacist)
	doc := testutil.Render(t, ctx, jenisobat.Index(jenisobat.BuildPageData("/", jenisobat.QueryState{}, nil, "")))

	require.Equal(t, "Jenis Obat | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, "Jenis Obat", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, []testutil.Crumb{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "Jenis Obat", Href: "/jenis-obat"},
	}, testutil.Breadcrumbs(doc))

	action := doc.Find("a[data-page-action]")
	require.Equal(t, "/jenis-obat/create", action.AttrOr("href", ""))
	require.Contains(t, action.Text(), "Tambah Jenis")

	empty := doc.Find("#jenis-obat-table [data-empty-state]")
	require.Equal(t, "box", empty.Find("svg").AttrOr("data-icon", ""))
	require.Equal(t, "Halaman Jenis Obat", strings.TrimSpace(empty.Find("[data-empty-caption]").Text()))
}

func TestIndexHidesActionForManagers(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/apotek", "/apotek/jenis-obat", rbac.RoleManager)
	doc := testutil.Render(t, ctx, jenisobat.Index(jenisobat.BuildPageData("/apotek", jenisobat.QueryState{}, nil, "")))

	require.Equal(t, 0, doc.Find("a[data-page-action]").Length())
	require.Equal(t, "/apotek/jenis-obat", doc.Find("[data-breadcrumbs] li a").Last().AttrOr("href", ""))
}

func TestTableRendersRowsAndHighlightsSearch(t *testing.T) {
	t.Parallel()

	types := []adminjenisobat.Type{
		{ID: "01A", Name: "Tetes Mata", Description: "Obat tetes untuk mata", Active: true, CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "01B", Name: "Tetes Hidung", Active: false},
	}
	ctx := testutil.RequestContext(t, "/", "/jenis-obat/table", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, jenisobat.Table(jenisobat.TablePayload(jenisobat.QueryState{Search: "tetes"}, types, "")))

	require.Equal(t, 2, doc.Find("tr[data-row-id]").Length())
	require.Contains(t, doc.Find(`tr[data-row-id="01A"]`).Text(), "Aktif")
	require.Equal(t, "Tetes", doc.Find(`tr[data-row-id="01A"] mark`).First().Text())
	require.Contains(t, doc.Find(`tr[data-row-id="01B"]`).Text(), "Nonaktif")
	require.Equal(t, 0, doc.Find("[data-empty-state]").Length())
	require.Contains(t, doc.Find("[data-total]").Text(), "2")
}

func TestTableSearchMissAndError(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/", "/jenis-obat/table", rbac.RoleAdmin)

	doc := testutil.Render(t, ctx, jenisobat.Table(jenisobat.TablePayload(jenisobat.QueryState{Search: "zzz"}, nil, "")))
	require.Equal(t, "Tidak ada jenis obat yang cocok dengan pencarian.", strings.TrimSpace(doc.Find("[data-empty-message]").Text()))

	doc = testutil.Render(t, ctx, jenisobat.Table(jenisobat.TablePayload(jenisobat.QueryState{}, nil, "gagal")))
	require.Equal(t, 1, doc.Find("[data-error-banner]").Length())
	require.Equal(t, 0, doc.Find("[data-empty-state]").Length())
}

func TestFormRendersFieldErrors(t *testing.T) {
	t.Parallel()

	form := jenisobat.DefaultForm()
	form.Errors = map[string]string{"nama": "Nama jenis wajib diisi."}
	ctx := testutil.RequestContext(t, "/", "/jenis-obat/create", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, jenisobat.Form(jenisobat.BuildCreatePageData("/", "tok", form)))

	require.Equal(t, "/jenis-obat", doc.Find("form#jenis-obat-form").AttrOr("action", ""))
	require.Equal(t, "tok", doc.Find(`input[name="csrf_token"]`).AttrOr("value", ""))
	require.Equal(t, "Nama jenis wajib diisi.", strings.TrimSpace(doc.Find("[data-field-error=nama]").Text()))
	_, checked := doc.Find(`input[name="aktif"]`).Attr("checked")
	require.True(t, checked)
}

func TestTableRowActionsFollowCapability(t *testing.T) {
	t.Parallel()

	types := []adminjenisobat.Type{{ID: "01A", Name: "Sirup", Active: true}}

	ctx := testutil.RequestContext(t, "/apotek", "/apotek/jenis-obat", rbac.RolePharmacist)
	doc := testutil.Render(t, ctx, jenisobat.Table(jenisobat.TablePayload(jenisobat.QueryState{}, types, "")))
	actions := doc.Find(`tr[data-row-id="01A"] [data-row-actions]`)
	require.Equal(t, "/apotek/jenis-obat/01A/edit", actions.Find(`a[data-action="edit"]`).AttrOr("href", ""))
	require.Equal(t, "/apotek/jenis-obat/01A/delete", actions.Find("form").AttrOr("action", ""))
	require.Equal(t, "Hapus jenis obat Sirup?", actions.Find("form").AttrOr("hx-confirm", ""))

	ctx = testutil.RequestContext(t, "/apotek", "/apotek/jenis-obat", rbac.RoleManager)
	doc = testutil.Render(t, ctx, jenisobat.Table(jenisobat.TablePayload(jenisobat.QueryState{}, types, "")))
	require.Equal(t, 0, doc.Find("[data-row-actions]").Length())
	require.NotContains(t, doc.Find("thead").Text(), "Aksi")
}

func TestEditPagePostsToType(t *testing.T) {
	t.Parallel()

	form := jenisobat.FormFromType(adminjenisobat.Type{ID: "01A", Name: "Sirup", Description: "Cair", Active: false})
	ctx := testutil.RequestContext(t, "/", "/jenis-obat/01A/edit", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, jenisobat.Edit(jenisobat.BuildEditPageData("/", "tok", "01A", form)))

	require.Equal(t, "Ubah Jenis Obat | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, []testutil.Crumb{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "Jenis Obat", Href: "/jenis-obat"},
		{Label: "Ubah", Href: "/jenis-obat/01A/edit"},
	}, testutil.Breadcrumbs(doc))
	require.Equal(t, "/jenis-obat/01A/edit", doc.Find("form#jenis-obat-form").AttrOr("action", ""))
	require.Equal(t, "Sirup", doc.Find(`input[name="nama"]`).AttrOr("value", ""))
	require.Equal(t, "Cair", strings.TrimSpace(doc.Find(`textarea[name="deskripsi"]`).Text()))
	_, checked := doc.Find(`input[name="aktif"]`).Attr("checked")
	require.False(t, checked)
}
