package resep_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/rbac"
	adminresep "finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/templates/resep"
	"finitefield.org/apotek-admin/internal/admin/testutil"
)

func TestIndexRendersEmptyState(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/", "/resep", rbac.RolePharmacist)
	doc := testutil.Render(t, ctx, resep.Index(resep.BuildPageData("/", resep.QueryState{}, nil, "")))

	require.Equal(t, "Resep | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, "Resep", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, "Kelola resep obat dari dokter", strings.TrimSpace(doc.Find("[data-page-subtitle]").Text()))
	require.Equal(t, []testutil.Crumb{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "Resep", Href: "/resep"},
	}, testutil.Breadcrumbs(doc))
	require.Equal(t, "/resep/create", doc.Find("a[data-page-action]").AttrOr("href", ""))
	require.Contains(t, doc.Find("a[data-page-action]").Text(), "Tambah Resep")

	empty := doc.Find("#resep-table [data-empty-state]")
	require.Equal(t, "file-text", empty.Find("svg").AttrOr("data-icon", ""))
	require.Equal(t, "Halaman Resep", strings.TrimSpace(empty.Find("[data-empty-caption]").Text()))
	require.Equal(t, "Belum ada resep yang diterima.", strings.TrimSpace(empty.Find("[data-empty-message]").Text()))
}

func TestIndexHidesActionForManagers(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/", "/resep", rbac.RoleManager)
	doc := testutil.Render(t, ctx, resep.Index(resep.BuildPageData("/", resep.QueryState{}, nil, "")))
	require.Equal(t, 0, doc.Find("a[data-page-action]").Length())
}

func TestStatusFilterKeepsSelection(t *testing.T) {
	t.Parallel()

	ctx := testutil.RequestContext(t, "/", "/resep", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, resep.Index(resep.BuildPageData("/", resep.QueryState{Status: "pending"}, nil, "")))

	require.Equal(t, "pending", doc.Find(`select[name="status"] option[selected]`).AttrOr("value", ""))
	require.Equal(t, "Tidak ada resep yang cocok dengan pencarian.", strings.TrimSpace(doc.Find("[data-empty-message]").Text()))
}

func TestTableRendersLabels(t *testing.T) {
	t.Parallel()

	rows := []adminresep.Prescription{{
		ID:              "R1",
		Number:          "RSP-20250314-AB12",
		MedicalRecordNo: "RM-0042",
		PatientName:     "Siti Aminah",
		DoctorName:      "dr. Hendra",
		Date:            time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		PatientType:     adminresep.PatientInpatient,
		Payment:         adminresep.PaymentBPJS,
		Status:          adminresep.StatusPending,
	}}
	ctx := testutil.RequestContext(t, "/", "/resep/table", rbac.RoleAdmin)
	doc := testutil.Render(t, ctx, resep.Table(resep.TablePayload(resep.QueryState{}, rows, "")))

	text := doc.Find(`tr[data-row-id="R1"]`).Text()
	for _, want := range []string{"RSP-20250314-AB12", "Siti Aminah", "RM-0042", "dr. Hendra", "Rawat Inap", "BPJS", "Menunggu"} {
		require.Contains(t, text, want)
	}
}

func TestCreateFormDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	ctx := testutil.RequestContext(t, "/", "/resep/create", rbac.RolePharmacist)
	doc := testutil.Render(t, ctx, resep.Create(resep.BuildCreatePageData("/", "tok", resep.DefaultForm(now))))

	require.Equal(t, "Tambah Resep | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, "2025-03-14", doc.Find(`input[name="tanggal_resep"]`).AttrOr("value", ""))
	require.Equal(t, "rawat_jalan", doc.Find(`select[name="jenis_pasien"] option[selected]`).AttrOr("value", ""))
	require.Equal(t, "umum", doc.Find(`select[name="cara_bayar"] option[selected]`).AttrOr("value", ""))
	require.Equal(t, "", doc.Find(`input[name="nomor_resep"]`).AttrOr("value", ""))
}

func TestShowOffersActionsForStatus(t *testing.T) {
	t.Parallel()

	p := adminresep.Prescription{
		ID:          "R1",
		Number:      "RSP-20250314-AB12",
		PatientName: "Siti Aminah",
		Date:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		PatientType: adminresep.PatientInpatient,
		Payment:     adminresep.PaymentBPJS,
		Status:      adminresep.StatusPending,
	}
	ctx := testutil.RequestContext(t, "/apotek", "/apotek/resep/R1", rbac.RolePharmacist)
	doc := testutil.Render(t, ctx, resep.Show(resep.BuildShowPageData("/apotek", p)))

	require.Equal(t, "Resep RSP-20250314-AB12 | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, "/apotek/resep/R1", testutil.Breadcrumbs(doc)[2].Href)
	require.Equal(t, "Menunggu", strings.TrimSpace(doc.Find("[data-status]").Text()))
	require.Equal(t, "Rawat Inap", strings.TrimSpace(doc.Find(`[data-label="Jenis Pasien"] dd`).Text()))
	require.Equal(t, "-", strings.TrimSpace(doc.Find(`[data-label="Diproses Oleh"] dd`).Text()))

	actions := doc.Find("[data-resep-actions]")
	require.Equal(t, "/apotek/resep/R1/process", actions.Find(`[data-action="process"] form`).AttrOr("action", ""))
	require.Equal(t, "/apotek/resep/R1/complete", actions.Find(`[data-action="complete"] form`).AttrOr("action", ""))
	require.Equal(t, "/apotek/resep/R1/cancel", actions.Find(`[data-action="cancel"] form`).AttrOr("action", ""))

	p.Status = adminresep.StatusProcessed
	p.ProcessedBy = "apoteker-1"
	doc = testutil.Render(t, ctx, resep.Show(resep.BuildShowPageData("/apotek", p)))
	require.Equal(t, 0, doc.Find(`[data-action="process"]`).Length())
	require.Equal(t, 1, doc.Find(`[data-action="complete"]`).Length())
	require.Equal(t, "apoteker-1", strings.TrimSpace(doc.Find(`[data-label="Diproses Oleh"] dd`).Text()))

	p.Status = adminresep.StatusCompleted
	doc = testutil.Render(t, ctx, resep.Show(resep.BuildShowPageData("/apotek", p)))
	require.Equal(t, 0, doc.Find("[data-resep-actions] form").Length())
}

func TestShowHidesActionsWithoutManageCapability(t *testing.T) {
	t.Parallel()

	p := adminresep.Prescription{ID: "R1", Number: "RSP-1", Status: adminresep.StatusPending}
	ctx := testutil.RequestContext(t, "/", "/resep/R1", rbac.RoleManager)
	doc := testutil.Render(t, ctx, resep.Show(resep.BuildShowPageData("/", p)))

	require.Equal(t, 0, doc.Find("[data-resep-actions] form").Length())
	require.Equal(t, "/resep", doc.Find("[data-resep-actions] a").AttrOr("href", ""))
}

func TestTableLinksToDetail(t *testing.T) {
	t.Parallel()

	rows := []adminresep.Prescription{{ID: "R9", Number: "RSP-9", Status: adminresep.StatusPending}}
	ctx := testutil.RequestContext(t, "/apotek", "/apotek/resep/table", rbac.RoleManager)
	doc := testutil.Render(t, ctx, resep.Table(resep.TablePayload(resep.QueryState{}, rows, "")))

	require.Equal(t, "/apotek/resep/R9", doc.Find(`tr[data-row-id="R9"] a[data-action="show"]`).AttrOr("href", ""))
}
