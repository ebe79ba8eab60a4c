package httpserver_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/testutil"
)

func TestJenisObatCreateFlow(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t, ts, "admin:tester")

	resp := client.Get(t, "/jenis-obat/create")
	doc := readDocument(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Tambah Jenis Obat | Apotek Admin", doc.Find("title").Text())
	token := doc.Find(`#jenis-obat-form input[name="csrf_token"]`).AttrOr("value", "")
	require.NotEmpty(t, token)
	require.Equal(t, client.CSRFToken(t), token)

	resp = client.PostForm(t, "/jenis-obat", url.Values{
		"nama":      {"Tablet Salut"},
		"deskripsi": {"Tablet dengan lapisan gula"},
		"aktif":     {"on"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/jenis-obat", resp.Header.Get("Location"))

	resp = client.Get(t, "/jenis-obat")
	doc = readDocument(t, resp)
	require.Equal(t, 1, doc.Find("tr[data-row-id]").Length())
	require.Contains(t, doc.Find("tr[data-row-id]").Text(), "Tablet Salut")
	require.Equal(t, 0, doc.Find("[data-empty-state]").Length())
	require.Contains(t, doc.Find(`[data-toast="success"]`).Text(), "Jenis obat Tablet Salut berhasil ditambahkan.")

	// Flashes are shown once.
	resp = client.Get(t, "/jenis-obat")
	doc = readDocument(t, resp)
	require.Equal(t, 0, doc.Find("[data-toast]").Length())
}

func TestJenisObatCreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t, ts, "admin:tester")
	resp := client.Get(t, "/jenis-obat/create")
	resp.Body.Close()

	resp = client.PostForm(t, "/jenis-obat", url.Values{"nama": {"  "}})
	doc := readDocument(t, resp)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, 1, doc.Find("title").Length())
	require.NotEmpty(t, doc.Find("[data-field-error=nama]").Text())

	resp = client.PostForm(t, "/jenis-obat", url.Values{"nama": {""}}, "HX-Request", "true")
	doc = readDocument(t, resp)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, 0, doc.Find("title").Length())
	require.Equal(t, 1, doc.Find("form#jenis-obat-form").Length())
	require.NotEmpty(t, doc.Find("[data-field-error=nama]").Text())
}

func TestJenisObatCreateRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t, ts, "admin:tester")
	resp := client.Get(t, "/jenis-obat/create")
	resp.Body.Close()

	resp = client.PostForm(t, "/jenis-obat", url.Values{"nama": {"Sirup"}})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = client.PostForm(t, "/jenis-obat", url.Values{"nama": {"sirup"}})
	doc := readDocument(t, resp)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "Nama jenis sudah terdaftar.", strings.TrimSpace(doc.Find("[data-field-error=nama]").Text()))
}

func TestCreateRejectsMissingCSRFToken(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t, ts, "admin:tester")
	resp := client.Get(t, "/supplier/create")
	resp.Body.Close()

	resp = client.PostForm(t, "/supplier", url.Values{
		"csrf_token": {"forged"},
		"kode":       {"SUP-001"},
		"nama":       {"PT Kimia Farma"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSupplierCreateViaHTMX(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t, ts, "admin:tester")
	resp := client.Get(t, "/supplier/create")
	resp.Body.Close()

	resp = client.PostForm(t, "/supplier", url.Values{
		"kode":          {"SUP-001"},
		"nama":          {"PT Kimia Farma"},
		"alamat":        {"Jl. Veteran No. 9, Jakarta"},
		"kontak_person": {"Budi"},
		"status":        {"active"},
	}, "HX-Request", "true")
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "/supplier", resp.Header.Get("HX-Redirect"))

	resp = client.Get(t, "/supplier?status=active")
	doc := readDocument(t, resp)
	require.Contains(t, doc.Find("tr[data-row-id]").Text(), "PT Kimia Farma")
	require.Equal(t, 1, doc.Find(`[data-toast="success"]`).Length())
}

func TestSupplierCreateRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t, ts, "admin:tester")
	resp := client.Get(t, "/supplier/create")
	resp.Body.Close()

	resp = client.PostForm(t, "/supplier", url.Values{
		"kode":   {"SUP-002"},
		"nama":   {"PT Sehat"},
		"status": {"archived"},
	}, "HX-Request", "true")
	doc := readDocument(t, resp)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotEmpty(t, doc.Find("[data-field-error=status]").Text())
}

func TestResepCreateGeneratesNumber(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	svc := resep.NewStaticService(nil,
		resep.WithClock(func() time.Time { return now }),
		resep.WithNumberGenerator(func(time.Time) string { return "RSP-20250314-AB12" }),
	)
	ts := testutil.NewServer(t, testutil.WithResepService(svc), testutil.WithClock(func() time.Time { return now }))
	client := testutil.NewClient(t, ts, "pharmacist:p1")

	resp := client.Get(t, "/resep/create")
	doc := readDocument(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "2025-03-14", doc.Find(`input[name="tanggal_resep"]`).AttrOr("value", ""))

	resp = client.PostForm(t, "/resep", url.Values{
		"nomor_rm":      {"RM-0042"},
		"nama_pasien":   {"Siti Aminah"},
		"nama_dokter":   {"dr. Hendra"},
		"tanggal_resep": {"2025-03-14"},
		"jenis_pasien":  {"rawat_jalan"},
		"cara_bayar":    {"umum"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/resep", resp.Header.Get("Location"))

	resp = client.Get(t, "/resep")
	doc = readDocument(t, resp)
	row := doc.Find("tr[data-row-id]")
	require.Equal(t, 1, row.Length())
	require.Contains(t, row.Text(), "RSP-20250314-AB12")
	require.Contains(t, row.Text(), "Siti Aminah")
	require.Contains(t, doc.Find("[data-toast]").Text(), "Resep RSP-20250314-AB12 berhasil ditambahkan.")
}

func TestResepCreateRequiresPatientFields(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t, ts, "admin:tester")
	resp := client.Get(t, "/resep/create")
	resp.Body.Close()

	resp = client.PostForm(t, "/resep", url.Values{"tanggal_resep": {"2025-03-14"}}, "HX-Request", "true")
	doc := readDocument(t, resp)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	for _, field := range []string{"nomor_rm", "nama_pasien", "nama_dokter"} {
		require.NotEmpty(t, doc.Find("[data-field-error="+field+"]").Text(), field)
	}
}

func TestCreateFlowUnderBasePath(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithBasePath("/apotek"))
	client := testutil.NewClient(t, ts, "admin:tester")
	resp := client.Get(t, "/apotek/jenis-obat/create")
	doc := readDocument(t, resp)
	require.Equal(t, "/apotek/jenis-obat", doc.Find("form#jenis-obat-form").AttrOr("action", ""))

	resp = client.PostForm(t, "/apotek/jenis-obat", url.Values{"nama": {"Kapsul Lunak"}})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/apotek/jenis-obat", resp.Header.Get("Location"))
}
