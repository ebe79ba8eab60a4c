package help_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adminhelp "finitefield.org/apotek-admin/internal/admin/help"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	"finitefield.org/apotek-admin/internal/admin/templates/help"
	"finitefield.org/apotek-admin/internal/admin/testutil"
)

func TestIndexRendersArticle(t *testing.T) {
	t.Parallel()

	page := adminhelp.Page{
		Slug:      "faq",
		Title:     "FAQ",
		Summary:   "Pertanyaan yang sering diajukan",
		HTML:      "<h2>Pertanyaan Umum</h2><p>Isi jawaban.</p>",
		UpdatedAt: time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC),
	}
	ctx := testutil.RequestContext(t, "/apotek", "/apotek/faq", rbac.RoleManager)
	doc := testutil.Render(t, ctx, help.Index(help.BuildPageData("/apotek", page)))

	require.Equal(t, "FAQ | Apotek Admin", doc.Find("title").Text())
	require.Equal(t, "FAQ", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, []testutil.Crumb{
		{Label: "Dashboard", Href: "/apotek/dashboard"},
		{Label: "FAQ", Href: "/apotek/faq"},
	}, testutil.Breadcrumbs(doc))

	article := doc.Find(`article[data-help-page="faq"]`)
	require.Equal(t, "Pertanyaan Umum", article.Find("h2").Text())
	require.Equal(t, 0, doc.Find("a[data-page-action]").Length())
}
