package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Render renders c with ctx and parses the output.
func Render(t testing.TB, ctx context.Context, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return ParseHTML(t, buf.Bytes())
}

// Crumb is a breadcrumb entry as rendered.
type Crumb struct {
	Label string
	Href  string
}

// Breadcrumbs returns the rendered breadcrumb trail in order.
func Breadcrumbs(doc *goquery.Document) []Crumb {
	var crumbs []Crumb
	doc.Find("[data-breadcrumbs] li a").Each(func(_ int, s *goquery.Selection) {
		crumbs = append(crumbs, Crumb{Label: strings.TrimSpace(s.Text()), Href: s.AttrOr("href", "")})
	})
	return crumbs
}
