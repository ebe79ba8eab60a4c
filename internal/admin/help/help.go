package help

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var contentFS embed.FS

// ErrNotFound indicates no help page exists for the slug.
var ErrNotFound = errors.New("help page not found")

// Page is a rendered help document.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	HTML      string
	UpdatedAt time.Time
}

// Library holds every help page rendered at load time.
type Library struct {
	pages map[string]Page
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Default loads the embedded help pages.
func Default() (*Library, error) {
	return Load(contentFS, "content")
}

// Load renders every markdown file under dir in fsys. The slug is the file name without extension.
func Load(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read help dir: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	policy := newPolicy()

	lib := &Library{pages: make(map[string]Page, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read help page %s: %w", entry.Name(), err)
		}
		page, err := render(md, policy, strings.TrimSuffix(entry.Name(), ".md"), raw)
		if err != nil {
			return nil, err
		}
		lib.pages[page.Slug] = page
	}
	return lib, nil
}

// Page returns the page registered under slug.
func (l *Library) Page(slug string) (Page, error) {
	if l == nil {
		return Page{}, ErrNotFound
	}
	page, ok := l.pages[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Page{}, ErrNotFound
	}
	return page, nil
}

// Slugs lists the available pages in alphabetical order.
func (l *Library) Slugs() []string {
	if l == nil {
		return nil
	}
	slugs := make([]string, 0, len(l.pages))
	for slug := range l.pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func render(md goldmark.Markdown, policy *bluemonday.Policy, slug string, raw []byte) (Page, error) {
	fm, body := splitFrontMatter(string(raw))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("parse front matter %s: %w", slug, err)
		}
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("render markdown %s: %w", slug, err)
	}

	page := Page{
		Slug:    slug,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		HTML:    policy.Sanitize(buf.String()),
	}
	if page.Title == "" {
		page.Title = slug
	}
	if ts, err := time.Parse("2006-01-02", strings.TrimSpace(front.UpdatedAt)); err == nil {
		page.UpdatedAt = ts
	}
	return page, nil
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h2", "h3", "h4")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
