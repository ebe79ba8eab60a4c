package helpers

import (
	"context"
	"strings"

	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/navigation"
)

// RequestPath returns the cleaned path of the current request.
func RequestPath(ctx context.Context) string {
	return cleanRoute(middleware.RequestPathFromContext(ctx))
}

// BasePath returns the configured console base path.
func BasePath(ctx context.Context) string {
	return cleanRoute(middleware.BasePathFromContext(ctx))
}

// Link resolves route against the base path stored on ctx.
func Link(ctx context.Context, route string) string {
	return navigation.Join(BasePath(ctx), route)
}

// Section returns the console section of the current request, e.g. "resep".
func Section(ctx context.Context) string {
	return middleware.SectionFromContext(ctx)
}

// NavActive reports whether the current request should highlight a menu item whose href is pattern.
// With prefix, any route in the same section, such as /supplier/create, keeps /supplier highlighted.
func NavActive(ctx context.Context, pattern string, prefix bool) bool {
	if strings.TrimSpace(pattern) == "" {
		return false
	}
	current := RequestPath(ctx)
	target := cleanRoute(pattern)

	if current == target {
		return true
	}
	if !prefix {
		return false
	}
	section := Section(ctx)
	return section != "" && section == middleware.SectionOf(BasePath(ctx), target)
}

func cleanRoute(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	p = navigation.Join("/", p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
