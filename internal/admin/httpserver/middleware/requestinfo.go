package middleware

import (
	"context"
	"net/http"
	"strings"
)

type requestInfoKeyType int

const requestInfoKey requestInfoKeyType = iota

// RequestInfo holds lightweight request metadata exposed to templates.
// Section is the first path segment below the base path, e.g. "supplier"
// for /admin/supplier/3/edit, and is empty on the console root.
type RequestInfo struct {
	Path     string
	BasePath string
	Method   string
	Section  string
}

// RequestInfoMiddleware annotates the context with the current request path and base path.
func RequestInfoMiddleware(basePath string) func(http.Handler) http.Handler {
	base := NormaliseBase(basePath)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := &RequestInfo{
				Path:     r.URL.Path,
				Method:   r.Method,
				BasePath: base,
				Section:  SectionOf(base, r.URL.Path),
			}
			ctx := context.WithValue(r.Context(), requestInfoKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestInfoFromContext returns the request metadata stored by RequestInfoMiddleware.
func RequestInfoFromContext(ctx context.Context) (*RequestInfo, bool) {
	if ctx == nil {
		return nil, false
	}
	info, ok := ctx.Value(requestInfoKey).(*RequestInfo)
	return info, ok && info != nil
}

// RequestPathFromContext returns the request path or empty string when unavailable.
func RequestPathFromContext(ctx context.Context) string {
	if info, ok := RequestInfoFromContext(ctx); ok {
		return info.Path
	}
	return ""
}

// BasePathFromContext returns the resolved base path or "/" when unavailable.
func BasePathFromContext(ctx context.Context) string {
	if info, ok := RequestInfoFromContext(ctx); ok && info.BasePath != "" {
		return info.BasePath
	}
	return "/"
}

// SectionFromContext returns the console section of the current request.
func SectionFromContext(ctx context.Context) string {
	if info, ok := RequestInfoFromContext(ctx); ok {
		return info.Section
	}
	return ""
}

// SectionOf returns the first segment of p below base, or "" when p is
// outside base or names base itself.
func SectionOf(base, p string) string {
	base = NormaliseBase(base)
	if base != "/" {
		if !strings.HasPrefix(p, base+"/") {
			return ""
		}
		p = strings.TrimPrefix(p, base)
	}
	p = strings.TrimLeft(p, "/")
	section, _, _ := strings.Cut(p, "/")
	return section
}

// NormaliseBase returns base with a single leading slash and no trailing slash, or "/".
func NormaliseBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if base != "/" {
		base = strings.TrimRight(base, "/")
		if base == "" {
			return "/"
		}
	}
	return base
}
