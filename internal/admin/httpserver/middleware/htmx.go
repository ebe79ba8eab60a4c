package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const htmxContextKey contextKey = "htmx.info"

// HTMXInfo captures the HX-* headers that change how a response is rendered.
type HTMXInfo struct {
	IsHTMX         bool
	IsBoosted      bool
	HistoryRestore bool
	Target         string
}

// Fragment reports whether the caller will swap the response into an
// existing page. Boosted navigations and history restores need the full
// layout because htmx replaces the whole body with them.
func (i HTMXInfo) Fragment() bool {
	return i.IsHTMX && !i.IsBoosted && !i.HistoryRestore
}

// HTMX returns middleware that inspects HX-* headers and annotates the context.
// Responses vary on HX-Request because the same URL may render a fragment or a page.
func HTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := HTMXInfo{
				IsHTMX:         strings.EqualFold(r.Header.Get("HX-Request"), "true"),
				IsBoosted:      strings.EqualFold(r.Header.Get("HX-Boosted"), "true"),
				HistoryRestore: strings.EqualFold(r.Header.Get("HX-History-Restore-Request"), "true"),
				Target:         r.Header.Get("HX-Target"),
			}
			w.Header().Add("Vary", "HX-Request")

			ctx := context.WithValue(r.Context(), htmxContextKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HTMXInfoFromContext retrieves HTMX metadata; returns zero value if absent.
func HTMXInfoFromContext(ctx context.Context) HTMXInfo {
	if ctx == nil {
		return HTMXInfo{}
	}
	val, ok := ctx.Value(htmxContextKey).(HTMXInfo)
	if !ok {
		return HTMXInfo{}
	}
	return val
}

// IsHTMXRequest returns true when the response will be swapped in as a fragment.
func IsHTMXRequest(ctx context.Context) bool {
	return HTMXInfoFromContext(ctx).Fragment()
}

// RequireHTMX answers 404 to direct navigation so fragment routes stay internal.
// A history restore of a fragment URL is sent the full page at the parent route.
func RequireHTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := HTMXInfoFromContext(r.Context())
			if info.HistoryRestore {
				http.Redirect(w, r, parentPath(r.URL.Path), http.StatusSeeOther)
				return
			}
			if !info.IsHTMX {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parentPath(p string) string {
	p = strings.TrimRight(p, "/")
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}
