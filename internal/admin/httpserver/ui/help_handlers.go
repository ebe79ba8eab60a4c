package ui

import (
	"net/http"

	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	helptpl "finitefield.org/apotek-admin/internal/admin/templates/help"
)

// HelpPage returns a handler rendering the help document stored under slug.
func (h *Handlers) HelpPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.help.Page(slug)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		data := helptpl.BuildPageData(custommw.BasePathFromContext(r.Context()), page)
		render(w, r, helptpl.Index(data), http.StatusOK)
	}
}
