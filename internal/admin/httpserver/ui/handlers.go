package ui

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	admindashboard "finitefield.org/apotek-admin/internal/admin/dashboard"
	adminhelp "finitefield.org/apotek-admin/internal/admin/help"
	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	adminjenisobat "finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	adminqr "finitefield.org/apotek-admin/internal/admin/qrcode"
	adminresep "finitefield.org/apotek-admin/internal/admin/resep"
	adminsupplier "finitefield.org/apotek-admin/internal/admin/supplier"
	dashboardtpl "finitefield.org/apotek-admin/internal/admin/templates/dashboard"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	JenisObatService adminjenisobat.Service
	SupplierService  adminsupplier.Service
	ResepService     adminresep.Service
	QRService        adminqr.Service
	DashboardService admindashboard.Service
	HelpLibrary      *adminhelp.Library
	Now              func() time.Time
}

// Handlers exposes HTTP handlers for console pages and fragments.
type Handlers struct {
	jenisObat adminjenisobat.Service
	suppliers adminsupplier.Service
	resep     adminresep.Service
	qr        adminqr.Service
	dashboard admindashboard.Service
	help      *adminhelp.Library
	now       func() time.Time
}

// NewHandlers wires the UI handler set. Missing services fall back to empty
// in-memory implementations and the dashboard aggregates whatever is wired.
func NewHandlers(deps Dependencies) *Handlers {
	h := &Handlers{
		jenisObat: deps.JenisObatService,
		suppliers: deps.SupplierService,
		resep:     deps.ResepService,
		qr:        deps.QRService,
		dashboard: deps.DashboardService,
		help:      deps.HelpLibrary,
		now:       deps.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.jenisObat == nil {
		h.jenisObat = adminjenisobat.NewStaticService(nil)
	}
	if h.suppliers == nil {
		h.suppliers = adminsupplier.NewStaticService(nil)
	}
	if h.resep == nil {
		h.resep = adminresep.NewStaticService(nil, adminresep.WithClock(h.now))
	}
	if h.qr == nil {
		h.qr = adminqr.NewStaticService(nil, nil).WithClock(h.now)
	}
	if h.dashboard == nil {
		h.dashboard = admindashboard.NewAggregateService(h.jenisObat, h.suppliers, h.resep, h.qr).WithClock(h.now)
	}
	return h
}

// Dashboard renders the landing page.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.dashboard.Summary(ctx)
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("dashboard: summary failed", zap.Error(err))
		errMsg = "Ringkasan dashboard gagal dimuat. Coba lagi beberapa saat."
		summary = admindashboard.Summary{}
	}

	data := dashboardtpl.BuildPageData(custommw.BasePathFromContext(ctx), summary, errMsg, h.now())
	render(w, r, dashboardtpl.Index(data), http.StatusOK)
}

// render writes c with status. templ.Handler buffers the output, so session
// flashes consumed while rendering are persisted before the header is sent.
func render(w http.ResponseWriter, r *http.Request, c templ.Component, status int) {
	opts := []func(*templ.ComponentHandler){}
	if status != http.StatusOK {
		opts = append(opts, templ.WithStatus(status))
	}
	templ.Handler(c, opts...).ServeHTTP(w, r)
}

// redirectWithFlash queues a success toast and sends the browser to target.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	redirectWithToast(w, r, target, message, "success")
}

// redirectWithToast queues a toast of tone and sends the browser to target.
// htmx requests receive HX-Redirect so the whole page reloads.
func redirectWithToast(w http.ResponseWriter, r *http.Request, target, message, tone string) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.AddFlash(message, tone)
	}
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// triggerEvents asks htmx to dispatch the named events after the swap.
func triggerEvents(w http.ResponseWriter, r *http.Request, events map[string]any) {
	payload, err := json.Marshal(events)
	if err != nil {
		observability.FromContext(r.Context()).Warn("marshal HX-Trigger payload failed", zap.Error(err))
		return
	}
	w.Header().Set("HX-Trigger-After-Swap", string(payload))
}

// clientIP returns the request address without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// pushURL records the canonical list URL for an htmx fragment so that back
// navigation restores the filters.
func pushURL(w http.ResponseWriter, r *http.Request, route string) {
	target := navigation.Join(custommw.BasePathFromContext(r.Context()), route)
	if encoded := r.URL.Query().Encode(); encoded != "" {
		target += "?" + encoded
	}
	w.Header().Set("HX-Push-Url", target)
}

func listPath(r *http.Request, route string) string {
	return navigation.Join(custommw.BasePathFromContext(r.Context()), route)
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}
