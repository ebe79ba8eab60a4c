package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	admindashboard "finitefield.org/apotek-admin/internal/admin/dashboard"
	adminhelp "finitefield.org/apotek-admin/internal/admin/help"
	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/httpserver/ui"
	adminjenisobat "finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/navigation"
	adminqr "finitefield.org/apotek-admin/internal/admin/qrcode"
	"finitefield.org/apotek-admin/internal/admin/rbac"
	adminresep "finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/session"
	adminsupplier "finitefield.org/apotek-admin/internal/admin/supplier"
	"finitefield.org/apotek-admin/internal/platform/observability"
	"finitefield.org/apotek-admin/public"
)

// Config holds runtime options for the console HTTP server.
type Config struct {
	Address          string
	BasePath         string
	LoginPath        string
	Environment      string
	Logger           *zap.Logger
	TracerProvider   trace.TracerProvider
	Authenticator    custommw.Authenticator
	SessionStore     custommw.SessionStore
	CSRFCookieName   string
	CSRFCookiePath   string
	CSRFCookieSecure bool
	CSRFHeaderName   string

	JenisObatService adminjenisobat.Service
	SupplierService  adminsupplier.Service
	ResepService     adminresep.Service
	QRService        adminqr.Service
	DashboardService admindashboard.Service
	HelpLibrary      *adminhelp.Library
	Now              func() time.Time
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLogger(logger))
	router.Use(observability.TraceMiddleware(cfg.TracerProvider))
	router.Use(observability.RequestLogger())
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))

	staticContent, err := public.StaticFS()
	if err != nil {
		logger.Fatal("embed static", zap.Error(err))
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	basePath := custommw.NormaliseBase(cfg.BasePath)
	loginPath := resolveLoginPath(basePath, cfg.LoginPath)

	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = custommw.DefaultAuthenticator()
	}

	secureCookies := cfg.CSRFCookieSecure || custommw.ParseDeployment(cfg.Environment).Production
	sessions := cfg.SessionStore
	if sessions == nil {
		manager, err := session.NewEphemeralManager(secureCookies)
		if err != nil {
			logger.Fatal("session manager", zap.Error(err))
		}
		sessions = manager
	}

	helpLibrary := cfg.HelpLibrary
	if helpLibrary == nil {
		helpLibrary, err = adminhelp.Default()
		if err != nil {
			logger.Fatal("load help pages", zap.Error(err))
		}
	}

	csrfCfg := custommw.CSRFConfig{
		CookieName: cfg.CSRFCookieName,
		CookiePath: firstNonEmpty(cfg.CSRFCookiePath, basePath),
		HeaderName: cfg.CSRFHeaderName,
		Secure:     secureCookies,
	}

	handlers := ui.NewHandlers(ui.Dependencies{
		JenisObatService: cfg.JenisObatService,
		SupplierService:  cfg.SupplierService,
		ResepService:     cfg.ResepService,
		QRService:        cfg.QRService,
		DashboardService: cfg.DashboardService,
		HelpLibrary:      helpLibrary,
		Now:              cfg.Now,
	})

	mountConsoleRoutes(router, basePath, routeOptions{
		Authenticator: authenticator,
		LoginPath:     loginPath,
		Environment:   cfg.Environment,
		Sessions:      sessions,
		CSRF:          csrfCfg,
		UI:            handlers,
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

type routeOptions struct {
	Authenticator custommw.Authenticator
	LoginPath     string
	Environment   string
	Sessions      custommw.SessionStore
	CSRF          custommw.CSRFConfig
	UI            *ui.Handlers
}

func mountConsoleRoutes(router chi.Router, base string, opts routeOptions) {
	authHandlers := newAuthHandlers(opts.Authenticator, base, opts.LoginPath)
	dashboardPath := navigation.Join(base, "/dashboard")
	h := opts.UI

	router.Route(base, func(r chi.Router) {
		r.Use(custommw.RequestInfoMiddleware(base))
		r.Use(custommw.Environment(opts.Environment))
		r.Use(custommw.Session(opts.Sessions))
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.CSRF(opts.CSRF))

		r.Get(relativeTo(base, opts.LoginPath), authHandlers.LoginForm)
		r.Post(relativeTo(base, opts.LoginPath), authHandlers.LoginSubmit)
		r.Post("/logout", authHandlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(custommw.Auth(opts.Authenticator, opts.LoginPath))

			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, dashboardPath, http.StatusFound)
			})
			r.With(custommw.RequireCapability(rbac.CapDashboardView)).Get("/dashboard", h.Dashboard)

			r.Route("/jenis-obat", func(r chi.Router) {
				r.With(custommw.RequireCapability(rbac.CapJenisObatView)).Get("/", h.JenisObatPage)
				RegisterFragment(r.With(custommw.RequireCapability(rbac.CapJenisObatView)), "/table", h.JenisObatTable)
				r.Group(func(r chi.Router) {
					r.Use(custommw.RequireCapability(rbac.CapJenisObatManage))
					r.Get("/create", h.JenisObatCreateForm)
					r.Post("/", h.JenisObatCreate)
					r.Get("/{id}/edit", h.JenisObatEditForm)
					r.Post("/{id}/edit", h.JenisObatUpdate)
					r.Post("/{id}/delete", h.JenisObatDelete)
				})
			})

			r.Route("/supplier", func(r chi.Router) {
				r.With(custommw.RequireCapability(rbac.CapSupplierView)).Get("/", h.SupplierPage)
				RegisterFragment(r.With(custommw.RequireCapability(rbac.CapSupplierView)), "/table", h.SupplierTable)
				r.Group(func(r chi.Router) {
					r.Use(custommw.RequireCapability(rbac.CapSupplierManage))
					r.Get("/create", h.SupplierCreateForm)
					r.Post("/", h.SupplierCreate)
					r.Get("/{id}/edit", h.SupplierEditForm)
					r.Post("/{id}/edit", h.SupplierUpdate)
					r.Post("/{id}/toggle-status", h.SupplierToggleStatus)
					r.Post("/{id}/delete", h.SupplierDelete)
				})
			})

			r.Route("/resep", func(r chi.Router) {
				r.With(custommw.RequireCapability(rbac.CapResepView)).Get("/", h.ResepPage)
				RegisterFragment(r.With(custommw.RequireCapability(rbac.CapResepView)), "/table", h.ResepTable)
				r.With(custommw.RequireCapability(rbac.CapResepView)).Get("/{id}", h.ResepShow)
				r.Group(func(r chi.Router) {
					r.Use(custommw.RequireCapability(rbac.CapResepManage))
					r.Get("/create", h.ResepCreateForm)
					r.Post("/", h.ResepCreate)
					for _, action := range []adminresep.Action{adminresep.ActionProcess, adminresep.ActionComplete, adminresep.ActionCancel} {
						r.Post("/{id}/"+string(action), h.ResepTransition(action))
					}
				})
			})

			r.Route("/qr", func(r chi.Router) {
				r.Use(custommw.RequireCapability(rbac.CapQRView))
				r.Get("/", h.QRPage)
				RegisterFragment(r, "/logs", h.QRLogs)
				r.Get("/batch/{kode}.png", h.QRBatchImage)
				r.With(custommw.RequireCapability(rbac.CapQRScan)).Post("/scan", h.QRScan)
			})

			r.Group(func(r chi.Router) {
				r.Use(custommw.RequireCapability(rbac.CapHelpView))
				r.Get("/faq", h.HelpPage("faq"))
				r.Get("/dokumentasi", h.HelpPage("dokumentasi"))
			})
		})
	})
}

// resolveLoginPath returns the login route. An override must live under base
// because the login handlers share the console session and CSRF cookies.
func resolveLoginPath(base string, override string) string {
	override = strings.TrimSpace(override)
	if override != "" && (base == "/" || strings.HasPrefix(override, base+"/")) {
		return navigation.Join("/", override)
	}
	return navigation.Join(base, "/login")
}

// relativeTo strips base from an absolute in-console path for registration on the base subrouter.
func relativeTo(base, p string) string {
	if base == "/" {
		return p
	}
	rel := strings.TrimPrefix(p, base)
	if rel == "" {
		return "/"
	}
	return rel
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}
