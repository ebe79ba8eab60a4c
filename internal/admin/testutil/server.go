package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"finitefield.org/apotek-admin/internal/admin/dashboard"
	"finitefield.org/apotek-admin/internal/admin/httpserver"
	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/qrcode"
	"finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/supplier"
)

// CSRFCookieName is the CSRF cookie issued by servers built with NewServer.
const CSRFCookieName = "csrf_token"

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithAuthenticator overrides the authenticator used by the console server.
func WithAuthenticator(auth middleware.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Authenticator = auth
	}
}

// WithBasePath sets a custom base path for the console routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithJenisObatService wires a custom medicine type service.
func WithJenisObatService(service jenisobat.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.JenisObatService = service
	}
}

// WithSupplierService wires a custom supplier service.
func WithSupplierService(service supplier.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.SupplierService = service
	}
}

// WithResepService wires a custom prescription service.
func WithResepService(service resep.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.ResepService = service
	}
}

// WithQRService wires a custom QR service.
func WithQRService(service qrcode.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.QRService = service
	}
}

// WithDashboardService wires a custom dashboard service.
func WithDashboardService(service dashboard.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.DashboardService = service
	}
}

// WithTracerProvider records request spans on provider.
func WithTracerProvider(provider trace.TracerProvider) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.TracerProvider = provider
	}
}

// WithClock fixes the time seen by handlers.
func WithClock(now func() time.Time) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Now = now
	}
}

// NewServer constructs an httptest server running the console HTTP stack.
// Domain services default to empty in-memory implementations.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:          ":0",
		BasePath:         "/",
		CSRFCookieName:   CSRFCookieName,
		CSRFHeaderName:   "X-CSRF-Token",
		Authenticator:    middleware.DefaultAuthenticator(),
		JenisObatService: jenisobat.NewStaticService(nil),
		SupplierService:  supplier.NewStaticService(nil),
		ResepService:     resep.NewStaticService(nil),
		QRService:        qrcode.NewStaticService(nil, nil),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// Client is an HTTP client bound to a test server that sends a bearer token,
// keeps cookies and does not follow redirects.
type Client struct {
	*http.Client
	BaseURL string
	Token   string

	lastURL *url.URL
}

// NewClient returns a client authenticating with token. An empty token sends no credentials.
func NewClient(t testing.TB, ts *httptest.Server, token string) *Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &Client{
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		BaseURL: ts.URL,
		Token:   token,
	}
}

// Get issues a GET for path. Extra headers are given as name/value pairs.
func (c *Client) Get(t testing.TB, path string, headers ...string) *http.Response {
	t.Helper()
	return c.do(t, http.MethodGet, path, nil, headers...)
}

// PostForm issues a form POST for path carrying the CSRF token from the cookie jar.
// Call Get on a console page first so the token cookie exists.
func (c *Client) PostForm(t testing.TB, path string, form url.Values, headers ...string) *http.Response {
	t.Helper()

	if form == nil {
		form = url.Values{}
	}
	if form.Get(middleware.CSRFFormField) == "" {
		form.Set(middleware.CSRFFormField, c.CSRFToken(t))
	}
	return c.do(t, http.MethodPost, path, form, headers...)
}

// CSRFToken returns the CSRF cookie value held by the jar.
func (c *Client) CSRFToken(t testing.TB) string {
	t.Helper()

	u := c.lastURL
	if u == nil {
		parsed, err := url.Parse(c.BaseURL + "/")
		if err != nil {
			t.Fatalf("parse base url: %v", err)
		}
		u = parsed
	}
	for _, cookie := range c.Jar.Cookies(u) {
		if cookie.Name == CSRFCookieName {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) do(t testing.TB, method, path string, form url.Values, headers ...string) *http.Response {
	t.Helper()

	var req *http.Request
	var err error
	if form != nil {
		req, err = http.NewRequest(method, c.BaseURL+path, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequest(method, c.BaseURL+path, nil)
	}
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	c.lastURL = req.URL
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
