package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"finitefield.org/apotek-admin/internal/admin/httpserver"
	"finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	"finitefield.org/apotek-admin/internal/admin/jenisobat"
	"finitefield.org/apotek-admin/internal/admin/qrcode"
	"finitefield.org/apotek-admin/internal/admin/resep"
	"finitefield.org/apotek-admin/internal/admin/session"
	"finitefield.org/apotek-admin/internal/admin/storage/sqlite"
	"finitefield.org/apotek-admin/internal/admin/supplier"
	"finitefield.org/apotek-admin/internal/platform/config"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger depends on config, so fall back to a development logger here.
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	rootCtx := context.Background()

	shutdownTracing, err := observability.SetupTracing(rootCtx, "apotek-admin", cfg.OTelEndpoint)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("flush traces", zap.Error(err))
		}
	}()

	sessions, err := buildSessionManager(cfg)
	if err != nil {
		logger.Fatal("init session manager", zap.Error(err))
	}

	srvCfg := httpserver.Config{
		Address:          cfg.HTTPAddr,
		BasePath:         cfg.BasePath,
		LoginPath:        cfg.LoginPath,
		Environment:      cfg.Environment,
		Logger:           logger,
		Authenticator:    buildAuthenticator(rootCtx, logger, cfg.FirebaseProjectID),
		SessionStore:     sessions,
		CSRFCookieName:   cfg.CSRFCookieName,
		CSRFCookieSecure: cfg.CSRFCookieSecure,
		CSRFHeaderName:   cfg.CSRFHeaderName,
	}

	closeStore, err := wireServices(rootCtx, logger, cfg, &srvCfg)
	if err != nil {
		logger.Fatal("init storage", zap.Error(err))
	}
	defer closeStore()

	srv := httpserver.New(srvCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("apotek admin listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("base_path", cfg.BasePath),
		zap.String("environment", cfg.Environment),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// wireServices backs the domain services with SQLite when a database path is
// configured, and with seeded in-memory services otherwise.
func wireServices(ctx context.Context, logger *zap.Logger, cfg config.Config, srvCfg *httpserver.Config) (func(), error) {
	if cfg.DBPath == "" {
		logger.Warn("APOTEK_DB_PATH not set; using in-memory sample data")
		srvCfg.JenisObatService = jenisobat.NewSeededStaticService()
		srvCfg.SupplierService = supplier.NewSeededStaticService()
		srvCfg.ResepService = resep.NewSeededStaticService()
		srvCfg.QRService = qrcode.NewSeededStaticService()
		return func() {}, nil
	}

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed {
		if err := store.Seed(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	logger.Info("sqlite storage ready", zap.String("path", cfg.DBPath), zap.Bool("seeded", cfg.Seed))

	srvCfg.JenisObatService = store.JenisObat()
	srvCfg.SupplierService = store.Suppliers()
	srvCfg.ResepService = store.Resep(nil)
	srvCfg.QRService = store.QR()
	return func() {
		if err := store.Close(); err != nil {
			logger.Warn("close sqlite store", zap.Error(err))
		}
	}, nil
}

func buildSessionManager(cfg config.Config) (*session.Manager, error) {
	secure := cfg.SessionSecure || middleware.ParseDeployment(cfg.Environment).Production
	if cfg.SessionHashKey == "" {
		return session.NewEphemeralManager(secure)
	}
	var block []byte
	if cfg.SessionBlockKey != "" {
		block = []byte(cfg.SessionBlockKey)
	}
	return session.NewManager(session.Config{
		HashKey:      []byte(cfg.SessionHashKey),
		BlockKey:     block,
		CookieSecure: secure,
	})
}

func buildAuthenticator(ctx context.Context, logger *zap.Logger, projectID string) middleware.Authenticator {
	if projectID == "" {
		logger.Warn("FIREBASE_PROJECT_ID not set; using passthrough authenticator")
		return nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: projectID,
	})
	if err != nil {
		logger.Error("failed to initialise Firebase app", zap.Error(err))
		return nil
	}

	client, err := app.Auth(ctx)
	if err != nil {
		logger.Error("failed to initialise Firebase auth client", zap.Error(err))
		return nil
	}

	logger.Info("Firebase authenticator enabled", zap.String("project", projectID))
	return middleware.NewFirebaseAuthenticator(client)
}
