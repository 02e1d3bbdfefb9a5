// Command server runs the NeoLink contact manager API.
//
// @title       NeoLink Contacts API
// @version     1.0
// @description Contact directory backend: contacts with departments and favorites, an access gate, and theme settings.
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/neolink-backend/internal/config"
	httpapi "github.com/tbourn/neolink-backend/internal/http"
	"github.com/tbourn/neolink-backend/internal/observability"
	"github.com/tbourn/neolink-backend/internal/repo"
	"github.com/tbourn/neolink-backend/internal/services"
	"github.com/tbourn/neolink-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		sysutil.SetupLogger(os.Stderr, "neolink-backend", "error", false)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.SetupLogger(os.Stdout, cfg.OTEL.ServiceName, cfg.LogLevel, cfg.LogPretty)
	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	blobs := repo.NewBlobStore(db)

	contacts := services.NewContactService(blobs, cfg.StoreKey)
	contacts.SeedPath = cfg.SeedPath
	contacts.StrictMobileOnUpdate = cfg.StrictMobileOnUpdate
	switch err := contacts.Load(ctx); {
	case errors.Is(err, services.ErrPersist):
		log.Warn().Err(err).Msg("seed collection loaded but not saved")
	case err != nil:
		log.Fatal().Err(err).Msg("load contacts")
	}

	settings := services.NewSettingsService(blobs, cfg.ThemeKey())
	if err := settings.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("load theme; using default")
	}

	gate := services.NewGate(cfg.AdminPIN, cfg.StartLocked)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, httpapi.Services{
		Contacts: contacts,
		Gate:     gate,
		Theme:    settings,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", appVersion).
			Int("contacts", len(contacts.Snapshot())).
			Bool("locked", gate.Locked()).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
