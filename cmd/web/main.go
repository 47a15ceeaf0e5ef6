package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/labs-web/internal/config"
	"finitefield.org/labs-web/internal/handlers"
	"finitefield.org/labs-web/internal/observability"
	"finitefield.org/labs-web/internal/seo"
	"finitefield.org/labs-web/internal/site"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file with local overrides")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, config.WithEnvFile(envFile))
	if err != nil {
		// The logger level comes from config, so fall back to a default one here.
		observability.NewLogger("").Fatal("load config", zap.Error(err))
	}
	logger := observability.NewLogger(cfg.Log.Level).With(zap.String("env", cfg.Environment))
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newSite(cfg config.Config, logger *zap.Logger) (*site.Site, error) {
	return site.New(site.Options{
		Site: seo.Site{
			Origin:        cfg.Site.Origin,
			Name:          cfg.Site.Name,
			Image:         cfg.Site.OGImage,
			TwitterHandle: cfg.Site.TwitterSite,
		},
		Analytics:    handlers.AnalyticsFromConfig(cfg.Analytics),
		Dev:          cfg.Dev,
		TemplatesDir: cfg.Server.TemplatesDir,
		Timeout:      cfg.Server.WriteTimeout,
		Logger:       logger,
	})
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	s, err := newSite(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", srv.Addr),
			zap.String("origin", s.Origin()),
			zap.Bool("dev", cfg.Dev),
			zap.Int("catalog_entries", len(s.StaticParams())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
