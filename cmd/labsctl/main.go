// Command labsctl inspects the catalog and exports the site as static files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/labs-web/internal/config"
	"finitefield.org/labs-web/internal/handlers"
	"finitefield.org/labs-web/internal/observability"
	"finitefield.org/labs-web/internal/seo"
	"finitefield.org/labs-web/internal/site"
)

type rootOptions struct {
	envFile  string
	origin   string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "labsctl",
		Short:         "Inspect the labs catalog and export the site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with local overrides")
	root.PersistentFlags().StringVar(&opts.origin, "origin", "", "site origin (overrides LABS_WEB_ORIGIN)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides LABS_WEB_LOG_LEVEL)")

	root.AddCommand(newSlugsCmd(opts))
	root.AddCommand(newSitemapCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newExportCmd(opts))
	return root
}

// load reads config with flag overrides applied and builds the site.
func (o *rootOptions) load(ctx context.Context) (config.Config, *site.Site, *zap.Logger, error) {
	overrides := map[string]string{}
	if o.origin != "" {
		overrides["LABS_WEB_ORIGIN"] = o.origin
	}
	if o.logLevel != "" {
		overrides["LABS_WEB_LOG_LEVEL"] = o.logLevel
	}
	cfg, err := config.Load(ctx, config.WithEnvFile(o.envFile), config.WithEnvMap(overrides))
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger := observability.NewStderrLogger(cfg.Log.Level).Named("labsctl")
	s, err := site.New(site.Options{
		Site: seo.Site{
			Origin:        cfg.Site.Origin,
			Name:          cfg.Site.Name,
			Image:         cfg.Site.OGImage,
			TwitterHandle: cfg.Site.TwitterSite,
		},
		Analytics: handlers.AnalyticsFromConfig(cfg.Analytics),
		Logger:    logger,
	})
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, s, logger, nil
}
