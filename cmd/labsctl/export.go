package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finitefield.org/labs-web/internal/export"
	"finitefield.org/labs-web/internal/site"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		outDir      string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every page to static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, logger, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			if concurrency <= 0 {
				concurrency = cfg.Export.Concurrency
			}
			res, err := export.Run(cmd.Context(), export.Options{
				Handler:      s.Routes(),
				Paths:        s.ExportPaths(),
				OutDir:       outDir,
				NotFoundPath: site.NotFoundPath,
				Concurrency:  concurrency,
				Logger:       logger,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d files to %s\n", okStyle.Render("wrote"), len(res.Written), outDir)
			for _, f := range res.Failures {
				fmt.Fprintf(out, "%s %s\n", errorStyle.Render("failed"), f.Error())
			}
			if len(res.Failures) > 0 {
				return fmt.Errorf("%d pages failed to export", len(res.Failures))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "pages rendered in parallel (default LABS_WEB_EXPORT_CONCURRENCY)")
	return cmd
}
