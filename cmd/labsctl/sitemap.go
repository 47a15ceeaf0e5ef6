package main

import (
	"github.com/spf13/cobra"

	"finitefield.org/labs-web/internal/sitemap"
)

func newSitemapCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml for the configured origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, _, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			body, err := sitemap.Marshal(s.Sitemap())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
}
