package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSlugsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "slugs",
		Short: "List every catalog route for static generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, _, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			params := s.StaticParams()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(params)
			}
			for _, p := range params {
				fmt.Fprintf(out, "%s\t%s\n", p.Route, p.Slug)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tab-separated lines")
	return cmd
}
