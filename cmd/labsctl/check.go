package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const maxDetails = 10

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify catalog, metadata, content and sitemap consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, _, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			report := s.Check()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("labs catalog check"))
			for _, f := range report.Findings {
				mark := okStyle.Render("PASS")
				if !f.OK {
					mark = errorStyle.Render("FAIL")
				}
				fmt.Fprintf(out, "%s  %s\n", mark, f.Name)
				for i, d := range f.Details {
					if i == maxDetails {
						fmt.Fprintln(out, detailIndent.Render(mutedStyle.Render(fmt.Sprintf("... and %d more", len(f.Details)-maxDetails))))
						break
					}
					fmt.Fprintln(out, detailIndent.Render(d))
				}
			}
			if !report.OK() {
				return errors.New("catalog check failed")
			}
			return nil
		},
	}
}
