package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	strict bool
}

type fileReport struct {
	File    string `json:"file"`
	Events  int    `json:"events"`
	Skipped int    `json:"skipped"`
}

// newValidateCmd checks saved feed bodies with the same parser the store uses.
func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <feed.json>...",
		Short: "Parse saved feed files and report event and skip counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]fileReport, 0, len(args))
			skipped := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read feed file: %w", err)
				}
				res := domain.ParseFeed(data)
				reports = append(reports, fileReport{File: path, Events: len(res.Events), Skipped: res.Skipped})
				skipped += res.Skipped
			}

			out := cmd.OutOrStdout()
			if root.jsonOutput {
				if err := printJSON(out, reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					fmt.Fprintf(out, "%s: %d events, %d skipped\n", r.File, r.Events, r.Skipped)
				}
			}

			if opts.strict && skipped > 0 {
				return fmt.Errorf("%d malformed features", skipped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any feature is skipped")
	return cmd
}
