// Command quakes lists recent earthquakes from the USGS event feed.
//
// Usage:
//
//	quakes list --min-magnitude 4.5 --order-by time
//	quakes list --prefs ~/.config/quakes/prefs.toml --json
//	quakes validate saved-feed.json
package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/quake-feed-service/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL    string
	jsonOutput bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "quakes <command>",
		Short:         "Browse recent earthquakes from the USGS feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", defaultBaseURL(), "feed query endpoint")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log feed activity to stderr")

	cmd.AddCommand(newListCmd(opts), newValidateCmd(opts))
	return cmd
}

func defaultBaseURL() string {
	if s := os.Getenv("FEED_BASE_URL"); s != "" {
		return s
	}
	return config.DefaultFeedBaseURL
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
