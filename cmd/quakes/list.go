package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/quake-feed-service/internal/adapter/netcheck"
	"github.com/couchcryptid/quake-feed-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
	"github.com/couchcryptid/quake-feed-service/internal/preferences"
	"github.com/couchcryptid/quake-feed-service/internal/present"
	"github.com/couchcryptid/quake-feed-service/internal/store"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type listOptions struct {
	minMagnitude   string
	orderBy        string
	prefsFile      string
	connectTimeout time.Duration
	readTimeout    time.Duration
	skipNetCheck   bool
	utc            bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the latest earthquakes matching your preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.minMagnitude, "min-magnitude", "", "minimum magnitude (overrides preferences)")
	cmd.Flags().StringVar(&opts.orderBy, "order-by", "", "sort order: time or magnitude (overrides preferences)")
	cmd.Flags().StringVar(&opts.prefsFile, "prefs", "", "TOML preferences file")
	cmd.Flags().DurationVar(&opts.connectTimeout, "connect-timeout", 15*time.Second, "feed connect timeout")
	cmd.Flags().DurationVar(&opts.readTimeout, "read-timeout", 10*time.Second, "feed read timeout")
	cmd.Flags().BoolVar(&opts.skipNetCheck, "skip-connectivity-check", false, "do not probe the feed host first")
	cmd.Flags().BoolVar(&opts.utc, "utc", false, "show times in UTC instead of local time")
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts *listOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	prefs := preferences.Chain{
		preferences.MapSource{
			preferences.KeyMinMagnitude: opts.minMagnitude,
			preferences.KeyOrderBy:      opts.orderBy,
		},
		preferences.DefaultEnv,
	}
	if opts.prefsFile != "" {
		file, err := preferences.LoadFile(opts.prefsFile)
		if err != nil {
			return err
		}
		prefs = append(prefs, file)
	}
	prefs = append(prefs, preferences.Defaults)

	query, err := preferences.QueryConfig(prefs)
	if err != nil {
		return err
	}

	if !opts.skipNetCheck && !netcheck.Online(ctx, root.baseURL, opts.connectTimeout) {
		fmt.Fprintln(out, present.NoInternetConnection)
		return nil
	}

	logger := root.logger(cmd.ErrOrStderr())
	metrics := observability.NewMetricsWith(prometheus.NewRegistry())
	client := usgs.NewClient(opts.connectTimeout, opts.readTimeout, "quakes-cli/1.0", metrics, logger)
	events := store.New(root.baseURL, client, logger, metrics)

	if err := events.Activate(ctx, query); err != nil {
		return err
	}
	res, err := events.Wait(ctx)
	if err != nil {
		return err
	}
	if !res.OK() {
		return res.Err
	}

	loc := time.Local
	if opts.utc {
		loc = time.UTC
	}
	items := present.Items(res.Events, loc)

	if root.jsonOutput {
		return printJSON(out, items)
	}
	printTable(out, items)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, items []present.ListItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, present.NoEarthquakesFound)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MAG\tOFFSET\tLOCATION\tDATE\tTIME")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.Magnitude, it.Offset, it.Primary, it.Date, it.Time)
	}
	tw.Flush()
}
