package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/athletics-rankings-etl/internal/adapter/source"
	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
	"github.com/couchcryptid/athletics-rankings-etl/internal/config"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
)

// FetchOptions holds command-line options for the fetch command.
type FetchOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Catalog   string
	Output    string
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	opts := &FetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch <event-code>",
		Short: "Fetch and parse a live ranking page",
		Long: `Download the ranking page for a cataloged event and print its records.

Flag defaults come from SOURCE_BASE_URL, SOURCE_USER_AGENT, and
EVENT_CATALOG_FILE when set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", sharedcfg.EnvOrDefault("SOURCE_BASE_URL", config.DefaultSourceBaseURL), "Ranking site base URL")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Request timeout")
	cmd.Flags().StringVar(&opts.UserAgent, "user-agent", sharedcfg.EnvOrDefault("SOURCE_USER_AGENT", config.DefaultUserAgent), "User-Agent header")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", sharedcfg.EnvOrDefault("EVENT_CATALOG_FILE", ""), "Event catalog overlay file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", FormatTable, "Output format (json|yaml|table)")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string, opts *FetchOptions) error {
	if err := validateFormat(opts.Output); err != nil {
		return err
	}

	cat, err := catalog.Load(opts.Catalog)
	if err != nil {
		return err
	}
	event, err := cat.Lookup(args[0])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := source.NewClient(opts.BaseURL, opts.UserAgent, opts.Timeout, logger)

	markup, err := client.Fetch(cmd.Context(), event)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", event.Code, err)
	}

	rk, err := domain.ParseRankings(markup)
	if err != nil {
		return fmt.Errorf("parse %s: %w", event.Code, err)
	}
	return writeResultSet(cmd.OutOrStdout(), opts.Output, domain.NewResultSet(event.Code, rk.Records))
}
