package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/athletics-rankings-etl/internal/adapter/source"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Event  string
	Output string
	Stats  bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a saved ranking page",
		Long: `Parse a ranking page saved to disk and print its records.

The event code defaults to the file name without its "ok.htm" suffix,
so m_100ok.htm is reported as m_100.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Event, "event", "", "Event code to label the result set with")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", FormatTable, "Output format (json|yaml|table)")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "Print line statistics to stderr")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	if err := validateFormat(opts.Output); err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read page: %w", err)
	}

	markup, err := source.Decode(data, "text/html")
	if err != nil {
		return fmt.Errorf("read page: %w", err)
	}

	rk, err := domain.ParseRankings(markup)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	code := opts.Event
	if code == "" {
		code = eventCodeFromPath(path)
	}

	if opts.Stats {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "lines=%d accepted=%d rejected=%d\n",
			rk.Stats.Lines, rk.Stats.Accepted, rk.Stats.Rejected)
	}
	return writeResultSet(cmd.OutOrStdout(), opts.Output, domain.NewResultSet(code, rk.Records))
}

func eventCodeFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, "ok")
}
