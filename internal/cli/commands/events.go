package commands

import (
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
)

// NewEventsCommand creates the events command.
func NewEventsCommand() *cobra.Command {
	var catalogFile, output string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List cataloged events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			cat, err := catalog.Load(catalogFile)
			if err != nil {
				return err
			}
			return writeEvents(cmd.OutOrStdout(), output, cat.All())
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", sharedcfg.EnvOrDefault("EVENT_CATALOG_FILE", ""), "Event catalog overlay file (YAML)")
	cmd.Flags().StringVarP(&output, "output", "o", FormatTable, "Output format (json|yaml|table)")

	return cmd
}
