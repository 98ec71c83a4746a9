package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/AlmazPRO7/StdvBot/internal/output"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show engine statistics",
		Long: `Show a diagnostic snapshot of the retrieval engine: corpus size,
index vocabulary sizes, average chunk length, cache occupancy and the
active configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := newEngine(root)
			if err != nil {
				return err
			}

			stats := engine.Stats()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			output.New(cmd.OutOrStdout()).Stats(stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit stats as JSON")

	return cmd
}
