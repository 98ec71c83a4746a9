package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AlmazPRO7/StdvBot/configs"
	"github.com/AlmazPRO7/StdvBot/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage engine configuration",
		Long: `Manage the engine configuration file.

The configuration controls chunking, BM25 and TF-IDF parameters,
hybrid fusion weights, query expansion and result caching. All fields
are optional: unset fields use built-in defaults and out-of-range
values are clamped at load time.`,
		Example: `  # Write an annotated config template to stdvkb.yaml
  stdvkb config init

  # Show the effective configuration
  stdvkb config show --config stdvkb.yaml`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(root))

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			if err := os.WriteFile(path, []byte(configs.EngineConfigTemplate), 0644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "stdvkb.yaml", "Where to write the config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration the engine would run with: the built-in
defaults merged with the file given by --config, after clamping.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if root.configPath != "" {
				loaded, err := config.LoadFile(root.configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
