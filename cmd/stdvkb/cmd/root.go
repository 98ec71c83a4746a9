// Package cmd provides the CLI commands for the knowledge-base retrieval
// engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlmazPRO7/StdvBot/internal/config"
	"github.com/AlmazPRO7/StdvBot/internal/logging"
	"github.com/AlmazPRO7/StdvBot/internal/search"
	"github.com/AlmazPRO7/StdvBot/pkg/version"
)

// rootOptions holds persistent CLI flags shared by all subcommands.
type rootOptions struct {
	kbPath     string
	configPath string
	logLevel   string
}

// NewRootCmd creates the root command for the stdvkb CLI.
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "stdvkb",
		Short: "Hybrid lexical search over a knowledge-base file",
		Long: `stdvkb answers free-text queries against a plain-text knowledge base.

The knowledge base uses a lightweight structural convention: lines
beginning with #, ## or ### are section headers, paragraphs are
separated by blank lines. Queries are ranked by BM25, TF-IDF cosine
similarity, or a weighted hybrid of both.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetupDefault(cmd.ErrOrStderr(), logging.Config{
				Level: opts.logLevel,
				JSON:  true,
			})
		},
	}

	cmd.SetVersionTemplate("stdvkb version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.kbPath, "kb", "knowledge_base.txt", "Path to the knowledge-base file")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to an engine config YAML file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	cmd.AddCommand(newSearchCmd(&opts))
	cmd.AddCommand(newStatsCmd(&opts))
	cmd.AddCommand(newChunksCmd(&opts))
	cmd.AddCommand(newWatchCmd(&opts))
	cmd.AddCommand(newConfigCmd(&opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newEngine builds an engine from the persistent flags and loads the
// knowledge base. A missing file is not fatal: the engine degrades to an
// empty corpus and logs a warning, keeping the search surface available.
func newEngine(opts *rootOptions) (*search.Engine, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	engine := search.NewEngine(cfg)
	engine.LoadFile(opts.kbPath)
	return engine, nil
}
