package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlmazPRO7/StdvBot/internal/output"
	"github.com/AlmazPRO7/StdvBot/internal/watcher"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the knowledge-base file and reload on change",
		Long: `Keep the engine loaded and rebuild its indexes whenever the
knowledge-base file changes on disk. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := newEngine(root)
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			out.Printf("watching %s (%d chunks)\n", root.kbPath, engine.Stats().TotalChunks)

			w, err := watcher.New(root.kbPath, func() {
				engine.LoadFile(root.kbPath)
				out.Printf("reloaded %s (%d chunks)\n", root.kbPath, engine.Stats().TotalChunks)
			}, watcher.Options{Debounce: debounce})
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before reloading")

	return cmd
}
