package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AlmazPRO7/StdvBot/internal/output"
)

func newChunksCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "List the chunks derived from the knowledge base",
		Long: `List every chunk the chunker produced, with its id, section label
and length. Useful for tuning chunk_size and chunk_overlap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := newEngine(root)
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())

			chunks := engine.Chunks()
			if len(chunks) == 0 {
				out.Printf("no chunks\n")
				return nil
			}

			for _, c := range chunks {
				section := c.Section()
				if section == "" {
					section = "-"
				}
				sub := ""
				if c.IsSubchunk() {
					sub = " [sub]"
				}
				out.Printf("%-24s %4d chars  section=%s%s\n", c.ID, len([]rune(c.Content)), section, sub)
			}
			out.Printf("\n%d chunks total\n", len(chunks))
			return nil
		},
	}

	return cmd
}
