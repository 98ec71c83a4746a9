package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlmazPRO7/StdvBot/internal/output"
	"github.com/AlmazPRO7/StdvBot/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	topK    int
	method  string
	scores  bool
	asJSON  bool
	preview int
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search the knowledge base and print the most relevant chunks.

By default the concatenated context string is printed, exactly as it
would be handed to the LLM client. Use --scores for per-result scoring
details.

Examples:
  stdvkb search "сколько стоит доставка" --kb data/kb.txt
  stdvkb search "возврат товара" --method bm25 --top-k 5 --scores
  stdvkb search "условия оплаты" --scores --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd, root, query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.topK, "top-k", "n", 0, "Number of results (0 = engine default)")
	cmd.Flags().StringVarP(&opts.method, "method", "m", "hybrid", "Search method: bm25, tfidf, hybrid")
	cmd.Flags().BoolVar(&opts.scores, "scores", false, "Show per-result scoring details")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Emit results as JSON (implies --scores)")
	cmd.Flags().IntVar(&opts.preview, "preview", 200, "Preview length in characters (0 = full content)")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, query string, opts searchOptions) error {
	method, err := search.ParseMethod(opts.method)
	if err != nil {
		return err
	}

	engine, err := newEngine(root)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())

	if !opts.scores && !opts.asJSON {
		out.Context(engine.Retrieve(query, opts.topK, method))
		return nil
	}

	results := engine.RetrieveWithScores(query, opts.topK, method)

	if opts.asJSON {
		return writeResultsJSON(cmd, results, opts.preview)
	}

	out.Results(results, opts.preview)
	return nil
}

// resultJSON is the wire shape for --json output.
type resultJSON struct {
	ID             string            `json:"id"`
	Content        string            `json:"content"`
	Score          float64           `json:"score"`
	BM25Score      float64           `json:"bm25_score"`
	TFIDFScore     float64           `json:"tfidf_score"`
	KeywordMatches int               `json:"keyword_matches"`
	Metadata       map[string]string `json:"metadata"`
}

func writeResultsJSON(cmd *cobra.Command, results []*search.Result, preview int) error {
	rows := make([]resultJSON, len(results))
	for i, r := range results {
		rows[i] = resultJSON{
			ID:             r.Chunk.ID,
			Content:        r.Preview(preview),
			Score:          r.Score,
			BM25Score:      r.BM25Score,
			TFIDFScore:     r.TFIDFScore,
			KeywordMatches: r.KeywordMatches,
			Metadata:       r.Chunk.Metadata,
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
