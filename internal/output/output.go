// Package output provides consistent CLI output formatting for search
// results and diagnostics.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/AlmazPRO7/StdvBot/internal/search"
)

// Styles used for terminal rendering.
var (
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Writer provides formatted output for the CLI.
type Writer struct {
	out      io.Writer
	useColor bool
}

// New creates an output Writer. Color is enabled only when out is a
// terminal.
func New(out io.Writer) *Writer {
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{out: out, useColor: useColor}
}

// Plain creates a Writer with color disabled, for tests and piped output.
func Plain(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Printf writes a formatted line.
func (w *Writer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	_, _ = fmt.Fprintf(w.out, "⚠ %s\n", msg)
}

// Results renders scored search results, one block per result.
func (w *Writer) Results(results []*search.Result, previewChars int) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w.out, "no results")
		return
	}

	for i, r := range results {
		header := fmt.Sprintf("%d. score=%.4f (bm25=%.4f tfidf=%.4f, keywords=%d)",
			i+1, r.Score, r.BM25Score, r.TFIDFScore, r.KeywordMatches)
		_, _ = fmt.Fprintln(w.out, w.styled(scoreStyle, header))

		if section := r.Chunk.Section(); section != "" {
			_, _ = fmt.Fprintln(w.out, w.styled(sectionStyle, "   section: "+section))
		}
		_, _ = fmt.Fprintln(w.out, w.styled(dimStyle, "   id: "+r.Chunk.ID))

		for _, line := range strings.Split(r.Preview(previewChars), "\n") {
			_, _ = fmt.Fprintf(w.out, "   %s\n", line)
		}
		_, _ = fmt.Fprintln(w.out)
	}
}

// Context renders a concatenated retrieval context string.
func (w *Writer) Context(context string) {
	if context == "" {
		_, _ = fmt.Fprintln(w.out, "no results")
		return
	}
	_, _ = fmt.Fprintln(w.out, context)
}

// Stats renders an engine diagnostic snapshot.
func (w *Writer) Stats(stats search.Stats) {
	w.Printf("total chunks:          %d\n", stats.TotalChunks)
	w.Printf("bm25 vocabulary:       %d\n", stats.BM25VocabularySize)
	w.Printf("tfidf vocabulary:      %d\n", stats.TFIDFVocabularySize)
	w.Printf("avg chunk length:      %.2f tokens\n", stats.AvgChunkLength)
	w.Printf("cached result lists:   %d\n", stats.CacheSize)
	w.Printf("bm25 k1/b:             %.2f/%.2f\n", stats.Config.BM25K1, stats.Config.BM25B)
	w.Printf("chunk size/overlap:    %d/%d\n", stats.Config.ChunkSize, stats.Config.ChunkOverlap)
	w.Printf("hybrid weights:        bm25=%.2f tfidf=%.2f\n", stats.Config.BM25Weight, stats.Config.TFIDFWeight)
}

func (w *Writer) styled(style lipgloss.Style, s string) string {
	if !w.useColor {
		return s
	}
	return style.Render(s)
}
