// Package chunk splits knowledge-base text into bounded, overlap-preserving
// chunks tagged with section metadata.
package chunk

import (
	"regexp"
	"strings"
)

// headerPattern matches section headers: # Title, ## Title, ### Title.
var headerPattern = regexp.MustCompile(`^(#{1,3})\s*(.+)$`)

// sentenceEnds are break characters tried, in priority order, when cutting
// an oversized section.
var sentenceEnds = []rune{'.', '!', '?', '\n'}

// Options configures the splitter.
type Options struct {
	// ChunkSize is the maximum chunk length in characters (runes).
	ChunkSize int
	// ChunkOverlap is the number of characters shared between consecutive
	// sub-chunks. Must be smaller than ChunkSize.
	ChunkOverlap int
}

// Splitter converts a corpus string into chunks. It respects section
// headers and paragraph boundaries, and slides an overlapping window over
// sections that exceed the chunk size.
type Splitter struct {
	opts Options
}

// NewSplitter creates a splitter, normalizing invalid options. An overlap
// at or above the chunk size would stall the window, so it gets clamped.
func NewSplitter(opts Options) *Splitter {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = DefaultChunkOverlap
	}
	if opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = opts.ChunkSize / 2
	}
	return &Splitter{opts: opts}
}

// Split chunks a corpus. An empty corpus yields an empty chunk list, not
// an error. Section headers carry over as metadata for every chunk derived
// from the section, and oversized sections are split with overlap and
// marked as sub-chunks.
func (s *Splitter) Split(text, source string) []*Chunk {
	var chunks []*Chunk

	currentSection := ""
	ordinal := 0

	for _, section := range splitSections(text) {
		if m := headerPattern.FindStringSubmatch(firstLine(section)); m != nil {
			currentSection = strings.TrimSpace(m[2])
		}

		if len([]rune(section)) <= s.opts.ChunkSize {
			chunks = append(chunks, &Chunk{
				ID:      NewID(section, ordinal),
				Content: section,
				Metadata: map[string]string{
					MetaSection: currentSection,
				},
				Source:  source,
				Ordinal: ordinal,
			})
			ordinal++
			continue
		}

		for _, sub := range s.splitWithOverlap(section) {
			chunks = append(chunks, &Chunk{
				ID:      NewID(sub, ordinal),
				Content: sub,
				Metadata: map[string]string{
					MetaSection:  currentSection,
					MetaSubchunk: "true",
				},
				Source:  source,
				Ordinal: ordinal,
			})
			ordinal++
		}
	}

	return chunks
}

// splitSections splits the corpus on section-header boundaries and
// blank-line-separated paragraphs. A header line always starts a new
// segment; a blank line ends the current one. No text is dropped beyond
// surrounding whitespace.
func splitSections(text string) []string {
	var (
		segments []string
		current  strings.Builder
	)

	flush := func() {
		seg := strings.TrimSpace(current.String())
		if seg != "" {
			segments = append(segments, seg)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case headerPattern.MatchString(line):
			flush()
			current.WriteString(line)
			current.WriteString("\n")
		default:
			current.WriteString(line)
			current.WriteString("\n")
		}
	}
	flush()

	return segments
}

// splitWithOverlap slides a window of ChunkSize characters over text with
// ChunkOverlap characters shared between consecutive windows. At each
// window boundary it searches backward for the nearest sentence end to
// avoid cutting mid-sentence; a raw cut is the fallback. The window start
// strictly advances every iteration, so a short overlap configuration can
// never loop forever.
func (s *Splitter) splitWithOverlap(text string) []string {
	runes := []rune(text)

	var parts []string
	start := 0

	for start < len(runes) {
		end := start + s.opts.ChunkSize
		if end < len(runes) {
			if bp := findSentenceBreak(runes, start+s.opts.ChunkSize/2, end); bp > start {
				end = bp + 1
			}
		} else {
			end = len(runes)
		}

		if part := strings.TrimSpace(string(runes[start:end])); part != "" {
			parts = append(parts, part)
		}

		if end >= len(runes) {
			break
		}

		next := end - s.opts.ChunkOverlap
		if next <= start {
			next = end
		}
		start = next
	}

	return parts
}

// findSentenceBreak returns the index of the last sentence-ending rune in
// runes[from:to), trying each break character in priority order.
// Returns -1 when none is found.
func findSentenceBreak(runes []rune, from, to int) int {
	if from < 0 {
		from = 0
	}
	for _, end := range sentenceEnds {
		for i := to - 1; i >= from; i-- {
			if runes[i] == end {
				return i
			}
		}
	}
	return -1
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
