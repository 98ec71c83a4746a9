package chunk

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_EmptyCorpus(t *testing.T) {
	s := NewSplitter(Options{})

	assert.Empty(t, s.Split("", "kb.txt"))
	assert.Empty(t, s.Split("  \n\n \n", "kb.txt"))
}

func TestSplit_SectionMetadata(t *testing.T) {
	corpus := "## Доставка\nСтоимость доставки 1500 рублей.\n\n## Возврат\nВозврат в течение 100 дней."
	s := NewSplitter(Options{ChunkSize: 500, ChunkOverlap: 100})

	chunks := s.Split(corpus, "kb.txt")
	require.Len(t, chunks, 2)

	assert.Contains(t, chunks[0].Content, "1500 рублей")
	assert.Equal(t, "Доставка", chunks[0].Section())
	assert.False(t, chunks[0].IsSubchunk())

	assert.Contains(t, chunks[1].Content, "100 дней")
	assert.Equal(t, "Возврат", chunks[1].Section())

	assert.Equal(t, "kb.txt", chunks[0].Source)
	assert.Equal(t, 0, chunks[0].Ordinal)
	assert.Equal(t, 1, chunks[1].Ordinal)
}

func TestSplit_ParagraphsWithoutHeaders(t *testing.T) {
	corpus := "Первый абзац текста.\n\nВторой абзац текста."
	s := NewSplitter(Options{})

	chunks := s.Split(corpus, "kb.txt")
	require.Len(t, chunks, 2)
	assert.Equal(t, "Первый абзац текста.", chunks[0].Content)
	assert.Equal(t, "", chunks[0].Section())
}

func TestSplit_SectionCarriesAcrossParagraphs(t *testing.T) {
	corpus := "## Оплата\nПервый абзац про оплату.\n\nВторой абзац без заголовка."
	s := NewSplitter(Options{})

	chunks := s.Split(corpus, "kb.txt")
	require.Len(t, chunks, 2)
	assert.Equal(t, "Оплата", chunks[0].Section())
	assert.Equal(t, "Оплата", chunks[1].Section(), "section label persists until the next header")
}

func TestSplit_OversizedSection(t *testing.T) {
	// One long section: sentences of ~40 chars, no blank lines.
	var b strings.Builder
	b.WriteString("## Каталог\n")
	for i := 0; i < 30; i++ {
		b.WriteString("Это предложение номер с описанием товара. ")
	}

	opts := Options{ChunkSize: 200, ChunkOverlap: 50}
	s := NewSplitter(opts)
	chunks := s.Split(b.String(), "kb.txt")

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c.Content)), opts.ChunkSize,
			"chunk %s exceeds the size bound", c.ID)
		assert.True(t, c.IsSubchunk())
		assert.Equal(t, "Каталог", c.Section())
	}
}

func TestSplit_SubchunksCutAtSentenceEnds(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("Короткое предложение для проверки границ. ")
	}

	s := NewSplitter(Options{ChunkSize: 150, ChunkOverlap: 30})
	chunks := s.Split(b.String(), "kb.txt")

	require.Greater(t, len(chunks), 1)
	// All but the last window should end on sentence punctuation.
	for _, c := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(c.Content, "."),
			"chunk should end at a sentence boundary: %q", c.Content)
	}
}

func TestSplit_TinySectionNoInfiniteLoop(t *testing.T) {
	// Section shorter than the overlap must still terminate.
	s := NewSplitter(Options{ChunkSize: 10, ChunkOverlap: 8})

	done := make(chan []*Chunk, 1)
	go func() {
		done <- s.Split("абв где ёжз иклмнопрст уфхцчшщъыь", "kb.txt")
	}()

	select {
	case chunks := <-done:
		assert.NotEmpty(t, chunks)
	case <-time.After(5 * time.Second):
		t.Fatal("chunker did not terminate")
	}
}

func TestSplit_NoTextDropped(t *testing.T) {
	corpus := "## Раздел\nПервая строка.\nВторая строка.\n\nОтдельный абзац."
	s := NewSplitter(Options{})

	var joined strings.Builder
	for _, c := range s.Split(corpus, "kb.txt") {
		joined.WriteString(c.Content)
		joined.WriteString("\n")
	}

	for _, want := range []string{"Первая строка.", "Вторая строка.", "Отдельный абзац."} {
		assert.Contains(t, joined.String(), want)
	}
}

func TestNewSplitter_ClampsOverlap(t *testing.T) {
	s := NewSplitter(Options{ChunkSize: 100, ChunkOverlap: 200})
	assert.Equal(t, 50, s.opts.ChunkOverlap)
}

func TestNewID_StableAndDistinct(t *testing.T) {
	a := NewID("content", 0)
	b := NewID("content", 0)
	c := NewID("content", 1)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "chunk_0_"))
}
