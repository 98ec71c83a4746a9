package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlmazPRO7/StdvBot/internal/config"
	"github.com/AlmazPRO7/StdvBot/internal/search"
)

func testResults(t *testing.T) []*search.Result {
	t.Helper()
	e := search.NewEngine(config.Default())
	e.Load("## Доставка\nСтоимость доставки 1500 рублей.")
	results := e.SearchBM25("доставка", 1)
	require.NotEmpty(t, results)
	return results
}

func TestResults_RendersScoresAndSection(t *testing.T) {
	var buf bytes.Buffer
	w := Plain(&buf)

	w.Results(testResults(t), 0)

	out := buf.String()
	assert.Contains(t, out, "score=")
	assert.Contains(t, out, "section: Доставка")
	assert.Contains(t, out, "1500 рублей")
	assert.NotContains(t, out, "\x1b[", "plain writer must not emit ANSI codes")
}

func TestResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	Plain(&buf).Results(nil, 0)
	assert.Equal(t, "no results\n", buf.String())
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	Plain(&buf).Context("[Section: Доставка]\nтекст")
	assert.Contains(t, buf.String(), "[Section: Доставка]")

	buf.Reset()
	Plain(&buf).Context("")
	assert.Equal(t, "no results\n", buf.String())
}

func TestStats(t *testing.T) {
	e := search.NewEngine(config.Default())
	e.Load("## Доставка\nСтоимость доставки 1500 рублей.")

	var buf bytes.Buffer
	Plain(&buf).Stats(e.Stats())

	out := buf.String()
	assert.Contains(t, out, "total chunks:          1")
	assert.Contains(t, out, "bm25 k1/b:             1.50/0.75")
	assert.Contains(t, out, "hybrid weights:        bm25=0.60 tfidf=0.40")
}
