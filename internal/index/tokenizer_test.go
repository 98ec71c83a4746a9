package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndSplits(t *testing.T) {
	tokens := Tokenize("Стоимость Доставки, delivery COST!")
	assert.Equal(t, []string{"стоимость", "доставки", "delivery", "cost"}, tokens)
}

func TestTokenize_DropsShortAndNumericTokens(t *testing.T) {
	tokens := Tokenize("в 100 дней и 5 рублей x")
	assert.Equal(t, []string{"дней", "рублей"}, tokens)
}

func TestTokenize_KeepsAlphanumericMixes(t *testing.T) {
	// XYZ123 is not purely numeric and must survive.
	tokens := Tokenize("артикул XYZ123")
	assert.Equal(t, []string{"артикул", "xyz123"}, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("!!! ... 1 2 3"))
}

func TestCountMatches(t *testing.T) {
	n := CountMatches("стоимость доставки товара", "Стоимость доставки 1500 рублей. Доставки по городу.")
	// "стоимость" and "доставки" intersect; "товара" does not.
	assert.Equal(t, 2, n)
}

func TestCountMatches_NoOverlap(t *testing.T) {
	assert.Equal(t, 0, CountMatches("непонятноеслово", "Стоимость доставки 1500 рублей."))
}
