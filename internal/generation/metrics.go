package generation

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Metrics holds approximate size measurements for generated text.
type Metrics struct {
	TokenCount int     `json:"tokenCount"`
	PageCount  float64 `json:"pageCount"`
}

// CalculateMetrics estimates token and page counts for a piece of text.
//
// These are deliberately rough estimates, not tokenizer output: tokens are
// approximated as one per four characters (runes, so Cyrillic output is not
// double-counted), pages as 500 words each (rounded to one decimal). Empty
// text yields zero for both.
func CalculateMetrics(text string) Metrics {
	if text == "" {
		return Metrics{}
	}
	tokenCount := (utf8.RuneCountInString(text) + 3) / 4
	wordCount := len(strings.Fields(text))
	pageCount := math.Round(float64(wordCount)/500*10) / 10
	return Metrics{TokenCount: tokenCount, PageCount: pageCount}
}
