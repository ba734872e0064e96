package generation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMetrics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		tokenCount int
		pageCount  float64
	}{
		{
			name:       "empty text yields zeros",
			text:       "",
			tokenCount: 0,
			pageCount:  0,
		},
		{
			name:       "short text rounds the token estimate up",
			text:       "hi",
			tokenCount: 1,
			pageCount:  0,
		},
		{
			name:       "exact multiple of four characters",
			text:       "abcdefgh",
			tokenCount: 2,
			pageCount:  0,
		},
		{
			name: "cyrillic counts characters, not bytes",
			// 4 runes, 8 bytes: one estimated token, not two.
			text:       "пять",
			tokenCount: 1,
			pageCount:  0,
		},
		{
			name:       "250 words is half a page",
			text:       strings.TrimSpace(strings.Repeat("слово ", 250)),
			tokenCount: (utf8.RuneCountInString(strings.TrimSpace(strings.Repeat("слово ", 250))) + 3) / 4,
			pageCount:  0.5,
		},
		{
			name:       "page count keeps one decimal",
			text:       strings.TrimSpace(strings.Repeat("w ", 1234)),
			tokenCount: (len(strings.TrimSpace(strings.Repeat("w ", 1234))) + 3) / 4,
			pageCount:  2.5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := CalculateMetrics(tc.text)
			assert.Equal(t, tc.tokenCount, m.TokenCount)
			assert.InDelta(t, tc.pageCount, m.PageCount, 1e-9)
		})
	}
}
