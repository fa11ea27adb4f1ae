// Package reading provides a kanji-reading resolver backed by the kagome
// morphological analyzer. It implements the romaji.Resolver contract: kanji
// spans are replaced by their kana readings, everything else passes through
// verbatim.
package reading

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/kotoba/kotoba/pkg/romaji"
)

// ipaReadingIndex is the position of the reading feature in kagome's IPA
// dictionary output.
const ipaReadingIndex = 7

// Resolver annotates kanji with phonetic readings using the bundled IPA
// dictionary.
type Resolver struct {
	t *tokenizer.Tokenizer
}

// NewResolver loads the IPA dictionary and returns a ready resolver.
func NewResolver() (*Resolver, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Resolver{t: t}, nil
}

// ResolveReadings returns text with each kanji-bearing segment replaced by its
// hiragana reading. Segments without kanji, and kanji the dictionary has no
// reading for, are emitted unchanged, so spacing and punctuation are
// preserved.
func (r *Resolver) ResolveReadings(text string) string {
	var b strings.Builder
	for _, token := range r.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}

		surface := token.Surface
		if !romaji.ContainsKanji(surface) {
			b.WriteString(surface)
			continue
		}

		features := token.Features()
		if len(features) > ipaReadingIndex && features[ipaReadingIndex] != "*" && features[ipaReadingIndex] != "" {
			b.WriteString(ToHiragana(features[ipaReadingIndex]))
		} else {
			b.WriteString(surface)
		}
	}
	return b.String()
}

// ToHiragana shifts katakana characters to their hiragana equivalents.
// Kagome emits readings in katakana; the transliterator accepts either, but
// hiragana keeps the resolved text consistent with handwritten readings.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
