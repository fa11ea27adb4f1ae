package romaji

// Resolver replaces kanji spans in text with their phonetic (kana) readings,
// passing non-kanji spans through unchanged. Implementations are provided by a
// linguistic service (see pkg/reading); the converter only depends on this
// contract.
type Resolver interface {
	ResolveReadings(text string) string
}

// Converter romanizes arbitrary Japanese text. An optional Resolver handles
// kanji ahead of kana transliteration; when it is nil, text is fed to the
// transliterator unchanged and kanji pass through as-is.
type Converter struct {
	Resolver Resolver
}

// Convert returns the romanized form of text.
func (c Converter) Convert(text string) string {
	if c.Resolver != nil {
		text = c.Resolver.ResolveReadings(text)
	}
	return Transliterate(text)
}

// IsKanji reports whether r falls in the CJK Unified Ideographs ranges,
// including extensions A and B.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF)
}

// ContainsKanji reports whether s contains at least one kanji character.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}
