// Package romaji converts Japanese kana text into a Latin (Hepburn-style)
// phonetic rendering. Kanji must be resolved to kana readings first; see
// Resolver and Converter.
package romaji

// Transliterate converts hiragana and katakana in kanaText to romaji.
// Non-kana characters pass through unchanged, so embedded Latin text, numerals
// and punctuation survive untouched. The function is total and deterministic.
func Transliterate(kanaText string) string {
	runes := []rune(kanaText)
	var out []rune

	for i := 0; i < len(runes); {
		// Two-character digraphs take priority over single kana.
		if i+1 < len(runes) {
			if mapped, ok := digraphKana[string(runes[i:i+2])]; ok {
				out = append(out, []rune(mapped)...)
				i += 2
				continue
			}
		}

		r := runes[i]

		// Small tsu doubles the following consonant.
		if r == 'っ' || r == 'ッ' {
			if c, ok := geminationConsonant(runes, i+1); ok {
				out = append(out, c)
			} else {
				// End of string or a following vowel: literal "t".
				out = append(out, 't')
			}
			i++
			continue
		}

		// Katakana prolonged sound mark repeats the previous vowel.
		if r == 'ー' {
			out = append(out, longVowel(out))
			i++
			continue
		}

		if mapped, ok := singleKana[r]; ok {
			out = append(out, []rune(mapped)...)
		} else {
			out = append(out, r)
		}
		i++
	}

	return string(out)
}

// geminationConsonant romanizes the kana at runes[pos] (digraph table first,
// then single kana) and returns its leading consonant. ok is false when there
// is no following kana, the kana is unmapped, or its romanization starts with
// a vowel.
func geminationConsonant(runes []rune, pos int) (rune, bool) {
	if pos >= len(runes) {
		return 0, false
	}

	var mapped string
	if pos+1 < len(runes) {
		if m, ok := digraphKana[string(runes[pos:pos+2])]; ok {
			mapped = m
		}
	}
	if mapped == "" {
		m, ok := singleKana[runes[pos]]
		if !ok {
			return 0, false
		}
		mapped = m
	}

	first := []rune(mapped)[0]
	if first < 'a' || first > 'z' || isVowel(first) {
		return 0, false
	}
	return first, true
}

// longVowel picks the vowel the prolonged sound mark extends: the last vowel
// letter already emitted, or "u" when the output does not end in a plain vowel.
func longVowel(out []rune) rune {
	if len(out) > 0 {
		if last := out[len(out)-1]; isVowel(last) {
			return last
		}
	}
	return 'u'
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}
