package tokenize

import (
	"strings"
	"unicode"

	"github.com/kotoba/kotoba/pkg/lexicon"
)

// Token is a contiguous span of the input string. Found is true when the span
// matched a lexicon entry or is structural (punctuation/whitespace); otherwise
// the span is an unknown-word run merged from adjacent unmatched characters.
type Token struct {
	Text         string
	Reading      string
	Meaning      string
	PartOfSpeech string
	Found        bool
}

// japanesePunctuation is the fixed set of characters treated as structural
// tokens when no lexicon entry matches.
var japanesePunctuation = map[rune]bool{
	'。': true, '、': true, '？': true, '！': true,
	'「': true, '」': true, '『': true, '』': true,
	'（': true, '）': true, '・': true, '〜': true,
	'…': true, ' ': true, '　': true,
}

func isStructural(r rune) bool {
	return japanesePunctuation[r] || unicode.IsSpace(r)
}

// IsStructural reports whether text consists entirely of punctuation and
// whitespace. Structural tokens separate words but are not lexical content.
func IsStructural(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !isStructural(r) {
			return false
		}
	}
	return true
}

// Tokenize segments text into lexicon-backed tokens using greedy longest match.
// It is total and deterministic: every character of the input appears in exactly
// one token, in order, so concatenating token text reproduces the input.
func Tokenize(lex *lexicon.Lexicon, text string) []Token {
	var tokens []Token
	remaining := text

	for len(remaining) > 0 {
		matched := false

		// Keys are sorted by descending rune length, so the first prefix hit
		// is the longest possible match.
		for _, key := range lex.Keys() {
			if strings.HasPrefix(remaining, key) {
				entry, _ := lex.Lookup(key)
				tokens = append(tokens, Token{
					Text:         key,
					Reading:      entry.Romaji,
					Meaning:      entry.English,
					PartOfSpeech: entry.PartOfSpeech,
					Found:        true,
				})
				remaining = remaining[len(key):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		r := []rune(remaining)[0]
		tokens = append(tokens, Token{
			Text:  string(r),
			Found: isStructural(r),
		})
		remaining = remaining[len(string(r)):]
	}

	return mergeUnfound(tokens)
}

// mergeUnfound collapses each maximal run of unfound single characters into one
// token so callers see one unknown-word span per run.
func mergeUnfound(tokens []Token) []Token {
	var result []Token
	var pending strings.Builder

	flush := func() {
		if pending.Len() > 0 {
			result = append(result, Token{Text: pending.String()})
			pending.Reset()
		}
	}

	for _, tok := range tokens {
		if !tok.Found {
			pending.WriteString(tok.Text)
			continue
		}
		flush()
		result = append(result, tok)
	}
	flush()

	return result
}

// SplitSentences splits text on Japanese sentence delimiters and newlines.
// Delimiters stay attached to the sentence they end.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '。' || r == '！' || r == '？' || r == '\n' {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}
