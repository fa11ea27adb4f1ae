package ingest

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"

	"github.com/go-shiori/go-readability"
)

var (
	// (?s) allows dot to match newlines; (?i) makes it case-insensitive.
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes ruby text (<rt>...</rt>) and ruby parentheses
// (<rp>...</rp>) from HTML content. Readability extracts all text including
// furigana, which otherwise duplicates readings into the article body
// (e.g. "漢字" becomes "漢字かんじ").
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	return reRP.ReplaceAll(cleaned, []byte{})
}

// Article is the readable content extracted from an HTML page.
type Article struct {
	Title string
	Text  string
}

// ExtractArticle runs readability over raw HTML, with ruby annotations
// stripped first. pageURL helps readability resolve relative links and may be
// nil.
func ExtractArticle(html []byte, pageURL *url.URL) (Article, error) {
	html = SanitizeRuby(html)
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("failed to extract article: %w", err)
	}
	return Article{Title: article.Title, Text: article.TextContent}, nil
}
