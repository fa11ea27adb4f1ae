package reading

import (
	"strings"
	"testing"

	"github.com/kotoba/kotoba/pkg/romaji"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestToHiragana(t *testing.T) {
	cases := map[string]string{
		"トウキョウ":   "とうきょう",
		"イヌ":      "いぬ",
		"ひらがな":    "ひらがな",
		"mixedアで": "mixedあで",
		"":        "",
	}
	for in, want := range cases {
		if got := ToHiragana(in); got != want {
			t.Errorf("ToHiragana(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveReadingsReplacesKanji(t *testing.T) {
	r := newTestResolver(t)
	got := r.ResolveReadings("東京です")
	if romaji.ContainsKanji(got) {
		t.Errorf("resolved text still contains kanji: %q", got)
	}
	if !strings.HasSuffix(got, "です") {
		t.Errorf("non-kanji tail not preserved: %q", got)
	}
}

func TestResolveReadingsPassesThroughKana(t *testing.T) {
	r := newTestResolver(t)
	in := "こんにちは、カタカナ！"
	if got := r.ResolveReadings(in); got != in {
		t.Errorf("ResolveReadings(%q) = %q, want unchanged", in, got)
	}
}

func TestResolveReadingsThenTransliterate(t *testing.T) {
	r := newTestResolver(t)
	c := romaji.Converter{Resolver: r}
	got := c.Convert("犬")
	if got != "inu" {
		t.Errorf("Convert(犬) = %q, want inu", got)
	}
}

func TestResolverImplementsContract(t *testing.T) {
	var _ romaji.Resolver = newTestResolver(t)
}
