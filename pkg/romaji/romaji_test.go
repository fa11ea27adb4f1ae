package romaji

import "testing"

func TestTransliterate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		// Basic hiragana
		{"こんにちは", "konnichiwa"},
		{"さくら", "sakura"},
		// Dakuten + gemination + long vowel together
		{"がっこう", "gakkou"},
		// Digraphs
		{"きょう", "kyou"},
		{"じゃあ", "jaa"},
		{"しゃしん", "shashin"},
		// Katakana
		{"カタカナ", "katakana"},
		{"コーヒー", "koohii"},
		// Extended katakana
		{"ファン", "fan"},
		{"パーティー", "paatii"},
		// Gemination before katakana
		{"ロック", "rokku"},
		{"マッチャ", "maccha"},
		// Mixed passthrough
		{"ABCです", "ABCdesu"},
		{"123", "123"},
		{"", ""},
		// Punctuation passthrough
		{"はい、そうです。", "hai、soudesu。"},
	}

	for _, tc := range cases {
		if got := Transliterate(tc.in); got != tc.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGeminationFallback(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		// Small tsu at end of string
		{"あっ", "at"},
		{"アッ", "at"},
		// Small tsu before a vowel
		{"っあ", "ta"},
		// Small tsu before an unmapped character
		{"っ!", "t!"},
	}
	for _, tc := range cases {
		if got := Transliterate(tc.in); got != tc.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGeminationBeforeDigraph(t *testing.T) {
	// The lookahead must consult the digraph table first: っちゃ → ccha.
	if got := Transliterate("あっちゃ"); got != "accha" {
		t.Errorf("Transliterate(あっちゃ) = %q, want accha", got)
	}
}

func TestLongVowelMark(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"カー", "kaa"},
		{"キー", "kii"},
		{"スープ", "suupu"},
		// Preceding output does not end in a plain vowel: "u" fallback.
		{"ンー", "nu"},
		{"ー", "u"},
	}
	for _, tc := range cases {
		if got := Transliterate(tc.in); got != tc.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeterminism(t *testing.T) {
	in := "きょうはがっこうでコーヒーをのみました。"
	if a, b := Transliterate(in), Transliterate(in); a != b {
		t.Errorf("Transliterate not deterministic: %q vs %q", a, b)
	}
}

func TestIsKanji(t *testing.T) {
	kanji := []rune{'漢', '字', '東', '一', 0x3400, 0x20000}
	for _, r := range kanji {
		if !IsKanji(r) {
			t.Errorf("IsKanji(%U) = false, want true", r)
		}
	}
	notKanji := []rune{'あ', 'ア', 'a', '1', '。', 'ー'}
	for _, r := range notKanji {
		if IsKanji(r) {
			t.Errorf("IsKanji(%U) = true, want false", r)
		}
	}
}

func TestContainsKanji(t *testing.T) {
	if !ContainsKanji("東京タワー") {
		t.Error("expected 東京タワー to contain kanji")
	}
	if ContainsKanji("カタカナだけ") {
		t.Error("expected カタカナだけ to contain no kanji")
	}
}

type upperResolver struct{}

func (upperResolver) ResolveReadings(text string) string { return "とうきょう" }

func TestConverterWithResolver(t *testing.T) {
	c := Converter{Resolver: upperResolver{}}
	if got := c.Convert("東京"); got != "toukyou" {
		t.Errorf("Convert(東京) = %q, want toukyou", got)
	}
}

func TestConverterWithoutResolver(t *testing.T) {
	// A nil resolver passes text straight to the transliterator.
	c := Converter{}
	if got := c.Convert("東京です"); got != "東京desu" {
		t.Errorf("Convert(東京です) = %q, want 東京desu", got)
	}
}
