package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// WordEntry is a single dictionary entry keyed by its Japanese surface form.
type WordEntry struct {
	Japanese     string `json:"japanese"`
	Romaji       string `json:"romaji"`
	English      string `json:"english"`
	PartOfSpeech string `json:"partOfSpeech"`
}

// Lexicon is an immutable surface-form → entry mapping built once at startup.
// It is safe for concurrent reads after construction.
type Lexicon struct {
	entries map[string]WordEntry
	// keys holds all surface forms sorted by descending rune length so the
	// tokenizer can try longer matches first. Ties are lexicographic.
	keys []string
}

// New builds a Lexicon from entries. Duplicate surface forms overwrite silently;
// the last entry wins.
func New(entries []WordEntry) *Lexicon {
	idx := make(map[string]WordEntry, len(entries))
	for _, e := range entries {
		if e.Japanese == "" {
			continue
		}
		idx[e.Japanese] = e
	}

	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := len([]rune(keys[i])), len([]rune(keys[j]))
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})

	return &Lexicon{entries: idx, keys: keys}
}

// Lookup returns the entry for an exact surface form.
func (l *Lexicon) Lookup(surface string) (WordEntry, bool) {
	e, ok := l.entries[surface]
	return e, ok
}

// Keys returns all surface forms sorted by descending rune length.
// The returned slice is shared; callers must not modify it.
func (l *Lexicon) Keys() []string {
	return l.keys
}

// Len returns the number of distinct surface forms.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// LoadFile reads a JSON word list and returns its entries.
// The file may be a bare array of entries or an object wrapper { "words": [...] }.
func LoadFile(path string) ([]WordEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapper struct {
		Words []WordEntry `json:"words"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapper); err == nil && len(wrapper.Words) > 0 {
		return wrapper.Words, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var entries []WordEntry
	dec = json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse word list as object or array: %w", err)
	}
	return entries, nil
}
