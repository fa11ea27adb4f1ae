package store

import "time"

// Phrase is a study item: a Japanese phrase with its translation and romaji.
type Phrase struct {
	ID         string
	English    string
	Japanese   string
	Romaji     string
	Category   string
	Difficulty int
	Context    string
	UserAdded  bool
	Favorite   bool
}

// Source is a provenance record for an article words were harvested from.
type Source struct {
	ID      int64
	Title   string
	URL     string
	AddedAt time.Time
}

// MissedWord is a word the learner tapped but the lexicon had no entry for.
type MissedWord struct {
	Word      string
	Context   string
	FirstSeen time.Time
}
