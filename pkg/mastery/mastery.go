// Package mastery implements the binary correct/incorrect review scheduler.
// It tracks a per-phrase ease factor and consecutive-correct streak and derives
// a mastery level from the streak. The package is pure: callers own record
// persistence and pass records in and out by value.
package mastery

import (
	"math"
	"time"
)

const (
	initialEase = 2.5
	minEase     = 1.3
	maxEase     = 3.0
)

// Record holds the scheduling state for one phrase.
type Record struct {
	PhraseID           string    `json:"phraseId"`
	TimesReviewed      int       `json:"timesReviewed"`
	TimesCorrect       int       `json:"timesCorrect"`
	LastReviewed       time.Time `json:"lastReviewed"`
	NextReview         time.Time `json:"nextReview"`
	EaseFactor         float64   `json:"easeFactor"`
	IntervalDays       int       `json:"interval"`
	ConsecutiveCorrect int       `json:"consecutiveCorrect"`
}

// Level classifies how well a phrase is known, derived from the record rather
// than stored.
type Level int

const (
	Unseen Level = iota
	Learning
	Familiar
	Mastered
)

func (l Level) String() string {
	switch l {
	case Unseen:
		return "Unseen"
	case Learning:
		return "Learning"
	case Familiar:
		return "Familiar"
	case Mastered:
		return "Mastered"
	}
	return "Unknown"
}

// NewRecord returns the initial state for a phrase that has never been
// reviewed.
func NewRecord(phraseID string) Record {
	return Record{
		PhraseID:   phraseID,
		EaseFactor: initialEase,
	}
}

// Review applies one correct/incorrect grading to rec and returns the updated
// record. A zero-value or freshly constructed record is valid input, so first
// reviews need no special handling by the caller. The update is deterministic
// given (rec, correct, now).
func Review(rec Record, correct bool, now time.Time) Record {
	if rec.EaseFactor == 0 {
		rec.EaseFactor = initialEase
	}

	rec.TimesReviewed++
	rec.LastReviewed = now

	if correct {
		rec.TimesCorrect++
		rec.ConsecutiveCorrect++
		switch rec.ConsecutiveCorrect {
		case 1:
			rec.IntervalDays = 1
		case 2:
			rec.IntervalDays = 3
		default:
			rec.IntervalDays = int(math.Round(float64(rec.IntervalDays) * rec.EaseFactor))
		}
		rec.EaseFactor = math.Min(maxEase, rec.EaseFactor+0.1)
	} else {
		rec.ConsecutiveCorrect = 0
		rec.IntervalDays = 0
		rec.EaseFactor = math.Max(minEase, rec.EaseFactor-0.2)
	}

	days := rec.IntervalDays
	if days < 1 {
		days = 1
	}
	rec.NextReview = now.AddDate(0, 0, days)

	return rec
}

// LevelOf derives the mastery classification for a record. A zero TimesReviewed
// means the phrase was never seen.
func LevelOf(rec Record) Level {
	switch {
	case rec.TimesReviewed == 0:
		return Unseen
	case rec.ConsecutiveCorrect >= 5:
		return Mastered
	case rec.ConsecutiveCorrect >= 3:
		return Familiar
	}
	return Learning
}

// Accuracy returns the fraction of reviews answered correctly, 0 for an
// unreviewed record.
func Accuracy(rec Record) float64 {
	if rec.TimesReviewed == 0 {
		return 0
	}
	return float64(rec.TimesCorrect) / float64(rec.TimesReviewed)
}

// IsDue reports whether a phrase should be reviewed. A phrase with no record
// yet (rec == nil) is always due.
func IsDue(rec *Record, now time.Time) bool {
	if rec == nil {
		return true
	}
	return !now.Before(rec.NextReview)
}
