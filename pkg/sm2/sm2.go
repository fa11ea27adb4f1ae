// Package sm2 implements an SM-2 variant review scheduler with a four-level
// grading scale. It is independent of the mastery scheduler: the two policies
// keep different record shapes and due-semantics on purpose.
package sm2

import (
	"fmt"
	"math"
	"time"
)

const (
	initialEase = 2.5
	minEase     = 1.3
)

// Rating grades one recall attempt.
type Rating int

const (
	Again Rating = iota // Complete failure to recall.
	Hard                // Recalled with significant difficulty.
	Good                // Recalled with some effort.
	Easy                // Recalled effortlessly.
)

var ratingNames = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}

// String returns the name of the rating, or "Rating(n)" for invalid values.
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsValid reports whether r is one of the four defined ratings.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// Record holds the SM-2 scheduling state for one phrase. NextReview is always
// set; a fresh record is due immediately.
type Record struct {
	PhraseID     string    `json:"phraseId"`
	LastReviewed time.Time `json:"lastReviewed"`
	NextReview   time.Time `json:"nextReview"`
	EaseFactor   float64   `json:"easeFactor"`
	IntervalDays int       `json:"interval"`
	Repetitions  int       `json:"repetitions"`
}

// NewRecord returns the initial state for a phrase first reviewed at now.
func NewRecord(phraseID string, now time.Time) Record {
	return Record{
		PhraseID:     phraseID,
		NextReview:   now,
		EaseFactor:   initialEase,
		IntervalDays: 1,
	}
}

// Review applies one graded review to rec and returns the updated record.
// The interval is computed from the ease factor as it stood before this
// review; the ease factor update and the per-grade interval adjustment follow.
func Review(rec Record, rating Rating, now time.Time) Record {
	if rec.EaseFactor == 0 {
		rec.EaseFactor = initialEase
	}

	rec.LastReviewed = now

	if rating == Again {
		rec.Repetitions = 0
		rec.IntervalDays = 1
	} else {
		switch rec.Repetitions {
		case 0:
			rec.IntervalDays = 1
		case 1:
			rec.IntervalDays = 6
		default:
			rec.IntervalDays = int(math.Round(float64(rec.IntervalDays) * rec.EaseFactor))
		}
		rec.Repetitions++
	}

	// Standard SM-2 ease update, applied for every grade including Again.
	q := float64(rating)
	rec.EaseFactor = math.Max(minEase, rec.EaseFactor+(0.1-(5-q)*(0.08+(5-q)*0.02)))

	switch rating {
	case Again:
		rec.IntervalDays = 1
	case Hard:
		rec.IntervalDays = int(math.Round(float64(rec.IntervalDays) * 0.8))
		if rec.IntervalDays < 1 {
			rec.IntervalDays = 1
		}
	case Good:
		// Standard interval.
	case Easy:
		rec.IntervalDays = int(math.Round(float64(rec.IntervalDays) * 1.3))
	}

	days := rec.IntervalDays
	if days < 1 {
		days = 1
	}
	rec.NextReview = now.AddDate(0, 0, days)

	return rec
}

// Learned reports whether the phrase has graduated to long-term retention.
func Learned(rec Record) bool {
	return rec.IntervalDays > 21
}

// IsDue reports whether a phrase should be reviewed. A phrase with no record
// yet (rec == nil) is always due.
func IsDue(rec *Record, now time.Time) bool {
	if rec == nil {
		return true
	}
	return !rec.NextReview.After(now)
}
