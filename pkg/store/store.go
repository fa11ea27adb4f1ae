package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kotoba/kotoba/pkg/mastery"
	"github.com/kotoba/kotoba/pkg/sm2"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// nullableTime returns nil for the zero time so SQLite stores NULL instead of
// the Go zero-value timestamp.
func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// UpsertPhrase inserts the phrase or replaces its mutable fields.
func UpsertPhrase(db DBExecutor, p Phrase) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("phrase id must be non-empty")
	}
	if strings.TrimSpace(p.Japanese) == "" {
		return fmt.Errorf("phrase japanese text must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO phrases (id, english, japanese, romaji, category, difficulty, context, user_added, favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  english = excluded.english,
		  japanese = excluded.japanese,
		  romaji = excluded.romaji,
		  category = excluded.category,
		  difficulty = excluded.difficulty,
		  context = excluded.context,
		  favorite = excluded.favorite`,
		p.ID, p.English, p.Japanese, p.Romaji, p.Category, p.Difficulty, p.Context, p.UserAdded, p.Favorite)
	if err != nil {
		return fmt.Errorf("upsert phrase: %w", err)
	}
	return nil
}

// GetPhrase returns the phrase with the given id, or sql.ErrNoRows.
func GetPhrase(db DBExecutor, id string) (Phrase, error) {
	var p Phrase
	var romaji, category, context sql.NullString
	err := db.QueryRow(`SELECT id, english, japanese, romaji, category, difficulty, context, user_added, favorite
		FROM phrases WHERE id = ?`, id).
		Scan(&p.ID, &p.English, &p.Japanese, &romaji, &category, &p.Difficulty, &context, &p.UserAdded, &p.Favorite)
	if err != nil {
		return Phrase{}, err
	}
	p.Romaji = romaji.String
	p.Category = category.String
	p.Context = context.String
	return p, nil
}

// ListPhrases returns all phrases, optionally filtered by category.
func ListPhrases(db DBExecutor, category string) ([]Phrase, error) {
	query := `SELECT id, english, japanese, romaji, category, difficulty, context, user_added, favorite FROM phrases`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Phrase
	for rows.Next() {
		var p Phrase
		var romaji, category, context sql.NullString
		if err := rows.Scan(&p.ID, &p.English, &p.Japanese, &romaji, &category, &p.Difficulty, &context, &p.UserAdded, &p.Favorite); err != nil {
			return nil, err
		}
		p.Romaji = romaji.String
		p.Category = category.String
		p.Context = context.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// SearchPhrases matches term as a substring of the English, Japanese or romaji
// text, case-insensitively for Latin script.
func SearchPhrases(db DBExecutor, term string) ([]Phrase, error) {
	if strings.TrimSpace(term) == "" {
		return ListPhrases(db, "")
	}
	pattern := "%" + term + "%"
	rows, err := db.Query(`SELECT id, english, japanese, romaji, category, difficulty, context, user_added, favorite
		FROM phrases
		WHERE english LIKE ? OR japanese LIKE ? OR romaji LIKE ?
		ORDER BY created_at, id`, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Phrase
	for rows.Next() {
		var p Phrase
		var romaji, category, context sql.NullString
		if err := rows.Scan(&p.ID, &p.English, &p.Japanese, &romaji, &category, &p.Difficulty, &context, &p.UserAdded, &p.Favorite); err != nil {
			return nil, err
		}
		p.Romaji = romaji.String
		p.Category = category.String
		p.Context = context.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveMasteryRecord upserts the scheduling state for one phrase.
func SaveMasteryRecord(db DBExecutor, rec mastery.Record) error {
	if rec.PhraseID == "" {
		return fmt.Errorf("record phrase id must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO mastery_reviews
		(phrase_id, times_reviewed, times_correct, last_reviewed, next_review, ease_factor, interval_days, consecutive_correct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phrase_id) DO UPDATE SET
		  times_reviewed = excluded.times_reviewed,
		  times_correct = excluded.times_correct,
		  last_reviewed = excluded.last_reviewed,
		  next_review = excluded.next_review,
		  ease_factor = excluded.ease_factor,
		  interval_days = excluded.interval_days,
		  consecutive_correct = excluded.consecutive_correct`,
		rec.PhraseID, rec.TimesReviewed, rec.TimesCorrect,
		nullableTime(rec.LastReviewed), nullableTime(rec.NextReview),
		rec.EaseFactor, rec.IntervalDays, rec.ConsecutiveCorrect)
	if err != nil {
		return fmt.Errorf("save mastery record: %w", err)
	}
	return nil
}

// LoadMasteryRecords returns all mastery records keyed by phrase id.
func LoadMasteryRecords(db DBExecutor) (map[string]mastery.Record, error) {
	rows, err := db.Query(`SELECT phrase_id, times_reviewed, times_correct, last_reviewed, next_review,
		ease_factor, interval_days, consecutive_correct FROM mastery_reviews`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]mastery.Record)
	for rows.Next() {
		var rec mastery.Record
		var last, next sql.NullTime
		if err := rows.Scan(&rec.PhraseID, &rec.TimesReviewed, &rec.TimesCorrect, &last, &next,
			&rec.EaseFactor, &rec.IntervalDays, &rec.ConsecutiveCorrect); err != nil {
			return nil, err
		}
		rec.LastReviewed = last.Time
		rec.NextReview = next.Time
		records[rec.PhraseID] = rec
	}
	return records, rows.Err()
}

// SaveSM2Record upserts the SM-2 scheduling state for one phrase.
func SaveSM2Record(db DBExecutor, rec sm2.Record) error {
	if rec.PhraseID == "" {
		return fmt.Errorf("record phrase id must be non-empty")
	}
	if rec.NextReview.IsZero() {
		return fmt.Errorf("sm2 record next review must be set")
	}
	_, err := db.Exec(`INSERT INTO sm2_reviews
		(phrase_id, last_reviewed, next_review, ease_factor, interval_days, repetitions)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(phrase_id) DO UPDATE SET
		  last_reviewed = excluded.last_reviewed,
		  next_review = excluded.next_review,
		  ease_factor = excluded.ease_factor,
		  interval_days = excluded.interval_days,
		  repetitions = excluded.repetitions`,
		rec.PhraseID, nullableTime(rec.LastReviewed), rec.NextReview,
		rec.EaseFactor, rec.IntervalDays, rec.Repetitions)
	if err != nil {
		return fmt.Errorf("save sm2 record: %w", err)
	}
	return nil
}

// LoadSM2Records returns all SM-2 records keyed by phrase id.
func LoadSM2Records(db DBExecutor) (map[string]sm2.Record, error) {
	rows, err := db.Query(`SELECT phrase_id, last_reviewed, next_review, ease_factor, interval_days, repetitions
		FROM sm2_reviews`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]sm2.Record)
	for rows.Next() {
		var rec sm2.Record
		var last sql.NullTime
		if err := rows.Scan(&rec.PhraseID, &last, &rec.NextReview,
			&rec.EaseFactor, &rec.IntervalDays, &rec.Repetitions); err != nil {
			return nil, err
		}
		rec.LastReviewed = last.Time
		records[rec.PhraseID] = rec
	}
	return records, rows.Err()
}

// CreateOrGetSource returns the id of an existing source with the same URL or
// inserts a new one.
func CreateOrGetSource(db DBExecutor, title, url string) (int64, error) {
	if strings.TrimSpace(url) == "" {
		return 0, fmt.Errorf("source url must be non-empty")
	}

	var id int64
	err := db.QueryRow(`INSERT INTO sources (title, url, added_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET title = COALESCE(NULLIF(excluded.title, ''), sources.title)
		RETURNING id`, title, url, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert source: %w", err)
	}
	return id, nil
}

// GetSourceProgress returns the last processed sentence index for a source.
// A source never processed reports -1.
func GetSourceProgress(db DBExecutor, sourceID int64) (int, error) {
	var index int
	err := db.QueryRow(`SELECT last_processed_sentence FROM sources WHERE id = ?`, sourceID).Scan(&index)
	if err != nil {
		return 0, err
	}
	return index, nil
}

// UpdateSourceProgress updates the last processed sentence index.
func UpdateSourceProgress(db DBExecutor, sourceID int64, index int) error {
	_, err := db.Exec(`UPDATE sources SET last_processed_sentence = ? WHERE id = ?`, index, sourceID)
	return err
}

// RecordSighting notes that word was seen in a source, incrementing the
// occurrence count on repeat sightings and keeping the latest sentence.
func RecordSighting(db DBExecutor, word string, sourceID int64, sentence string, count int) error {
	if strings.TrimSpace(word) == "" {
		return fmt.Errorf("word must be non-empty")
	}
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	_, err := db.Exec(`INSERT INTO sightings (word, source_id, sentence, occurrence_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(word, source_id) DO UPDATE SET
		  occurrence_count = sightings.occurrence_count + excluded.occurrence_count,
		  sentence = excluded.sentence`,
		word, sourceID, sentence, count)
	return err
}

// SaveMissedWord records a word the lexicon had no entry for. The first
// sighting wins; repeats are ignored.
func SaveMissedWord(db DBExecutor, word, context string, seen time.Time) error {
	if strings.TrimSpace(word) == "" {
		return nil
	}
	_, err := db.Exec(`INSERT INTO missed_words (word, context, first_seen) VALUES (?, ?, ?)
		ON CONFLICT(word) DO NOTHING`, word, context, seen)
	return err
}

// ListMissedWords returns captured unknown words, newest first.
func ListMissedWords(db DBExecutor) ([]MissedWord, error) {
	rows, err := db.Query(`SELECT word, context, first_seen FROM missed_words ORDER BY first_seen DESC, word`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MissedWord
	for rows.Next() {
		var mw MissedWord
		var context sql.NullString
		if err := rows.Scan(&mw.Word, &context, &mw.FirstSeen); err != nil {
			return nil, err
		}
		mw.Context = context.String
		out = append(out, mw)
	}
	return out, rows.Err()
}
