package store

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kotoba/kotoba/pkg/mastery"
	"github.com/kotoba/kotoba/pkg/sm2"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var testTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestUpsertAndGetPhrase(t *testing.T) {
	db := setupTestDB(t)
	p := Phrase{
		ID:         "p1",
		English:    "hello",
		Japanese:   "こんにちは",
		Romaji:     "konnichiwa",
		Category:   "greetings",
		Difficulty: 1,
	}
	if err := UpsertPhrase(db, p); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := GetPhrase(db, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != p {
		t.Errorf("got %+v, want %+v", got, p)
	}

	// Upsert again with changed fields.
	p.Favorite = true
	p.English = "hello / good day"
	if err := UpsertPhrase(db, p); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = GetPhrase(db, "p1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !got.Favorite || got.English != "hello / good day" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestUpsertPhraseValidation(t *testing.T) {
	db := setupTestDB(t)
	if err := UpsertPhrase(db, Phrase{Japanese: "やあ"}); err == nil {
		t.Error("expected error for empty id")
	}
	if err := UpsertPhrase(db, Phrase{ID: "p1"}); err == nil {
		t.Error("expected error for empty japanese text")
	}
}

func TestListPhrasesByCategory(t *testing.T) {
	db := setupTestDB(t)
	phrases := []Phrase{
		{ID: "p1", English: "hello", Japanese: "こんにちは", Category: "greetings"},
		{ID: "p2", English: "water", Japanese: "水", Category: "food"},
		{ID: "p3", English: "thanks", Japanese: "ありがとう", Category: "greetings"},
	}
	for _, p := range phrases {
		if err := UpsertPhrase(db, p); err != nil {
			t.Fatalf("upsert %s: %v", p.ID, err)
		}
	}

	all, err := ListPhrases(db, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 phrases, got %d", len(all))
	}

	greetings, err := ListPhrases(db, "greetings")
	if err != nil {
		t.Fatalf("list greetings: %v", err)
	}
	if len(greetings) != 2 {
		t.Errorf("expected 2 greetings, got %d", len(greetings))
	}
}

func TestSearchPhrases(t *testing.T) {
	db := setupTestDB(t)
	phrases := []Phrase{
		{ID: "p1", English: "hello", Japanese: "こんにちは", Romaji: "konnichiwa"},
		{ID: "p2", English: "water", Japanese: "水", Romaji: "mizu"},
		{ID: "p3", English: "hot water", Japanese: "お湯", Romaji: "oyu"},
	}
	for _, p := range phrases {
		if err := UpsertPhrase(db, p); err != nil {
			t.Fatalf("upsert %s: %v", p.ID, err)
		}
	}

	byEnglish, err := SearchPhrases(db, "water")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byEnglish) != 2 {
		t.Errorf("expected 2 matches for water, got %d", len(byEnglish))
	}

	byJapanese, err := SearchPhrases(db, "水")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byJapanese) != 1 || byJapanese[0].ID != "p2" {
		t.Errorf("expected p2 for 水, got %+v", byJapanese)
	}

	byRomaji, err := SearchPhrases(db, "konn")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byRomaji) != 1 || byRomaji[0].ID != "p1" {
		t.Errorf("expected p1 for konn, got %+v", byRomaji)
	}

	blank, err := SearchPhrases(db, "  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(blank) != 3 {
		t.Errorf("blank term should list everything, got %d", len(blank))
	}
}

func TestMasteryRecordRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	rec := mastery.Review(mastery.NewRecord("p1"), true, testTime)
	if err := SaveMasteryRecord(db, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	records, err := LoadMasteryRecords(db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := records["p1"]
	if !ok {
		t.Fatal("record p1 missing")
	}
	if got.TimesReviewed != rec.TimesReviewed || got.EaseFactor != rec.EaseFactor ||
		got.IntervalDays != rec.IntervalDays || got.ConsecutiveCorrect != rec.ConsecutiveCorrect {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	if !got.NextReview.Equal(rec.NextReview) {
		t.Errorf("NextReview = %v, want %v", got.NextReview, rec.NextReview)
	}

	// Saving an updated record replaces the row.
	rec2 := mastery.Review(rec, false, testTime.Add(24*time.Hour))
	if err := SaveMasteryRecord(db, rec2); err != nil {
		t.Fatalf("save update: %v", err)
	}
	records, err = LoadMasteryRecords(db)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records["p1"].ConsecutiveCorrect != 0 {
		t.Errorf("updated record not persisted: %+v", records["p1"])
	}
}

func TestSM2RecordRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	rec := sm2.Review(sm2.NewRecord("p1", testTime), sm2.Good, testTime)
	if err := SaveSM2Record(db, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	records, err := LoadSM2Records(db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := records["p1"]
	if !ok {
		t.Fatal("record p1 missing")
	}
	if got.Repetitions != 1 || got.IntervalDays != rec.IntervalDays || got.EaseFactor != rec.EaseFactor {
		t.Errorf("got %+v, want %+v", got, rec)
	}
}

func TestSM2RecordRequiresNextReview(t *testing.T) {
	db := setupTestDB(t)
	if err := SaveSM2Record(db, sm2.Record{PhraseID: "p1"}); err == nil {
		t.Error("expected error for zero NextReview")
	}
}

func TestCreateOrGetSource(t *testing.T) {
	db := setupTestDB(t)
	id1, err := CreateOrGetSource(db, "記事", "https://example.com/a")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	id2, err := CreateOrGetSource(db, "", "https://example.com/a")
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same source id, got %d and %d", id1, id2)
	}
}

func TestSourceProgress(t *testing.T) {
	db := setupTestDB(t)
	id, err := CreateOrGetSource(db, "記事", "https://example.com/a")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}

	idx, err := GetSourceProgress(db, id)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if idx != -1 {
		t.Errorf("fresh source progress = %d, want -1", idx)
	}

	if err := UpdateSourceProgress(db, id, 42); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	idx, err = GetSourceProgress(db, id)
	if err != nil {
		t.Fatalf("progress after update: %v", err)
	}
	if idx != 42 {
		t.Errorf("progress = %d, want 42", idx)
	}
}

func TestRecordSightingIncrements(t *testing.T) {
	db := setupTestDB(t)
	id, err := CreateOrGetSource(db, "記事", "https://example.com/a")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	if err := RecordSighting(db, "猫", id, "この猫は可愛い。", 1); err != nil {
		t.Fatalf("sighting 1: %v", err)
	}
	if err := RecordSighting(db, "猫", id, "猫がいる。", 2); err != nil {
		t.Fatalf("sighting 2: %v", err)
	}

	var cnt int
	var sentence string
	err = db.QueryRow(`SELECT occurrence_count, sentence FROM sightings WHERE word = ? AND source_id = ?`, "猫", id).
		Scan(&cnt, &sentence)
	if err != nil {
		t.Fatalf("query sighting: %v", err)
	}
	if cnt != 3 {
		t.Errorf("occurrence_count = %d, want 3", cnt)
	}
	if sentence != "猫がいる。" {
		t.Errorf("sentence = %q, want latest", sentence)
	}
}

func TestMissedWordsFirstSightingWins(t *testing.T) {
	db := setupTestDB(t)
	if err := SaveMissedWord(db, "未知語", "未知語があった。", testTime); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveMissedWord(db, "未知語", "別の文。", testTime.Add(time.Hour)); err != nil {
		t.Fatalf("save repeat: %v", err)
	}

	words, err := ListMissedWords(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 missed word, got %d", len(words))
	}
	if words[0].Context != "未知語があった。" {
		t.Errorf("context = %q, want first sighting", words[0].Context)
	}
}

func TestSaveMissedWordIgnoresEmpty(t *testing.T) {
	db := setupTestDB(t)
	if err := SaveMissedWord(db, "  ", "context", testTime); err != nil {
		t.Fatalf("save: %v", err)
	}
	words, err := ListMissedWords(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected no missed words, got %+v", words)
	}
}
