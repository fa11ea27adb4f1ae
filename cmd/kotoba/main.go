package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kotoba/kotoba/pkg/ingest"
	"github.com/kotoba/kotoba/pkg/lexicon"
	"github.com/kotoba/kotoba/pkg/mastery"
	"github.com/kotoba/kotoba/pkg/reading"
	"github.com/kotoba/kotoba/pkg/romaji"
	"github.com/kotoba/kotoba/pkg/sm2"
	"github.com/kotoba/kotoba/pkg/store"
	"github.com/kotoba/kotoba/pkg/tokenize"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	dbFlag := flag.String("db", "kotoba.db", "Path to SQLite database")
	lexFlag := flag.String("lexicon", "", "Path to lexicon JSON word list")
	lexURLFlag := flag.String("lexicon-url", "", "URL to download the lexicon from when the file is missing")
	importFlag := flag.String("import", "", "Path to phrases JSON file to import")
	urlFlag := flag.String("url", "", "URL of an article to harvest words from")
	textFlag := flag.String("text", "", "Japanese text to tokenize and romanize")
	reviewFlag := flag.String("review", "", "Phrase ID to record a review for")
	rateFlag := flag.String("rate", "", "Review outcome: correct/incorrect (mastery) or again/hard/good/easy (sm2)")
	policyFlag := flag.String("policy", "mastery", "Scheduling policy: mastery or sm2")
	dueFlag := flag.Bool("due", false, "List phrases due for review")
	backfillFlag := flag.Bool("backfill", false, "Fill in missing romaji for stored phrases")
	searchFlag := flag.String("search", "", "Search stored phrases by English, Japanese or romaji")
	flag.Parse()

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := sql.Open("sqlite3", *dbFlag)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := store.InitDB(conn); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var lex *lexicon.Lexicon
	if *lexFlag != "" {
		if *lexURLFlag != "" {
			if err := lexicon.EnsureFile(ctx, *lexFlag, *lexURLFlag); err != nil {
				log.Fatalf("Failed to download lexicon: %v", err)
			}
		}
		entries, err := lexicon.LoadFile(*lexFlag)
		if err != nil {
			log.Fatalf("Failed to load lexicon: %v", err)
		}
		lex = lexicon.New(entries)
		fmt.Printf("Lexicon loaded (%d entries)\n", lex.Len())
	}

	switch {
	case *importFlag != "":
		if err := importPhrases(conn, *importFlag); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
	case *textFlag != "":
		if lex == nil {
			log.Fatal("-text requires -lexicon")
		}
		analyzeText(lex, *textFlag)
	case *urlFlag != "":
		if lex == nil {
			log.Fatal("-url requires -lexicon")
		}
		if err := harvestURL(ctx, conn, lex, *urlFlag); err != nil {
			log.Fatalf("Harvest failed: %v", err)
		}
	case *reviewFlag != "":
		if err := recordReview(conn, *policyFlag, *reviewFlag, *rateFlag); err != nil {
			log.Fatalf("Review failed: %v", err)
		}
	case *dueFlag:
		if err := listDue(conn, *policyFlag); err != nil {
			log.Fatalf("Failed to list due phrases: %v", err)
		}
	case *searchFlag != "":
		results, err := store.SearchPhrases(conn, *searchFlag)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		for _, p := range results {
			fmt.Printf("%s\t%s\t%s\t%s\n", p.ID, p.Japanese, p.Romaji, p.English)
		}
		fmt.Printf("%d phrases matched.\n", len(results))
	case *backfillFlag:
		conv := newConverter()
		count, err := store.BackfillRomaji(conn, conv)
		if err != nil {
			log.Fatalf("Backfill failed: %v", err)
		}
		fmt.Printf("Updated romaji for %d phrases.\n", count)
	default:
		log.Fatal("Nothing to do: provide -import, -text, -url, -review, -due, -search or -backfill")
	}
}

// phraseImport mirrors the phrase export format of the companion app.
type phraseImport struct {
	ID         string `json:"id"`
	English    string `json:"english"`
	Japanese   string `json:"japanese"`
	Romaji     string `json:"romaji"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
	Context    string `json:"context"`
	UserAdded  bool   `json:"isUserAdded"`
	Favorite   bool   `json:"isFavorite"`
}

func importPhrases(conn *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read phrases file: %w", err)
	}
	var phrases []phraseImport
	if err := json.Unmarshal(data, &phrases); err != nil {
		return fmt.Errorf("failed to parse phrases file: %w", err)
	}

	conv := newConverter()

	count := 0
	for _, p := range phrases {
		rom := p.Romaji
		if rom == "" {
			rom = conv.Convert(p.Japanese)
		}
		diff := p.Difficulty
		if diff == 0 {
			diff = 1
		}
		err := store.UpsertPhrase(conn, store.Phrase{
			ID:         p.ID,
			English:    p.English,
			Japanese:   p.Japanese,
			Romaji:     rom,
			Category:   p.Category,
			Difficulty: diff,
			Context:    p.Context,
			UserAdded:  p.UserAdded,
			Favorite:   p.Favorite,
		})
		if err != nil {
			return fmt.Errorf("failed to save phrase %q: %w", p.ID, err)
		}
		count++
	}
	fmt.Printf("Imported %d phrases.\n", count)
	return nil
}

// newConverter builds a romaji converter with a kanji reading resolver when
// the morphological dictionary is available, falling back to kana-only
// transliteration when it is not.
func newConverter() romaji.Converter {
	resolver, err := reading.NewResolver()
	if err != nil {
		log.Printf("Warning: kanji reading resolver unavailable: %v. Kanji will pass through.", err)
		return romaji.Converter{}
	}
	return romaji.Converter{Resolver: resolver}
}

func analyzeText(lex *lexicon.Lexicon, text string) {
	conv := newConverter()

	fmt.Printf("Romaji: %s\n", conv.Convert(text))
	fmt.Println("Tokens:")
	for _, tok := range tokenize.Tokenize(lex, text) {
		if tokenize.IsStructural(tok.Text) {
			continue
		}
		if tok.Found {
			fmt.Printf("  %s\t%s\t%s\n", tok.Text, tok.Reading, tok.Meaning)
		} else {
			fmt.Printf("  %s\t(unknown)\n", tok.Text)
		}
	}
}

// maxBodySize caps article downloads; untrusted pages should not be able to
// exhaust memory.
const maxBodySize = 10 * 1024 * 1024

func harvestURL(ctx context.Context, conn *sql.DB, lex *lexicon.Lexicon, pageURL string) error {
	fmt.Printf("Fetching %s...\n", pageURL)

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Mimic a real browser; some article hosts reject default Go clients.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) >= int64(maxBodySize) {
		return fmt.Errorf("response body exceeded %d byte limit", maxBodySize)
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := ingest.ExtractArticle(body, parsedURL)
	if err != nil {
		return err
	}
	fmt.Printf("Title: %s\n", article.Title)

	sourceID, err := store.CreateOrGetSource(conn, article.Title, pageURL)
	if err != nil {
		return fmt.Errorf("failed to persist source: %w", err)
	}

	sentences := tokenize.SplitSentences(article.Text)
	fmt.Printf("Split into %d sentences.\n", len(sentences))

	h := ingest.NewHarvester(conn, lex)
	h.Logger = log.Default()
	h.OnProgress = func(current, total int) {
		fmt.Printf("Processed %d/%d sentences\n", current, total)
	}

	count, err := h.Harvest(ctx, sourceID, sentences)
	if err != nil {
		return err
	}
	fmt.Printf("Harvest complete. Recorded %d word sightings.\n", count)
	return nil
}

func recordReview(conn *sql.DB, policy, phraseID, rate string) error {
	now := time.Now()

	switch policy {
	case "mastery":
		var correct bool
		switch strings.ToLower(rate) {
		case "correct", "right", "yes":
			correct = true
		case "incorrect", "wrong", "no":
			correct = false
		default:
			return fmt.Errorf("mastery policy expects -rate correct|incorrect, got %q", rate)
		}

		records, err := store.LoadMasteryRecords(conn)
		if err != nil {
			return err
		}
		rec, ok := records[phraseID]
		if !ok {
			rec = mastery.NewRecord(phraseID)
		}
		rec = mastery.Review(rec, correct, now)
		if err := store.SaveMasteryRecord(conn, rec); err != nil {
			return err
		}
		fmt.Printf("%s: level %s, streak %d, next review %s\n",
			phraseID, mastery.LevelOf(rec), rec.ConsecutiveCorrect, rec.NextReview.Format("2006-01-02"))
		return nil

	case "sm2":
		rating, err := parseRating(rate)
		if err != nil {
			return err
		}

		records, err := store.LoadSM2Records(conn)
		if err != nil {
			return err
		}
		rec, ok := records[phraseID]
		if !ok {
			rec = sm2.NewRecord(phraseID, now)
		}
		rec = sm2.Review(rec, rating, now)
		if err := store.SaveSM2Record(conn, rec); err != nil {
			return err
		}
		status := "learning"
		if sm2.Learned(rec) {
			status = "learned"
		}
		fmt.Printf("%s: %s, interval %dd, ease %.2f, next review %s\n",
			phraseID, status, rec.IntervalDays, rec.EaseFactor, rec.NextReview.Format("2006-01-02"))
		return nil
	}

	return fmt.Errorf("unknown policy %q (want mastery or sm2)", policy)
}

func parseRating(rate string) (sm2.Rating, error) {
	switch strings.ToLower(rate) {
	case "again":
		return sm2.Again, nil
	case "hard":
		return sm2.Hard, nil
	case "good":
		return sm2.Good, nil
	case "easy":
		return sm2.Easy, nil
	}
	return 0, fmt.Errorf("sm2 policy expects -rate again|hard|good|easy, got %q", rate)
}

func listDue(conn *sql.DB, policy string) error {
	phrases, err := store.ListPhrases(conn, "")
	if err != nil {
		return err
	}
	now := time.Now()

	switch policy {
	case "mastery":
		records, err := store.LoadMasteryRecords(conn)
		if err != nil {
			return err
		}
		for _, p := range phrases {
			rec, ok := records[p.ID]
			var recPtr *mastery.Record
			if ok {
				recPtr = &rec
			}
			if mastery.IsDue(recPtr, now) {
				fmt.Printf("%s\t%s\t%s\n", p.ID, p.Japanese, p.English)
			}
		}
		return nil

	case "sm2":
		records, err := store.LoadSM2Records(conn)
		if err != nil {
			return err
		}
		for _, p := range phrases {
			rec, ok := records[p.ID]
			var recPtr *sm2.Record
			if ok {
				recPtr = &rec
			}
			if sm2.IsDue(recPtr, now) {
				fmt.Printf("%s\t%s\t%s\n", p.ID, p.Japanese, p.English)
			}
		}
		return nil
	}

	return fmt.Errorf("unknown policy %q (want mastery or sm2)", policy)
}
