package ingest

import (
	"context"
	"database/sql"
	"log"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/kotoba/kotoba/pkg/lexicon"
	"github.com/kotoba/kotoba/pkg/store"
	"github.com/kotoba/kotoba/pkg/tokenize"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing
// implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx attempts to enqueue a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Harvester tokenizes article sentences against the lexicon and records the
// outcome: known words become sightings, unknown spans become missed words.
// Work resumes from the last per-source checkpoint.
type Harvester struct {
	DB        *sql.DB
	Lexicon   *lexicon.Lexicon
	BatchSize int

	// Logger is used for informational messages (e.g. resume status). nil means no logging.
	Logger *log.Logger

	// OnProgress is called periodically with the number of processed sentences
	// and the total.
	OnProgress func(current, total int)

	// Workers is the tokenization concurrency.
	Workers int

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// NewHarvester creates a Harvester with default batching and concurrency.
func NewHarvester(conn *sql.DB, lex *lexicon.Lexicon) *Harvester {
	return &Harvester{
		DB:        conn,
		Lexicon:   lex,
		BatchSize: 50,
		Workers:   4,
	}
}

// wordSighting is one known word observed in a sentence.
type wordSighting struct {
	Word  string
	Count int
}

// harvestResult is the outcome of tokenizing a single sentence.
type harvestResult struct {
	Index    int
	Sentence string
	Words    []wordSighting
	Missed   []string
	Err      error
}

// asciiOnly matches spans that carry no Japanese content; they are not worth
// recording as missed words.
var asciiOnly = regexp.MustCompile(`^[a-zA-Z0-9\s[:punct:]]+$`)

// Harvest processes sentences for the given source using concurrent workers
// and batched writes, and returns the number of word sightings recorded.
// Already-processed sentences are skipped via the source checkpoint.
func (h *Harvester) Harvest(ctx context.Context, sourceID int64, sentences []string) (int, error) {
	lastProcessed, err := store.GetSourceProgress(h.DB, sourceID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Printf("Warning: failed to retrieve progress: %v", err)
		}
		lastProcessed = -1
	}
	if lastProcessed >= 0 && h.Logger != nil {
		h.Logger.Printf("Resuming from sentence index %d", lastProcessed+1)
	}

	total := len(sentences)
	startIdx := lastProcessed + 1
	if startIdx >= total {
		return 0, nil
	}

	var pool WorkerPoolInterface
	if h.PoolFactory != nil {
		pool = h.PoolFactory(h.Workers, h.Workers*2)
	} else {
		pool = NewWorkerPool(h.Workers, h.Workers*2)
	}

	resultCh := make(chan harvestResult, h.Workers*2)
	doneCh := make(chan error, 1)

	bw := NewBatchWriter(h.DB, h.BatchSize, 100*time.Millisecond)

	var totalSightings int64
	now := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool.Start(ctx)

	// Consumer: reorder results by sentence index and hand contiguous runs to
	// the batch writer so checkpoints never skip an unprocessed sentence.
	go func() {
		defer close(doneCh)
		buffer := make(map[int]harvestResult)
		nextIdx := startIdx

		for res := range resultCh {
			if res.Err != nil {
				cancel()
				doneCh <- res.Err
				return
			}
			buffer[res.Index] = res

			for {
				item, ok := buffer[nextIdx]
				if !ok {
					break
				}
				delete(buffer, nextIdx)

				currentItem := item
				err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
					for _, w := range currentItem.Words {
						if err := store.RecordSighting(tx, w.Word, sourceID, currentItem.Sentence, w.Count); err != nil {
							return err
						}
						atomic.AddInt64(&totalSightings, int64(w.Count))
					}
					for _, m := range currentItem.Missed {
						if err := store.SaveMissedWord(tx, m, currentItem.Sentence, now); err != nil {
							return err
						}
					}
					return store.UpdateSourceProgress(tx, sourceID, currentItem.Index)
				})
				if err != nil {
					cancel()
					doneCh <- err
					return
				}

				if h.OnProgress != nil && (nextIdx+1)%h.BatchSize == 0 {
					h.OnProgress(nextIdx+1, total)
				}
				nextIdx++
			}
		}

		if h.OnProgress != nil {
			h.OnProgress(total, total)
		}
		doneCh <- nil
	}()

	// Producer: fan sentence tokenization out to the pool.
	for i := startIdx; i < total; i++ {
		if ctx.Err() != nil {
			break
		}
		idx := i
		sentence := sentences[i]

		job := func(ctx context.Context) error {
			res := h.processSentence(idx, sentence)
			select {
			case resultCh <- res:
			case <-ctx.Done():
			}
			return nil
		}

		if err := pool.SubmitCtx(ctx, job); err != nil {
			if err == ctx.Err() || err == ErrPoolClosed {
				break
			}
			pool.Close()
			close(resultCh)
			<-doneCh
			_ = bw.Close()
			return int(atomic.LoadInt64(&totalSightings)), err
		}
	}

	// All workers have exited after Close, so closing resultCh is safe and
	// signals the consumer that no more results will arrive.
	pool.Close()
	close(resultCh)

	consumerErr := <-doneCh

	if err := bw.Close(); err != nil && consumerErr == nil {
		consumerErr = err
	}
	if consumerErr == nil && ctx.Err() != nil {
		consumerErr = ctx.Err()
	}

	return int(atomic.LoadInt64(&totalSightings)), consumerErr
}

// processSentence tokenizes one sentence and splits the outcome into known
// word sightings and missed spans.
func (h *Harvester) processSentence(index int, sentence string) harvestResult {
	tokens := tokenize.Tokenize(h.Lexicon, sentence)

	counts := make(map[string]int)
	var ordered []string
	var missed []string

	for _, tok := range tokens {
		if tok.Found {
			if tokenize.IsStructural(tok.Text) {
				continue
			}
			if _, seen := counts[tok.Text]; !seen {
				ordered = append(ordered, tok.Text)
			}
			counts[tok.Text]++
			continue
		}
		if asciiOnly.MatchString(tok.Text) {
			continue
		}
		missed = append(missed, tok.Text)
	}

	words := make([]wordSighting, 0, len(ordered))
	for _, w := range ordered {
		words = append(words, wordSighting{Word: w, Count: counts[w]})
	}

	return harvestResult{
		Index:    index,
		Sentence: sentence,
		Words:    words,
		Missed:   missed,
	}
}
