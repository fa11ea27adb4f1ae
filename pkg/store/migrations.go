package store

// migrationsSQL is the full schema, executed statement by statement at startup.
// Statements are idempotent so InitDB can run on every open.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS phrases (
	id TEXT PRIMARY KEY,
	english TEXT NOT NULL,
	japanese TEXT NOT NULL,
	romaji TEXT,
	category TEXT,
	difficulty INTEGER NOT NULL DEFAULT 1,
	context TEXT,
	user_added INTEGER NOT NULL DEFAULT 0,
	favorite INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_phrases_category ON phrases(category);

CREATE TABLE IF NOT EXISTS mastery_reviews (
	phrase_id TEXT PRIMARY KEY,
	times_reviewed INTEGER NOT NULL DEFAULT 0,
	times_correct INTEGER NOT NULL DEFAULT 0,
	last_reviewed TIMESTAMP,
	next_review TIMESTAMP,
	ease_factor REAL NOT NULL DEFAULT 2.5,
	interval_days INTEGER NOT NULL DEFAULT 0,
	consecutive_correct INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sm2_reviews (
	phrase_id TEXT PRIMARY KEY,
	last_reviewed TIMESTAMP,
	next_review TIMESTAMP NOT NULL,
	ease_factor REAL NOT NULL DEFAULT 2.5,
	interval_days INTEGER NOT NULL DEFAULT 1,
	repetitions INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT,
	url TEXT NOT NULL UNIQUE,
	added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_processed_sentence INTEGER NOT NULL DEFAULT -1
);

CREATE TABLE IF NOT EXISTS sightings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	source_id INTEGER NOT NULL REFERENCES sources(id),
	sentence TEXT,
	occurrence_count INTEGER NOT NULL DEFAULT 1,
	UNIQUE(word, source_id)
);

CREATE TABLE IF NOT EXISTS missed_words (
	word TEXT PRIMARY KEY,
	context TEXT,
	first_seen TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`
