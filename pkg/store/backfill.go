package store

import (
	"database/sql"
	"log"
)

// RomajiSource converts Japanese text to romaji.
type RomajiSource interface {
	Convert(text string) string
}

// BackfillRomaji fills in romaji for phrases that were imported without one.
// Rows that already carry romaji are left untouched. Returns the number of
// phrases updated.
func BackfillRomaji(db DBExecutor, conv RomajiSource) (int, error) {
	rows, err := db.Query(`SELECT id, japanese FROM phrases WHERE romaji IS NULL OR romaji = ''`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	// Collect first, update after the cursor is closed; SQLite dislikes
	// writes while a read cursor is open on the same connection.
	type update struct {
		id     string
		romaji string
	}
	var updates []update

	for rows.Next() {
		var id string
		var japanese sql.NullString
		if err := rows.Scan(&id, &japanese); err != nil {
			return 0, err
		}
		if !japanese.Valid || japanese.String == "" {
			continue
		}
		rom := conv.Convert(japanese.String)
		if rom == "" || rom == japanese.String {
			continue
		}
		updates = append(updates, update{id, rom})
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	count := 0
	for _, u := range updates {
		if _, err := db.Exec(`UPDATE phrases SET romaji = ? WHERE id = ?`, u.romaji, u.id); err != nil {
			log.Printf("Failed to update phrase %s: %v", u.id, err)
			continue
		}
		count++
	}
	return count, nil
}
