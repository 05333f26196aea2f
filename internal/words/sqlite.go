// internal/words/sqlite.go
//
// SQLite-backed word list source.
//
// Schema (created by Store, read by LoadSQLite):
//   words(word TEXT PRIMARY KEY, is_answer INTEGER NOT NULL DEFAULT 0)
//
// Rows with is_answer=1 are secret-eligible; every row is an acceptable guess.

package words

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

const schema = `CREATE TABLE IF NOT EXISTS words (
	word      TEXT PRIMARY KEY,
	is_answer INTEGER NOT NULL DEFAULT 0
);`

// LoadSQLite reads a List from the words table.
func LoadSQLite(ctx context.Context, db *sql.DB) (*List, error) {
	rows, err := db.QueryContext(ctx, `SELECT word, is_answer FROM words ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var ans, all []string
	for rows.Next() {
		var w string
		var isAnswer bool
		if err := rows.Scan(&w, &isAnswer); err != nil {
			return nil, fmt.Errorf("scan words: %w", err)
		}
		if isAnswer {
			ans = append(ans, w)
		}
		all = append(all, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	l, err := NewList(ans, all)
	if err != nil {
		return nil, err
	}
	a, g := l.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("loaded word lists from sqlite")
	return l, nil
}

// Store writes l into the words table, creating it if needed.
// Existing rows are replaced in a single transaction.
func Store(ctx context.Context, db *sql.DB, l *List) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (word, is_answer) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	// Answers first so LoadSQLite's rowid order reproduces the answer order.
	for _, w := range l.answers {
		if _, err := stmt.ExecContext(ctx, w, true); err != nil {
			return fmt.Errorf("insert %s: %w", w, err)
		}
	}
	for _, w := range l.Allowed() {
		if l.IsAnswer(w) {
			continue
		}
		if _, err := stmt.ExecContext(ctx, w, false); err != nil {
			return fmt.Errorf("insert %s: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit words: %w", err)
	}
	return nil
}
