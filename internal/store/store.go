// Package store handles SQLite persistence of dictionary word lists.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/solver"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for imported word lists.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			word TEXT NOT NULL,
			mask INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_words_source ON words(source, id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceWords swaps the words stored under source for the given list,
// keeping list order. It returns the number of rows written.
func (s *Store) ReplaceWords(ctx context.Context, source string, words []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM words WHERE source = ?`, source); err != nil {
		return 0, err
	}

	var stmt *sql.Stmt
	stmt, err = tx.PrepareContext(ctx, `INSERT INTO words (source, word, mask) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, word := range words {
		if _, err = stmt.ExecContext(ctx, source, word, int64(solver.LetterMask(word))); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(words), nil
}

// Words returns every word stored under source in insertion order.
func (s *Store) Words(ctx context.Context, source string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words WHERE source = ? ORDER BY id ASC`, source)
	if err != nil {
		return nil, err
	}
	return scanWords(rows)
}

// Candidates returns the words under source whose letters all belong to the
// puzzle and that contain its center, in insertion order. The mask test is a
// pre-filter; callers still rank the result with the solver.
func (s *Store) Candidates(ctx context.Context, source string, p model.Puzzle) ([]string, error) {
	all := int64(solver.LetterMask(p.Letters))
	center := int64(solver.LetterMask(string(p.Center)))
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words
		 WHERE source = ? AND (mask & ~?) = 0 AND (mask & ?) = ?
		 ORDER BY id ASC`,
		source, all, center, center)
	if err != nil {
		return nil, err
	}
	return scanWords(rows)
}

// Sources lists imported sources with their word counts.
func (s *Store) Sources(ctx context.Context) ([]model.SourceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM words GROUP BY source ORDER BY source ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SourceInfo
	for rows.Next() {
		var info model.SourceInfo
		if err := rows.Scan(&info.Source, &info.Words); err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanWords(rows *sql.Rows) ([]string, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
