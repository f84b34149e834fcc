// Package store is the SQLite-backed persistence backend of spec.md §6:
// atomic put/get/list/delete by opaque id over puzzle records. It
// replaces the teacher's in-memory sync.RWMutex-guarded maps the way
// _examples/roach88-nysm/brutalist/internal/store backs its event log —
// a single-writer *sql.DB with WAL enabled, schema embedded via
// go:embed, and one row per record.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/bodul/crossword/internal/xword"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for puzzle records.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at path, applies pragmas and
// the schema, and returns a ready Store. Idempotent: safe to call
// against an existing database file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite supports one writer at a time; avoid SQLITE_BUSY by keeping
	// a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("exec %q: %w", p, err)
		}
	}
	return nil
}

// Put persists rec, replacing any existing row with the same id.
func (s *Store) Put(ctx context.Context, rec xword.Record) error {
	gridJSON, err := json.Marshal(rec.Grid)
	if err != nil {
		return internalErr("marshal grid", err)
	}
	wordsJSON, err := json.Marshal(rec.Words)
	if err != nil {
		return internalErr("marshal words", err)
	}
	cluesJSON, err := json.Marshal(rec.Clues)
	if err != nil {
		return internalErr("marshal clues", err)
	}
	answersJSON, err := json.Marshal(rec.Answers)
	if err != nil {
		return internalErr("marshal answers", err)
	}

	title := title(rec)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO puzzles (id, title, size, width, height, grid_json, words_json, clues_json, answers_json, word_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, size=excluded.size, width=excluded.width, height=excluded.height,
			grid_json=excluded.grid_json, words_json=excluded.words_json, clues_json=excluded.clues_json,
			answers_json=excluded.answers_json, word_count=excluded.word_count, created_at=excluded.created_at
	`, rec.ID, title, rec.Size, rec.Size, rec.Size, gridJSON, wordsJSON, cluesJSON, answersJSON, len(rec.Words), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return internalErr("insert puzzle", err)
	}

	logrus.WithFields(logrus.Fields{"id": rec.ID, "size": rec.Size, "word_count": len(rec.Words)}).Info("store: put puzzle")
	return nil
}

// Get returns the player-facing record (answers stripped) for id, or a
// KindNotFound error.
func (s *Store) Get(ctx context.Context, id string) (xword.Record, error) {
	rec, err := s.getWithAnswers(ctx, id)
	if err != nil {
		return xword.Record{}, err
	}
	return rec.Strip(), nil
}

// getWithAnswers is the internal accessor used by Check and Hint, which
// need the answer table per spec.md §3 ("only consulted by check and
// hint").
func (s *Store) getWithAnswers(ctx context.Context, id string) (xword.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, size, grid_json, words_json, clues_json, answers_json, created_at
		FROM puzzles WHERE id = ?
	`, id)

	var (
		rec         xword.Record
		gridJSON    []byte
		wordsJSON   []byte
		cluesJSON   []byte
		answersJSON []byte
		createdAt   string
	)
	if err := row.Scan(&rec.ID, &rec.Size, &gridJSON, &wordsJSON, &cluesJSON, &answersJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return xword.Record{}, notFoundErr(id)
		}
		return xword.Record{}, internalErr("scan puzzle", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return xword.Record{}, internalErr("parse created_at", err)
	}
	rec.CreatedAt = ts

	if err := json.Unmarshal(gridJSON, &rec.Grid); err != nil {
		return xword.Record{}, internalErr("unmarshal grid", err)
	}
	if err := json.Unmarshal(wordsJSON, &rec.Words); err != nil {
		return xword.Record{}, internalErr("unmarshal words", err)
	}
	if err := json.Unmarshal(cluesJSON, &rec.Clues); err != nil {
		return xword.Record{}, internalErr("unmarshal clues", err)
	}
	if err := json.Unmarshal(answersJSON, &rec.Answers); err != nil {
		return xword.Record{}, internalErr("unmarshal answers", err)
	}
	return rec, nil
}

// List returns every stored puzzle's summary, newest first.
func (s *Store) List(ctx context.Context) ([]xword.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, size, word_count, created_at FROM puzzles ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, internalErr("list puzzles", err)
	}
	defer rows.Close()

	var out []xword.Summary
	for rows.Next() {
		var sum xword.Summary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Size, &sum.WordCount, &createdAt); err != nil {
			return nil, internalErr("scan puzzle summary", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, internalErr("parse created_at", err)
		}
		sum.CreatedAt = ts
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, internalErr("iterate puzzles", err)
	}
	return out, nil
}

// Delete atomically removes the puzzle with id, or returns KindNotFound
// if it does not exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM puzzles WHERE id = ?`, id)
	if err != nil {
		return internalErr("delete puzzle", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return internalErr("rows affected", err)
	}
	if n == 0 {
		return notFoundErr(id)
	}
	logrus.WithField("id", id).Info("store: deleted puzzle")
	return nil
}

// Check loads the full record for id (including its answer table) and
// compares userAnswers against it. Exported so callers never need
// getWithAnswers directly: answers only ever leave the store through
// Check and Hint, never through Get.
func (s *Store) Check(ctx context.Context, id string, userAnswers map[string]string) (xword.CheckResult, error) {
	rec, err := s.getWithAnswers(ctx, id)
	if err != nil {
		return xword.CheckResult{}, err
	}
	return xword.Check(rec, userAnswers), nil
}

// Hint loads the full record for id and reveals the first grapheme of
// the answer at (number, orientation).
func (s *Store) Hint(ctx context.Context, id string, number int, orientation xword.Orientation) (xword.HintResult, error) {
	rec, err := s.getWithAnswers(ctx, id)
	if err != nil {
		return xword.HintResult{}, err
	}
	return xword.Hint(rec, number, orientation)
}

func title(rec xword.Record) string {
	if len(rec.Clues.Across) > 0 {
		return rec.Clues.Across[0].Clue
	}
	if len(rec.Clues.Down) > 0 {
		return rec.Clues.Down[0].Clue
	}
	return "Untitled"
}

func notFoundErr(id string) error {
	return &xword.Error{Kind: xword.KindNotFound, Msg: fmt.Sprintf("no puzzle with id %q", id)}
}

func internalErr(op string, cause error) error {
	return &xword.Error{Kind: xword.KindInternal, Msg: op, Err: cause}
}
