package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_no INTEGER PRIMARY KEY,
	position   INTEGER NOT NULL,
	start_year INTEGER NOT NULL,
	end_year   INTEGER,
	has_senate INTEGER NOT NULL DEFAULT 0,
	has_house  INTEGER NOT NULL DEFAULT 0,
	senate_url TEXT DEFAULT '',
	house_url  TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS scores (
	session_no INTEGER NOT NULL,
	chamber    TEXT NOT NULL,
	position   INTEGER NOT NULL,
	number     INTEGER NOT NULL,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	state      TEXT NOT NULL,
	party      TEXT NOT NULL,
	score      REAL NOT NULL,
	PRIMARY KEY (session_no, chamber, position)
);

CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	scraped_at DATETIME NOT NULL,
	source     TEXT DEFAULT '',
	sessions   INTEGER NOT NULL,
	skipped    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_scraped_at ON runs(scraped_at);
`

// SQLiteStore keeps the dataset in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (congress.Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_no, start_year, end_year, has_senate, has_house, senate_url, house_url
		 FROM sessions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds := congress.Dataset{}
	index := map[int]int{}
	for rows.Next() {
		var (
			sess                congress.Session
			end                 sql.NullInt64
			hasSenate, hasHouse bool
		)
		if err := rows.Scan(&sess.SessionNo, &sess.StartYear, &end, &hasSenate, &hasHouse, &sess.SenateURL, &sess.HouseURL); err != nil {
			return nil, err
		}
		if end.Valid {
			sess.EndYear = congress.Year(int(end.Int64))
		}
		if hasSenate {
			sess.SenateScores = []congress.Score{}
		}
		if hasHouse {
			sess.HouseScores = []congress.Score{}
		}
		index[sess.SessionNo] = len(ds)
		ds = append(ds, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadScores(ctx, ds, index); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *SQLiteStore) loadScores(ctx context.Context, ds congress.Dataset, index map[int]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_no, chamber, number, first_name, last_name, state, party, score
		 FROM scores ORDER BY session_no, chamber, position`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			no      int
			chamber string
			sc      congress.Score
		)
		if err := rows.Scan(&no, &chamber, &sc.Number, &sc.FirstName, &sc.LastName, &sc.State, &sc.Party, &sc.Score); err != nil {
			return err
		}
		i, ok := index[no]
		if !ok {
			continue
		}
		switch congress.Chamber(chamber) {
		case congress.Senate:
			ds[i].SenateScores = append(ds[i].SenateScores, sc)
		case congress.House:
			ds[i].HouseScores = append(ds[i].HouseScores, sc)
		}
	}
	return rows.Err()
}

// Save replaces every stored session in one transaction and records the run.
func (s *SQLiteStore) Save(ctx context.Context, ds congress.Dataset, meta Meta) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores; DELETE FROM sessions;`); err != nil {
		return err
	}

	sessStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sessions (session_no, position, start_year, end_year, has_senate, has_house, senate_url, house_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer sessStmt.Close()

	scoreStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scores (session_no, chamber, position, number, first_name, last_name, state, party, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer scoreStmt.Close()

	for pos, sess := range ds {
		var end any
		if sess.EndYear != nil {
			end = *sess.EndYear
		}
		if _, err := sessStmt.ExecContext(ctx, sess.SessionNo, pos, sess.StartYear, end,
			sess.SenateScores != nil, sess.HouseScores != nil, sess.SenateURL, sess.HouseURL); err != nil {
			return fmt.Errorf("session %d: %w", sess.SessionNo, err)
		}
		for _, c := range congress.Chambers {
			scores, _ := sess.Scores(c)
			for i, sc := range scores {
				if _, err := scoreStmt.ExecContext(ctx, sess.SessionNo, string(c), i,
					sc.Number, sc.FirstName, sc.LastName, sc.State, string(sc.Party), sc.Score); err != nil {
					return fmt.Errorf("session %d %s[%d]: %w", sess.SessionNo, c, i, err)
				}
			}
		}
	}

	if meta.RunID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO runs (run_id, scraped_at, source, sessions, skipped) VALUES (?, ?, ?, ?, ?)`,
			meta.RunID, meta.ScrapedAt, meta.Source, meta.Sessions, meta.Skipped); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LastRun returns the most recent recorded run, if any.
func (s *SQLiteStore) LastRun(ctx context.Context) (*Meta, error) {
	var m Meta
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, scraped_at, source, sessions, skipped FROM runs ORDER BY scraped_at DESC LIMIT 1`).
		Scan(&m.RunID, &m.ScrapedAt, &m.Source, &m.Sessions, &m.Skipped)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
