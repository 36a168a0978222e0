package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS analyses (
    id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    session_id TEXT NOT NULL,
    session_date TEXT NOT NULL,
    transcript TEXT NOT NULL,
    risk_score REAL NOT NULL,
    summary TEXT,
    result_json TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE(subject, session_id)
);

CREATE TABLE IF NOT EXISTS markers (
    id INTEGER PRIMARY KEY,
    analysis_id TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
    category TEXT,
    name TEXT,
    value REAL,
    threshold REAL,
    flagged INTEGER,
    severity TEXT
);

CREATE TABLE IF NOT EXISTS alerts (
    id INTEGER PRIMARY KEY,
    subject TEXT NOT NULL,
    type TEXT,
    severity TEXT,
    metric TEXT,
    session_a TEXT,
    session_b TEXT,
    similarity REAL,
    message TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_subject_date ON analyses(subject, session_date);
`

var tables = map[string]bool{"analyses": true, "markers": true, "alerts": true}

func openConn(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps writes serialized on the sqlite file.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := conn.Exec(SchemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return conn, nil
}
