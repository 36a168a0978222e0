package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cognitive_screen/internal/model"
)

// Store keeps the screening history of each subject.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

// RiskPoint is one session's risk score in a subject's history.
type RiskPoint struct {
	SessionID   string  `json:"session_id" yaml:"session_id"`
	SessionDate string  `json:"session_date" yaml:"session_date"`
	RiskScore   float64 `json:"risk_score" yaml:"risk_score"`
}

func Open(path string) (*Store, error) {
	conn, err := openConn(path)
	if err != nil {
		return nil, err
	}
	return &Store{conn: conn, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// SaveAnalysis stores a session result and its markers. A session id already
// stored for the subject is replaced.
func (s *Store) SaveAnalysis(subject, transcript string, a model.TranscriptAnalysis) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", errors.New("save analysis: subject is required")
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM markers WHERE analysis_id IN (SELECT id FROM analyses WHERE subject = ? AND session_id = ?)`,
		subject, a.SessionID,
	); err != nil {
		return "", fmt.Errorf("clear previous markers: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM analyses WHERE subject = ? AND session_id = ?`, subject, a.SessionID); err != nil {
		return "", fmt.Errorf("clear previous analysis: %w", err)
	}

	id := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO analyses(id, subject, session_id, session_date, transcript, risk_score, summary, result_json, created_at)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		id, subject, a.SessionID, a.SessionDate, transcript, a.RiskScore, a.Summary, string(raw), s.timestamp(),
	); err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}

	for _, m := range a.Markers {
		if _, err := tx.Exec(
			`INSERT INTO markers(analysis_id, category, name, value, threshold, flagged, severity) VALUES(?,?,?,?,?,?,?)`,
			id, string(m.Category), m.Name, m.Value, m.Threshold, m.Flagged, string(m.Severity),
		); err != nil {
			return "", fmt.Errorf("insert marker: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}

// Analysis returns a stored session result.
func (s *Store) Analysis(subject, sessionID string) (model.TranscriptAnalysis, error) {
	var raw string
	err := s.conn.QueryRow(`SELECT result_json FROM analyses WHERE subject = ? AND session_id = ?`, subject, sessionID).Scan(&raw)
	if err != nil {
		return model.TranscriptAnalysis{}, fmt.Errorf("query analysis: %w", err)
	}
	var a model.TranscriptAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return model.TranscriptAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	return a, nil
}

// Sessions returns the stored transcripts of a subject ordered by date, ready
// for a longitudinal run.
func (s *Store) Sessions(subject string) ([]model.SessionInput, error) {
	rows, err := s.conn.Query(`
		SELECT session_id, session_date, transcript
		FROM analyses
		WHERE subject = ?
		ORDER BY session_date ASC, created_at ASC
	`, subject)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []model.SessionInput
	for rows.Next() {
		var in model.SessionInput
		if err := rows.Scan(&in.SessionID, &in.Date, &in.Text); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *Store) RiskHistory(subject string) ([]RiskPoint, error) {
	rows, err := s.conn.Query(`
		SELECT session_id, session_date, risk_score
		FROM analyses
		WHERE subject = ?
		ORDER BY session_date ASC, created_at ASC
	`, subject)
	if err != nil {
		return nil, fmt.Errorf("query risk history: %w", err)
	}
	defer rows.Close()

	var out []RiskPoint
	for rows.Next() {
		var p RiskPoint
		if err := rows.Scan(&p.SessionID, &p.SessionDate, &p.RiskScore); err != nil {
			return nil, fmt.Errorf("scan risk point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveAlerts replaces the stored alerts of a subject.
func (s *Store) SaveAlerts(subject string, alerts []model.Alert) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM alerts WHERE subject = ?`, subject); err != nil {
		return fmt.Errorf("clear alerts: %w", err)
	}
	ts := s.timestamp()
	for _, a := range alerts {
		var sim sql.NullFloat64
		if a.Similarity != nil {
			sim = sql.NullFloat64{Float64: *a.Similarity, Valid: true}
		}
		if _, err := tx.Exec(
			`INSERT INTO alerts(subject, type, severity, metric, session_a, session_b, similarity, message, created_at)
			 VALUES(?,?,?,?,?,?,?,?,?)`,
			subject, a.Type, string(a.Severity), a.Metric, a.SessionA, a.SessionB, sim, a.Message, ts,
		); err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Alerts returns the stored alerts of a subject in insertion order.
func (s *Store) Alerts(subject string) ([]model.Alert, error) {
	rows, err := s.conn.Query(`
		SELECT type, severity, metric, session_a, session_b, similarity, message
		FROM alerts
		WHERE subject = ?
		ORDER BY id ASC
	`, subject)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var out []model.Alert
	for rows.Next() {
		var a model.Alert
		var sev string
		var sim sql.NullFloat64
		if err := rows.Scan(&a.Type, &sev, &a.Metric, &a.SessionA, &a.SessionB, &sim, &a.Message); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Severity = model.Severity(sev)
		if sim.Valid {
			v := sim.Float64
			a.Similarity = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CountRows(table string) (int, error) {
	if !tables[table] {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	row := s.conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
