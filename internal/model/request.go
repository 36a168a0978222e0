package model

// SessionRequest is the input contract for single-session analysis.
type SessionRequest struct {
	Transcript  string `json:"transcript" yaml:"transcript"`
	SessionID   string `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	SessionDate string `json:"session_date,omitempty" yaml:"session_date,omitempty"`
}

// SessionInput is one element of a longitudinal request.
type SessionInput struct {
	Text      string `json:"text" yaml:"text"`
	SessionID string `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
}

// LongitudinalRequest is the input contract for longitudinal analysis.
type LongitudinalRequest struct {
	Sessions []SessionInput `json:"sessions" yaml:"sessions"`
}
