package domain

import "time"

// Snapshot is the per-session state persisted between host round-trips.
// Config is the last payload that rendered successfully, so a session can be
// rebuilt after the process restarts.
// Sealed carries the whole snapshot encrypted when a store encrypts at rest;
// the other fields are then left empty.
type Snapshot struct {
	SessionID string        `json:"session_id"`
	Collapsed []string      `json:"collapsed"`
	Config    *RenderConfig `json:"config,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
	Sealed    string        `json:"sealed,omitempty"`
}

// NewSnapshot creates an empty snapshot for a session.
func NewSnapshot(sessionID string) *Snapshot {
	return &Snapshot{
		SessionID: sessionID,
		Collapsed: []string{},
	}
}

// Clone returns a deep copy, so stores never share slices with callers.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Collapsed = append([]string{}, s.Collapsed...)
	if s.Config != nil {
		cfg := *s.Config
		if s.Config.Options != nil {
			cfg.Options = append([]Item{}, s.Config.Options...)
		}
		if s.Config.CollapsedState != nil {
			cfg.CollapsedState = append([]string{}, s.Config.CollapsedState...)
		}
		out.Config = &cfg
	}
	return &out
}
