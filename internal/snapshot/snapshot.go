// Package snapshot decodes the session state object Claude Code pipes to
// status line commands on stdin.
package snapshot

import (
	"encoding/json"
	"io"
)

// Snapshot is the one-shot session state read from stdin.
type Snapshot struct {
	SessionID      string         `json:"session_id"`
	TranscriptPath string         `json:"transcript_path"`
	Workspace      Workspace      `json:"workspace"`
	Model          Model          `json:"model"`
	Cost           *Cost          `json:"cost,omitempty"`
	ContextWindow  *ContextWindow `json:"context_window,omitempty"`
}

// Workspace identifies where the session is running.
type Workspace struct {
	CurrentDir string `json:"current_dir"`
	ProjectDir string `json:"project_dir,omitempty"`
}

// Model identifies the active model.
type Model struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Cost carries the host's own running totals, when it supplies them.
type Cost struct {
	TotalCostUSD      float64 `json:"total_cost_usd"`
	TotalLinesAdded   int64   `json:"total_lines_added"`
	TotalLinesRemoved int64   `json:"total_lines_removed"`
}

// ContextWindow carries the dynamic context capacity, when supplied.
type ContextWindow struct {
	ContextWindowSize int64 `json:"context_window_size"`
}

// Read decodes a snapshot from r. A missing or malformed payload yields
// the zero snapshot: every field the render path touches degrades to an
// empty fragment rather than an error.
func Read(r io.Reader) Snapshot {
	var s Snapshot
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}
	}
	return s
}

// Capacity returns the context window size to use for percentage math:
// the snapshot's dynamic value when present, else fallback.
func (s Snapshot) Capacity(fallback int64) int64 {
	if s.ContextWindow != nil && s.ContextWindow.ContextWindowSize > 0 {
		return s.ContextWindow.ContextWindowSize
	}
	return fallback
}
