package transcript

import "encoding/json"

// RawEntry represents a single line in a Claude Code JSONL transcript.
// Two event shapes occur in the wild: full entries carry message.role,
// condensed entries carry only a top-level type.
type RawEntry struct {
	Type      string          `json:"type,omitempty"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Message   *RawMessage     `json:"message,omitempty"`
}

// RawMessage represents the message envelope.
type RawMessage struct {
	Role  string    `json:"role,omitempty"`
	Usage *RawUsage `json:"usage,omitempty"`
}

// RawUsage holds token counts from the API response.
type RawUsage struct {
	InputTokens              int64          `json:"input_tokens"`
	OutputTokens             int64          `json:"output_tokens"`
	CacheCreationInputTokens int64          `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64          `json:"cache_read_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation,omitempty"`
}

// CacheCreation holds the breakdown of cache write tokens by TTL bucket.
type CacheCreation struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens"`
}

// entryRole normalizes the two accepted record shapes to one canonical
// role string: message.role when present, else the top-level type.
func entryRole(e *RawEntry) string {
	if e.Message != nil && e.Message.Role != "" {
		return e.Message.Role
	}
	return e.Type
}

// cacheWriteTokens returns the total cache write tokens for a usage
// block, preferring the per-bucket breakdown when present.
func cacheWriteTokens(u *RawUsage) int64 {
	if u.CacheCreation != nil {
		return u.CacheCreation.Ephemeral5mInputTokens + u.CacheCreation.Ephemeral1hInputTokens
	}
	return u.CacheCreationInputTokens
}

// totalTokens returns every token charged against the context window.
func totalTokens(u *RawUsage) int64 {
	return u.InputTokens + u.OutputTokens + u.CacheReadInputTokens + cacheWriteTokens(u)
}
