// Package transcript derives session metrics from a Claude Code JSONL
// transcript: context usage percentage, elapsed duration, and cumulative
// cost. Every metric is computed from the transcript alone and degrades
// to zero or absent when the transcript is missing or unusable.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/ccline/internal/config"
)

// contextWindowLines bounds the tail scan for the context percentage.
// Only the latest assistant turn matters, so the full transcript is
// never read for this metric.
const contextWindowLines = 50

// ContextPercent returns the context usage percentage for the latest
// assistant record, formatted per the display rule: one decimal place at
// or above 90%, a rounded integer below. Returns "0" when no assistant
// record with usage exists.
func ContextPercent(path string, capacity int64) string {
	if path == "" || capacity <= 0 {
		return "0"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "0"
	}

	lines := strings.Split(string(data), "\n")
	start := 0
	if len(lines) > contextWindowLines {
		start = len(lines) - contextWindowLines
	}

	var latest *RawUsage
	var latestTS int64

	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry RawEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if entryRole(&entry) != "assistant" || entry.Message == nil || entry.Message.Usage == nil {
			continue
		}
		ts, ok := parseTimestamp(entry.Timestamp)
		if !ok {
			continue
		}
		// Strict > keeps the first-seen record on timestamp ties.
		if latest == nil || ts > latestTS {
			latest = entry.Message.Usage
			latestTS = ts
		}
	}

	if latest == nil {
		return "0"
	}

	pct := math.Min(100, float64(totalTokens(latest))*100/float64(capacity))
	if pct >= 90 {
		return fmt.Sprintf("%.1f", pct)
	}
	return strconv.Itoa(int(math.Round(pct)))
}

// SessionDuration returns the elapsed milliseconds between the first and
// last timestamp-bearing records. Absent when the transcript has fewer
// than two non-blank lines or either boundary timestamp fails to parse.
func SessionDuration(path string) (int64, bool) {
	if path == "" {
		return 0, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return 0, false
	}

	first, ok := boundaryTimestamp(lines, false)
	if !ok {
		return 0, false
	}
	last, ok := boundaryTimestamp(lines, true)
	if !ok {
		return 0, false
	}

	return last - first, true
}

// boundaryTimestamp finds the first timestamp-bearing record, scanning
// from the end when reverse is set.
func boundaryTimestamp(lines []string, reverse bool) (int64, bool) {
	for i := range lines {
		idx := i
		if reverse {
			idx = len(lines) - 1 - i
		}
		var entry RawEntry
		if err := json.Unmarshal([]byte(lines[idx]), &entry); err != nil {
			continue
		}
		if len(entry.Timestamp) == 0 {
			continue
		}
		return parseTimestamp(entry.Timestamp)
	}
	return 0, false
}

// SessionCost scans the whole transcript and sums the cost of every
// assistant record against the pricing table. Absent when the model has
// no pricing or the total is exactly zero; a corrupt line never aborts
// the scan.
func SessionCost(path, modelID string, pricing *config.PricingTable) (float64, bool) {
	if path == "" || modelID == "" {
		return 0, false
	}
	if _, ok := pricing.Lookup(modelID); !ok {
		return 0, false
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer func() { _ = f.Close() }()

	var total float64

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 2*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var entry RawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entryRole(&entry) != "assistant" || entry.Message == nil || entry.Message.Usage == nil {
			continue
		}

		u := entry.Message.Usage
		cost, ok := pricing.Cost(modelID, u.InputTokens, u.OutputTokens, cacheWriteTokens(u), u.CacheReadInputTokens)
		if !ok {
			continue
		}
		total += cost
	}
	if err := scanner.Err(); err != nil {
		return 0, false
	}

	if total == 0 {
		return 0, false
	}
	return total, true
}

// parseTimestamp converts a raw timestamp to comparable milliseconds.
// Strings are parsed as RFC 3339 calendar time; integers are taken as
// already-comparable epoch values.
func parseTimestamp(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return 0, false
		}
		return ts.UnixMilli(), true
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	return 0, false
}
