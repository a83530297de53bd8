// Package gitinfo inspects the version-control state of a working
// directory by shelling out to git. Every query that fails degrades to
// an empty fragment; a status line with missing pieces beats a failed
// render.
package gitinfo

import (
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/ccline/internal/store"
)

// Meta is the cached git metadata bundle for a working directory.
type Meta struct {
	Branch    string `json:"branch"`
	GitDir    string `json:"git_dir"`
	RemoteURL string `json:"remote_url"`
}

// IsWorktree reports whether the metadata directory sits inside a linked
// worktree.
func (m Meta) IsWorktree() bool {
	return strings.Contains(m.GitDir, "/.git/worktrees/")
}

// RepoName derives the repository name from the origin remote URL.
func (m Meta) RepoName() string {
	if m.RemoteURL == "" {
		return ""
	}
	parts := strings.Split(m.RemoteURL, "/")
	name := parts[len(parts)-1]
	return strings.TrimSuffix(name, ".git")
}

// Inspector issues git queries for one working directory, consulting the
// session cache before shelling out.
type Inspector struct {
	dir   string
	cache *store.Cache
	ttl   time.Duration

	// run is the subprocess hook, replaced in tests.
	run func(args ...string) (string, bool)
}

// New returns an inspector for dir. cache may be nil (lookups always
// refetch), matching the cache-as-optimization contract.
func New(dir string, cache *store.Cache, ttl time.Duration) *Inspector {
	in := &Inspector{dir: dir, cache: cache, ttl: ttl}
	in.run = in.git
	return in
}

// git executes a git subcommand with the working directory as execution
// context. Non-zero exit or a missing binary yields ("", false).
func (in *Inspector) git(args ...string) (string, bool) {
	cmd := exec.Command("git", args...)
	cmd.Dir = in.dir
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// IsRepo reports whether the directory is inside a git work tree.
func (in *Inspector) IsRepo() bool {
	out, ok := in.run("rev-parse", "--is-inside-work-tree")
	return ok && out == "true"
}

// Meta returns the branch, metadata directory, and origin remote for the
// working directory, cached under a short TTL with the directory as
// discriminator so a cache written for another checkout never leaks in.
func (in *Inspector) Meta() Meta {
	if cached, ok := in.cache.Lookup(store.SlotGitInfo, in.dir, in.ttl); ok {
		var m Meta
		if err := json.Unmarshal([]byte(cached), &m); err == nil {
			return m
		}
		// Corrupt payload: fall through and refetch.
	}

	m := in.fetchMeta()
	if data, err := json.Marshal(m); err == nil {
		in.cache.Store(store.SlotGitInfo, in.dir, string(data))
	}
	return m
}

// fetchMeta batches the rev-parse queries into one git call.
func (in *Inspector) fetchMeta() Meta {
	var m Meta
	out, ok := in.run("rev-parse", "--show-toplevel", "--git-dir", "--abbrev-ref", "HEAD")
	if ok {
		lines := strings.Split(out, "\n")
		if len(lines) >= 3 {
			m.GitDir = strings.TrimSpace(lines[1])
			m.Branch = strings.TrimSpace(lines[2])
		}
	}
	if remote, ok := in.run("remote", "get-url", "origin"); ok {
		m.RemoteURL = remote
	}
	return m
}

// StatusSummary renders the working tree status fragment: file counts by
// class, net line delta, ahead/behind, and a stash marker. Each piece is
// independent; a failed query just omits its fragment.
func (in *Inspector) StatusSummary() string {
	var b strings.Builder

	var st fileStatus
	if out, ok := in.run("status", "--porcelain", "--branch"); ok {
		st = parsePorcelain(out)
		b.WriteString(st.renderCounts())
	}

	if out, ok := in.run("diff", "--numstat"); ok {
		if frag := renderLineDelta(parseNumstat(out)); frag != "" {
			b.WriteString(frag)
		}
	}

	b.WriteString(st.renderTracking())

	if out, ok := in.run("stash", "list"); ok && out != "" {
		b.WriteString(" ≡")
	}

	return b.String()
}

// fileStatus holds the porcelain classification counts and the
// ahead/behind tracking info from the branch header.
type fileStatus struct {
	added     int
	modified  int
	deleted   int
	untracked int
	ahead     int
	behind    int
}

// parsePorcelain classifies each two-character status pair from
// `git status --porcelain --branch` output and extracts ahead/behind
// counts from the `## ` header line.
func parsePorcelain(out string) fileStatus {
	var st fileStatus

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "##") {
			st.ahead = extractCount(line, "ahead ")
			st.behind = extractCount(line, "behind ")
			continue
		}
		if len(line) < 2 {
			continue
		}

		x, y := line[0], line[1]
		switch {
		case x == '?' && y == '?':
			st.untracked++
		case x == 'A' || y == 'A':
			st.added++
		case x == 'D' || y == 'D':
			st.deleted++
		default:
			st.modified++
		}
	}

	return st
}

// extractCount pulls the integer following marker from a porcelain
// branch header like `## main...origin/main [ahead 2, behind 1]`.
func extractCount(line, marker string) int {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return 0
	}
	rest := line[idx+len(marker):]
	n := 0
	for _, c := range rest {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func writeCount(b *strings.Builder, prefix string, n int) {
	if n > 0 {
		b.WriteString(" ")
		b.WriteString(prefix)
		b.WriteString(strconv.Itoa(n))
	}
}

func (st fileStatus) renderCounts() string {
	var b strings.Builder
	writeCount(&b, "+", st.added)
	writeCount(&b, "~", st.modified)
	writeCount(&b, "-", st.deleted)
	writeCount(&b, "?", st.untracked)
	return b.String()
}

func (st fileStatus) renderTracking() string {
	var b strings.Builder
	writeCount(&b, "⇡", st.ahead)
	writeCount(&b, "⇣", st.behind)
	return b.String()
}

// parseNumstat sums the per-file added/deleted line counts from
// `git diff --numstat` output and returns the net delta. Binary files
// report "-" and are skipped.
func parseNumstat(out string) int64 {
	var net int64
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		added, errA := strconv.ParseInt(fields[0], 10, 64)
		deleted, errD := strconv.ParseInt(fields[1], 10, 64)
		if errA != nil || errD != nil {
			continue
		}
		net += added - deleted
	}
	return net
}

func renderLineDelta(net int64) string {
	switch {
	case net > 0:
		return " Δ+" + strconv.FormatInt(net, 10)
	case net < 0:
		return " Δ-" + strconv.FormatInt(-net, 10)
	default:
		return ""
	}
}

