package gitinfo

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/ccline/internal/store"
)

// fakeInspector wires a canned-output subprocess hook into an Inspector.
func fakeInspector(cache *store.Cache, outputs map[string]string, calls *[]string) *Inspector {
	in := New("/work/repo", cache, 5*time.Second)
	in.run = func(args ...string) (string, bool) {
		key := strings.Join(args, " ")
		if calls != nil {
			*calls = append(*calls, key)
		}
		out, ok := outputs[key]
		return out, ok
	}
	return in
}

func TestIsRepo(t *testing.T) {
	in := fakeInspector(nil, map[string]string{
		"rev-parse --is-inside-work-tree": "true",
	}, nil)
	if !in.IsRepo() {
		t.Error("IsRepo = false inside a work tree")
	}

	in = fakeInspector(nil, map[string]string{}, nil)
	if in.IsRepo() {
		t.Error("IsRepo = true when git fails")
	}
}

func TestMeta_Fetch(t *testing.T) {
	in := fakeInspector(nil, map[string]string{
		"rev-parse --show-toplevel --git-dir --abbrev-ref HEAD": "/work/repo\n/work/repo/.git\nmain",
		"remote get-url origin":                                 "git@github.com:acme/repo.git",
	}, nil)

	m := in.Meta()
	if m.Branch != "main" {
		t.Errorf("Branch = %q", m.Branch)
	}
	if m.GitDir != "/work/repo/.git" {
		t.Errorf("GitDir = %q", m.GitDir)
	}
	if m.RepoName() != "repo" {
		t.Errorf("RepoName = %q", m.RepoName())
	}
	if m.IsWorktree() {
		t.Error("IsWorktree = true for a primary checkout")
	}
}

func TestMeta_Worktree(t *testing.T) {
	m := Meta{GitDir: "/work/repo/.git/worktrees/feature"}
	if !m.IsWorktree() {
		t.Error("IsWorktree = false for a linked worktree git dir")
	}
}

func TestMeta_Cached(t *testing.T) {
	cache, err := store.Open("gitinfo-test", t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(cache.Close)

	var calls []string
	in := fakeInspector(cache, map[string]string{
		"rev-parse --show-toplevel --git-dir --abbrev-ref HEAD": "/work/repo\n/work/repo/.git\nmain",
		"remote get-url origin":                                 "https://github.com/acme/repo",
	}, &calls)

	first := in.Meta()
	fetchCalls := len(calls)
	second := in.Meta()

	if len(calls) != fetchCalls {
		t.Errorf("second Meta call hit git again: %v", calls[fetchCalls:])
	}
	if first != second {
		t.Errorf("cached Meta differs: %+v vs %+v", first, second)
	}
}

func TestMeta_CorruptCacheRefetches(t *testing.T) {
	cache, err := store.Open("gitinfo-corrupt", t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(cache.Close)
	cache.Store(store.SlotGitInfo, "/work/repo", "{not json")

	in := fakeInspector(cache, map[string]string{
		"rev-parse --show-toplevel --git-dir --abbrev-ref HEAD": "/work/repo\n/work/repo/.git\nmain",
	}, nil)

	if got := in.Meta(); got.Branch != "main" {
		t.Errorf("corrupt cache entry was not refetched: %+v", got)
	}
}

func TestParsePorcelain(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want fileStatus
	}{
		{
			"mixed",
			"## main...origin/main [ahead 2, behind 1]\n M file.go\nA  new.go\n D gone.go\n?? scratch.txt",
			fileStatus{added: 1, modified: 1, deleted: 1, untracked: 1, ahead: 2, behind: 1},
		},
		{
			"clean",
			"## main",
			fileStatus{},
		},
		{
			"ahead only",
			"## main...origin/main [ahead 12]",
			fileStatus{ahead: 12},
		},
		{
			"staged and unstaged modify both count once",
			"## main\nMM file.go",
			fileStatus{modified: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePorcelain(tt.out); got != tt.want {
				t.Errorf("parsePorcelain = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseNumstat(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want int64
	}{
		{"net positive", "10\t3\tfile.go\n5\t0\tother.go", 12},
		{"net negative", "1\t20\tfile.go", -19},
		{"binary skipped", "-\t-\timage.png\n4\t1\tfile.go", 3},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseNumstat(tt.out); got != tt.want {
				t.Errorf("parseNumstat = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderLineDelta(t *testing.T) {
	if got := renderLineDelta(42); got != " Δ+42" {
		t.Errorf("renderLineDelta(42) = %q", got)
	}
	if got := renderLineDelta(-7); got != " Δ-7" {
		t.Errorf("renderLineDelta(-7) = %q", got)
	}
	if got := renderLineDelta(0); got != "" {
		t.Errorf("renderLineDelta(0) = %q, want empty", got)
	}
}

func TestStatusSummary(t *testing.T) {
	in := fakeInspector(nil, map[string]string{
		"status --porcelain --branch": "## main...origin/main [ahead 1]\nA  new.go\n M file.go\n?? x",
		"diff --numstat":              "12\t2\tfile.go",
		"stash list":                  "stash@{0}: WIP on main",
	}, nil)

	got := in.StatusSummary()
	want := " +1 ~1 ?1 Δ+10 ⇡1 ≡"
	if got != want {
		t.Errorf("StatusSummary = %q, want %q", got, want)
	}
}

func TestStatusSummary_CleanTree(t *testing.T) {
	in := fakeInspector(nil, map[string]string{
		"status --porcelain --branch": "## main",
		"diff --numstat":              "",
		"stash list":                  "",
	}, nil)

	if got := in.StatusSummary(); got != "" {
		t.Errorf("StatusSummary = %q, want empty for a clean tree", got)
	}
}

func TestStatusSummary_PartialFailure(t *testing.T) {
	// numstat fails, the rest still renders.
	in := fakeInspector(nil, map[string]string{
		"status --porcelain --branch": "## main\n M file.go",
	}, nil)

	if got := in.StatusSummary(); got != " ~1" {
		t.Errorf("StatusSummary = %q, want %q", got, " ~1")
	}
}
