package review

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/ccline/internal/store"
)

func init() {
	// Keep rendered fragments free of escape codes so assertions compare
	// plain text.
	lipgloss.SetColorProfile(termenv.Ascii)
}

// fakeAggregator wires a canned-output subprocess hook into an Aggregator.
func fakeAggregator(cache *store.Cache, outputs map[string]string, calls *[]string) *Aggregator {
	a := New("/work/repo", cache, 60*time.Second, 30*time.Second)
	a.run = func(args ...string) (string, bool) {
		key := strings.Join(args, " ")
		if calls != nil {
			*calls = append(*calls, key)
		}
		out, ok := outputs[key]
		return out, ok
	}
	return a
}

func openTestCache(t *testing.T) *store.Cache {
	t.Helper()
	c, err := store.Open("review-test", t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestPullRequestURL(t *testing.T) {
	a := fakeAggregator(nil, map[string]string{
		`pr list --head feature --json url --jq .[0].url // ""`: "https://github.com/acme/repo/pull/7",
	}, nil)

	if got := a.PullRequestURL("feature"); got != "https://github.com/acme/repo/pull/7" {
		t.Errorf("PullRequestURL = %q", got)
	}
}

func TestPullRequestURL_EmptyBranch(t *testing.T) {
	var calls []string
	a := fakeAggregator(nil, map[string]string{}, &calls)

	if got := a.PullRequestURL(""); got != "" {
		t.Errorf("PullRequestURL(\"\") = %q", got)
	}
	if len(calls) != 0 {
		t.Errorf("detached HEAD still invoked gh: %v", calls)
	}
}

func TestPullRequestURL_CachesEmptyResult(t *testing.T) {
	cache := openTestCache(t)
	var calls []string
	a := fakeAggregator(cache, map[string]string{
		`pr list --head feature --json url --jq .[0].url // ""`: "",
	}, &calls)

	a.PullRequestURL("feature")
	a.PullRequestURL("feature")

	if len(calls) != 1 {
		t.Errorf("no-PR result was not cached, gh called %d times", len(calls))
	}
}

func TestPullRequestURL_DiscriminatorMismatchRefetches(t *testing.T) {
	cache := openTestCache(t)
	a := fakeAggregator(cache, map[string]string{
		`pr list --head main --json url --jq .[0].url // ""`:    "https://github.com/acme/repo/pull/1",
		`pr list --head feature --json url --jq .[0].url // ""`: "https://github.com/acme/repo/pull/2",
	}, nil)

	a.PullRequestURL("main")
	if got := a.PullRequestURL("feature"); got != "https://github.com/acme/repo/pull/2" {
		t.Errorf("branch switch served the old branch's URL: %q", got)
	}
}

func TestChecksSummary_Cached(t *testing.T) {
	cache := openTestCache(t)
	var calls []string
	a := fakeAggregator(cache, map[string]string{
		"pr checks --json bucket,name": `[{"bucket":"pass","name":"build"}]`,
	}, &calls)

	first := a.ChecksSummary("main")
	second := a.ChecksSummary("main")

	if first != "✓1" || second != first {
		t.Errorf("ChecksSummary = %q then %q", first, second)
	}
	if len(calls) != 1 {
		t.Errorf("gh called %d times, want 1", len(calls))
	}
}

func TestChecksSummary_GhFailure(t *testing.T) {
	a := fakeAggregator(nil, map[string]string{}, nil)
	if got := a.ChecksSummary("main"); got != "" {
		t.Errorf("ChecksSummary = %q, want empty on gh failure", got)
	}
}

func TestRenderChecks(t *testing.T) {
	tests := []struct {
		name   string
		checks []check
		want   string
	}{
		{
			"all pass",
			[]check{{"pass", "build"}, {"pass", "lint"}, {"pass", "test"}},
			"✓3",
		},
		{
			"single fail names it without count",
			[]check{{"fail", "test"}},
			"✗:test",
		},
		{
			"multi fail gets count",
			[]check{{"fail", "test"}, {"fail", "lint"}},
			"✗2:test,lint",
		},
		{
			"overflow truncates to three with ellipsis",
			[]check{{"fail", "a"}, {"fail", "b"}, {"fail", "c"}, {"fail", "d"}, {"fail", "e"}},
			"✗5:a,b,c...",
		},
		{
			"fail then pending then pass",
			[]check{{"pass", "build"}, {"pending", "deploy"}, {"fail", "test"}},
			"✗:test ○:deploy ✓1",
		},
		{
			"empty bucket treated as pending",
			[]check{{"", "deploy"}},
			"○:deploy",
		},
		{
			"no checks",
			nil,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderChecks(tt.checks); got != tt.want {
				t.Errorf("renderChecks = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseChecks_Malformed(t *testing.T) {
	if got := parseChecks("{oops"); got != nil {
		t.Errorf("parseChecks on malformed input = %v, want nil", got)
	}
}
