// Package review resolves the open pull request for a branch and
// summarizes its CI check results, memoized through the session cache.
// Any failure from the gh CLI yields an empty fragment, never an error.
package review

import (
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/ccline/internal/cli"
	"github.com/theirongolddev/ccline/internal/store"
)

// maxNamedChecks bounds how many check names a bucket displays.
const maxNamedChecks = 3

// Aggregator issues gh queries for one working directory.
type Aggregator struct {
	dir       string
	cache     *store.Cache
	urlTTL    time.Duration
	checksTTL time.Duration

	// run is the subprocess hook, replaced in tests.
	run func(args ...string) (string, bool)
}

// New returns an aggregator for dir. cache may be nil.
func New(dir string, cache *store.Cache, urlTTL, checksTTL time.Duration) *Aggregator {
	a := &Aggregator{dir: dir, cache: cache, urlTTL: urlTTL, checksTTL: checksTTL}
	a.run = a.gh
	return a
}

// gh executes a gh subcommand with the working directory as execution
// context. Non-zero exit or a missing binary yields ("", false).
func (a *Aggregator) gh(args ...string) (string, bool) {
	cmd := exec.Command("gh", args...)
	cmd.Dir = a.dir
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// PullRequestURL resolves the open PR URL for a branch, cached with the
// branch as discriminator. An empty result is cached too: "no PR open"
// is just as expensive to rediscover.
func (a *Aggregator) PullRequestURL(branch string) string {
	if branch == "" {
		return ""
	}
	if cached, ok := a.cache.Lookup(store.SlotPRURL, branch, a.urlTTL); ok {
		return cached
	}

	url, _ := a.run("pr", "list", "--head", branch, "--json", "url", "--jq", `.[0].url // ""`)
	a.cache.Store(store.SlotPRURL, branch, url)
	return url
}

// ChecksSummary fetches and renders the PR check status for a branch,
// cached with the branch as discriminator. The rendered fragment is
// cached rather than the raw payload; check status churns fast, so the
// TTL is shorter than the URL's.
func (a *Aggregator) ChecksSummary(branch string) string {
	if branch == "" {
		return ""
	}
	if cached, ok := a.cache.Lookup(store.SlotPRChecks, branch, a.checksTTL); ok {
		return cached
	}

	summary := ""
	if out, ok := a.run("pr", "checks", "--json", "bucket,name"); ok {
		summary = renderChecks(parseChecks(out))
	}
	a.cache.Store(store.SlotPRChecks, branch, summary)
	return summary
}

// check is one CI check result from gh.
type check struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

func parseChecks(raw string) []check {
	var checks []check
	if err := json.Unmarshal([]byte(raw), &checks); err != nil {
		return nil
	}
	return checks
}

// renderChecks groups checks by outcome bucket and renders fail, then
// pending, then pass. Fail and pending name up to three checks with an
// ellipsis overflow and a count prefix only for multi-member buckets;
// pass shows only its count.
func renderChecks(checks []check) string {
	groups := make(map[string][]string)
	for _, c := range checks {
		bucket := c.Bucket
		if bucket == "" {
			bucket = "pending"
		}
		groups[bucket] = append(groups[bucket], c.Name)
	}

	var parts []string
	if fail := groups["fail"]; len(fail) > 0 {
		parts = append(parts, cli.FailStyle.Render("✗"+bucketDetail(fail)))
	}
	if pending := groups["pending"]; len(pending) > 0 {
		parts = append(parts, cli.PendingStyle.Render("○"+bucketDetail(pending)))
	}
	if pass := groups["pass"]; len(pass) > 0 {
		parts = append(parts, cli.PassStyle.Render("✓"+strconv.Itoa(len(pass))))
	}

	return strings.Join(parts, " ")
}

// bucketDetail renders the count-and-names body shared by the fail and
// pending buckets.
func bucketDetail(names []string) string {
	shown := names
	more := ""
	if len(shown) > maxNamedChecks {
		shown = shown[:maxNamedChecks]
		more = "..."
	}
	count := ""
	if len(names) > 1 {
		count = strconv.Itoa(len(names))
	}
	return count + ":" + strings.Join(shown, ",") + more
}
