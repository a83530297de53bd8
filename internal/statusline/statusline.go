// Package statusline assembles the final one-line session status from
// the transcript metrics, git fragments, and review status.
package statusline

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/ccline/internal/cli"
	"github.com/theirongolddev/ccline/internal/config"
	"github.com/theirongolddev/ccline/internal/gitinfo"
	"github.com/theirongolddev/ccline/internal/review"
	"github.com/theirongolddev/ccline/internal/snapshot"
	"github.com/theirongolddev/ccline/internal/store"
	"github.com/theirongolddev/ccline/internal/transcript"
)

// Options are the per-invocation display switches.
type Options struct {
	// Short elides the path when the directory is the standard project
	// location for the repository.
	Short bool
	// NoPR disables the review-status fetch (the PR URL is still shown).
	NoPR bool
}

// Fragments holds every prebuilt piece of the line. Empty fragments are
// skipped during assembly; only ordering and delimiters live here.
type Fragments struct {
	Dir       string // display path, "" when elided
	Branch    string
	GitStatus string
	Worktree  bool
	PR        string
	Model     string
	Percent   string
	Duration  string
	Cost      string
	Lines     string
}

// Render gathers all fragments for the snapshot and composes the line.
// It never fails: every degraded input shrinks the output instead.
func Render(snap snapshot.Snapshot, cfg config.Config, pricing *config.PricingTable, opts Options) string {
	var f Fragments

	if snap.Model.DisplayName != "" {
		f.Model = cli.ModelStyle.Render(snap.Model.DisplayName)
	}

	pct := transcript.ContextPercent(snap.TranscriptPath, snap.Capacity(cfg.General.ContextWindow))
	f.Percent = cli.PercentStyle(pct).Render(pct + "%")

	// A wholly absent working directory short-circuits to the minimal
	// fallback display.
	dir := snap.Workspace.CurrentDir
	if dir == "" {
		return cli.PathStyle.Render("~")
	}

	if ms, ok := transcript.SessionDuration(snap.TranscriptPath); ok {
		f.Duration = cli.MutedStyle.Render(cli.FormatDurationMs(ms))
	}

	if cost, ok := transcript.SessionCost(snap.TranscriptPath, snap.Model.ID, pricing); ok {
		f.Cost = cli.CostStyle(cost).Render(cli.FormatCost(cost))
	}

	f.Lines = linesFragment(snap.Cost)

	cache, err := store.Open(snap.SessionID, cfg.General.CacheDir)
	if err != nil {
		cache = nil // degrade to uncached lookups
	}
	defer cache.Close()

	inspector := gitinfo.New(dir, cache, time.Duration(cfg.TTL.GitSecs)*time.Second)
	if inspector.IsRepo() {
		meta := inspector.Meta()
		f.Branch = meta.Branch
		f.Worktree = meta.IsWorktree()
		f.GitStatus = inspector.StatusSummary()
		f.Dir = displayDir(dir, meta.RepoName(), opts.Short)

		agg := review.New(dir, cache, time.Duration(cfg.TTL.PRURLSecs)*time.Second, time.Duration(cfg.TTL.PRChecksSecs)*time.Second)
		url := agg.PullRequestURL(meta.Branch)
		status := ""
		if !opts.NoPR && url != "" {
			status = agg.ChecksSummary(meta.Branch)
		}
		f.PR = joinNonEmpty(" ", url, status)
	} else {
		f.Dir = homeRelative(dir)
	}

	return Compose(f)
}

// Compose assembles the fragments in display order: path [branch+status]
// then bullet-delimited PR, model, context, duration, cost, lines.
func Compose(f Fragments) string {
	components := joinNonEmpty(
		" "+cli.DimStyle.Render("•")+" ",
		f.PR, f.Model, f.Percent, f.Duration, f.Cost, f.Lines,
	)
	if components != "" {
		components = " " + cli.DimStyle.Render("•") + " " + components
	}

	if f.Branch == "" && !f.Worktree {
		// Non-repository directory: just the path and the components.
		return cli.PathStyle.Render(f.Dir) + components
	}

	branch := f.Branch
	bracketStyle := cli.BranchStyle
	if f.Worktree {
		bracketStyle = cli.WorktreeStyle
		// The marker replaces the branch when it duplicates the
		// worktree's own directory name.
		if branch == filepath.Base(strings.TrimSuffix(f.Dir, "/")) || branch == "" {
			branch = "↟"
		} else {
			branch += "↟"
		}
	}

	bracket := bracketStyle.Render("[" + branch + f.GitStatus + "]")
	if f.Dir == "" {
		return bracket + components
	}
	return cli.PathStyle.Render(f.Dir+" ") + bracket + components
}

// displayDir applies the short-mode elision rule: hide the path only
// when it is the standard project location for the repository.
func displayDir(dir, repoName string, short bool) string {
	if short && repoName != "" {
		home, _ := os.UserHomeDir()
		if dir == filepath.Join(home, "Projects", repoName) {
			return ""
		}
	}
	return homeRelative(dir)
}

// homeRelative replaces the home directory prefix with ~.
func homeRelative(dir string) string {
	home, _ := os.UserHomeDir()
	if home != "" && strings.HasPrefix(dir, home) {
		return "~" + strings.TrimPrefix(dir, home)
	}
	return dir
}

// linesFragment renders the host-reported line delta, when supplied.
func linesFragment(cost *snapshot.Cost) string {
	if cost == nil || (cost.TotalLinesAdded == 0 && cost.TotalLinesRemoved == 0) {
		return ""
	}
	added := cli.PassStyle.Render("+" + strconv.FormatInt(cost.TotalLinesAdded, 10))
	removed := cli.FailStyle.Render("-" + strconv.FormatInt(cost.TotalLinesRemoved, 10))
	return added + "/" + removed
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
