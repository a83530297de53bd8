// Package preview implements the live status line preview: a small
// bubbletea loop that re-renders the line whenever the transcript file
// changes, with a periodic tick as fallback for the cached externals.
package preview

import (
	"time"

	"github.com/theirongolddev/ccline/internal/cli"
	"github.com/theirongolddev/ccline/internal/config"
	"github.com/theirongolddev/ccline/internal/snapshot"
	"github.com/theirongolddev/ccline/internal/statusline"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

// refreshEvery is the fallback re-render interval. It sits above the
// shortest lookup TTL so the preview itself doesn't defeat the cache.
const refreshEvery = 6 * time.Second

type renderedMsg string

type transcriptChangedMsg struct{}

type watchDeadMsg struct{}

type tickMsg time.Time

// App is the preview program model.
type App struct {
	snap    snapshot.Snapshot
	cfg     config.Config
	pricing *config.PricingTable
	opts    statusline.Options

	spin      spinner.Model
	line      string
	rendering bool
	watcher   *fsnotify.Watcher
}

// NewApp builds the preview model. A failed watcher setup silently
// degrades to tick-only refresh.
func NewApp(snap snapshot.Snapshot, cfg config.Config, short, noPR bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	var watcher *fsnotify.Watcher
	if snap.TranscriptPath != "" {
		if w, err := fsnotify.NewWatcher(); err == nil {
			if err := w.Add(snap.TranscriptPath); err == nil {
				watcher = w
			} else {
				_ = w.Close()
			}
		}
	}

	return App{
		snap:    snap,
		cfg:     cfg,
		pricing: config.NewPricingTable(cfg.Pricing),
		opts:    statusline.Options{Short: short, NoPR: noPR},
		spin:    sp,
		watcher: watcher,
	}
}

// Init starts the first render, the watch loop, and the tick fallback.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.render(), a.watch(), tick())
}

// render runs the full blocking render off the update loop.
func (a App) render() tea.Cmd {
	snap, cfg, pricing, opts := a.snap, a.cfg, a.pricing, a.opts
	return func() tea.Msg {
		return renderedMsg(statusline.Render(snap, cfg, pricing, opts))
	}
}

// watch blocks on the next transcript event. Re-armed after each
// delivery; a closed watcher ends the loop.
func (a App) watch() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	events := a.watcher.Events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return watchDeadMsg{}
		}
		return transcriptChangedMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles events.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if a.watcher != nil {
				_ = a.watcher.Close()
			}
			return a, tea.Quit
		case "r":
			return a.refresh()
		}

	case renderedMsg:
		a.line = string(msg)
		a.rendering = false
		return a, nil

	case transcriptChangedMsg:
		m, cmd := a.refresh()
		return m, tea.Batch(cmd, a.watch())

	case watchDeadMsg:
		return a, nil

	case tickMsg:
		m, cmd := a.refresh()
		return m, tea.Batch(cmd, tick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	return a, nil
}

// refresh starts a render unless one is already in flight.
func (a App) refresh() (tea.Model, tea.Cmd) {
	if a.rendering {
		return a, nil
	}
	a.rendering = true
	return a, a.render()
}

// View shows the current line with a spinner while a render is running.
func (a App) View() string {
	status := " "
	if a.rendering {
		status = a.spin.View()
	}

	help := cli.DimStyle.Render("r refresh • q quit")
	return "\n " + status + " " + a.line + "\n\n " + help + "\n"
}
