package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/ftahirops/ttop/engine"
	"github.com/ftahirops/ttop/model"
)

type tickMsg time.Time

// App is the fullscreen bubbletea front end. Every tick produces one
// complete frame; View repaints it wholesale, there is no partial
// redraw or diffing.
type App struct {
	eng      *engine.Engine
	interval time.Duration
	topN     int
	log      zerolog.Logger

	width  int
	height int

	snap  *model.Snapshot
	rates map[int32]float64
	stale bool // last tick failed, frame may lag the host
}

// NewApp creates the TUI front end.
func NewApp(eng *engine.Engine, interval time.Duration, topN int, log zerolog.Logger) App {
	return App{eng: eng, interval: interval, topN: topN, log: log}
}

// Init fires an immediate first tick so the screen is not blank for a
// full interval.
func (a App) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

// Update handles resize, quit keys, and the sampling tick.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		}
		return a, nil

	case tickMsg:
		snap, rates, err := a.eng.Tick(context.Background())
		if err != nil {
			// Keep the previous frame; the loop retries next tick.
			a.log.Warn().Err(err).Msg("tick skipped")
			a.stale = true
		} else {
			a.snap = snap
			a.rates = rates
			a.stale = false
		}
		return a, tea.Tick(a.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return a, nil
}

// View renders the latest frame with a styled banner and table header.
func (a App) View() string {
	if a.snap == nil {
		return dimStyle.Render("collecting first sample...")
	}

	lines := FrameLines(a.snap, a.rates, a.eng.Cores(), a.topN)
	if len(lines) > 0 {
		lines[0] = titleStyle.Render(lines[0])
	}
	// Line layout is fixed: the table header follows the blank line.
	for i, l := range lines {
		if l == "" && i+1 < len(lines) {
			lines[i+1] = headerStyle.Render(lines[i+1])
			break
		}
	}

	footer := dimStyle.Render("q: quit")
	if a.stale {
		footer = warnStyle.Render("counters unavailable, showing last frame") + "  " + footer
	}
	return strings.Join(lines, "\n") + "\n\n" + footer
}
