// Package replay plays a parsed trace back in the terminal, one status per
// tick, with the car drawn over the track and a running reward graph.
package replay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/racelog/internal/telemetry"
	"github.com/san-kum/racelog/internal/viz"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	sideStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type Options struct {
	FPS    int
	Loop   bool
	Width  int
	Height int
	Border int
	Theme  string
}

type Model struct {
	track   *telemetry.Track
	scene   *viz.Scene
	theme   viz.Theme
	tally   *viz.Tally
	scores  []float64
	speeds  []float64
	fps     int
	loop    bool
	pos     int
	running bool
	done    bool
}

func New(track *telemetry.Track, opts Options) (Model, error) {
	if len(track.Statuses) == 0 {
		return Model{}, telemetry.ErrNoStatuses
	}
	if opts.FPS <= 0 {
		return Model{}, fmt.Errorf("replay: fps must be positive, got %d", opts.FPS)
	}
	scene, err := viz.NewScene(track, opts.Width, opts.Height, opts.Border)
	if err != nil {
		return Model{}, err
	}
	theme, ok := viz.GetTheme(opts.Theme)
	if !ok {
		theme = viz.ThemeClassic
	}

	m := Model{
		track:   track,
		scene:   scene,
		theme:   theme,
		tally:   viz.NewTally(),
		scores:  make([]float64, 0, len(track.Statuses)),
		fps:     opts.FPS,
		loop:    opts.Loop,
		running: true,
	}
	m.show(0)
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.done {
				m.restart()
			} else {
				m.running = !m.running
			}
		case "r":
			m.restart()
		case "[":
			m.running = false
			m.scrub(-1)
		case "]":
			m.running = false
			m.scrub(1)
		case "t":
			m.theme = viz.NextTheme(m.theme.Name)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// show draws status i with the trail leading to it and counts it.
func (m *Model) show(i int) {
	m.pos = i
	s := m.track.Statuses[i]
	m.scene.Frame(m.track.Statuses[:i+1], m.tally)
	m.scores = append(m.scores, s.Score)
	m.speeds = append(m.speeds, s.Speed)
}

func (m *Model) advance() {
	next := m.pos + 1
	if next < len(m.track.Statuses) {
		m.show(next)
		return
	}
	if m.loop {
		m.tally.Reset()
		m.scores = m.scores[:0]
		m.speeds = m.speeds[:0]
		m.show(0)
		return
	}
	m.running = false
	m.done = true
}

// scrub moves without touching the tally.
func (m *Model) scrub(dir int) {
	next := m.pos + dir
	if next < 0 || next >= len(m.track.Statuses) {
		return
	}
	m.pos = next
	m.scene.Frame(m.track.Statuses[:next+1], nil)
}

func (m *Model) restart() {
	m.tally.Reset()
	m.scores = m.scores[:0]
	m.speeds = m.speeds[:0]
	m.done = false
	m.running = true
	m.show(0)
}

func (m Model) Pos() int { return m.pos }
func (m Model) Running() bool { return m.running }
func (m Model) Done() bool { return m.done }
func (m Model) Tally() viz.Tally { return *m.tally }
func (m Model) Theme() viz.Theme { return m.theme }

func (m Model) View() string {
	s := m.track.Statuses[m.pos]

	var side strings.Builder
	side.WriteString(viz.Title.Render("DEEPRACER REPLAY") + "\n")
	switch {
	case m.done:
		side.WriteString(viz.StatusPaused.Render("FINISHED"))
	case m.running:
		side.WriteString(viz.StatusRunning.Render("PLAYING"))
	default:
		side.WriteString(viz.StatusPaused.Render("PAUSED"))
	}
	side.WriteString(fmt.Sprintf("  %d/%d\n", m.pos+1, len(m.track.Statuses)))
	side.WriteString(viz.ProgressBar(float64(m.pos+1)/float64(len(m.track.Statuses)), 30) + "\n\n")

	side.WriteString(viz.InfoBox(s, m.tally) + "\n")
	if len(m.speeds) > 1 {
		side.WriteString(viz.MetricLabel.Render("Speeds") + viz.SparklineChart(m.speeds, 20) + "\n")
	}

	if len(m.scores) > 1 {
		chart := asciigraph.Plot(m.scores, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Reward"))
		side.WriteString(graphStyle.Render(chart) + "\n")
	}
	side.WriteString(helpStyle.Render(viz.Separator(30) + "\nSP:Pause R:Restart Q:Quit\n[ ]:Step T:Theme " + viz.KeyHint.Render(m.theme.Name)))

	canvasView := canvasStyle.Render(m.scene.Canvas.Render(m.theme))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sideStyle.Render(side.String()))
}
