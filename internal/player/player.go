// Package player is the interactive terminal playback loop for rendered
// animations.
package player

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glyphcast/glyphcast/internal/render"
	"github.com/glyphcast/glyphcast/internal/term"
)

const tickRate = time.Second / 60

var (
	frameStyle  = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model plays a fully rendered animation against the terminal clock. It
// never touches the source again, so scrubbing and speed changes are free.
type Model struct {
	anim     *render.Animation
	renderer term.Renderer
	title    string
	elapsed  time.Duration
	last     time.Time
	speed    float64
	playing  bool
	loop     bool
}

func New(anim *render.Animation, renderer term.Renderer, title string) Model {
	return Model{
		anim:     anim,
		renderer: renderer,
		title:    title,
		speed:    1.0,
		playing:  true,
		loop:     true,
	}
}

// PlayOnce disables looping so playback stops on the last frame.
func (m Model) PlayOnce() Model {
	m.loop = false
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			m.last = time.Time{}
		case "r":
			m.elapsed = 0
			m.playing = true
			m.last = time.Time{}
		case "l":
			m.loop = !m.loop
		case "[":
			m.stepFrame(-1)
		case "]":
			m.stepFrame(1)
		case "+", "=":
			if m.speed < 8 {
				m.speed *= 1.25
			}
		case "-", "_":
			if m.speed > 0.125 {
				m.speed /= 1.25
			}
		}
	case TickMsg:
		now := time.Time(msg)
		if m.playing {
			if !m.last.IsZero() {
				m.elapsed += time.Duration(float64(now.Sub(m.last)) * m.speed)
			}
			if !m.loop && m.anim.Duration > 0 && m.elapsed >= m.anim.Duration {
				m.elapsed = m.anim.Duration - time.Nanosecond
				m.playing = false
			}
		}
		m.last = now
		return m, tick()
	}
	return m, nil
}

// stepFrame pauses playback and moves exactly one frame.
func (m *Model) stepFrame(dir int) {
	if m.anim.Len() == 0 {
		return
	}
	m.playing = false
	m.last = time.Time{}
	i := m.anim.FrameIndexAt(m.elapsed) + dir
	if i < 0 {
		i = m.anim.Len() - 1
	}
	i %= m.anim.Len()
	m.elapsed = m.anim.Frames[i].Timestamp
}

func (m Model) View() string {
	frame := m.anim.FrameAt(m.elapsed)
	if frame == nil {
		return statusStyle.Render("no frames")
	}

	status := "PLAYING"
	style := statusStyle
	if !m.playing {
		status = "PAUSED"
		style = pausedStyle
	}

	idx := m.anim.FrameIndexAt(m.elapsed)
	loop := "loop"
	if !m.loop {
		loop = "once"
	}
	bar := fmt.Sprintf("%s  frame %d/%d  %.2fs  %.2fx  %s",
		status, idx+1, m.anim.Len(), m.elapsed.Seconds(), m.speed, loop)

	return headerStyle.Render(m.title) + "\n" +
		frameStyle.Render(m.renderer.Frame(frame.Grid)) + "\n" +
		style.Render(bar) +
		helpStyle.Render("\nSP:Pause R:Restart [ ]:Step +/-:Speed L:Loop Q:Quit")
}
