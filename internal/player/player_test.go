package player

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/render"
	"github.com/glyphcast/glyphcast/internal/term"
)

func testAnim(frames int, delay time.Duration) *render.Animation {
	anim := &render.Animation{Columns: 2, Rows: 1}
	for i := 0; i < frames; i++ {
		cells := []grid.Cell{{Glyph: rune('0' + i)}, {Glyph: rune('0' + i)}}
		anim.Frames = append(anim.Frames, &grid.Output{
			Grid:      grid.New(2, 1, cells),
			Columns:   2,
			Rows:      1,
			Timestamp: time.Duration(i) * delay,
		})
	}
	anim.Duration = time.Duration(frames) * delay
	return anim
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m := New(testAnim(3, 100*time.Millisecond), term.Renderer{}, "clip")
	next, _ := m.Update(key(" "))
	m = next.(Model)
	if m.playing {
		t.Error("still playing after space")
	}
	next, _ = m.Update(key(" "))
	m = next.(Model)
	if !m.playing {
		t.Error("not playing after second space")
	}
}

func TestStepFramePausesAndWraps(t *testing.T) {
	m := New(testAnim(3, 100*time.Millisecond), term.Renderer{}, "clip")

	next, _ := m.Update(key("]"))
	m = next.(Model)
	if m.playing {
		t.Error("stepping should pause")
	}
	if got := m.anim.FrameIndexAt(m.elapsed); got != 1 {
		t.Errorf("frame = %d, want 1", got)
	}

	next, _ = m.Update(key("["))
	m = next.(Model)
	next, _ = m.Update(key("["))
	m = next.(Model)
	if got := m.anim.FrameIndexAt(m.elapsed); got != 2 {
		t.Errorf("stepping back past zero should wrap, frame = %d, want 2", got)
	}
}

func TestTickAdvancesElapsed(t *testing.T) {
	m := New(testAnim(4, 100*time.Millisecond), term.Renderer{}, "clip")

	base := time.Now()
	next, _ := m.Update(TickMsg(base))
	m = next.(Model)
	next, _ = m.Update(TickMsg(base.Add(150 * time.Millisecond)))
	m = next.(Model)

	if m.elapsed != 150*time.Millisecond {
		t.Errorf("elapsed = %v, want 150ms", m.elapsed)
	}
	if got := m.anim.FrameIndexAt(m.elapsed); got != 1 {
		t.Errorf("frame = %d, want 1", got)
	}
}

func TestPlayOnceStopsAtEnd(t *testing.T) {
	m := New(testAnim(2, 50*time.Millisecond), term.Renderer{}, "clip")
	next, _ := m.Update(key("l"))
	m = next.(Model)

	base := time.Now()
	next, _ = m.Update(TickMsg(base))
	m = next.(Model)
	next, _ = m.Update(TickMsg(base.Add(time.Second)))
	m = next.(Model)

	if m.playing {
		t.Error("expected playback to stop at the end without looping")
	}
	if got := m.anim.FrameIndexAt(m.elapsed); got != 1 {
		t.Errorf("frame = %d, want last frame 1", got)
	}
}

func TestViewShowsStatus(t *testing.T) {
	m := New(testAnim(3, 100*time.Millisecond), term.Renderer{}, "clip")
	v := m.View()
	if !strings.Contains(v, "frame 1/3") {
		t.Errorf("view missing frame counter:\n%s", v)
	}
	if !strings.Contains(v, "00") {
		t.Errorf("view missing first frame glyphs:\n%s", v)
	}
}
