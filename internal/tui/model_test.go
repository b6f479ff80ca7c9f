package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type testNavigator struct {
	advances, retreats int
}

func (n *testNavigator) Advance() { n.advances++ }
func (n *testNavigator) Retreat() { n.retreats++ }

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelKeys(t *testing.T) {
	var (
		nav = new(testNavigator)
		m   tea.Model = newModel("pager", make(chan string), nav)
	)
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyLeft},
		{Type: tea.KeyRunes, Runes: []rune("p")},
		{Type: tea.KeyRight},
		{Type: tea.KeyRunes, Runes: []rune("n")},
		{Type: tea.KeySpace, Runes: []rune(" ")},
		{Type: tea.KeyRunes, Runes: []rune("x")},
	} {
		var cmd tea.Cmd
		m, cmd = m.Update(key)
		if isQuit(cmd) {
			t.Fatalf("key %q: unexpected quit", key)
		}
	}
	if nav.retreats != 2 || nav.advances != 3 {
		t.Errorf("expected 2 retreats and 3 advances, got %d and %d", nav.retreats, nav.advances)
	}

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		if _, cmd := m.Update(key); !isQuit(cmd) {
			t.Errorf("key %q: expected quit", key)
		}
	}
}

func TestModelFrames(t *testing.T) {
	frames := make(chan string, 1)
	m := newModel("pager", frames, new(testNavigator))

	updated, cmd := m.Update(frameMsg("▀▄█"))
	if cmd == nil {
		t.Fatal("expected to keep waiting for frames")
	}
	if view := updated.View(); !strings.Contains(view, "▀▄█") || !strings.Contains(view, "pager") {
		t.Errorf("expected view to show the frame and title, got\n%s", view)
	}

	frames <- "█"
	if msg := cmd(); msg != frameMsg("█") {
		t.Errorf("expected next frame, got %#v", msg)
	}

	close(frames)
	if msg := waitFrame(frames)(); msg != (closedMsg{}) {
		t.Errorf("expected closed message, got %#v", msg)
	}
	if _, cmd := updated.Update(closedMsg{}); !isQuit(cmd) {
		t.Error("expected quit once the display is closed")
	}
}
