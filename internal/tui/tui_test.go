package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabstrip/internal/ids"
	"tabstrip/internal/model"
	"tabstrip/internal/session"
	"tabstrip/internal/tabs"
)

func newTestStore(t *testing.T, seeds ...model.Seed) *session.Store {
	t.Helper()
	mgr, err := tabs.NewManager(tabs.DefaultOptions(), ids.NewLedger(ids.NewSequence("tab")))
	require.NoError(t, err)
	var opts []session.Option
	if seeds != nil {
		opts = append(opts, session.WithSeeds(seeds))
	}
	s, err := session.New(mgr, opts...)
	require.NoError(t, err)
	return s
}

func newTestModel(t *testing.T, s *session.Store) (appModel, *[]string) {
	t.Helper()
	var copied []string
	m := newAppModel(s, Options{
		Glyphs: "ascii",
		Clipboard: func(label string) error {
			copied = append(copied, label)
			return nil
		},
	})
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })
	return m, &copied
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press feeds keys through Update and runs any returned clipboard command.
func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = next.(appModel)
		if cmd == nil {
			continue
		}
		if msg, ok := cmd().(clipboardMsg); ok {
			next, _ = m.Update(msg)
			m = next.(appModel)
		}
	}
	return m
}

func labels(st session.State) []string {
	out := make([]string, 0, len(st.Tabs))
	for _, t := range st.Tabs {
		out = append(out, t.Label)
	}
	return out
}

func TestNavigation_DoesNotWrap(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	assert.Equal(t, "tab-1", m.state.ActiveID)

	m = press(t, m, "left")
	assert.Equal(t, "tab-1", m.state.ActiveID, "left on first tab stays")

	m = press(t, m, "right", "l", "right", "right")
	assert.Equal(t, "tab-4", m.state.ActiveID, "right on last tab stays")

	m = press(t, m, "h")
	assert.Equal(t, "tab-3", m.state.ActiveID)
}

func TestAdd_Positions(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))

	m = press(t, m, "a")
	assert.Equal(t, []string{"Info", "Page 5", "Details", "Other", "Ending"}, labels(m.state))
	assert.Equal(t, "tab-5", m.state.ActiveID)

	m = press(t, m, "i")
	assert.Equal(t, "Page 6", labels(m.state)[1])

	m = press(t, m, "A")
	got := labels(m.state)
	assert.Equal(t, "Page 7", got[len(got)-1])
	tab, ok := m.state.Active()
	require.True(t, ok)
	assert.Equal(t, model.DefaultIcon, tab.Icon)
}

func TestDelete_ActiveMovesToSuccessor(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	m = press(t, m, "right", "x")
	assert.Equal(t, []string{"Info", "Other", "Ending"}, labels(m.state))
	assert.Equal(t, "tab-3", m.state.ActiveID)
}

func TestDelete_LastPageIsRefused(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t, model.Seed{Label: "Only"}))
	m = press(t, m, "x")
	assert.Len(t, m.state.Tabs, 1)
	assert.Equal(t, "Cannot delete the last page", m.status)
	assert.False(t, m.statusErr)
}

func TestDrag_DropsAtTarget(t *testing.T) {
	s := newTestStore(t)
	m, _ := newTestModel(t, s)
	m = press(t, m, "m", "right", "right")
	require.Equal(t, modeDrag, m.mode)
	assert.Equal(t, uint64(0), s.State().Revision, "preview must not touch the store")
	assert.Equal(t, "tab-1", m.stripTabs()[2].ID, "preview shows the lifted tab at the target")

	m = press(t, m, "enter")
	assert.Equal(t, []string{"Details", "Other", "Info", "Ending"}, labels(m.state))
	assert.Equal(t, "tab-1", m.state.ActiveID)
	assert.Equal(t, modeNormal, m.mode)
}

func TestDrag_EscapeCancels(t *testing.T) {
	s := newTestStore(t)
	m, _ := newTestModel(t, s)
	m = press(t, m, "m", "right", "esc")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, uint64(0), s.State().Revision)
}

func TestRename_SavesAndRejects(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	m = press(t, m, "r")
	require.Equal(t, modeRename, m.mode)
	assert.Equal(t, "Info", m.input.Value())

	m.input.SetValue("   ")
	m = press(t, m, "enter")
	assert.Equal(t, modeRename, m.mode, "blank label keeps the prompt open")
	assert.True(t, m.statusErr)
	assert.Equal(t, "Info", labels(m.state)[0])

	m.input.SetValue("  Intro ")
	m = press(t, m, "enter")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Intro", labels(m.state)[0])
}

func TestRename_EscapeCancels(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	m = press(t, m, "r")
	m.input.SetValue("Other name")
	m = press(t, m, "esc")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Info", labels(m.state)[0])
}

func TestMenu_Duplicate(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	m = press(t, m, "enter")
	require.Equal(t, modeMenu, m.mode)
	assert.Equal(t, "tab-1", m.menuFor)

	m = press(t, m, "down", "down", "down", "enter")
	assert.Equal(t, []string{"Info", "Info (copy)", "Details", "Other", "Ending"}, labels(m.state))
	assert.Equal(t, "tab-5", m.state.ActiveID)
}

func TestMenu_SetFirst(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	m = press(t, m, "right", "right", ".", "enter")
	assert.Equal(t, "Other", labels(m.state)[0])
	assert.Equal(t, "tab-3", m.state.ActiveID)
}

func TestMenu_DeleteDisabledOnLastPage(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t, model.Seed{Label: "Only"}))
	m = press(t, m, "enter", "down", "down", "down", "down", "enter")
	assert.Equal(t, modeMenu, m.mode, "disabled entry keeps the menu open")
	assert.Len(t, m.state.Tabs, 1)

	m = press(t, m, "esc")
	assert.Equal(t, modeNormal, m.mode)
}

func TestCopy_UsesClipboard(t *testing.T) {
	m, copied := newTestModel(t, newTestStore(t))
	m = press(t, m, "right", "y")
	assert.Equal(t, []string{"Details"}, *copied)
	assert.Contains(t, m.status, "Details")
}

func TestGoto_ResolvesReference(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	m = press(t, m, "/")
	m.input.SetValue("#3")
	m = press(t, m, "enter")
	assert.Equal(t, "tab-3", m.state.ActiveID)

	m = press(t, m, "/")
	m.input.SetValue("endng")
	m = press(t, m, "enter")
	assert.Equal(t, "tab-4", m.state.ActiveID, "fuzzy match to Ending")
}

func TestStaleView_Refreshes(t *testing.T) {
	s := newTestStore(t)
	m, _ := newTestModel(t, s)
	_, err := s.Apply(session.Delete("tab-2"))
	require.NoError(t, err)

	m = press(t, m, "x")
	assert.Len(t, m.state.Tabs, 3, "stale delete must not run")
	assert.Contains(t, m.status, "refreshed")
}

func TestView_EmptyState(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t, []model.Seed{}...))
	m.width, m.height = 60, 12
	require.Empty(t, m.state.Tabs)
	assert.Contains(t, m.View(), "No pages yet")

	m = press(t, m, "a")
	assert.Equal(t, []string{"Page 1"}, labels(m.state))
}

func TestView_StripShowsLabels(t *testing.T) {
	m, _ := newTestModel(t, newTestStore(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	m = next.(appModel)
	out := m.View()
	for _, want := range []string{"i Info", "= Details", "o Other", "v Ending"} {
		assert.Contains(t, out, want)
	}
}

func TestTruncateToWidth(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })
	assert.Equal(t, "Details", truncateToWidth("Details", 10))
	assert.Equal(t, "A rat...", truncateToWidth("A rather long page", 8))
}

func TestVisibleWindow_KeepsFocus(t *testing.T) {
	cells := []string{"aaaa", "bbbb", "cccc", "dddd", "eeee"}
	first, last := visibleWindow(cells, 4, 8)
	assert.Equal(t, [2]int{3, 4}, [2]int{first, last})

	first, last = visibleWindow(cells, 0, 100)
	assert.Equal(t, [2]int{0, 4}, [2]int{first, last})
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\*bold\* \#1`, escapeMarkdown("*bold* #1"))
}
