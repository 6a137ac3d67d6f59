package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tabstrip/internal/model"
	"tabstrip/internal/session"
	"tabstrip/internal/tabs"
)

type mode int

const (
	modeNormal mode = iota
	modeMenu
	modeRename
	modeDrag
	modeGoto
)

// Options configures the interactive strip.
type Options struct {
	// Glyphs is "unicode" or "ascii". Empty falls back to TABSTRIP_GLYPHS.
	Glyphs string
	// Clipboard receives copied labels. Nil means the system clipboard.
	Clipboard func(string) error
	Logger    *slog.Logger
}

type clipboardMsg struct {
	label string
	err   error
}

type appModel struct {
	store *session.Store
	state session.State
	log   *slog.Logger

	keys keyMap
	help help.Model

	width  int
	height int

	mode mode

	menuFor    string
	menuCursor int

	input    textinput.Model
	renameID string

	dragFrom int
	dragTo   int

	clipboard func(string) error

	status    string
	statusErr bool
}

func newAppModel(store *session.Store, opts Options) appModel {
	applyGlyphPreference(opts.Glyphs)

	in := textinput.New()
	in.CharLimit = store.Manager().Options().MaxLabelLength * 4
	in.Width = 40

	m := appModel{
		store:     store,
		state:     store.State(),
		log:       opts.Logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		input:     in,
		clipboard: opts.Clipboard,
		dragFrom:  -1,
		dragTo:    -1,
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.clipboard == nil {
		m.clipboard = CopyToClipboard
	}
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("copy: %w", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("Copied %q", msg.label))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeMenu:
			return m.updateMenu(msg)
		case modeRename, modeGoto:
			return m.updatePrompt(msg)
		case modeDrag:
			return m.updateDrag(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	idx := m.state.ActiveIndex()
	active, hasActive := m.state.Active()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Prev):
		if idx > 0 {
			m.apply(session.Select(m.state.Tabs[idx-1].ID))
		}
	case key.Matches(msg, m.keys.Next):
		if idx >= 0 && idx < len(m.state.Tabs)-1 {
			m.apply(session.Select(m.state.Tabs[idx+1].ID))
		}
	case key.Matches(msg, m.keys.AddAfter):
		m.apply(session.Add(idx+1, "", model.IconNone))
	case key.Matches(msg, m.keys.AddBefore):
		m.apply(session.Add(max(idx, 0), "", model.IconNone))
	case key.Matches(msg, m.keys.AddEnd):
		m.apply(session.Add(session.AppendIndex, "", model.IconNone))
	case key.Matches(msg, m.keys.Goto):
		m.openPrompt(modeGoto, "", "id, #N or label")
		return m, textinput.Blink
	}

	if !hasActive {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Menu):
		m.mode = modeMenu
		m.menuFor = active.ID
		m.menuCursor = 0
	case key.Matches(msg, m.keys.Drag):
		m.mode = modeDrag
		m.dragFrom = idx
		m.dragTo = idx
	case key.Matches(msg, m.keys.Rename):
		return m.startRename(active)
	case key.Matches(msg, m.keys.Duplicate):
		m.apply(session.Duplicate(active.ID))
	case key.Matches(msg, m.keys.Delete):
		m.delete(active.ID)
	case key.Matches(msg, m.keys.First):
		m.apply(session.SetFirst(active.ID))
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd(active.ID)
	}
	return m, nil
}

func (m appModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions := session.MenuActions()
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.closeMenu()
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(actions)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		id := m.menuFor
		action := actions[m.menuCursor]
		if !m.menuEnabled(action) {
			return m, nil
		}
		m.closeMenu()
		return m.runMenuAction(action, id)
	}
	return m, nil
}

func (m appModel) runMenuAction(action session.MenuAction, id string) (tea.Model, tea.Cmd) {
	t, ok := tabs.Find(m.state.Tabs, id)
	if !ok {
		m.setError(&tabs.NotFoundError{Kind: "tab", ID: id})
		return m, nil
	}
	switch action {
	case session.MenuRename:
		return m.startRename(t)
	case session.MenuCopy:
		return m, m.copyCmd(id)
	case session.MenuDelete:
		m.delete(id)
		return m, nil
	}
	if op, ok := action.Op(id); ok {
		m.apply(op)
	}
	return m, nil
}

func (m appModel) menuEnabled(a session.MenuAction) bool {
	if a == session.MenuDelete {
		return len(m.state.Tabs) > tabs.MinTabs
	}
	return true
}

func (m *appModel) closeMenu() {
	m.mode = modeNormal
	m.menuFor = ""
	m.menuCursor = 0
}

func (m appModel) startRename(t model.Tab) (tea.Model, tea.Cmd) {
	m.renameID = t.ID
	m.openPrompt(modeRename, t.Label, "Page name")
	return m, textinput.Blink
}

func (m *appModel) openPrompt(md mode, value, placeholder string) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) closePrompt() {
	m.mode = modeNormal
	m.renameID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		val := m.input.Value()
		if m.mode == modeRename {
			// A rejected label keeps the prompt open for correction.
			if m.apply(session.Rename(m.renameID, val)) {
				m.closePrompt()
			}
			return m, nil
		}
		t, err := m.store.Lookup(val)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.closePrompt()
		m.apply(session.Select(t.ID))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endDrag()
	case key.Matches(msg, m.keys.Prev):
		if m.dragTo > 0 {
			m.dragTo--
		}
	case key.Matches(msg, m.keys.Next):
		if m.dragTo < len(m.state.Tabs)-1 {
			m.dragTo++
		}
	case key.Matches(msg, m.keys.Confirm):
		from, to := m.dragFrom, m.dragTo
		m.endDrag()
		m.apply(session.Drag(from, to))
	}
	return m, nil
}

func (m *appModel) endDrag() {
	m.mode = modeNormal
	m.dragFrom = -1
	m.dragTo = -1
}

func (m *appModel) delete(id string) {
	if !m.store.CanDelete() {
		m.setStatus("Cannot delete the last page")
		return
	}
	m.apply(session.Delete(id))
}

func (m appModel) copyCmd(id string) tea.Cmd {
	out, err := m.store.Apply(session.Copy(id))
	if err != nil {
		return func() tea.Msg { return clipboardMsg{err: err} }
	}
	clip := m.clipboard
	label := out.Label
	return func() tea.Msg {
		return clipboardMsg{label: label, err: clip(label)}
	}
}

// apply runs op against the revision the view was rendered from and reports
// whether it succeeded.
func (m *appModel) apply(op session.Op) bool {
	out, err := m.store.ApplyAt(m.state.Revision, op)
	m.state = out.State
	if err != nil {
		if errors.Is(err, session.ErrStale) {
			m.setStatus("Pages changed elsewhere; view refreshed")
			return false
		}
		m.setError(err)
		return false
	}
	if out.Refused {
		m.setStatus("Cannot delete the last page")
	}
	m.log.Debug("tui op", "op", op.String(), "changed", out.Changed)
	return true
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
