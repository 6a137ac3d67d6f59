package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tabstrip/internal/model"
	"tabstrip/internal/session"
	"tabstrip/internal/tabs"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minCellWidth  = 6
	maxCellWidth  = 24
)

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	footer := m.renderFooter(w)
	strip := m.renderStrip(w)
	bodyH := h - lipgloss.Height(strip) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	switch {
	case len(m.state.Tabs) == 0:
		body = m.renderEmpty(w, bodyH)
	case m.mode == modeMenu:
		body = lipgloss.Place(w, bodyH, lipgloss.Center, lipgloss.Center, m.renderMenu())
	default:
		body = m.renderCard(w, bodyH)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, strip, footer)
}

func (m appModel) renderEmpty(w, h int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		"No pages yet.",
		styleMuted().Render("Press a to add one."),
	)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
}

// renderCard draws the active page. A stale active id falls back to the
// first page so the card is never blank while tabs exist.
func (m appModel) renderCard(w, h int) string {
	t, ok := m.state.Active()
	if !ok {
		t = m.state.Tabs[0]
	}
	inner := w - 4
	if inner < 10 {
		inner = 10
	}
	title := RenderMarkdown("# "+escapeMarkdown(t.Label), inner)
	meta := styleMuted().Render(fmt.Sprintf("%s %s  %d of %d  %s",
		IconGlyph(t.Icon), t.Icon, tabs.IndexOf(m.state.Tabs, t.ID)+1, len(m.state.Tabs), t.ID))
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", meta)
	return styleCard().
		Width(w - 2).
		Height(h - 2).
		Render(content)
}

func (m appModel) renderMenu() string {
	t, _ := tabs.Find(m.state.Tabs, m.menuFor)
	lines := []string{lipgloss.NewStyle().Bold(true).Render(truncateToWidth(t.Label, 30)), ""}
	for i, a := range session.MenuActions() {
		label := a.Title()
		st := lipgloss.NewStyle()
		if !m.menuEnabled(a) {
			st = styleMuted()
		}
		if i == m.menuCursor {
			st = styleMenuCursor()
		}
		lines = append(lines, st.Render(" "+label+" "))
	}
	return styleMenu().Render(strings.Join(lines, "\n"))
}

// stripTabs is the order the strip shows: the live order, or the preview of
// the pending drop while a tab is lifted.
func (m appModel) stripTabs() []model.Tab {
	if m.mode == modeDrag {
		return tabs.Reorder(m.state.Tabs, m.dragFrom, m.dragTo)
	}
	return m.state.Tabs
}

func (m appModel) renderStrip(w int) string {
	ts := m.stripTabs()
	addBtn := styleTab().Render(glyphAdd())
	if len(ts) == 0 {
		return addBtn
	}

	avail := w - lipgloss.Width(addBtn) - 2*lipgloss.Width(glyphArrowLeft())
	cell := avail / len(ts)
	if cell > maxCellWidth {
		cell = maxCellWidth
	}
	if cell < minCellWidth {
		cell = minCellWidth
	}

	lifted := ""
	if m.mode == modeDrag && m.dragFrom >= 0 && m.dragFrom < len(m.state.Tabs) {
		lifted = m.state.Tabs[m.dragFrom].ID
	}

	cells := make([]string, len(ts))
	for i, t := range ts {
		cells[i] = m.renderCell(t, cell, lifted)
	}

	// Keep the active (or lifted) cell visible when the strip overflows.
	focus := tabs.IndexOf(ts, m.state.ActiveID)
	if lifted != "" {
		focus = tabs.IndexOf(ts, lifted)
	}
	first, last := visibleWindow(cells, focus, avail)

	var b strings.Builder
	if first > 0 {
		b.WriteString(styleMuted().Render(glyphArrowLeft()))
	}
	for i := first; i <= last; i++ {
		b.WriteString(cells[i])
	}
	if last < len(cells)-1 {
		b.WriteString(styleMuted().Render(glyphArrowRight()))
	}
	b.WriteString(addBtn)
	return b.String()
}

func (m appModel) renderCell(t model.Tab, width int, lifted string) string {
	st := styleTab()
	switch {
	case t.ID == lifted:
		st = styleTabLifted()
	case t.ID == m.state.ActiveID:
		st = styleTabActive()
	}
	// Padding takes two columns.
	text := truncateToWidth(IconGlyph(t.Icon)+" "+t.Label, width-2)
	out := st.Width(width).MaxWidth(width).Render(text)
	if t.ID == lifted {
		return styleDropMarker().Render(glyphDrop()) + out
	}
	return out
}

// visibleWindow returns the widest run of cells around focus that fits in avail.
func visibleWindow(cells []string, focus, avail int) (int, int) {
	if len(cells) == 0 {
		return 0, -1
	}
	if focus < 0 || focus >= len(cells) {
		focus = 0
	}
	first, last := focus, focus
	used := lipgloss.Width(cells[focus])
	for {
		grew := false
		if last+1 < len(cells) && used+lipgloss.Width(cells[last+1]) <= avail {
			last++
			used += lipgloss.Width(cells[last])
			grew = true
		}
		if first-1 >= 0 && used+lipgloss.Width(cells[first-1]) <= avail {
			first--
			used += lipgloss.Width(cells[first])
			grew = true
		}
		if !grew {
			return first, last
		}
	}
}

func (m appModel) renderFooter(w int) string {
	var lines []string
	switch m.mode {
	case modeRename:
		lines = append(lines, "Rename: "+m.input.View())
	case modeGoto:
		lines = append(lines, "Go to: "+m.input.View())
	}
	if m.status != "" {
		st := styleMuted()
		if m.statusErr {
			st = styleError()
		}
		lines = append(lines, st.Render(truncateToWidth(m.status, w)))
	}
	if m.mode == modeDrag {
		lines = append(lines, m.help.View(dragHelp{m.keys}))
	} else {
		lines = append(lines, m.help.View(m.keys))
	}
	return strings.Join(lines, "\n")
}

func truncateToWidth(s string, w int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	return xansi.Truncate(s, w, glyphEllipsis())
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
