// Package tui is the interactive tab strip: a main card for the active page
// above a bottom navigation strip, driven by a session.Store.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tabstrip/internal/session"
)

func Run(ctx context.Context, store *session.Store, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(store, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
