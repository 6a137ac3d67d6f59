package tabs

import (
	"strings"

	"tabstrip/internal/model"
)

// InsertAt places tab at index, shifting the tab at index (and everything after
// it) one position later. Valid indexes are 0..len(tabs). The label length
// bound is enforced by Manager.Create; InsertAt only rejects blank labels.
func InsertAt(tabs []model.Tab, tab model.Tab, index int) ([]model.Tab, error) {
	if index < 0 || index > len(tabs) {
		return tabs, &IndexError{Index: index, Len: len(tabs)}
	}
	if tab.ID == "" {
		return tabs, &ValidationError{Label: tab.Label, Reason: "missing id"}
	}
	if strings.TrimSpace(tab.Label) == "" {
		return tabs, &ValidationError{Label: tab.Label, Reason: "empty"}
	}
	if !tab.Icon.Valid() {
		return tabs, &ValidationError{Label: tab.Label, Reason: "unknown icon " + tab.Icon.String()}
	}
	if IndexOf(tabs, tab.ID) >= 0 {
		return tabs, &ConflictError{ID: tab.ID}
	}
	out := make([]model.Tab, 0, len(tabs)+1)
	out = append(out, tabs[:index]...)
	out = append(out, tab)
	out = append(out, tabs[index:]...)
	return out, nil
}

// Reorder moves the tab at from to position to (drag-and-drop result).
// Equal or out-of-range indexes are expected from speculative drags and return
// the input unchanged.
func Reorder(tabs []model.Tab, from, to int) []model.Tab {
	n := len(tabs)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return tabs
	}
	out := make([]model.Tab, 0, n)
	moved := tabs[from]
	for i, t := range tabs {
		if i == from {
			continue
		}
		out = append(out, t)
	}
	out = append(out, model.Tab{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// MoveToFirst moves the tab to position 0. The active selection is not
// touched; callers decide whether the moved tab becomes active.
func MoveToFirst(tabs []model.Tab, id string) ([]model.Tab, error) {
	idx := IndexOf(tabs, id)
	if idx < 0 {
		return tabs, notFound(id)
	}
	if idx == 0 {
		return tabs, nil
	}
	return Reorder(tabs, idx, 0), nil
}

type RemoveResult struct {
	Tabs []model.Tab
	// NextActiveID is the tab that should become active if the removed tab was
	// active: the tab that slid into the removed slot, else its predecessor.
	// Empty when nothing remains.
	NextActiveID string
	// Refused is set when the collection holds a single tab; the last tab is
	// never removed.
	Refused bool
}

// MinTabs is the size floor below which Remove refuses.
const MinTabs = 1

func Remove(tabs []model.Tab, id string) (RemoveResult, error) {
	if len(tabs) == MinTabs {
		return RemoveResult{Tabs: tabs, NextActiveID: tabs[0].ID, Refused: true}, nil
	}
	idx := IndexOf(tabs, id)
	if idx < 0 {
		return RemoveResult{Tabs: tabs}, notFound(id)
	}
	out := make([]model.Tab, 0, len(tabs)-1)
	out = append(out, tabs[:idx]...)
	out = append(out, tabs[idx+1:]...)

	next := ""
	switch {
	case idx < len(out):
		next = out[idx].ID
	case idx > 0:
		next = out[idx-1].ID
	}
	return RemoveResult{Tabs: out, NextActiveID: next}, nil
}
