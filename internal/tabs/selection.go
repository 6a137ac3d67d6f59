package tabs

import (
	"fmt"

	"tabstrip/internal/model"
)

func IndexOf(tabs []model.Tab, id string) int {
	if id == "" {
		return -1
	}
	for i := range tabs {
		if tabs[i].ID == id {
			return i
		}
	}
	return -1
}

func Find(tabs []model.Tab, id string) (model.Tab, bool) {
	if i := IndexOf(tabs, id); i >= 0 {
		return tabs[i], true
	}
	return model.Tab{}, false
}

// IsValidSelection reports whether id may be the active tab of tabs: it must
// name a tab in a non-empty collection, and be empty for an empty one.
func IsValidSelection(tabs []model.Tab, id string) bool {
	if len(tabs) == 0 {
		return id == ""
	}
	return IndexOf(tabs, id) >= 0
}

// Reconcile returns id when it is a valid selection, otherwise the first tab,
// otherwise "".
func Reconcile(tabs []model.Tab, id string) string {
	if IsValidSelection(tabs, id) {
		return id
	}
	if len(tabs) == 0 {
		return ""
	}
	return tabs[0].ID
}

// Validate checks every collection invariant: non-empty distinct ids, labels
// within maxLabelLength once trimmed, and known icons.
func Validate(tabs []model.Tab, maxLabelLength int) error {
	seen := make(map[string]struct{}, len(tabs))
	for i, t := range tabs {
		if t.ID == "" {
			return &ValidationError{Label: t.Label, Reason: fmt.Sprintf("tab %d has no id", i)}
		}
		if _, dup := seen[t.ID]; dup {
			return &ConflictError{ID: t.ID}
		}
		seen[t.ID] = struct{}{}
		if _, err := validateLabel(t.Label, maxLabelLength); err != nil {
			return err
		}
		if !t.Icon.Valid() {
			return &ValidationError{Label: t.Label, Reason: "unknown icon " + t.Icon.String()}
		}
	}
	return nil
}
