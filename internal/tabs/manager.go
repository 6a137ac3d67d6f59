// Package tabs is the tab collection manager: the operations that turn one
// valid collection (and active selection) into another.
//
// Collections are plain []model.Tab slices. No operation modifies the slice it
// is given; operations that change nothing return their input as-is so callers
// can skip re-rendering on identity.
package tabs

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"tabstrip/internal/ids"
	"tabstrip/internal/model"
)

const (
	DefaultMaxLabelLength = 50
	DefaultCopySuffix     = " (copy)"
)

// Options are the label formatting constants supplied by configuration.
type Options struct {
	MaxLabelLength int    `json:"maxLabelLength" validate:"gte=1,lte=10000"`
	CopySuffix     string `json:"copySuffix"`
}

func DefaultOptions() Options {
	return Options{MaxLabelLength: DefaultMaxLabelLength, CopySuffix: DefaultCopySuffix}
}

var validate = validator.New()

// Manager carries the configuration and id source needed by operations that
// create or relabel tabs. The purely structural operations are package-level
// functions.
type Manager struct {
	opts Options
	ids  ids.Generator
}

func NewManager(opts Options, gen ids.Generator) (*Manager, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("tab options: %w", err)
	}
	if gen == nil {
		return nil, errors.New("tab options: missing id generator")
	}
	return &Manager{opts: opts, ids: gen}, nil
}

func (m *Manager) Options() Options { return m.opts }

// Reserve tells the id source about ids already in use, when it keeps track
// (ids.Ledger). Other generators ignore it.
func (m *Manager) Reserve(tabIDs ...string) {
	if r, ok := m.ids.(interface{ Reserve(...string) }); ok {
		r.Reserve(tabIDs...)
	}
}

// ValidateLabel trims label and checks it against the length bound.
// It returns the trimmed label.
func (m *Manager) ValidateLabel(label string) (string, error) {
	return validateLabel(label, m.opts.MaxLabelLength)
}

func validateLabel(label string, max int) (string, error) {
	trimmed := strings.TrimSpace(label)
	err := validate.Var(trimmed, fmt.Sprintf("required,max=%d", max))
	if err == nil {
		return trimmed, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return "", &ValidationError{Label: label, Reason: fmt.Sprintf("longer than %d characters", max)}
	}
	return "", &ValidationError{Label: label, Reason: "empty"}
}

// Create builds a new tab with a fresh id. It does not insert it anywhere.
// IconNone selects model.DefaultIcon.
func (m *Manager) Create(label string, icon model.Icon) (model.Tab, error) {
	trimmed, err := m.ValidateLabel(label)
	if err != nil {
		return model.Tab{}, err
	}
	if icon == model.IconNone {
		icon = model.DefaultIcon
	}
	if !icon.Valid() {
		return model.Tab{}, &ValidationError{Label: label, Reason: "unknown icon " + icon.String()}
	}
	id, err := m.ids.NewID()
	if err != nil {
		return model.Tab{}, fmt.Errorf("new tab id: %w", err)
	}
	return model.Tab{ID: id, Label: trimmed, Icon: icon}, nil
}

type DuplicateResult struct {
	Tabs  []model.Tab
	NewID string
}

// Duplicate inserts a copy of the tab right after it. The copy gets a fresh id,
// the same icon, and the source label plus the copy suffix, cut to the maximum
// label length.
func (m *Manager) Duplicate(tabs []model.Tab, id string) (DuplicateResult, error) {
	idx := IndexOf(tabs, id)
	if idx < 0 {
		return DuplicateResult{}, notFound(id)
	}
	newID, err := m.ids.NewID()
	if err != nil {
		return DuplicateResult{}, fmt.Errorf("new tab id: %w", err)
	}
	if IndexOf(tabs, newID) >= 0 {
		return DuplicateResult{}, &ConflictError{ID: newID}
	}
	src := tabs[idx]
	dup := model.Tab{
		ID:    newID,
		Label: truncateRunes(src.Label+m.opts.CopySuffix, m.opts.MaxLabelLength),
		Icon:  src.Icon,
	}
	out := make([]model.Tab, 0, len(tabs)+1)
	out = append(out, tabs[:idx+1]...)
	out = append(out, dup)
	out = append(out, tabs[idx+1:]...)
	return DuplicateResult{Tabs: out, NewID: newID}, nil
}

// Rename replaces one tab's label. A label that trims to the current one is a
// no-op and the input slice is returned unchanged.
func (m *Manager) Rename(tabs []model.Tab, id, label string) ([]model.Tab, error) {
	trimmed, err := m.ValidateLabel(label)
	if err != nil {
		return tabs, err
	}
	idx := IndexOf(tabs, id)
	if idx < 0 {
		return tabs, notFound(id)
	}
	if tabs[idx].Label == trimmed {
		return tabs, nil
	}
	out := append([]model.Tab(nil), tabs...)
	out[idx].Label = trimmed
	return out, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
