// Package session owns the live tab collection of one UI session.
//
// The Store turns each gesture (an Op) into exactly one tab manager call,
// swaps in the result atomically and keeps the active selection valid.
// Every applied change bumps the revision; ApplyAt refuses work computed
// against an older revision.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"tabstrip/internal/model"
	"tabstrip/internal/tabs"
)

var ErrStale = errors.New("stale revision")

type State struct {
	Tabs     []model.Tab
	ActiveID string
	Revision uint64
}

func (s State) ActiveIndex() int { return tabs.IndexOf(s.Tabs, s.ActiveID) }

func (s State) Active() (model.Tab, bool) { return tabs.Find(s.Tabs, s.ActiveID) }

func (s State) Snapshot() model.Snapshot {
	return model.Snapshot{
		Tabs:     append([]model.Tab(nil), s.Tabs...),
		ActiveID: s.ActiveID,
		Revision: s.Revision,
	}
}

// Outcome describes the result of one applied Op.
type Outcome struct {
	State   State
	Changed bool
	// Refused is set when a delete hit the minimum-size floor.
	Refused bool
	// NewID is the tab created by add or duplicate.
	NewID string
	// Label is the copied label (copy).
	Label string
}

type Store struct {
	mgr *tabs.Manager
	log *slog.Logger

	mu     sync.Mutex
	state  State
	seeded bool
}

type Option func(*Store) error

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) error {
		if l != nil {
			s.log = l
		}
		return nil
	}
}

// WithTabs seeds the store with an existing collection. An invalid active id
// is reconciled to the first tab.
func WithTabs(ts []model.Tab, activeID string) Option {
	return func(s *Store) error {
		if err := tabs.Validate(ts, s.mgr.Options().MaxLabelLength); err != nil {
			return fmt.Errorf("initial tabs: %w", err)
		}
		s.state.Tabs = append([]model.Tab(nil), ts...)
		s.state.ActiveID = tabs.Reconcile(s.state.Tabs, activeID)
		for _, t := range ts {
			s.mgr.Reserve(t.ID)
		}
		s.seeded = true
		return nil
	}
}

// WithSeeds creates the initial collection from labels and icon names.
func WithSeeds(seeds []model.Seed) Option {
	return func(s *Store) error {
		ts, err := Seed(s.mgr, seeds)
		if err != nil {
			return err
		}
		s.state.Tabs = ts
		s.state.ActiveID = tabs.Reconcile(ts, "")
		s.seeded = true
		return nil
	}
}

// New returns a store starting from model.DefaultSeeds unless an option
// supplies the initial collection.
func New(mgr *tabs.Manager, opts ...Option) (*Store, error) {
	if mgr == nil {
		return nil, errors.New("session: missing tab manager")
	}
	s := &Store{
		mgr: mgr,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if !s.seeded {
		if err := WithSeeds(model.DefaultSeeds())(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Seed builds tabs from seeds in order, minting ids through mgr.
func Seed(mgr *tabs.Manager, seeds []model.Seed) ([]model.Tab, error) {
	out := make([]model.Tab, 0, len(seeds))
	for i, sd := range seeds {
		icon := model.IconNone
		if strings.TrimSpace(sd.Icon) != "" {
			ic, err := model.ParseIcon(sd.Icon)
			if err != nil {
				return nil, fmt.Errorf("seed %d: %w", i, err)
			}
			icon = ic
		}
		t, err := mgr.Create(sd.Label, icon)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) Manager() *tabs.Manager { return s.mgr }

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Tabs = append([]model.Tab(nil), st.Tabs...)
	return st
}

// CanDelete reports whether a delete gesture can succeed at all.
func (s *Store) CanDelete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Tabs) > tabs.MinTabs
}

// Apply runs op against the latest state.
func (s *Store) Apply(op Op) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(op)
}

// ApplyAt runs op only if rev is still the current revision.
func (s *Store) ApplyAt(rev uint64, op Op) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rev != s.state.Revision {
		s.log.Warn("stale op rejected", "op", op.String(), "rev", rev, "current", s.state.Revision)
		return Outcome{State: s.copyStateLocked()}, fmt.Errorf("%s: %w (have %d, current %d)", op.Kind, ErrStale, rev, s.state.Revision)
	}
	return s.applyLocked(op)
}

func (s *Store) applyLocked(op Op) (Outcome, error) {
	cur := s.state
	next, out, err := s.transition(cur, op)
	if err != nil {
		s.log.Warn("op failed", "op", op.String(), "rev", cur.Revision, "err", err)
		return Outcome{State: s.copyStateLocked()}, fmt.Errorf("%s: %w", op.Kind, err)
	}
	next.ActiveID = tabs.Reconcile(next.Tabs, next.ActiveID)
	out.Changed = next.ActiveID != cur.ActiveID || !sameTabs(cur.Tabs, next.Tabs)
	if out.Changed {
		next.Revision = cur.Revision + 1
		s.state = next
	}
	s.log.Debug("op applied",
		"op", op.String(),
		"rev", s.state.Revision,
		"changed", out.Changed,
		"refused", out.Refused,
		"tabs", len(s.state.Tabs),
		"active", s.state.ActiveID,
	)
	out.State = s.copyStateLocked()
	return out, nil
}

func (s *Store) transition(cur State, op Op) (State, Outcome, error) {
	next := cur
	var out Outcome
	switch op.Kind {
	case OpAdd:
		idx := op.Index
		if idx == AppendIndex {
			idx = len(cur.Tabs)
		}
		if idx < 0 || idx > len(cur.Tabs) {
			return cur, out, &tabs.IndexError{Index: idx, Len: len(cur.Tabs)}
		}
		label := op.Label
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("Page %d", len(cur.Tabs)+1)
		}
		t, err := s.mgr.Create(label, op.Icon)
		if err != nil {
			return cur, out, err
		}
		ts, err := tabs.InsertAt(cur.Tabs, t, idx)
		if err != nil {
			return cur, out, err
		}
		next.Tabs = ts
		next.ActiveID = t.ID
		out.NewID = t.ID

	case OpDrag:
		next.Tabs = tabs.Reorder(cur.Tabs, op.Index, op.To)

	case OpSelect:
		if op.ID == "" || tabs.IndexOf(cur.Tabs, op.ID) < 0 {
			return cur, out, &tabs.NotFoundError{Kind: "tab", ID: op.ID}
		}
		next.ActiveID = op.ID

	case OpSetFirst:
		ts, err := tabs.MoveToFirst(cur.Tabs, op.ID)
		if err != nil {
			return cur, out, err
		}
		next.Tabs = ts
		next.ActiveID = op.ID

	case OpRename:
		ts, err := s.mgr.Rename(cur.Tabs, op.ID, op.Label)
		if err != nil {
			return cur, out, err
		}
		next.Tabs = ts

	case OpCopy:
		t, ok := tabs.Find(cur.Tabs, op.ID)
		if !ok {
			return cur, out, &tabs.NotFoundError{Kind: "tab", ID: op.ID}
		}
		out.Label = t.Label

	case OpDuplicate:
		res, err := s.mgr.Duplicate(cur.Tabs, op.ID)
		if err != nil {
			return cur, out, err
		}
		next.Tabs = res.Tabs
		next.ActiveID = res.NewID
		out.NewID = res.NewID

	case OpDelete:
		res, err := tabs.Remove(cur.Tabs, op.ID)
		if err != nil {
			return cur, out, err
		}
		if res.Refused {
			out.Refused = true
			return cur, out, nil
		}
		next.Tabs = res.Tabs
		if cur.ActiveID == op.ID {
			next.ActiveID = res.NextActiveID
		}

	default:
		return cur, out, fmt.Errorf("unknown op %q", op.Kind)
	}
	return next, out, nil
}

func (s *Store) copyStateLocked() State {
	st := s.state
	st.Tabs = append([]model.Tab(nil), st.Tabs...)
	return st
}

func sameTabs(a, b []model.Tab) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
