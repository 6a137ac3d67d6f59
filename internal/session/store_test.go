package session

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabstrip/internal/ids"
	"tabstrip/internal/model"
	"tabstrip/internal/tabs"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	mgr, err := tabs.NewManager(tabs.DefaultOptions(), ids.NewLedger(ids.NewSequence("tab")))
	require.NoError(t, err)
	s, err := New(mgr, opts...)
	require.NoError(t, err)
	return s
}

func labels(st State) []string {
	out := make([]string, 0, len(st.Tabs))
	for _, t := range st.Tabs {
		out = append(out, t.Label)
	}
	return out
}

func TestNew_DefaultSeeds(t *testing.T) {
	s := newTestStore(t)
	st := s.State()
	assert.Equal(t, []string{"Info", "Details", "Other", "Ending"}, labels(st))
	assert.Equal(t, "tab-1", st.ActiveID)
	assert.Equal(t, model.IconEnding, st.Tabs[3].Icon)
	assert.Zero(t, st.Revision)
}

func TestNew_EmptyCollection(t *testing.T) {
	s := newTestStore(t, WithTabs(nil, "ghost"))
	st := s.State()
	assert.Empty(t, st.Tabs)
	assert.Equal(t, "", st.ActiveID)
	assert.False(t, s.CanDelete())

	out, err := s.Apply(Add(0, "", model.IconNone))
	require.NoError(t, err)
	assert.Equal(t, []string{"Page 1"}, labels(out.State))
	assert.Equal(t, out.NewID, out.State.ActiveID)
}

func TestWithTabs_ReservesExistingIDs(t *testing.T) {
	s := newTestStore(t, WithTabs([]model.Tab{
		{ID: "tab-1", Label: "Restored", Icon: model.IconInfo},
		{ID: "tab-2", Label: "Other", Icon: model.IconOther},
	}, "tab-2"))
	assert.Equal(t, "tab-2", s.State().ActiveID)

	out, err := s.Apply(Add(-1, "", model.IconNone))
	require.NoError(t, err)
	assert.Equal(t, "tab-3", out.NewID)
	assert.Equal(t, []string{"Restored", "Other", "Page 3"}, labels(out.State))
}

func TestNew_RejectsInvalidTabs(t *testing.T) {
	mgr, err := tabs.NewManager(tabs.DefaultOptions(), ids.NewSequence("tab"))
	require.NoError(t, err)
	_, err = New(mgr, WithTabs([]model.Tab{
		{ID: "x", Label: "A", Icon: model.IconInfo},
		{ID: "x", Label: "B", Icon: model.IconInfo},
	}, "x"))
	var cerr *tabs.ConflictError
	require.ErrorAs(t, err, &cerr)

	_, err = New(mgr, WithSeeds([]model.Seed{{Label: "A", Icon: "Rocket"}}))
	require.Error(t, err)
}

func TestApply_AddActivatesNewTab(t *testing.T) {
	s := newTestStore(t)

	out, err := s.Apply(Add(1, "", model.IconNone))
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, []string{"Info", "Page 5", "Details", "Other", "Ending"}, labels(out.State))
	assert.Equal(t, out.NewID, out.State.ActiveID)
	assert.Equal(t, model.DefaultIcon, out.State.Tabs[1].Icon)
	assert.Equal(t, uint64(1), out.State.Revision)

	out, err = s.Apply(Add(-1, "Tail", model.IconOther))
	require.NoError(t, err)
	assert.Equal(t, "Tail", out.State.Tabs[len(out.State.Tabs)-1].Label)

	before := s.State()
	_, err = s.Apply(Add(99, "x", model.IconNone))
	var ierr *tabs.IndexError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, before, s.State())

	// Only AppendIndex appends; other negatives are out of range.
	_, err = s.Apply(Add(-7, "x", model.IconNone))
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, -7, ierr.Index)
	assert.Equal(t, before, s.State())
}

func TestApply_DragIsToleratedNoOp(t *testing.T) {
	s := newTestStore(t)

	out, err := s.Apply(Drag(0, 2))
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, []string{"Details", "Other", "Info", "Ending"}, labels(out.State))
	assert.Equal(t, "tab-1", out.State.ActiveID, "drag keeps the active tab")

	rev := out.State.Revision
	out, err = s.Apply(Drag(1, 1))
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, rev, out.State.Revision)

	out, err = s.Apply(Drag(-1, 9))
	require.NoError(t, err)
	assert.False(t, out.Changed)
}

func TestApply_SetFirstActivates(t *testing.T) {
	s := newTestStore(t)
	out, err := s.Apply(SetFirst("tab-3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Other", "Info", "Details", "Ending"}, labels(out.State))
	assert.Equal(t, "tab-3", out.State.ActiveID)
}

func TestApply_DuplicateActivatesCopy(t *testing.T) {
	s := newTestStore(t)
	out, err := s.Apply(Duplicate("tab-2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Info", "Details", "Details (copy)", "Other", "Ending"}, labels(out.State))
	assert.Equal(t, "tab-5", out.NewID)
	assert.Equal(t, out.NewID, out.State.ActiveID)
}

func TestApply_DeleteActiveMovesToSlotSuccessor(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Apply(Select("tab-2"))
	require.NoError(t, err)

	out, err := s.Apply(Delete("tab-2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Info", "Other", "Ending"}, labels(out.State))
	assert.Equal(t, "tab-3", out.State.ActiveID)

	_, err = s.Apply(Select("tab-4"))
	require.NoError(t, err)
	out, err = s.Apply(Delete("tab-4"))
	require.NoError(t, err)
	assert.Equal(t, "tab-3", out.State.ActiveID, "last tab falls back to predecessor")
}

func TestApply_DeleteInactiveKeepsSelection(t *testing.T) {
	s := newTestStore(t)
	out, err := s.Apply(Delete("tab-3"))
	require.NoError(t, err)
	assert.Equal(t, "tab-1", out.State.ActiveID)
}

func TestApply_DeleteLastTabRefused(t *testing.T) {
	s := newTestStore(t, WithSeeds([]model.Seed{{Label: "Only"}}))
	assert.False(t, s.CanDelete())

	out, err := s.Apply(Delete("tab-1"))
	require.NoError(t, err)
	assert.True(t, out.Refused)
	assert.False(t, out.Changed)
	assert.Equal(t, []string{"Only"}, labels(out.State))
}

func TestApply_RenameNoOpKeepsRevision(t *testing.T) {
	s := newTestStore(t)
	out, err := s.Apply(Rename("tab-1", "  Info "))
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Zero(t, out.State.Revision)

	out, err = s.Apply(Rename("tab-1", "Intro"))
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, "Intro", out.State.Tabs[0].Label)

	_, err = s.Apply(Rename("tab-1", strings.Repeat("x", 60)))
	var verr *tabs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Intro", s.State().Tabs[0].Label)
}

func TestApply_CopyReturnsLabel(t *testing.T) {
	s := newTestStore(t)
	out, err := s.Apply(Copy("tab-2"))
	require.NoError(t, err)
	assert.Equal(t, "Details", out.Label)
	assert.False(t, out.Changed)
}

func TestApply_SelectUnknownFails(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Apply(Select("nope"))
	var nf *tabs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "tab-1", s.State().ActiveID)
}

func TestApplyAt_RejectsStaleRevision(t *testing.T) {
	s := newTestStore(t)
	snap := s.State()

	_, err := s.ApplyAt(snap.Revision, Delete("tab-2"))
	require.NoError(t, err)

	// A rename queued against the pre-delete snapshot must not apply.
	_, err = s.ApplyAt(snap.Revision, Rename("tab-3", "Late"))
	require.ErrorIs(t, err, ErrStale)
	assert.Equal(t, "Other", s.State().Tabs[1].Label)

	_, err = s.ApplyAt(s.State().Revision, Rename("tab-3", "Fresh"))
	require.NoError(t, err)
}

func TestApply_StateIsACopy(t *testing.T) {
	s := newTestStore(t)
	st := s.State()
	st.Tabs[0].Label = "mutated"
	assert.Equal(t, "Info", s.State().Tabs[0].Label)
}

func TestApply_LogsOps(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newTestStore(t, WithLogger(l))

	_, _ = s.Apply(Drag(0, 1))
	_, _ = s.Apply(Select("missing"))

	out := buf.String()
	assert.Contains(t, out, "op applied")
	assert.Contains(t, out, "drag(0, 1)")
	assert.Contains(t, out, "op failed")
}

func TestApply_IDsNeverReused(t *testing.T) {
	s := newTestStore(t)
	seen := map[string]bool{}
	for _, tab := range s.State().Tabs {
		seen[tab.ID] = true
	}
	for i := 0; i < 5; i++ {
		out, err := s.Apply(Add(-1, "", model.IconNone))
		require.NoError(t, err)
		require.False(t, seen[out.NewID], "id %s reused", out.NewID)
		seen[out.NewID] = true
		_, err = s.Apply(Delete(out.NewID))
		require.NoError(t, err)
	}
}

func TestMenuActionOps(t *testing.T) {
	op, ok := MenuDelete.Op("a1")
	require.True(t, ok)
	assert.Equal(t, Delete("a1"), op)

	_, ok = MenuRename.Op("a1")
	assert.False(t, ok, "rename needs a label and is built by the caller")
	assert.Len(t, MenuActions(), 5)
}
