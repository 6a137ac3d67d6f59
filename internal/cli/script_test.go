package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabstrip/internal/model"
	"tabstrip/internal/session"
)

func TestSplitShellWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"add", []string{"add"}},
		{"rename #1 'Cover page'", []string{"rename", "#1", "Cover page"}},
		{`rename Info "It's done"`, []string{"rename", "Info", "It's done"}},
		{`add 0 "" Info`, []string{"add", "0", "", "Info"}},
		{`rename Info a\ b`, []string{"rename", "Info", "a b"}},
	}
	for _, tt := range tests {
		got, err := splitShellWords(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{`rename "open`, `rename 'open`, `add \`} {
		_, err := splitShellWords(bad)
		assert.Error(t, err, bad)
	}
}

func TestReadScript_SkipsCommentsAndKeepsLineNumbers(t *testing.T) {
	lines, err := readScript(strings.NewReader("# header\n\n  add\n\t# indented comment\nselect #2\n"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].N)
	assert.Equal(t, 5, lines[1].N)

	_, err = readScript(strings.NewReader("add\nrename x 'oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseOp(t *testing.T) {
	ts := []model.Tab{
		{ID: "a", Label: "Info", Icon: model.IconInfo},
		{ID: "b", Label: "Details", Icon: model.IconDetails},
	}
	lookup := func(q string) (model.Tab, error) { return session.Resolve(ts, q) }

	tests := []struct {
		args []string
		want session.Op
	}{
		{[]string{"add"}, session.Add(session.AppendIndex, "", model.IconNone)},
		{[]string{"add", "end", "Notes"}, session.Add(session.AppendIndex, "Notes", model.IconNone)},
		{[]string{"add", "-1", "Notes"}, session.Add(session.AppendIndex, "Notes", model.IconNone)},
		{[]string{"add", "1", "Notes", "ending"}, session.Add(1, "Notes", model.IconEnding)},
		{[]string{"add", "Notes"}, session.Add(session.AppendIndex, "Notes", model.IconNone)},
		{[]string{"drag", "0", "1"}, session.Drag(0, 1)},
		{[]string{"select", "#2"}, session.Select("b")},
		{[]string{"first", "details"}, session.SetFirst("b")},
		{[]string{"rename", "a", "New", "name"}, session.Rename("a", "New name")},
		{[]string{"copy", "Info"}, session.Copy("a")},
		{[]string{"dup", "Info"}, session.Duplicate("a")},
		{[]string{"DELETE", "b"}, session.Delete("b")},
	}
	for _, tt := range tests {
		got, err := parseOp(tt.args, lookup)
		require.NoError(t, err, "%q", tt.args)
		assert.Equal(t, tt.want, got, "%q", tt.args)
	}

	for _, bad := range [][]string{
		{"launch"},
		{"add", "0", "Notes", "Sparkles"},
		{"add", "-2"},
		{"add", "0", "a", "Info", "extra"},
		{"drag", "0"},
		{"drag", "x", "1"},
		{"select"},
		{"select", "a", "b"},
		{"rename", "a"},
		{"delete", "#9"},
	} {
		_, err := parseOp(bad, lookup)
		assert.Error(t, err, "%q", bad)
	}
}
