package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tabstrip/internal/format"
	"tabstrip/internal/model"
	"tabstrip/internal/tui"
)

type stepResult struct {
	Line    int             `json:"line"`
	Op      string          `json:"op"`
	Changed bool            `json:"changed"`
	Refused bool            `json:"refused,omitempty"`
	NewID   string          `json:"newId,omitempty"`
	Label   string          `json:"label,omitempty"`
	State   *model.Snapshot `json:"state,omitempty"`
}

type scriptError struct {
	Line int
	Text string
	Err  error
}

func (e *scriptError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Text, e.Err)
}

func (e *scriptError) Unwrap() error { return e.Err }

func newApplyCmd(app *App) *cobra.Command {
	var trace bool
	var clip bool

	cmd := &cobra.Command{
		Use:   "apply [script|-]",
		Short: "Apply gestures from a script and print the resulting tabs",
		Long: strings.TrimSpace(`
Reads one gesture per line and applies it to a fresh session seeded from the
config. Blank lines and lines starting with # are skipped; words use shell
quoting.

  add [index|end] [label] [icon]   insert a page (default: append "Page N")
  drag <from> <to>                 move by 0-based position
  select <ref>                     make a page active
  first <ref>                      move a page to the front and select it
  rename <ref> <label>
  copy <ref>                       report the label (--clipboard copies it)
  duplicate <ref>
  delete <ref>                     refused when only one page remains

A <ref> is a tab id, #N (1-based position) or a label.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			var r io.Reader = cmd.InOrStdin()
			if src != "-" {
				f, err := os.Open(src)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			lines, err := readScript(r)
			if err != nil {
				return err
			}

			st, err := newStore(app)
			if err != nil {
				return err
			}

			copyFn := app.clipboard
			if clip && copyFn == nil {
				copyFn = tui.CopyToClipboard
			}

			steps := make([]stepResult, 0, len(lines))
			for _, ln := range lines {
				op, err := parseOp(ln.Args, st.Lookup)
				if err != nil {
					return &scriptError{Line: ln.N, Text: ln.Text, Err: err}
				}
				out, err := st.Apply(op)
				if err != nil {
					return &scriptError{Line: ln.N, Text: ln.Text, Err: err}
				}
				step := stepResult{
					Line:    ln.N,
					Op:      op.String(),
					Changed: out.Changed,
					Refused: out.Refused,
					NewID:   out.NewID,
					Label:   out.Label,
				}
				if clip && out.Label != "" {
					if err := copyFn(out.Label); err != nil {
						return &scriptError{Line: ln.N, Text: ln.Text, Err: err}
					}
				}
				if out.Refused {
					app.log.Info("delete refused", "line", ln.N, "op", op.String())
				}
				if trace {
					snap := out.State.Snapshot()
					step.State = &snap
				}
				steps = append(steps, step)
			}

			final := st.State().Snapshot()
			if isTextFormat(app) {
				return writeApplyText(cmd.OutOrStdout(), steps, final, trace)
			}
			return writeOut(cmd, app, map[string]any{"data": final, "steps": steps})
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "Include the state after every step")
	cmd.Flags().BoolVar(&clip, "clipboard", false, "Copy labels from copy gestures to the system clipboard")
	return cmd
}

func writeApplyText(w io.Writer, steps []stepResult, final model.Snapshot, trace bool) error {
	for _, s := range steps {
		switch {
		case s.Refused:
			fmt.Fprintf(w, "# line %d: %s refused (last page)\n", s.Line, s.Op)
		case s.Label != "":
			fmt.Fprintf(w, "# line %d: %s -> %q\n", s.Line, s.Op, s.Label)
		case trace:
			fmt.Fprintf(w, "# line %d: %s\n", s.Line, s.Op)
		}
		if trace && s.State != nil {
			if err := format.WriteText(w, *s.State); err != nil {
				return err
			}
		}
	}
	return format.WriteText(w, final)
}
