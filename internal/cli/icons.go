package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tabstrip/internal/tui"
)

func newIconsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List icon kinds and their glyphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := tui.IconGlyphs()
			if !isTextFormat(app) {
				return writeOut(cmd, app, map[string]any{"data": rows})
			}
			w := cmd.OutOrStdout()
			for _, r := range rows {
				def := ""
				if r.Default {
					def = "  (default)"
				}
				if _, err := fmt.Fprintf(w, "%-9s %s  %s%s\n", r.Name, r.Unicode, r.ASCII, def); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
