package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tabstrip/internal/config"
	"tabstrip/internal/format"
	"tabstrip/internal/ids"
	"tabstrip/internal/logging"
	"tabstrip/internal/session"
	"tabstrip/internal/tabs"
	"tabstrip/internal/tui"
)

type App struct {
	ConfigPath string
	Format     string
	PrettyJSON bool

	cfg      config.Config
	log      *slog.Logger
	closeLog func() error

	// clipboard overrides the system clipboard (tests).
	clipboard func(string) error
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tabstrip",
		Short:        "Tab strip manager (TUI + scriptable gestures)",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive strip
  tabstrip

  # Replay gestures from a script and print the final collection
  tabstrip apply session.tabs

  # Same, reading from stdin, with deterministic ids
  printf 'add\nfirst #5\n' | tabstrip --ids seq apply -
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.ConfigPath, cmd.Flags())
		if err != nil {
			return err
		}
		app.cfg = cfg

		// The TUI owns the terminal, so it only logs to a file.
		var stderr io.Writer = cmd.ErrOrStderr()
		if cmd == cmd.Root() {
			stderr = nil
		}
		l, closeFn, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: stderr})
		if err != nil {
			return fmt.Errorf("logging: %w", err)
		}
		app.log = l
		app.closeLog = closeFn
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", envOr("TABSTRIP_CONFIG", ""), "Config file (default: $XDG_CONFIG_HOME/tabstrip/config.yaml)")
	pf.Int("max-label-length", tabs.DefaultMaxLabelLength, "Maximum label length in characters")
	pf.String("copy-suffix", tabs.DefaultCopySuffix, "Suffix appended to duplicated labels")
	pf.String("ids", "uuid", "Tab id scheme (uuid|short|seq)")
	pf.String("log-level", "warn", "Log level (debug|info|warn|error)")
	pf.String("log-file", "", "Also write JSON logs to this file")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	pf.StringVar(&app.Format, "format", envOr("TABSTRIP_FORMAT", "json"), "Output format (json|edn|text)")

	cmd.AddCommand(newApplyCmd(app))
	cmd.AddCommand(newIconsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, err := newStore(app)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), st, tui.Options{
		Glyphs:    app.cfg.TUI.Glyphs,
		Clipboard: app.clipboard,
		Logger:    app.log,
	})
}

// newStore builds a session seeded from the configured tabs.
func newStore(app *App) (*session.Store, error) {
	gen, err := ids.FromScheme(app.cfg.IDs)
	if err != nil {
		return nil, err
	}
	mgr, err := tabs.NewManager(app.cfg.TabOptions(), ids.NewLedger(gen))
	if err != nil {
		return nil, err
	}
	return session.New(mgr,
		session.WithLogger(app.log),
		session.WithSeeds(app.cfg.Tabs),
	)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func isTextFormat(app *App) bool {
	return strings.EqualFold(strings.TrimSpace(app.Format), "text")
}
