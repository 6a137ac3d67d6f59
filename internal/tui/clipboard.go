package tui

import (
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// CopyToClipboard writes s to the system clipboard. Without a local clipboard
// helper (e.g. over SSH) it falls back to an OSC 52 sequence, which most
// terminal emulators forward to the host clipboard.
func CopyToClipboard(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(s)
		if err == nil {
			return nil
		}
		if !isRemoteSession() {
			return err
		}
	}
	termenv.NewOutput(os.Stdout).Copy(s)
	return nil
}

func isRemoteSession() bool {
	return os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != ""
}
