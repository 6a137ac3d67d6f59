package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tabstrip/internal/model"
)

// Write writes v in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (model.Snapshot only; one tab per line, active marked with *)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// WriteText renders snapshots as a plain list. Other values fall back to JSON.
func WriteText(w io.Writer, v any) error {
	var snaps []model.Snapshot
	switch t := v.(type) {
	case model.Snapshot:
		snaps = []model.Snapshot{t}
	case []model.Snapshot:
		snaps = t
	default:
		return WriteJSON(w, v, true)
	}
	for i, s := range snaps {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if len(s.Tabs) == 0 {
			if _, err := fmt.Fprintln(w, "(no tabs)"); err != nil {
				return err
			}
			continue
		}
		for pos, t := range s.Tabs {
			mark := " "
			if t.ID == s.ActiveID {
				mark = "*"
			}
			if _, err := fmt.Fprintf(w, "%s %d. %-8s %s  [%s]\n", mark, pos+1, t.Icon, t.Label, t.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
