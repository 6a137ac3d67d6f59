package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"tabstrip/internal/model"
	"tabstrip/internal/session"
)

// scriptLine is one non-blank, non-comment line of a gesture script.
type scriptLine struct {
	N    int
	Text string
	Args []string
}

// readScript splits r into lines of shell-style words. Lines starting with #
// are comments.
func readScript(r io.Reader) ([]scriptLine, error) {
	var out []scriptLine
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		args, err := splitShellWords(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, scriptLine{N: n, Text: text, Args: args})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseOp turns a script line into an Op. Tab references go through lookup
// against the current collection.
func parseOp(args []string, lookup func(string) (model.Tab, error)) (session.Op, error) {
	if len(args) == 0 {
		return session.Op{}, errors.New("empty command")
	}
	verb := strings.ToLower(args[0])
	rest := args[1:]

	ref := func() (string, error) {
		if len(rest) < 1 {
			return "", fmt.Errorf("%s: missing tab reference", verb)
		}
		t, err := lookup(rest[0])
		if err != nil {
			return "", err
		}
		return t.ID, nil
	}
	noExtra := func(max int) error {
		if len(rest) > max {
			return fmt.Errorf("%s: unexpected argument %q", verb, rest[max])
		}
		return nil
	}

	switch verb {
	case "add":
		index := session.AppendIndex
		if len(rest) > 0 {
			switch {
			case rest[0] == "end":
				rest = rest[1:]
			case isInt(rest[0]):
				index, _ = strconv.Atoi(rest[0])
				rest = rest[1:]
			}
		}
		if err := noExtra(2); err != nil {
			return session.Op{}, err
		}
		var label string
		icon := model.IconNone
		if len(rest) > 0 {
			label = rest[0]
		}
		if len(rest) > 1 {
			ic, err := model.ParseIcon(rest[1])
			if err != nil {
				return session.Op{}, err
			}
			icon = ic
		}
		if index < session.AppendIndex {
			return session.Op{}, fmt.Errorf("add: invalid index %d", index)
		}
		return session.Add(index, label, icon), nil

	case "drag", "move":
		if len(rest) != 2 {
			return session.Op{}, fmt.Errorf("%s: want <from> <to>", verb)
		}
		from, err := strconv.Atoi(rest[0])
		if err != nil {
			return session.Op{}, fmt.Errorf("%s: invalid from %q", verb, rest[0])
		}
		to, err := strconv.Atoi(rest[1])
		if err != nil {
			return session.Op{}, fmt.Errorf("%s: invalid to %q", verb, rest[1])
		}
		return session.Drag(from, to), nil

	case "rename":
		if len(rest) < 2 {
			return session.Op{}, errors.New("rename: want <ref> <label>")
		}
		id, err := ref()
		if err != nil {
			return session.Op{}, err
		}
		return session.Rename(id, strings.Join(rest[1:], " ")), nil
	}

	var mk func(string) session.Op
	switch verb {
	case "select":
		mk = session.Select
	case "first":
		mk = session.SetFirst
	case "copy":
		mk = session.Copy
	case "duplicate", "dup":
		mk = session.Duplicate
	case "delete", "rm":
		mk = session.Delete
	default:
		return session.Op{}, fmt.Errorf("unknown command %q", args[0])
	}
	if err := noExtra(1); err != nil {
		return session.Op{}, err
	}
	id, err := ref()
	if err != nil {
		return session.Op{}, err
	}
	return mk(id), nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// splitShellWords splits a line into words, handling single quotes, double
// quotes and backslash escapes (outside single quotes).
func splitShellWords(s string) ([]string, error) {
	var out []string
	var cur []rune
	inWord := false
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if !inWord {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		inWord = false
	}

	for _, r := range s {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		switch {
		case r == '\\' && !inSingle:
			escaped = true
			inWord = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			inWord = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			inWord = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
			inWord = true
		}
	}
	if inSingle || inDouble {
		return nil, errors.New("unterminated quote")
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	flush()
	return out, nil
}
