package format

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so json tags
// decide the field names; object keys become kebab-case keywords
// (activeId -> :active-id).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&x); err != nil {
		return err
	}
	var sb strings.Builder
	writeEDNValue(&sb, x, 0, pretty)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeEDNValue(sb *strings.Builder, v any, depth int, pretty bool) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("nil")
	case bool:
		sb.WriteString(strconv.FormatBool(t))
	case json.Number:
		sb.WriteString(t.String())
	case string:
		sb.WriteString(strconv.Quote(t))
	case []any:
		sb.WriteByte('[')
		for i, it := range t {
			ednSep(sb, i, depth+1, pretty)
			writeEDNValue(sb, it, depth+1, pretty)
		}
		ednClose(sb, len(t), depth, pretty)
		sb.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			ednSep(sb, i, depth+1, pretty)
			sb.WriteString(":" + kebab(k) + " ")
			writeEDNValue(sb, t[k], depth+1, pretty)
		}
		ednClose(sb, len(t), depth, pretty)
		sb.WriteByte('}')
	default:
		sb.WriteString(strconv.Quote("?"))
	}
}

func ednSep(sb *strings.Builder, i, depth int, pretty bool) {
	switch {
	case pretty:
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth))
	case i > 0:
		sb.WriteByte(' ')
	}
}

func ednClose(sb *strings.Builder, n, depth int, pretty bool) {
	if pretty && n > 0 {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth))
	}
}

func kebab(s string) string {
	var out []rune
	for i, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				out = append(out, '-')
			}
			out = append(out, unicode.ToLower(r))
		case r == ' ' || r == '_':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
