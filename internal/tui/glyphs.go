package tui

import (
	"os"
	"strings"
	"sync"

	"tabstrip/internal/model"
)

// Some terminal fonts render pictographs badly or at double width. The strip
// can fall back to plain ASCII glyphs for icons and chrome.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set. An explicit configured value wins
// over TABSTRIP_GLYPHS; unknown values are ignored.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(configured)
	if v == "" {
		v = os.Getenv("TABSTRIP_GLYPHS")
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// IconGlyph returns the glyph drawn for icon in the current set.
func IconGlyph(icon model.Icon) string {
	return iconGlyphIn(icon, glyphs())
}

func iconGlyphIn(icon model.Icon, gs glyphSet) string {
	ascii := gs == glyphSetASCII
	switch icon {
	case model.IconInfo:
		if ascii {
			return "i"
		}
		return "ⓘ"
	case model.IconDetails:
		if ascii {
			return "="
		}
		return "☰"
	case model.IconOther:
		if ascii {
			return "o"
		}
		return "◇"
	case model.IconEnding:
		if ascii {
			return "v"
		}
		return "✓"
	default:
		if ascii {
			return "#"
		}
		return "▤"
	}
}

// IconGlyphRow describes one icon kind and how it is drawn.
type IconGlyphRow struct {
	Name    string `json:"name"`
	Unicode string `json:"unicode"`
	ASCII   string `json:"ascii"`
	Default bool   `json:"default,omitempty"`
}

func IconGlyphs() []IconGlyphRow {
	out := make([]IconGlyphRow, 0, len(model.Icons()))
	for _, ic := range model.Icons() {
		out = append(out, IconGlyphRow{
			Name:    ic.String(),
			Unicode: iconGlyphIn(ic, glyphSetUnicode),
			ASCII:   iconGlyphIn(ic, glyphSetASCII),
			Default: ic == model.DefaultIcon,
		})
	}
	return out
}

func glyphArrowLeft() string {
	if glyphs() == glyphSetASCII {
		return "<"
	}
	return "‹"
}

func glyphArrowRight() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphAdd() string {
	return "+"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

func glyphDrop() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "┃"
}
