package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Icon is the closed set of icon kinds a tab may carry.
//
// The zero value (IconNone) means "no icon given" and never appears on a tab
// inside a collection.
type Icon uint8

const (
	IconNone Icon = iota
	IconInfo
	IconDetails
	IconOther
	IconEnding
	IconFileText
)

// DefaultIcon is used when a tab is created without an explicit icon.
const DefaultIcon = IconFileText

var iconNames = map[Icon]string{
	IconInfo:     "Info",
	IconDetails:  "Details",
	IconOther:    "Other",
	IconEnding:   "Ending",
	IconFileText: "FileText",
}

// Icons returns every valid icon kind in declaration order.
func Icons() []Icon {
	return []Icon{IconInfo, IconDetails, IconOther, IconEnding, IconFileText}
}

func (i Icon) Valid() bool {
	_, ok := iconNames[i]
	return ok
}

func (i Icon) String() string {
	if s, ok := iconNames[i]; ok {
		return s
	}
	if i == IconNone {
		return ""
	}
	return fmt.Sprintf("Icon(%d)", uint8(i))
}

// ParseIcon maps an icon name (case-insensitive) to its kind.
// Unknown names are an error; there is no fallback icon.
func ParseIcon(s string) (Icon, error) {
	s = strings.TrimSpace(s)
	for _, ic := range Icons() {
		if strings.EqualFold(iconNames[ic], s) {
			return ic, nil
		}
	}
	return IconNone, fmt.Errorf("unknown icon: %q", s)
}

func (i Icon) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("invalid icon: %d", uint8(i))
	}
	return []byte(i.String()), nil
}

func (i *Icon) UnmarshalText(b []byte) error {
	ic, err := ParseIcon(string(b))
	if err != nil {
		return err
	}
	*i = ic
	return nil
}

// Tab is one page in the strip.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  Icon   `json:"icon"`
}

// Seed describes a tab before it has an id (initial pages, config).
type Seed struct {
	Label string `json:"label" mapstructure:"label"`
	Icon  string `json:"icon,omitempty" mapstructure:"icon"`
}

// DefaultSeeds are the pages a fresh session starts with.
func DefaultSeeds() []Seed {
	return []Seed{
		{Label: "Info", Icon: "Info"},
		{Label: "Details", Icon: "Details"},
		{Label: "Other", Icon: "Other"},
		{Label: "Ending", Icon: "Ending"},
	}
}

// Snapshot is the serializable view of a collection plus its active tab.
type Snapshot struct {
	Tabs     []Tab  `json:"tabs"`
	ActiveID string `json:"activeId,omitempty"`
	Revision uint64 `json:"revision"`
}

var _ json.Marshaler = Snapshot{}

// MarshalJSON keeps "tabs" an array even for an empty collection.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type alias Snapshot
	a := alias(s)
	if a.Tabs == nil {
		a.Tabs = []Tab{}
	}
	return json.Marshal(a)
}
