package render

import (
	"fmt"
	"strings"
)

// Variant selects one of the fixed stats card layouts.
type Variant int

const (
	// Compact is the 500x300 card with icon-prefixed rows and a playtime line.
	Compact Variant = iota
	// Wide is the 600x350 card with a centered header and an online status dot.
	Wide
	// WideNoStatus is the 600x300 card with a centered header and no status dot.
	WideNoStatus
)

var variantNames = map[Variant]string{
	Compact:      "compact",
	Wide:         "wide",
	WideNoStatus: "wide-nostatus",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant maps "compact", "wide" or "wide-nostatus" (case-insensitive) to a Variant.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// layout holds the cosmetic constants of a variant.
type layout struct {
	width, height int
	trackWidth    int // bar length for a 3000 rating

	centeredHeader bool
	statusDot      bool
	playtimeRow    bool
	rowIcons       bool

	labelX, labelY, labelStep int
	barX, barY, barStep       int
	barHeight                 int
}

var layouts = map[Variant]layout{
	Compact: {
		width: 500, height: 300, trackWidth: 460,
		playtimeRow: true, rowIcons: true,
		labelX: 20, labelY: 110, labelStep: 30,
		barX: 20, barY: 230, barStep: 20, barHeight: 10,
	},
	Wide: {
		width: 600, height: 350, trackWidth: 400,
		centeredHeader: true, statusDot: true,
		labelX: 40, labelY: 140, labelStep: 60,
		barX: 160, barY: 128, barStep: 60, barHeight: 14,
	},
	WideNoStatus: {
		width: 600, height: 300, trackWidth: 400,
		centeredHeader: true,
		labelX: 40, labelY: 130, labelStep: 50,
		barX: 160, barY: 118, barStep: 50, barHeight: 14,
	},
}

// CanvasSize returns the fixed root canvas size of v.
func CanvasSize(v Variant) (width, height int, err error) {
	l, ok := layouts[v]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownVariant, v)
	}
	return l.width, l.height, nil
}

// TrackWidth returns the bar length that corresponds to a 3000 rating in v.
func TrackWidth(v Variant) (int, error) {
	l, ok := layouts[v]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariant, v)
	}
	return l.trackWidth, nil
}
