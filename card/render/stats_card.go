// card/render/stats_card.go
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ftotnem/lichess-stats/shared/models"
)

const (
	svgNamespace = "http://www.w3.org/2000/svg"
	iconPath     = "M8 0a8 8 0 1 0 0 16A8 8 0 0 0 8 0zM5 12l4-8v8H5z"
	headerGlyph  = "♞"

	colorOnline  = "#4caf50"
	colorOffline = "#9e9e9e"
)

const baseStylesheet = `
text {
    font-family: 'Roboto Condensed', sans-serif;
    fill: #f5f5f5;
}
.header {
    font-size: 24px;
    font-weight: bold;
}
.subheader {
    font-size: 18px;
}
.content {
    font-size: 16px;
}
.rating-bar {
    fill: #4caf50;
}
.border-box {
    stroke: #4a4a4a;
    stroke-width: 2;
    fill: none;
    rx: 9;
    ry: 9;
}
.icon {
    width: 16px;
    height: 16px;
    fill: #f5f5f5;
    margin-right: 5px;
}
`

const statusStylesheet = `.status {
    font-size: 14px;
}
`

// Renderer renders stats cards. The zero value is ready to use and safe for
// concurrent use.
type Renderer struct{}

// Render implements the card rendering for service callers.
func (Renderer) Render(profile *models.UserProfile, now time.Time, variant Variant) (string, error) {
	return Render(profile, now, variant)
}

// Render builds the SVG stats card for profile as of now. The output depends
// only on the arguments.
func Render(profile *models.UserProfile, now time.Time, variant Variant) (string, error) {
	l, ok := layouts[variant]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	if err := validate(profile); err != nil {
		return "", err
	}

	delta := DeltaMillis(profile.SeenAt, now)
	elapsed := Decompose(delta)

	doc := svgDocument{
		Xmlns:      svgNamespace,
		Width:      l.width,
		Height:     l.height,
		Style:      "border-radius: 9px; background-color: #1e1e1e; box-shadow: 0 4px 8px rgba(0, 0, 0, 0.2);",
		Stylesheet: baseStylesheet,
	}
	if l.statusDot {
		doc.Stylesheet += statusStylesheet
	}

	doc.Nodes = append(doc.Nodes,
		rectNode{Width: "100%", Height: "100%", Fill: "#1e1e1e", Rx: "9", Ry: "9"},
		rectNode{X: px(10), Y: px(10), Width: px(l.width - 20), Height: px(l.height - 20), Class: "border-box"},
	)

	subheader := fmt.Sprintf("Online: %d days, %d h, and %d min ago", elapsed.Days, elapsed.Hours, elapsed.Minutes)
	if l.centeredHeader {
		center := l.width / 2
		doc.Nodes = append(doc.Nodes,
			textNode{X: center, Y: 45, Class: "header", Anchor: "middle",
				Value: fmt.Sprintf("%s %s %s", headerGlyph, profile.Username, headerGlyph)},
			textNode{X: center, Y: 75, Class: "subheader", Anchor: "middle", Value: subheader},
		)
	} else {
		doc.Nodes = append(doc.Nodes,
			textNode{X: 20, Y: 40, Class: "header", Value: "User: " + profile.Username},
			textNode{X: 20, Y: 70, Class: "subheader", Value: subheader},
		)
	}

	if l.statusDot {
		doc.Nodes = append(doc.Nodes, statusNodes(l, IsOnline(delta))...)
	}

	ratings := []struct {
		label  string
		rating int
	}{
		{"Rapid", models.Rating(profile.Perfs.Rapid)},
		{"Blitz", models.Rating(profile.Perfs.Blitz)},
		{"Bullet", models.Rating(profile.Perfs.Bullet)},
	}

	for i, r := range ratings {
		doc.Nodes = append(doc.Nodes, contentRow(l, i, fmt.Sprintf("%s: %d", r.label, r.rating)))
	}
	if l.playtimeRow {
		// total is divided as milliseconds even though Lichess reports seconds.
		hours := PlaytimeHours(profile.TotalPlayTime())
		doc.Nodes = append(doc.Nodes, contentRow(l, len(ratings), fmt.Sprintf("Playtime: %d hours", hours)))
	}

	for i, r := range ratings {
		doc.Nodes = append(doc.Nodes, rectNode{
			X:      px(l.barX),
			Y:      px(l.barY + i*l.barStep),
			Width:  px(BarWidth(r.rating, l.trackWidth)),
			Height: px(l.barHeight),
			Class:  "rating-bar",
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode stats card for %s: %w", profile.Username, err)
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

func validate(profile *models.UserProfile) error {
	if profile == nil {
		return &MalformedProfileError{Field: "profile", Reason: "is missing"}
	}
	if strings.TrimSpace(profile.Username) == "" {
		return &MalformedProfileError{Field: "username", Reason: "is empty"}
	}
	perfs := []struct {
		field string
		perf  *models.Perf
	}{
		{"perfs.rapid.rating", profile.Perfs.Rapid},
		{"perfs.blitz.rating", profile.Perfs.Blitz},
		{"perfs.bullet.rating", profile.Perfs.Bullet},
	}
	for _, p := range perfs {
		if models.Rating(p.perf) < 0 {
			return &MalformedProfileError{Field: p.field, Reason: "is negative"}
		}
	}
	return nil
}

func contentRow(l layout, row int, value string) textNode {
	t := textNode{
		X:     l.labelX,
		Y:     l.labelY + row*l.labelStep,
		Class: "content",
		Value: value,
	}
	if l.rowIcons {
		t.Icon = &iconNode{X: "0", Y: "-12", Class: "icon", ViewBox: "0 0 16 16", Path: pathNode{D: iconPath}}
	}
	return t
}

// statusNodes draws the dot in the top-right corner. Only an online user gets a label.
func statusNodes(l layout, online bool) []any {
	cx := l.width - 40
	if !online {
		return []any{circleNode{Cx: cx, Cy: 40, R: 7, Fill: colorOffline, Class: "status-dot"}}
	}
	return []any{
		circleNode{Cx: cx, Cy: 40, R: 7, Fill: colorOnline, Class: "status-dot"},
		textNode{X: cx - 14, Y: 45, Class: "status", Anchor: "end", Fill: colorOnline, Value: "Online"},
	}
}

func px(v int) string {
	return strconv.Itoa(v)
}

type svgDocument struct {
	XMLName    xml.Name `xml:"svg"`
	Xmlns      string   `xml:"xmlns,attr"`
	Width      int      `xml:"width,attr"`
	Height     int      `xml:"height,attr"`
	Style      string   `xml:"style,attr,omitempty"`
	Stylesheet string   `xml:"style"`
	Nodes      []any
}

type rectNode struct {
	XMLName xml.Name `xml:"rect"`
	X       string   `xml:"x,attr,omitempty"`
	Y       string   `xml:"y,attr,omitempty"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	Fill    string   `xml:"fill,attr,omitempty"`
	Rx      string   `xml:"rx,attr,omitempty"`
	Ry      string   `xml:"ry,attr,omitempty"`
	Class   string   `xml:"class,attr,omitempty"`
}

type textNode struct {
	XMLName xml.Name  `xml:"text"`
	X       int       `xml:"x,attr"`
	Y       int       `xml:"y,attr"`
	Class   string    `xml:"class,attr,omitempty"`
	Anchor  string    `xml:"text-anchor,attr,omitempty"`
	Fill    string    `xml:"fill,attr,omitempty"`
	Icon    *iconNode `xml:"svg,omitempty"`
	Value   string    `xml:",chardata"`
}

type iconNode struct {
	XMLName xml.Name `xml:"svg"`
	X       string   `xml:"x,attr"`
	Y       string   `xml:"y,attr"`
	Class   string   `xml:"class,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Path    pathNode
}

type pathNode struct {
	XMLName xml.Name `xml:"path"`
	D       string   `xml:"d,attr"`
}

type circleNode struct {
	XMLName xml.Name `xml:"circle"`
	Cx      int      `xml:"cx,attr"`
	Cy      int      `xml:"cy,attr"`
	R       int      `xml:"r,attr"`
	Fill    string   `xml:"fill,attr"`
	Class   string   `xml:"class,attr,omitempty"`
}
