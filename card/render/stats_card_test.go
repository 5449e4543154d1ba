package render

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ftotnem/lichess-stats/shared/models"
)

var seenAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleProfile() *models.UserProfile {
	return &models.UserProfile{
		Username: "abc",
		SeenAt:   seenAt.UnixMilli(),
		Perfs: models.Perfs{
			Rapid:  &models.Perf{Rating: 1800},
			Blitz:  &models.Perf{Rating: 1600},
			Bullet: &models.Perf{Rating: 1200},
		},
		PlayTime: &models.PlayTime{Total: 7_200_000},
	}
}

func TestRender_CompactEndToEnd(t *testing.T) {
	svg, err := Render(sampleProfile(), seenAt.Add(2*time.Hour), Compact)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	wants := []string{
		"User: abc",
		"Online: 0 days, 2 h, and 0 min ago",
		"Rapid: 1800",
		"Blitz: 1600",
		"Bullet: 1200",
		"Playtime: 2 hours",
		`width="276" height="10" class="rating-bar"`,
		`width="245" height="10" class="rating-bar"`,
		`width="184" height="10" class="rating-bar"`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasPrefix(svg, xml.Header) {
		t.Errorf("output should start with the XML declaration")
	}
}

func TestRender_Deterministic(t *testing.T) {
	now := seenAt.Add(90 * time.Minute)
	for _, v := range []Variant{Compact, Wide, WideNoStatus} {
		first, err := Render(sampleProfile(), now, v)
		if err != nil {
			t.Fatalf("Render(%s) error: %v", v, err)
		}
		for i := 0; i < 5; i++ {
			again, _ := Render(sampleProfile(), now, v)
			if again != first {
				t.Fatalf("Render(%s) not deterministic on call %d", v, i)
			}
		}
	}
}

func TestRender_ConcurrentCallsAreIndependent(t *testing.T) {
	want, err := Render(sampleProfile(), seenAt.Add(time.Minute), Wide)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Render(sampleProfile(), seenAt.Add(time.Minute), Wide)
			if err != nil || got != want {
				errs <- fmt.Errorf("concurrent render diverged: %v", err)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRender_CanvasSize(t *testing.T) {
	tests := []struct {
		variant       Variant
		width, height int
	}{
		{Compact, 500, 300},
		{Wide, 600, 350},
		{WideNoStatus, 600, 300},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			svg, err := Render(sampleProfile(), seenAt, tt.variant)
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			root := decodeRoot(t, svg)
			if root.Width != tt.width || root.Height != tt.height {
				t.Errorf("canvas = %dx%d, want %dx%d", root.Width, root.Height, tt.width, tt.height)
			}

			w, h, err := CanvasSize(tt.variant)
			if err != nil || w != tt.width || h != tt.height {
				t.Errorf("CanvasSize() = %d, %d, %v", w, h, err)
			}
		})
	}
}

func TestRender_WellFormed(t *testing.T) {
	p := sampleProfile()
	p.Username = `<script>&"x"`
	for _, v := range []Variant{Compact, Wide, WideNoStatus} {
		svg, err := Render(p, seenAt, v)
		if err != nil {
			t.Fatalf("Render(%s) error: %v", v, err)
		}
		dec := xml.NewDecoder(strings.NewReader(svg))
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Render(%s) produced malformed XML: %v", v, err)
			}
		}
		if strings.Contains(svg, "<script>") {
			t.Errorf("Render(%s) did not escape the username", v)
		}
	}
}

func TestRender_WideStatus(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    time.Duration
		wantOnline bool
	}{
		{"just seen", 0, true},
		{"five minutes", 5 * time.Minute, true},
		{"five minutes one second", 5*time.Minute + time.Second, false},
		{"one hour", time.Hour, false},
		{"seen in the future", -time.Minute, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg, err := Render(sampleProfile(), seenAt.Add(tt.elapsed), Wide)
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			hasLabel := strings.Contains(svg, ">Online</text>")
			hasGreenDot := strings.Contains(svg, `fill="`+colorOnline+`" class="status-dot"`)
			if hasLabel != tt.wantOnline || hasGreenDot != tt.wantOnline {
				t.Errorf("online label=%v dot=%v, want %v", hasLabel, hasGreenDot, tt.wantOnline)
			}
			if !tt.wantOnline && !strings.Contains(svg, `fill="`+colorOffline+`" class="status-dot"`) {
				t.Errorf("offline card should carry the neutral status dot")
			}
		})
	}
}

func TestRender_StatusDotOnlyOnWide(t *testing.T) {
	for _, v := range []Variant{Compact, WideNoStatus} {
		svg, err := Render(sampleProfile(), seenAt, v)
		if err != nil {
			t.Fatalf("Render(%s) error: %v", v, err)
		}
		if strings.Contains(svg, "status-dot") {
			t.Errorf("Render(%s) should not draw a status dot", v)
		}
	}
}

func TestRender_PlaytimeOnlyOnCompact(t *testing.T) {
	for _, v := range []Variant{Wide, WideNoStatus} {
		svg, _ := Render(sampleProfile(), seenAt, v)
		if strings.Contains(svg, "Playtime") {
			t.Errorf("Render(%s) should omit the playtime row", v)
		}
		if !strings.Contains(svg, "♞ abc ♞") {
			t.Errorf("Render(%s) should center a decorated header", v)
		}
	}
}

func TestRender_MissingModes(t *testing.T) {
	p := sampleProfile()
	p.Perfs.Bullet = nil
	p.PlayTime = nil

	svg, err := Render(p, seenAt, Compact)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(svg, "Bullet: 0") {
		t.Errorf("missing bullet should render as 0")
	}
	if !strings.Contains(svg, `y="270" width="0"`) {
		t.Errorf("missing bullet bar should have width 0")
	}
	if !strings.Contains(svg, "Playtime: 0 hours") {
		t.Errorf("missing playTime should render as 0 hours")
	}
}

func TestRender_MalformedProfile(t *testing.T) {
	tests := []struct {
		name      string
		profile   *models.UserProfile
		wantField string
	}{
		{"nil profile", nil, "profile"},
		{"empty username", &models.UserProfile{Username: "  "}, "username"},
		{"negative rating", &models.UserProfile{
			Username: "abc",
			Perfs:    models.Perfs{Blitz: &models.Perf{Rating: -1}},
		}, "perfs.blitz.rating"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg, err := Render(tt.profile, seenAt, Compact)
			if !errors.Is(err, ErrMalformedProfile) {
				t.Fatalf("expected ErrMalformedProfile, got %v", err)
			}
			var mpe *MalformedProfileError
			if !errors.As(err, &mpe) || mpe.Field != tt.wantField {
				t.Errorf("field = %v, want %q", mpe, tt.wantField)
			}
			if svg != "" {
				t.Errorf("no partial card should be returned")
			}
		})
	}
}

func TestRender_UnknownVariant(t *testing.T) {
	_, err := Render(sampleProfile(), seenAt, Variant(42))
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"compact", Compact, false},
		{"WIDE", Wide, false},
		{" wide-nostatus ", WideNoStatus, false},
		{"", 0, true},
		{"tall", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseVariant(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if err == nil && got.String() != strings.TrimSpace(strings.ToLower(tt.in)) {
			t.Errorf("String() = %q does not round-trip %q", got.String(), tt.in)
		}
	}
}

type rootElement struct {
	XMLName xml.Name `xml:"svg"`
	Width   int      `xml:"width,attr"`
	Height  int      `xml:"height,attr"`
}

func decodeRoot(t *testing.T, svg string) rootElement {
	t.Helper()
	var root rootElement
	if err := xml.Unmarshal([]byte(svg), &root); err != nil {
		t.Fatalf("xml.Unmarshal() error: %v", err)
	}
	return root
}
