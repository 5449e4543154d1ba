package render

import (
	"testing"
	"time"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		delta int64
		want  Elapsed
	}{
		{"zero", 0, Elapsed{0, 0, 0}},
		{"one of each", 90_061_000, Elapsed{1, 1, 1}},
		{"two hours", 2 * 3_600_000, Elapsed{0, 2, 0}},
		{"59 seconds", 59_000, Elapsed{0, 0, 0}},
		{"three days and change", 3*86_400_000 + 23*3_600_000 + 59*60_000, Elapsed{3, 23, 59}},
		{"negative minute", -60_000, Elapsed{-1, -1, -1}},
		{"negative second", -1_000, Elapsed{-1, -1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decompose(tt.delta); got != tt.want {
				t.Errorf("Decompose(%d) = %+v, want %+v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestDeltaMillis(t *testing.T) {
	seen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := DeltaMillis(seen.UnixMilli(), seen.Add(90*time.Second)); got != 90_000 {
		t.Errorf("DeltaMillis() = %d, want 90000", got)
	}
	if got := DeltaMillis(seen.UnixMilli(), seen.Add(-time.Second)); got != -1_000 {
		t.Errorf("DeltaMillis() = %d, want -1000", got)
	}
}

func TestIsOnline(t *testing.T) {
	tests := []struct {
		delta int64
		want  bool
	}{
		{0, true},
		{299_999, true},
		{300_000, true},
		{301_000, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := IsOnline(tt.delta); got != tt.want {
			t.Errorf("IsOnline(%d) = %v, want %v", tt.delta, got, tt.want)
		}
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		rating, track, want int
	}{
		{1500, 400, 200},
		{3000, 400, 400},
		{3000, 460, 460},
		{0, 460, 0},
		{1800, 460, 276},
		{1600, 460, 245},
		{1200, 460, 184},
		{3300, 400, 440}, // overflows the track
	}
	for _, tt := range tests {
		if got := BarWidth(tt.rating, tt.track); got != tt.want {
			t.Errorf("BarWidth(%d, %d) = %d, want %d", tt.rating, tt.track, got, tt.want)
		}
	}
}

func TestTrackWidth(t *testing.T) {
	for v, want := range map[Variant]int{Compact: 460, Wide: 400, WideNoStatus: 400} {
		got, err := TrackWidth(v)
		if err != nil || got != want {
			t.Errorf("TrackWidth(%s) = %d, %v; want %d", v, got, err, want)
		}
	}
	if _, err := TrackWidth(Variant(9)); err == nil {
		t.Errorf("TrackWidth() should reject unknown variants")
	}
}

func TestPlaytimeHours(t *testing.T) {
	if got := PlaytimeHours(7_200_000); got != 2 {
		t.Errorf("PlaytimeHours(7200000) = %d, want 2", got)
	}
	if got := PlaytimeHours(3_599_999); got != 0 {
		t.Errorf("PlaytimeHours(3599999) = %d, want 0", got)
	}
}
