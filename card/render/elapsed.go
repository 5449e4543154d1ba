package render

import "time"

const (
	millisPerMinute = int64(60_000)
	millisPerHour   = int64(3_600_000)
	millisPerDay    = int64(86_400_000)

	// OnlineWindow is how recently a user must have been seen to count as online.
	OnlineWindow = 5 * time.Minute
)

// Elapsed is a last-seen delta split into whole days, hours and minutes.
type Elapsed struct {
	Days    int64
	Hours   int64
	Minutes int64
}

// Decompose splits a millisecond delta. Each unit is floored, and the remainder
// feeding the next unit is truncated, so negative deltas stay negative.
func Decompose(deltaMillis int64) Elapsed {
	return Elapsed{
		Days:    floorDiv(deltaMillis, millisPerDay),
		Hours:   floorDiv(deltaMillis%millisPerDay, millisPerHour),
		Minutes: floorDiv(deltaMillis%millisPerHour, millisPerMinute),
	}
}

// DeltaMillis returns now - seenAt in milliseconds. It may be negative.
func DeltaMillis(seenAtMillis int64, now time.Time) int64 {
	return now.UnixMilli() - seenAtMillis
}

// IsOnline reports whether the user was seen within OnlineWindow of now.
// A negative delta (seenAt in the future) is offline.
func IsOnline(deltaMillis int64) bool {
	return deltaMillis >= 0 && deltaMillis <= OnlineWindow.Milliseconds()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// BarWidth scales a rating onto a track where 3000 fills it exactly.
// Ratings above 3000 overflow the track.
func BarWidth(rating, trackWidth int) int {
	return int(floorDiv(int64(rating)*int64(trackWidth), 3000))
}

// PlaytimeHours converts playTime.total to whole hours, treating it as milliseconds.
func PlaytimeHours(total int64) int64 {
	return floorDiv(total, millisPerHour)
}
