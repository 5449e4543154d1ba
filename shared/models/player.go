// shared/models/player.go
package models

import "time"

// Perf is a single game mode's standing as reported by Lichess.
type Perf struct {
	Games  int  `json:"games"`
	Rating int  `json:"rating"`
	Rd     int  `json:"rd"`
	Prog   int  `json:"prog"`
	Prov   bool `json:"prov,omitempty"`
}

// Perfs holds the modes rendered on a stats card. A mode the user never
// played is absent from the upstream payload and decodes to nil.
type Perfs struct {
	Rapid  *Perf `json:"rapid,omitempty"`
	Blitz  *Perf `json:"blitz,omitempty"`
	Bullet *Perf `json:"bullet,omitempty"`
}

// PlayTime is the cumulative play time block of a Lichess user.
type PlayTime struct {
	Total int64 `json:"total"`
	TV    int64 `json:"tv"`
}

// UserProfile is the subset of GET /api/user/{username} the card needs.
type UserProfile struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	SeenAt   int64     `json:"seenAt"` // epoch millis
	Perfs    Perfs     `json:"perfs"`
	PlayTime *PlayTime `json:"playTime,omitempty"`
}

// SeenTime returns SeenAt as a time.Time.
func (p *UserProfile) SeenTime() time.Time {
	return time.UnixMilli(p.SeenAt)
}

// Rating returns the rating of the given perf, or 0 if the mode is absent.
func Rating(p *Perf) int {
	if p == nil {
		return 0
	}
	return p.Rating
}

// TotalPlayTime returns playTime.total, or 0 if the block is absent.
func (p *UserProfile) TotalPlayTime() int64 {
	if p.PlayTime == nil {
		return 0
	}
	return p.PlayTime.Total
}
