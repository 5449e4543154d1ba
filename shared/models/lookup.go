// shared/models/lookup.go
package models

import "time"

// Lookup outcomes recorded in the audit log.
const (
	OutcomeOK               = "ok"
	OutcomeUpstreamError    = "upstream_error"
	OutcomeMalformedProfile = "malformed_profile"
)

// LookupRecord is one stats card request as stored in MongoDB.
// It never carries the rendered markup or the upstream payload.
type LookupRecord struct {
	ID             string    `bson:"_id" json:"id"`
	Username       string    `bson:"username" json:"username"`
	Variant        string    `bson:"variant" json:"variant"`
	Outcome        string    `bson:"outcome" json:"outcome"`
	UpstreamStatus int       `bson:"upstream_status,omitempty" json:"upstreamStatus,omitempty"`
	DurationMillis int64     `bson:"duration_ms" json:"durationMs"`
	RequestedAt    time.Time `bson:"requested_at" json:"requestedAt"`
}
