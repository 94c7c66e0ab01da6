package calendar

import (
	"time"
)

// ItemStatus is the feed-native lifecycle status of a calendar entry,
// as reported by the upstream feed. It is a separate enumeration from
// the persisted event status and the two are never conflated.
type ItemStatus string

const (
	StatusConfirmed ItemStatus = "confirmed"
	StatusTentative ItemStatus = "tentative"
	StatusCancelled ItemStatus = "cancelled"
)

// Item is one calendar entry as retrieved from the upstream feed.
// Items arrive fresh on every fetch cycle and are never mutated.
type Item struct {
	UID         string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Status      ItemStatus
	Link        string
}
