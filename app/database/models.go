package database

import (
	"time"
)

// EventStatus is the persisted lifecycle of an event record. It is
// distinct from the feed-native status reported by the upstream
// calendar: a persisted record only ever advances forward
// (active -> cancelled, active -> removed) and is never deleted, so
// downstream records referencing the event stay valid.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusRemoved   EventStatus = "removed"
)

// Event represents an event record in the database
type Event struct {
	ID        string // Database UUID
	FeedID    string // Upstream calendar UID, unique
	Title     string
	StartsAt  time.Time
	Category  string
	UnitID    *string
	Status    EventStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Unit represents an organizational unit reference record
type Unit struct {
	ID             string
	Name           string
	NormalizedName string
	RegionID       string
	RegionCode     string
}
