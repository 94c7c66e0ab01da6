package database

import (
	"context"
	"time"
)

// EventFields are the attributes compared and rewritten during
// reconciliation. Status transitions go through UpdateEventStatus only.
type EventFields struct {
	Title    string
	StartsAt time.Time
	Category string
	UnitID   *string
}

type EventRepository interface {
	GetAllEvents(ctx context.Context) ([]Event, error)
	GetEventByFeedID(ctx context.Context, feedID string) (*Event, error)
	GetEventStats(ctx context.Context) (active, cancelled, removed int, err error)

	InsertEvent(ctx context.Context, feedID string, fields EventFields) error
	UpdateEventFields(ctx context.Context, feedID string, fields EventFields) error
	UpdateEventStatus(ctx context.Context, feedID string, status EventStatus) error
}

type UnitRepository interface {
	GetAllUnits(ctx context.Context) ([]Unit, error)
	GetUnitCount(ctx context.Context) (int, error)
}
