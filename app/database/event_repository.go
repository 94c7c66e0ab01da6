package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

var _ EventRepository = (*SQLEventRepository)(nil)

// SQLEventRepository handles database operations for event records
type SQLEventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *SQLEventRepository {
	return &SQLEventRepository{db: db}
}

func (r *SQLEventRepository) GetAllEvents(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, feed_id, title, starts_at, category, unit_id, status, created_at, updated_at
		FROM events
		ORDER BY starts_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

func (r *SQLEventRepository) GetEventByFeedID(ctx context.Context, feedID string) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, feed_id, title, starts_at, category, unit_id, status, created_at, updated_at
		FROM events
		WHERE feed_id = ?
	`, feedID)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", feedID, err)
	}

	return &event, nil
}

func (r *SQLEventRepository) GetEventStats(ctx context.Context) (active, cancelled, removed int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT
			SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'removed' THEN 1 ELSE 0 END)
		FROM events
	`).Scan(&active, &cancelled, &removed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get event stats: %w", err)
	}

	return active, cancelled, removed, nil
}

func (r *SQLEventRepository) InsertEvent(ctx context.Context, feedID string, fields EventFields) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, feed_id, title, starts_at, category, unit_id, status)
		VALUES (?, ?, ?, ?, ?, ?, 'active')
	`, uuid.NewString(), feedID, fields.Title, fields.StartsAt.UTC(), fields.Category, fields.UnitID)
	if err != nil {
		return fmt.Errorf("failed to insert event %s: %w", feedID, err)
	}

	return nil
}

func (r *SQLEventRepository) UpdateEventFields(ctx context.Context, feedID string, fields EventFields) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, starts_at = ?, category = ?, unit_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE feed_id = ? AND status = 'active'
	`, fields.Title, fields.StartsAt.UTC(), fields.Category, fields.UnitID, feedID)
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", feedID, err)
	}

	return nil
}

// UpdateEventStatus applies a terminal status transition. The status
// guard in the WHERE clause enforces the forward-only rule at the store
// as well: a cancelled or removed record is never rewritten.
func (r *SQLEventRepository) UpdateEventStatus(ctx context.Context, feedID string, status EventStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE feed_id = ? AND status = 'active'
	`, string(status), feedID)
	if err != nil {
		return fmt.Errorf("failed to update status of event %s: %w", feedID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var event Event
	var unitID sql.NullString
	var status string

	err := row.Scan(&event.ID, &event.FeedID, &event.Title, &event.StartsAt,
		&event.Category, &unitID, &status, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return Event{}, err
	}

	if unitID.Valid {
		event.UnitID = &unitID.String
	}
	event.Status = EventStatus(status)

	return event, nil
}
