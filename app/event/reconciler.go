package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcportal/agenda-sync/app/calendar"
	"github.com/mcportal/agenda-sync/app/database"
)

// Reconciler diffs the persisted event set against the current feed
// snapshot and applies the resulting transitions. Status moves one way
// only: once a record is cancelled or removed it never returns to
// active, even if the feed item reappears.
type Reconciler struct {
	repo database.EventRepository
}

func NewReconciler(repo database.EventRepository) *Reconciler {
	return &Reconciler{repo: repo}
}

// Run reconciles the persisted records with one feed snapshot. A
// failure on one record does not stop the others; all errors are
// joined and returned at the end.
func (r *Reconciler) Run(ctx context.Context, resolved []ResolvedEvent) error {
	stored, err := r.repo.GetAllEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}

	byFeedID := make(map[string]*ResolvedEvent, len(resolved))
	for i := range resolved {
		byFeedID[resolved[i].FeedID] = &resolved[i]
	}

	var errs []error
	var removed, cancelled, updated int

	for i := range stored {
		rec := &stored[i]
		current, present := byFeedID[rec.FeedID]

		if rec.Status != database.EventStatusActive {
			if present && current.Status != calendar.StatusCancelled {
				slog.Warn("Terminal event reappeared in feed, keeping status",
					"feed_id", rec.FeedID, "status", rec.Status)
			}
			continue
		}

		switch {
		case !present:
			if err := r.repo.UpdateEventStatus(ctx, rec.FeedID, database.EventStatusRemoved); err != nil {
				errs = append(errs, fmt.Errorf("failed to mark %s removed: %w", rec.FeedID, err))
				continue
			}
			removed++
		case current.Status == calendar.StatusCancelled:
			if err := r.repo.UpdateEventStatus(ctx, rec.FeedID, database.EventStatusCancelled); err != nil {
				errs = append(errs, fmt.Errorf("failed to mark %s cancelled: %w", rec.FeedID, err))
				continue
			}
			cancelled++
		default:
			fields := fieldsOf(current)
			if !fieldsDiffer(rec, fields) {
				continue
			}
			if err := r.repo.UpdateEventFields(ctx, rec.FeedID, fields); err != nil {
				errs = append(errs, fmt.Errorf("failed to update %s: %w", rec.FeedID, err))
				continue
			}
			updated++
		}
	}

	if removed > 0 || cancelled > 0 || updated > 0 {
		slog.Info("Reconciled events",
			"removed", removed, "cancelled", cancelled, "updated", updated)
	}

	return errors.Join(errs...)
}

func fieldsOf(ev *ResolvedEvent) database.EventFields {
	return database.EventFields{
		Title:    ev.Title,
		StartsAt: ev.StartsAt,
		Category: string(ev.Classification.Category),
		UnitID:   ev.UnitID,
	}
}

// fieldsDiffer compares only the fields reconciliation is allowed to
// touch. Times are compared as instants, not representations.
func fieldsDiffer(rec *database.Event, fields database.EventFields) bool {
	if rec.Title != fields.Title {
		return true
	}
	if !rec.StartsAt.Equal(fields.StartsAt) {
		return true
	}
	if rec.Category != fields.Category {
		return true
	}
	return !equalPtr(rec.UnitID, fields.UnitID)
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
