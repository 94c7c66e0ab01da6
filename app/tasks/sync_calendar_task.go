package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/mcportal/agenda-sync/app/calendar"
	"github.com/mcportal/agenda-sync/app/database"
	"github.com/mcportal/agenda-sync/app/event"
)

// SyncCalendarTask runs one full sync cycle: fetch the calendar feed,
// classify and resolve every item, publish the display snapshot, insert
// records for new items and reconcile the persisted set.
type SyncCalendarTask struct {
	Task
	client     *calendar.Client
	classifier *event.Classifier
	matcher    *event.UnitMatcher
	assembler  *event.Assembler
	reconciler *event.Reconciler
	snapshot   *event.Snapshot
	eventRepo  database.EventRepository
	inFlight   *atomic.Bool
}

func NewSyncCalendarTask(client *calendar.Client, classifier *event.Classifier,
	matcher *event.UnitMatcher, assembler *event.Assembler, reconciler *event.Reconciler,
	snapshot *event.Snapshot, eventRepo database.EventRepository, inFlight *atomic.Bool) *SyncCalendarTask {
	return &SyncCalendarTask{
		Task:       NewTask(TaskTypeSyncCalendar),
		client:     client,
		classifier: classifier,
		matcher:    matcher,
		assembler:  assembler,
		reconciler: reconciler,
		snapshot:   snapshot,
		eventRepo:  eventRepo,
		inFlight:   inFlight,
	}
}

func (t *SyncCalendarTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Cycles never overlap; a trigger during a running sync is dropped.
	if !t.inFlight.CompareAndSwap(false, true) {
		slog.Debug("Sync already in progress, skipping", "id", t.GetID())
		return nil
	}
	defer t.inFlight.Store(false)

	// The unit table is a hard prerequisite: without it every match
	// would silently degrade to "no unit" and the reconciler would
	// rewrite healthy records. Abort before touching anything.
	if err := t.matcher.Warm(ctx); err != nil {
		return err
	}

	items, err := t.client.Fetch(ctx)
	if err != nil {
		return err
	}

	var errs []error

	resolved := make([]event.ResolvedEvent, 0, len(items))
	for _, item := range items {
		cls := t.classifier.Classify(item.Title)

		match, err := t.matcher.Resolve(ctx, cls.UnitFragment)
		if err != nil {
			return fmt.Errorf("failed to resolve unit for %s: %w", item.UID, err)
		}

		resolved = append(resolved, t.assembler.Assemble(item, cls, match))
	}

	// The display snapshot reflects the feed as fetched, before any
	// database write. A persistence failure must not blank the UI.
	t.snapshot.Publish(event.FilterDisplayable(resolved))

	newCount, insertErrs := t.createNewEvents(ctx, resolved)
	errs = append(errs, insertErrs...)

	if err := t.reconciler.Run(ctx, resolved); err != nil {
		errs = append(errs, err)
	}

	slog.Info("Task completed",
		"type", "SyncCalendar",
		"duration", t.GetDuration(),
		"total", len(items),
		"new", newCount)

	return errors.Join(errs...)
}

// createNewEvents inserts a record for every feed item seen for the
// first time. Items already cancelled on first sight are skipped: they
// were never shown, so there is nothing to track.
func (t *SyncCalendarTask) createNewEvents(ctx context.Context, resolved []event.ResolvedEvent) (int, []error) {
	var errs []error
	newCount := 0

	for i := range resolved {
		ev := &resolved[i]

		existing, err := t.eventRepo.GetEventByFeedID(ctx, ev.FeedID)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to look up event %s: %w", ev.FeedID, err))
			continue
		}
		if existing != nil {
			continue
		}

		if ev.Status == calendar.StatusCancelled {
			slog.Debug("New item already cancelled, skipping", "feed_id", ev.FeedID)
			continue
		}

		fields := database.EventFields{
			Title:    ev.Title,
			StartsAt: ev.StartsAt,
			Category: string(ev.Classification.Category),
			UnitID:   ev.UnitID,
		}
		if err := t.eventRepo.InsertEvent(ctx, ev.FeedID, fields); err != nil {
			errs = append(errs, fmt.Errorf("failed to insert event %s: %w", ev.FeedID, err))
			continue
		}
		newCount++
	}

	return newCount, errs
}
