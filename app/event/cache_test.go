package event

import (
	"testing"

	"github.com/mcportal/agenda-sync/app/calendar"
)

func TestFilterDisplayable(t *testing.T) {
	events := []ResolvedEvent{
		{FeedID: "a", Title: "[VP1] Reunião - Jacareí Norte", Status: calendar.StatusConfirmed},
		{FeedID: "b", Title: "[VP2] Passeio - Taubaté Centro", Status: calendar.StatusCancelled},
		{FeedID: "c", Title: "", Status: calendar.StatusConfirmed},
		{FeedID: "d", Title: "Confraternização", Status: calendar.StatusTentative},
	}

	out := FilterDisplayable(events)
	if len(out) != 2 {
		t.Fatalf("Expected 2 displayable events, got %d", len(out))
	}
	if out[0].FeedID != "a" || out[1].FeedID != "d" {
		t.Errorf("Expected events a and d, got %s and %s", out[0].FeedID, out[1].FeedID)
	}
}

func TestSnapshot_PublishAndRead(t *testing.T) {
	snapshot := NewSnapshot()

	if !snapshot.LastSyncAt().IsZero() {
		t.Errorf("Expected zero last sync time before the first publish")
	}
	if len(snapshot.Events()) != 0 {
		t.Errorf("Expected empty snapshot before the first publish")
	}

	snapshot.Publish([]ResolvedEvent{{FeedID: "a"}, {FeedID: "b"}})

	events := snapshot.Events()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if snapshot.LastSyncAt().IsZero() {
		t.Errorf("Expected last sync time to be set after publish")
	}

	// Mutating the returned slice must not leak into the snapshot.
	events[0].FeedID = "mutated"
	if snapshot.Events()[0].FeedID != "a" {
		t.Errorf("Expected snapshot to be isolated from caller mutation")
	}
}
