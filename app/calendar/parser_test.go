package calendar

import (
	"strings"
	"testing"
	"time"
)

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//calendar//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-1\r\n" +
	"SUMMARY:Reunião Jacareí Norte\r\n" +
	"DTSTART:20260905T130000Z\r\n" +
	"DTEND:20260905T150000Z\r\n" +
	"STATUS:CONFIRMED\r\n" +
	"LOCATION:Sede Jacareí\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-2\r\n" +
	"SUMMARY:Passeio cancelado\r\n" +
	"DTSTART:20260906T130000Z\r\n" +
	"STATUS:CANCELLED\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Sem identificador\r\n" +
	"DTSTART:20260907T130000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParse(t *testing.T) {
	items, err := Parse([]byte(sampleICS))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The entry without a UID is skipped, not fatal.
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.UID != "evt-1" {
		t.Errorf("Expected UID evt-1, got %q", first.UID)
	}
	if first.Title != "Reunião Jacareí Norte" {
		t.Errorf("Expected title to be preserved, got %q", first.Title)
	}
	if first.Location != "Sede Jacareí" {
		t.Errorf("Expected location to be preserved, got %q", first.Location)
	}
	if first.Status != StatusConfirmed {
		t.Errorf("Expected status confirmed, got %q", first.Status)
	}

	expectedStart := time.Date(2026, 9, 5, 13, 0, 0, 0, time.UTC)
	if !first.StartsAt.Equal(expectedStart) {
		t.Errorf("Expected start %v, got %v", expectedStart, first.StartsAt)
	}
	expectedEnd := time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC)
	if !first.EndsAt.Equal(expectedEnd) {
		t.Errorf("Expected end %v, got %v", expectedEnd, first.EndsAt)
	}
}

func TestParse_CancelledStatus(t *testing.T) {
	items, err := Parse([]byte(sampleICS))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second := items[1]
	if second.Status != StatusCancelled {
		t.Errorf("Expected status cancelled, got %q", second.Status)
	}

	// Missing DTEND falls back to the start time.
	if !second.EndsAt.Equal(second.StartsAt) {
		t.Errorf("Expected end to equal start when DTEND is missing, got %v", second.EndsAt)
	}
}

func TestParse_InvalidPayload(t *testing.T) {
	_, err := Parse([]byte("not an ics payload"))
	if err == nil {
		t.Fatal("Expected an error for an invalid payload")
	}
}

func TestParse_SkipsMissingSummary(t *testing.T) {
	ics := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//calendar//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:evt-sem-titulo\r\n" +
		"DTSTART:20260908T130000Z\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:evt-ok\r\n" +
		"SUMMARY:Reunião mensal\r\n" +
		"DTSTART:20260909T130000Z\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	items, err := Parse([]byte(ics))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// An entry without a summary can never produce a displayable or
	// reconcilable record, so it is dropped like a UID-less one.
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].UID != "evt-ok" {
		t.Errorf("Expected only evt-ok to survive, got %q", items[0].UID)
	}
}

func TestParse_StatusDefaultsToConfirmed(t *testing.T) {
	ics := strings.Replace(sampleICS, "STATUS:CONFIRMED\r\n", "", 1)

	items, err := Parse([]byte(ics))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if items[0].Status != StatusConfirmed {
		t.Errorf("Expected missing STATUS to default to confirmed, got %q", items[0].Status)
	}
}
