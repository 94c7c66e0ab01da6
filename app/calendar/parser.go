package calendar

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	ical "github.com/arran4/golang-ical"
)

// Parse parses an ICS payload into a list of Items. Entries without a
// UID or summary are skipped with a warning rather than failing the
// whole payload.
func Parse(data []byte) ([]Item, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ICS payload: %w", err)
	}

	events := cal.Events()
	items := make([]Item, 0, len(events))
	for _, ve := range events {
		item, err := parseEvent(ve)
		if err != nil {
			slog.Warn("Skipping malformed calendar entry", "error", err)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func parseEvent(ve *ical.VEvent) (Item, error) {
	var item Item

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return item, fmt.Errorf("missing UID")
	}
	item.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		item.Title = p.Value
	}
	if item.Title == "" {
		return item, fmt.Errorf("missing SUMMARY for %s", item.UID)
	}

	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		item.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		item.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
		item.Link = p.Value
	}

	item.Status = parseStatus(ve)

	// DTSTART may be a DATE-TIME or a date-only value for all-day events.
	start, err := ve.GetStartAt()
	if err != nil {
		start, err = ve.GetAllDayStartAt()
		if err != nil {
			return item, fmt.Errorf("unparseable DTSTART for %s: %w", item.UID, err)
		}
	}
	item.StartsAt = start

	end, err := ve.GetEndAt()
	if err != nil {
		if end, err = ve.GetAllDayEndAt(); err != nil {
			end = start
		}
	}
	item.EndsAt = end

	return item, nil
}

func parseStatus(ve *ical.VEvent) ItemStatus {
	p := ve.GetProperty(ical.ComponentPropertyStatus)
	if p == nil {
		return StatusConfirmed
	}

	switch strings.ToUpper(strings.TrimSpace(p.Value)) {
	case "CANCELLED":
		return StatusCancelled
	case "TENTATIVE":
		return StatusTentative
	default:
		return StatusConfirmed
	}
}
