package event

import (
	"log/slog"
	"strings"

	"github.com/mcportal/agenda-sync/app/calendar"
)

// Assembler builds the canonical event record out of a feed item, its
// classification and its unit match. Assembly is pure and idempotent:
// re-classifying a canonical title and reassembling yields the same
// title byte for byte.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

func (a *Assembler) Assemble(item calendar.Item, cls Classification, match UnitMatch) ResolvedEvent {
	if match.UnitID == nil && !isSentinelFragment(cls.UnitFragment) {
		slog.Warn("Unit fragment did not resolve to a unit",
			"fragment", cls.UnitFragment, "uid", item.UID)
	}

	return ResolvedEvent{
		FeedID:         item.UID,
		Title:          canonicalTitle(cls, match),
		OriginalTitle:  item.Title,
		Classification: cls,
		UnitID:         match.UnitID,
		Status:         item.Status,
		StartsAt:       item.StartsAt,
		EndsAt:         item.EndsAt,
		Location:       item.Location,
		Link:           item.Link,
	}
}

// canonicalTitle renders "[CODE] Label (Sub) - Unit - Remainder",
// omitting every empty piece. The code prefix follows a strict
// priority: a restricted event carries its own detected code, a
// command-level event always carries the command code, otherwise the
// resolved unit's region wins over the classifier's detection.
func canonicalTitle(cls Classification, match UnitMatch) string {
	var parts []string

	if label := labelPart(cls); label != "" {
		parts = append(parts, label)
	}
	if cls.UnitFragment != "" && cls.UnitFragment != NoUnitSentinel {
		parts = append(parts, cls.UnitFragment)
	}
	if cls.Remainder != "" {
		parts = append(parts, cls.Remainder)
	}

	title := strings.Join(parts, " - ")
	if code := regionCodeFor(cls, match); code != "" {
		title = "[" + code + "] " + title
	}
	return strings.TrimSpace(title)
}

func labelPart(cls Classification) string {
	label := cls.Category.Label()
	if sub := cls.SubCategory.Label(); sub != "" {
		if label == "" {
			return "(" + sub + ")"
		}
		return label + " (" + sub + ")"
	}
	return label
}

func regionCodeFor(cls Classification, match UnitMatch) string {
	switch {
	case cls.IsRestricted:
		return deref(cls.RegionCode)
	case cls.IsCommandLevel:
		return CommandRegionCode
	case match.RegionCode != nil:
		return *match.RegionCode
	default:
		return deref(cls.RegionCode)
	}
}

func isSentinelFragment(fragment string) bool {
	return fragment == "" ||
		fragment == NoUnitSentinel ||
		fragment == CommandUnitDisplay ||
		fragment == RegionalSentinel ||
		strings.HasPrefix(fragment, RegionalSentinel+" ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
