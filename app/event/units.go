package event

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/mcportal/agenda-sync/app/database"
)

// UnitMatcher resolves a unit fragment extracted from a title to a
// persisted organizational unit. The unit table is loaded lazily and
// cached for the lifetime of the matcher; Reset drops the cache so the
// next resolution reloads.
type UnitMatcher struct {
	repo  database.UnitRepository
	rules *Rules

	// Anchored: only a fragment that is nothing but the region token
	// plus a code takes the fast path.
	regionRe *regexp.Regexp

	mu    sync.Mutex
	units []database.Unit
}

func NewUnitMatcher(repo database.UnitRepository) *UnitMatcher {
	rules := loadRules()
	return &UnitMatcher{
		repo:  repo,
		rules: rules,
		regionRe: regexp.MustCompile(`^` + regexp.QuoteMeta(FoldLower(rules.RegionToken)) +
			`\s*(` + regionCodeAlternatives(rules.Regions) + `)$`),
	}
}

// Warm loads the unit reference cache up front. A failed load leaves
// the cache empty, so a later call retries.
func (m *UnitMatcher) Warm(ctx context.Context) error {
	_, err := m.load(ctx)
	return err
}

// Reset invalidates the cached unit table.
func (m *UnitMatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units = nil
}

func (m *UnitMatcher) load(ctx context.Context) ([]database.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.units != nil {
		return m.units, nil
	}

	units, err := m.repo.GetAllUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}

	// Longest normalized name first, so a substring scan can never pick
	// "Vale do Paraíba I" out of a fragment naming "Vale do Paraíba II".
	sort.Slice(units, func(i, j int) bool {
		return len(units[i].NormalizedName) > len(units[j].NormalizedName)
	})

	m.units = units
	return m.units, nil
}

// Resolve maps a unit fragment to a unit and region code. Resolution
// rules apply in strict order: a literal region code wins over an exact
// name match, exact wins over substring, substring wins over the
// keyword aliases. No match is a valid outcome, not an error.
func (m *UnitMatcher) Resolve(ctx context.Context, fragment string) (UnitMatch, error) {
	switch fragment {
	case "", NoUnitSentinel, CommandUnitDisplay, RegionalSentinel:
		return UnitMatch{}, nil
	}

	units, err := m.load(ctx)
	if err != nil {
		return UnitMatch{}, err
	}

	folded := FoldLower(fragment)

	if sub := m.regionRe.FindStringSubmatch(folded); sub != nil {
		return m.matchRegion(units, canonicalCode(sub[1])), nil
	}

	if match, ok := matchFor(units, folded); ok {
		return match, nil
	}

	// Keyword aliases: rewrite shorthand tokens to the full locality
	// phrase and retry ("sjc norte" resolves like "sao jose norte").
	if expanded := m.expandAliases(folded); expanded != folded {
		if match, ok := matchFor(units, expanded); ok {
			return match, nil
		}
	}

	return UnitMatch{}, nil
}

// matchRegion resolves a region code to the unit whose normalized name
// carries the region's full name. The code is returned even when no
// such unit is seeded.
func (m *UnitMatcher) matchRegion(units []database.Unit, code string) UnitMatch {
	match := UnitMatch{RegionCode: &code}

	regionName := FoldLower(m.rules.RegionName(code))
	if regionName == "" {
		return match
	}

	// Word-boundary containment keeps "vale do paraiba i" from hitting
	// the "...ii" unit.
	for i := range units {
		u := &units[i]
		if containsWord(u.NormalizedName, regionName) {
			match.UnitID = &u.ID
			break
		}
	}
	return match
}

func matchFor(units []database.Unit, fragment string) (UnitMatch, bool) {
	for i := range units {
		u := &units[i]
		if u.NormalizedName == fragment {
			return unitMatch(u), true
		}
	}
	for i := range units {
		u := &units[i]
		if containsWord(fragment, u.NormalizedName) || containsWord(u.NormalizedName, fragment) {
			return unitMatch(u), true
		}
	}
	return UnitMatch{}, false
}

func unitMatch(u *database.Unit) UnitMatch {
	return UnitMatch{UnitID: &u.ID, RegionCode: &u.RegionCode}
}

func (m *UnitMatcher) expandAliases(fragment string) string {
	for _, alias := range m.rules.UnitAliases {
		for _, pattern := range alias.Patterns {
			fragment = replaceWord(fragment, pattern, alias.Contains)
		}
	}
	return strings.Join(strings.Fields(fragment), " ")
}

// containsWord reports whether s contains phrase on word boundaries.
// Plain substring containment would let one region name shadow another
// that extends it.
func containsWord(s, phrase string) bool {
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}

func replaceWord(s, word, replacement string) string {
	padded := " " + s + " "
	padded = strings.ReplaceAll(padded, " "+word+" ", " "+replacement+" ")
	return strings.TrimSpace(padded)
}
