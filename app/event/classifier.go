package event

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Classifier turns a raw calendar title into a structured
// Classification. Classification is total: any string, including the
// empty one, produces a valid result.
type Classifier struct {
	rules *Rules

	restrictedRe     *regexp.Regexp // whole word, on the original title
	restrictedFoldRe *regexp.Regexp
	publicWordRe     *regexp.Regexp
	regionCodeRe     *regexp.Regexp
	regionFamilyRe   *regexp.Regexp
	regionTokenRe    *regexp.Regexp
	commandTokenRe   *regexp.Regexp

	// Region display names, longest first so stripping one never leaves
	// the tail of a longer one behind.
	regionNames []string

	categoryRules []categoryRule
}

type categoryRule struct {
	category Category
	matches  func(t *foldedTitle) bool
}

func NewClassifier() *Classifier {
	rules := loadRules()
	c := &Classifier{rules: rules}

	restricted := regexp.QuoteMeta(FoldLower(rules.Restricted.Word))
	c.restrictedRe = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(rules.Restricted.Word) + `\b`)
	c.restrictedFoldRe = regexp.MustCompile(`\b` + restricted + `\b`)
	c.publicWordRe = regexp.MustCompile(`\b(?:` + joinPatterns(rules.Categories.Public.Words) + `)\b`)
	c.regionCodeRe = regexp.MustCompile(`\b(?:` + regionCodeAlternatives(rules.Regions) + `)\b`)
	c.regionTokenRe = regexp.MustCompile(`\b` + regexp.QuoteMeta(FoldLower(rules.RegionToken)) + `\b`)
	c.commandTokenRe = regexp.MustCompile(`\b(?:` + joinPatterns(rules.Command.Tokens) + `)\b`)

	// "Vale do Paraíba II" style names: family prefix plus a Roman
	// numeral suffix mapping to sequential codes.
	family := regionFamilyPrefix(rules.Regions)
	c.regionFamilyRe = regexp.MustCompile(`\b` + regexp.QuoteMeta(family) + `\s+(i{1,3})\b`)

	for _, region := range rules.Regions {
		c.regionNames = append(c.regionNames, FoldLower(region.Name))
	}
	sort.Slice(c.regionNames, func(i, j int) bool {
		return len(c.regionNames[i]) > len(c.regionNames[j])
	})

	// Category rules in strict priority order, first match wins.
	// The restricted term outranks everything; Bate e Volta is tested
	// before the meeting keywords because the informal meeting shorthand
	// also matches on "bate".
	c.categoryRules = []categoryRule{
		{CategoryCaveira, func(t *foldedTitle) bool {
			return c.restrictedRe.MatchString(t.original)
		}},
		{CategoryPublico, func(t *foldedTitle) bool {
			return c.publicWordRe.MatchString(t.lower) || containsAny(t.lower, rules.Categories.Public.Phrases)
		}},
		{CategoryAcaoSocial, func(t *foldedTitle) bool {
			return containsAny(t.lower, rules.Categories.SocialAction.Phrases) ||
				containsAny(t.lower, rules.Categories.SocialAction.FundraisingPhrases)
		}},
		{CategoryBateVolta, func(t *foldedTitle) bool {
			return containsAny(t.lower, rules.Categories.ShortTrip.Phrases)
		}},
		{CategoryReuniao, func(t *foldedTitle) bool {
			return containsAny(t.lower, rules.Categories.Meeting.Phrases)
		}},
		{CategoryComboioInsano, func(t *foldedTitle) bool {
			return containsAny(t.lower, rules.Categories.Convoy.Phrases)
		}},
	}

	return c
}

// Classify never fails; an unrecognized title degrades to
// CategoryOutro with the no-unit sentinel.
func (c *Classifier) Classify(rawTitle string) Classification {
	t := newFoldedTitle(rawTitle)

	cls := Classification{
		Category:     CategoryOutro,
		UnitFragment: NoUnitSentinel,
	}

	// Facets are independent of each other and of the category.
	cls.IsCommandLevel = containsAnyUpper(t.upper, c.rules.Command.Tokens)
	cls.IsRegionLevel = strings.Contains(t.upper, strings.ToUpper(Fold(c.rules.RegionToken)))
	cls.IsRestricted = c.restrictedRe.MatchString(t.original)

	for _, rule := range c.categoryRules {
		if rule.matches(t) {
			cls.Category = rule.category
			break
		}
	}

	if cls.Category == CategoryAcaoSocial &&
		containsAny(t.lower, c.rules.Categories.SocialAction.FundraisingPhrases) {
		cls.SubCategory = SubCategoryArrecadacao
	}
	if cls.SubCategory == SubCategoryNone && containsAny(t.lower, c.rules.EquipmentPhrases) {
		cls.SubCategory = SubCategoryEntregaColetes
	}

	switch {
	case cls.IsRestricted:
		c.classifyRestricted(t, &cls)
	case cls.IsCommandLevel:
		c.classifyCommand(t, &cls)
	case cls.IsRegionLevel:
		c.classifyRegional(t, &cls)
	default:
		c.classifyUnit(t, &cls)
	}

	return cls
}

// classifyRestricted extracts a region code with the literal-token
// pattern only. The restricted badge is rendered elsewhere, so the
// unit fragment carries the code, never the restricted term itself.
func (c *Classifier) classifyRestricted(t *foldedTitle, cls *Classification) {
	if m := c.regionCodeRe.FindString(t.lower); m != "" {
		code := canonicalCode(m)
		cls.RegionCode = &code
		cls.UnitFragment = code
	}

	s := t.stripper()
	s.removePattern(c.restrictedFoldRe)
	s.removePattern(c.regionCodeRe)
	cls.Remainder = s.result()
}

func (c *Classifier) classifyCommand(t *foldedTitle, cls *Classification) {
	cls.UnitFragment = CommandUnitDisplay

	s := t.stripper()
	c.stripCategoryTokens(s, cls)
	s.removePattern(c.commandTokenRe)
	cls.Remainder = s.result()
}

func (c *Classifier) classifyRegional(t *foldedTitle, cls *Classification) {
	if code, ok := c.detectRegionCode(t); ok {
		cls.RegionCode = &code
		cls.UnitFragment = RegionalSentinel + " " + code
	} else {
		cls.UnitFragment = RegionalSentinel
	}

	s := t.stripper()
	c.stripCategoryTokens(s, cls)
	s.removePattern(c.regionTokenRe)
	s.removePattern(c.regionCodeRe)
	for _, name := range c.regionNames {
		s.removePhrase(name)
	}
	cls.Remainder = s.result()
}

func (c *Classifier) classifyUnit(t *foldedTitle, cls *Classification) {
	if name, end, ok := c.detectUnitName(t); ok {
		cls.UnitFragment = name
		cls.Remainder = cleanupRemainder(string(t.runes[end:]))
		return
	}

	s := t.stripper()
	c.stripCategoryTokens(s, cls)
	cls.Remainder = s.result()
}

// detectRegionCode is the richer detector used for region-level titles:
// literal codes, the region-family name with a Roman numeral suffix,
// and the coastal named-locality shorthand.
func (c *Classifier) detectRegionCode(t *foldedTitle) (string, bool) {
	if m := c.regionCodeRe.FindString(t.lower); m != "" {
		return canonicalCode(m), true
	}
	if m := c.regionFamilyRe.FindStringSubmatch(t.lower); m != nil {
		return fmt.Sprintf("VP%d", len(m[1])), true
	}
	if strings.Contains(t.lower, "litoral") {
		return "LN", true
	}
	return "", false
}

// detectUnitName runs the directional/locality detection used by
// ordinary unit titles. Extreme-direction combinations are checked
// before plain ones regardless of locality: an extreme-direction title
// may omit the locality entirely and must still resolve to the default
// locality's unit.
func (c *Classifier) detectUnitName(t *foldedTitle) (string, int, bool) {
	extreme := c.rules.Extreme

	for _, dir := range c.rules.Directions {
		dirLower := FoldLower(dir)
		for _, loc := range c.rules.Localities {
			for _, locPhrase := range localityPhrases(loc) {
				for _, ext := range c.extremeTokens() {
					if end, ok := findPhrase(t.folded, locPhrase+" "+ext+" "+dirLower); ok {
						return loc.Name + " " + extreme.Name + " " + dir, end, true
					}
				}
			}
		}
	}

	for _, dir := range c.rules.Directions {
		dirLower := FoldLower(dir)
		for _, ext := range c.extremeTokens() {
			if end, ok := findPhrase(t.folded, ext+" "+dirLower); ok {
				return c.rules.DefaultLocality().Name + " " + extreme.Name + " " + dir, end, true
			}
		}
	}

	for _, loc := range c.rules.Localities {
		for _, locPhrase := range localityPhrases(loc) {
			for _, dir := range c.rules.Directions {
				if end, ok := findPhrase(t.folded, locPhrase+" "+FoldLower(dir)); ok {
					return loc.Name + " " + dir, end, true
				}
			}
		}
	}

	for _, loc := range c.rules.Localities {
		for _, locPhrase := range localityPhrases(loc) {
			if end, ok := findPhrase(t.folded, locPhrase); ok {
				return loc.Name, end, true
			}
		}
	}

	return "", 0, false
}

func (c *Classifier) extremeTokens() []string {
	tokens := []string{FoldLower(c.rules.Extreme.Name)}
	for _, alias := range c.rules.Extreme.Aliases {
		tokens = append(tokens, FoldLower(alias))
	}
	return tokens
}

// stripCategoryTokens removes the matched category's keywords (and the
// equipment sub-category phrases) so they do not leak into remainders.
func (c *Classifier) stripCategoryTokens(s *stripper, cls *Classification) {
	switch cls.Category {
	case CategoryPublico:
		s.removePattern(c.publicWordRe)
		s.removePhrases(c.rules.Categories.Public.Phrases)
	case CategoryAcaoSocial:
		s.removePhrases(c.rules.Categories.SocialAction.Phrases)
		s.removePhrases(c.rules.Categories.SocialAction.FundraisingPhrases)
	case CategoryBateVolta:
		s.removePhrases(c.rules.Categories.ShortTrip.Phrases)
	case CategoryReuniao:
		s.removePhrases(c.rules.Categories.Meeting.Phrases)
	case CategoryComboioInsano:
		s.removePhrases(c.rules.Categories.Convoy.Phrases)
	}

	if cls.SubCategory == SubCategoryEntregaColetes {
		s.removePhrases(c.rules.EquipmentPhrases)
	}
}

// foldedTitle carries the original title next to a rune-aligned folded
// form, so keyword spans found in the folded form can be cut out of the
// original.
type foldedTitle struct {
	original string
	runes    []rune
	folded   []rune
	lower    string
	upper    string
}

func newFoldedTitle(s string) *foldedTitle {
	folded := foldRunes(s)
	lower := string(folded)
	return &foldedTitle{
		original: s,
		runes:    []rune(s),
		folded:   folded,
		lower:    lower,
		upper:    strings.ToUpper(lower),
	}
}

func (t *foldedTitle) stripper() *stripper {
	return &stripper{
		orig:   append([]rune(nil), t.runes...),
		folded: append([]rune(nil), t.folded...),
	}
}

type stripper struct {
	orig   []rune
	folded []rune
}

func (s *stripper) removePhrases(phrases []string) {
	for _, phrase := range phrases {
		s.removePhrase(phrase)
	}
}

func (s *stripper) removePhrase(phrase string) {
	needle := []rune(phrase)
	if len(needle) == 0 {
		return
	}
	for {
		idx := indexRunes(s.folded, needle)
		if idx < 0 {
			return
		}
		s.remove(idx, idx+len(needle))
	}
}

func (s *stripper) removePattern(re *regexp.Regexp) {
	for {
		folded := string(s.folded)
		loc := re.FindStringIndex(folded)
		if loc == nil {
			return
		}
		start := utf8.RuneCountInString(folded[:loc[0]])
		end := start + utf8.RuneCountInString(folded[loc[0]:loc[1]])
		s.remove(start, end)
	}
}

func (s *stripper) remove(start, end int) {
	s.orig = append(s.orig[:start], s.orig[end:]...)
	s.folded = append(s.folded[:start], s.folded[end:]...)
}

func (s *stripper) result() string {
	return cleanupRemainder(string(s.orig))
}

var (
	leadingBracketRe = regexp.MustCompile(`^\s*\[[^\]]*\]\s*`)
	emptyBracketsRe  = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
)

// cleanupRemainder trims the punctuation debris stripping leaves
// behind. An empty result means the remainder is omitted entirely.
func cleanupRemainder(s string) string {
	s = leadingBracketRe.ReplaceAllString(s, "")
	s = emptyBracketsRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	s = trimSeparators(s)

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		inner := s[1 : len(s)-1]
		if !strings.ContainsAny(inner, "()") {
			s = trimSeparators(strings.TrimSpace(inner))
		}
	}

	return s
}

func trimSeparators(s string) string {
	return strings.Trim(s, " \t-–—:;,.")
}

func findPhrase(folded []rune, phrase string) (int, bool) {
	needle := []rune(phrase)
	idx := indexRunes(folded, needle)
	if idx < 0 {
		return 0, false
	}
	return idx + len(needle), true
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func localityPhrases(loc LocalityRule) []string {
	phrases := []string{loc.Phrase}
	phrases = append(phrases, loc.Aliases...)
	return phrases
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if phrase != "" && strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

func containsAnyUpper(upper string, tokens []string) bool {
	for _, token := range tokens {
		if token != "" && strings.Contains(upper, strings.ToUpper(Fold(token))) {
			return true
		}
	}
	return false
}

func joinPatterns(words []string) string {
	patterns := make([]string, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, regexp.QuoteMeta(FoldLower(w)))
	}
	return strings.Join(patterns, "|")
}

// regionCodeAlternatives builds the literal-token pattern for region
// codes, tolerating an optional space before a trailing digit
// ("VP1" and "VP 1").
func regionCodeAlternatives(regions []RegionRule) string {
	patterns := make([]string, 0, len(regions))
	for _, region := range regions {
		code := strings.ToLower(region.Code)
		if n := len(code); n > 1 && code[n-1] >= '0' && code[n-1] <= '9' {
			patterns = append(patterns, regexp.QuoteMeta(code[:n-1])+`\s?`+regexp.QuoteMeta(code[n-1:]))
		} else {
			patterns = append(patterns, regexp.QuoteMeta(code))
		}
	}
	return strings.Join(patterns, "|")
}

func regionFamilyPrefix(regions []RegionRule) string {
	for _, region := range regions {
		name := FoldLower(region.Name)
		if suffix := " i"; strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return "vale do paraiba"
}

func canonicalCode(m string) string {
	return strings.ToUpper(strings.ReplaceAll(m, " ", ""))
}
