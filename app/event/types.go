package event

import (
	"time"

	"github.com/mcportal/agenda-sync/app/calendar"
)

// Category is the event category derived from the raw title. The set is
// fixed; unrecognized titles fall back to CategoryOutro.
type Category string

const (
	CategoryAcaoSocial    Category = "acao_social"
	CategoryPublico       Category = "publico"
	CategoryReuniao       Category = "reuniao"
	CategoryBateVolta     Category = "bate_volta"
	CategoryComboioInsano Category = "comboio_insano"
	CategoryCaveira       Category = "caveira"
	CategoryOutro         Category = "outro"
)

// Label returns the display form used in canonical titles. CategoryOutro
// has no label: prefixing every unclassified title with a filler word
// would break canonical-title stability across passes.
func (c Category) Label() string {
	switch c {
	case CategoryAcaoSocial:
		return "Ação Social"
	case CategoryPublico:
		return "Público"
	case CategoryReuniao:
		return "Reunião"
	case CategoryBateVolta:
		return "Bate e Volta"
	case CategoryComboioInsano:
		return "Comboio Insano"
	case CategoryCaveira:
		return "Caveira"
	default:
		return ""
	}
}

type SubCategory string

const (
	SubCategoryNone           SubCategory = ""
	SubCategoryArrecadacao    SubCategory = "arrecadacao"
	SubCategoryEntregaColetes SubCategory = "entrega_coletes"
)

func (s SubCategory) Label() string {
	switch s {
	case SubCategoryArrecadacao:
		return "Arrecadação"
	case SubCategoryEntregaColetes:
		return "Entrega de Coletes"
	default:
		return ""
	}
}

const (
	// NoUnitSentinel marks a title with no recognizable organizational unit.
	NoUnitSentinel = "Sem unidade"
	// CommandUnitDisplay is the unit display for command-level events.
	CommandUnitDisplay = "Comando"
	// CommandRegionCode is the bracketed code for command-level events.
	CommandRegionCode = "CMD"
	// RegionalSentinel is the unit display for region-level events whose
	// region could not be determined.
	RegionalSentinel = "Regional"
)

// Classification is the structured, ephemeral result of parsing one raw
// title. It is recomputed on every fetch cycle and never persisted.
type Classification struct {
	Category     Category
	SubCategory  SubCategory
	UnitFragment string
	Remainder    string

	// Facets are detected independently: a title can be command-level
	// and restricted at the same time.
	IsCommandLevel bool
	IsRegionLevel  bool
	IsRestricted   bool

	RegionCode *string
}

// ResolvedEvent is the canonical record produced per feed item. A fresh
// value is built every cycle and diffed against the persisted record;
// it is never mutated in place.
type ResolvedEvent struct {
	FeedID         string
	Title          string // canonical, rebuilt
	OriginalTitle  string
	Classification Classification
	UnitID         *string
	Status         calendar.ItemStatus
	StartsAt       time.Time
	EndsAt         time.Time
	Location       string
	Link           string
}

// UnitMatch is the outcome of resolving a unit fragment. Both fields
// nil is a valid, expected outcome.
type UnitMatch struct {
	UnitID     *string
	RegionCode *string
}
