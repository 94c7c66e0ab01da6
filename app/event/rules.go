package event

import (
	"fmt"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yml
var rulesYML []byte

type RegionRule struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type LocalityRule struct {
	Name    string   `yaml:"name"`
	Phrase  string   `yaml:"phrase"`
	Default bool     `yaml:"default"`
	Aliases []string `yaml:"aliases"`
}

type UnitAlias struct {
	Contains string   `yaml:"contains"`
	Patterns []string `yaml:"patterns"`
}

type keywordRule struct {
	Words   []string `yaml:"words"`
	Phrases []string `yaml:"phrases"`
}

type Rules struct {
	Regions     []RegionRule `yaml:"regions"`
	RegionToken string       `yaml:"region_token"`

	Command struct {
		Tokens []string `yaml:"tokens"`
	} `yaml:"command"`

	Restricted struct {
		Word string `yaml:"word"`
	} `yaml:"restricted"`

	Categories struct {
		Public       keywordRule `yaml:"public"`
		SocialAction struct {
			Phrases            []string `yaml:"phrases"`
			FundraisingPhrases []string `yaml:"fundraising_phrases"`
		} `yaml:"social_action"`
		ShortTrip keywordRule `yaml:"short_trip"`
		Meeting   keywordRule `yaml:"meeting"`
		Convoy    keywordRule `yaml:"convoy"`
	} `yaml:"categories"`

	EquipmentPhrases []string `yaml:"equipment_phrases"`

	Localities []LocalityRule `yaml:"localities"`
	Directions []string       `yaml:"directions"`

	Extreme struct {
		Name    string   `yaml:"name"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"extreme"`

	UnitAliases []UnitAlias `yaml:"unit_aliases"`
}

// DefaultLocality returns the locality used when an extreme-direction
// title carries no locality name at all.
func (r *Rules) DefaultLocality() LocalityRule {
	for _, loc := range r.Localities {
		if loc.Default {
			return loc
		}
	}
	return r.Localities[0]
}

func (r *Rules) RegionName(code string) string {
	for _, region := range r.Regions {
		if region.Code == code {
			return region.Name
		}
	}
	return ""
}

var loadRules = sync.OnceValue(func() *Rules {
	var rules Rules
	if err := yaml.Unmarshal(rulesYML, &rules); err != nil {
		panic(fmt.Sprintf("failed to parse embedded rules.yml: %v", err))
	}
	return &rules
})
