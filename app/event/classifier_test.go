package event

import (
	"testing"
)

func TestClassifier_CategoryPriority(t *testing.T) {
	classifier := NewClassifier()

	cases := []struct {
		title    string
		expected Category
	}{
		{"Reunião Caveira VP1", CategoryCaveira},
		{"PUB São José Centro", CategoryPublico},
		{"Evento público na praça", CategoryPublico},
		{"Ação Social Jacareí", CategoryAcaoSocial},
		{"Arrecadação de agasalhos", CategoryAcaoSocial},
		{"Bate e Volta Taubaté", CategoryBateVolta},
		{"Reunião mensal", CategoryReuniao},
		{"Bate papo com a diretoria", CategoryReuniao},
		{"Comboio Insano 2026", CategoryComboioInsano},
		{"Confraternização de fim de ano", CategoryOutro},
		{"", CategoryOutro},
	}

	for _, tc := range cases {
		cls := classifier.Classify(tc.title)
		if cls.Category != tc.expected {
			t.Errorf("Expected category %q for %q, got %q", tc.expected, tc.title, cls.Category)
		}
	}
}

func TestClassifier_ShortTripBeatsMeeting(t *testing.T) {
	classifier := NewClassifier()

	// "bate e volta" also matches the loose meeting keyword "bate"; the
	// more specific category must win.
	cls := classifier.Classify("Bate e Volta Ubatuba")
	if cls.Category != CategoryBateVolta {
		t.Errorf("Expected category %q, got %q", CategoryBateVolta, cls.Category)
	}
}

func TestClassifier_RestrictedWholeWordOnly(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Passeio caveirinha")
	if cls.Category == CategoryCaveira {
		t.Errorf("Expected partial word not to match the restricted term")
	}
	if cls.IsRestricted {
		t.Errorf("Expected IsRestricted to be false for a partial word")
	}

	cls = classifier.Classify("Encontro CAVEIRA")
	if !cls.IsRestricted {
		t.Errorf("Expected IsRestricted to be true regardless of case")
	}
}

func TestClassifier_FacetsAreIndependent(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Reunião CMD Caveira Regional")
	if !cls.IsCommandLevel {
		t.Errorf("Expected IsCommandLevel to be true")
	}
	if !cls.IsRegionLevel {
		t.Errorf("Expected IsRegionLevel to be true")
	}
	if !cls.IsRestricted {
		t.Errorf("Expected IsRestricted to be true")
	}
}

func TestClassifier_SubCategories(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Ação Social com arrecadação de alimentos")
	if cls.Category != CategoryAcaoSocial {
		t.Errorf("Expected category %q, got %q", CategoryAcaoSocial, cls.Category)
	}
	if cls.SubCategory != SubCategoryArrecadacao {
		t.Errorf("Expected sub-category %q, got %q", SubCategoryArrecadacao, cls.SubCategory)
	}

	cls = classifier.Classify("Ext Sul - Entrega de coletes")
	if cls.SubCategory != SubCategoryEntregaColetes {
		t.Errorf("Expected sub-category %q, got %q", SubCategoryEntregaColetes, cls.SubCategory)
	}
}

func TestClassifier_RestrictedBranch(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Reunião Caveira VP1")
	if cls.Category != CategoryCaveira {
		t.Errorf("Expected category %q, got %q", CategoryCaveira, cls.Category)
	}
	if cls.RegionCode == nil || *cls.RegionCode != "VP1" {
		t.Errorf("Expected region code VP1, got %v", cls.RegionCode)
	}
	if cls.UnitFragment != "VP1" {
		t.Errorf("Expected unit fragment 'VP1', got %q", cls.UnitFragment)
	}
	if cls.Remainder != "Reunião" {
		t.Errorf("Expected remainder 'Reunião', got %q", cls.Remainder)
	}
}

func TestClassifier_CommandBranch(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("PUB CMD (confraternização)")
	if cls.Category != CategoryPublico {
		t.Errorf("Expected category %q, got %q", CategoryPublico, cls.Category)
	}
	if cls.UnitFragment != CommandUnitDisplay {
		t.Errorf("Expected unit fragment %q, got %q", CommandUnitDisplay, cls.UnitFragment)
	}
	if cls.Remainder != "confraternização" {
		t.Errorf("Expected remainder 'confraternização', got %q", cls.Remainder)
	}
}

func TestClassifier_RegionalBranch(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Regional Vale do Paraíba II - Reunião de diretoria")
	if !cls.IsRegionLevel {
		t.Errorf("Expected IsRegionLevel to be true")
	}
	if cls.RegionCode == nil || *cls.RegionCode != "VP2" {
		t.Errorf("Expected region code VP2, got %v", cls.RegionCode)
	}
	if cls.UnitFragment != "Regional VP2" {
		t.Errorf("Expected unit fragment 'Regional VP2', got %q", cls.UnitFragment)
	}
	if cls.Remainder != "de diretoria" {
		t.Errorf("Expected remainder 'de diretoria', got %q", cls.Remainder)
	}
}

func TestClassifier_RegionalLitoral(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Regional Litoral Norte - Encontro")
	if cls.RegionCode == nil || *cls.RegionCode != "LN" {
		t.Errorf("Expected region code LN, got %v", cls.RegionCode)
	}
	if cls.UnitFragment != "Regional LN" {
		t.Errorf("Expected unit fragment 'Regional LN', got %q", cls.UnitFragment)
	}
}

func TestClassifier_RegionalWithoutCode(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Encontro Regional")
	if cls.RegionCode != nil {
		t.Errorf("Expected no region code, got %v", *cls.RegionCode)
	}
	if cls.UnitFragment != RegionalSentinel {
		t.Errorf("Expected unit fragment %q, got %q", RegionalSentinel, cls.UnitFragment)
	}
}

func TestClassifier_UnitDetection(t *testing.T) {
	classifier := NewClassifier()

	cases := []struct {
		title     string
		fragment  string
		remainder string
	}{
		{"Bate e Volta Jacareí Norte", "Jacareí Norte", ""},
		{"Ext Sul - Entrega de coletes", "São José Extremo Sul", "Entrega de coletes"},
		{"Sao Jose Extremo Norte trilha", "São José Extremo Norte", "trilha"},
		{"Taubaté Centro reunião", "Taubaté Centro", "reunião"},
		{"Passeio Jacareí", "Jacareí", ""},
	}

	for _, tc := range cases {
		cls := classifier.Classify(tc.title)
		if cls.UnitFragment != tc.fragment {
			t.Errorf("Expected fragment %q for %q, got %q", tc.fragment, tc.title, cls.UnitFragment)
		}
		if cls.Remainder != tc.remainder {
			t.Errorf("Expected remainder %q for %q, got %q", tc.remainder, tc.title, cls.Remainder)
		}
	}
}

func TestClassifier_NoUnitFallback(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("Confraternização de fim de ano")
	if cls.UnitFragment != NoUnitSentinel {
		t.Errorf("Expected unit fragment %q, got %q", NoUnitSentinel, cls.UnitFragment)
	}
	if cls.Category != CategoryOutro {
		t.Errorf("Expected category %q, got %q", CategoryOutro, cls.Category)
	}
	if cls.Remainder != "Confraternização de fim de ano" {
		t.Errorf("Expected full title as remainder, got %q", cls.Remainder)
	}
}

func TestClassifier_TotalOnEmptyInput(t *testing.T) {
	classifier := NewClassifier()

	cls := classifier.Classify("")
	if cls.Category != CategoryOutro {
		t.Errorf("Expected category %q, got %q", CategoryOutro, cls.Category)
	}
	if cls.UnitFragment != NoUnitSentinel {
		t.Errorf("Expected unit fragment %q, got %q", NoUnitSentinel, cls.UnitFragment)
	}
	if cls.Remainder != "" {
		t.Errorf("Expected empty remainder, got %q", cls.Remainder)
	}
}

func TestCleanupRemainder(t *testing.T) {
	cases := map[string]string{
		"[VP1]  - Reunião":     "Reunião",
		"  ( )  sobras ":       "sobras",
		"(confraternização)":   "confraternização",
		"- - encontro - ":      "encontro",
		"":                     "",
		"   ":                  "",
		"((aninhado) interno)": "((aninhado) interno)",
	}

	for input, expected := range cases {
		if got := cleanupRemainder(input); got != expected {
			t.Errorf("Expected cleanupRemainder(%q) to be %q, got %q", input, expected, got)
		}
	}
}
