package event

import (
	"testing"
)

func TestFold_StripsDiacritics(t *testing.T) {
	cases := map[string]string{
		"São José":       "Sao Jose",
		"Reunião":        "Reuniao",
		"Taubaté":        "Taubate",
		"ação":           "acao",
		"Jacareí":        "Jacarei",
		"plain ascii":    "plain ascii",
		"":               "",
		"1ª Confr–teste": "1a Confr-teste",
	}

	for input, expected := range cases {
		if got := Fold(input); got != expected {
			t.Errorf("Expected Fold(%q) to be %q, got %q", input, expected, got)
		}
	}
}

func TestFoldLower(t *testing.T) {
	if got := FoldLower("Ação Social SÃO JOSÉ"); got != "acao social sao jose" {
		t.Errorf("Expected 'acao social sao jose', got %q", got)
	}
}

func TestFoldRunes_PreservesAlignment(t *testing.T) {
	inputs := []string{"São José Extremo Sul", "Reunião – diretoria", "ação"}

	for _, input := range inputs {
		src := []rune(input)
		folded := foldRunes(input)
		if len(folded) != len(src) {
			t.Errorf("Expected %d runes for %q, got %d", len(src), input, len(folded))
		}
	}
}

func TestFoldRunes_LowersAndFolds(t *testing.T) {
	got := string(foldRunes("São JOSÉ"))
	if got != "sao jose" {
		t.Errorf("Expected 'sao jose', got %q", got)
	}
}
