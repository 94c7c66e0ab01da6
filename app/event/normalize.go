package event

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fallbackRunes covers characters canonical decomposition leaves
// untouched, mostly encoding leftovers from titles pasted out of
// spreadsheets and chat apps.
var fallbackRunes = map[rune]rune{
	'ª': 'a', 'º': 'o',
	'Ø': 'O', 'ø': 'o',
	'Đ': 'D', 'đ': 'd',
	'Ł': 'L', 'ł': 'l',
	'’': '\'', '‘': '\'',
	'“': '"', '”': '"',
	'–': '-', '—': '-',
}

// Fold strips diacritics while preserving case. Total: any input maps
// to an output, the empty string included.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if repl, ok := fallbackRunes[r]; ok {
			return repl
		}
		return r
	}, folded)
}

func FoldLower(s string) string {
	return strings.ToLower(Fold(s))
}

func FoldUpper(s string) string {
	return strings.ToUpper(Fold(s))
}

// foldRunes folds rune-by-rune so indexes line up with the original
// string's runes; the classifier uses it to locate keyword spans in the
// original title.
func foldRunes(s string) []rune {
	src := []rune(s)
	out := make([]rune, len(src))
	for i, r := range src {
		out[i] = foldRune(r)
	}
	return out
}

func foldRune(r rune) rune {
	if repl, ok := fallbackRunes[r]; ok {
		r = repl
	}
	for _, d := range norm.NFD.String(string(r)) {
		if !unicode.Is(unicode.Mn, d) {
			return unicode.ToLower(d)
		}
	}
	// Pure combining mark; keep it so indexes stay aligned.
	return unicode.ToLower(r)
}
