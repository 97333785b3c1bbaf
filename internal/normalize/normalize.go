// Package normalize folds title and name strings into a canonical comparable
// form: lowercase, diacritics stripped, look-alike symbols substituted,
// whitespace collapsed. The same folding is applied to stored titles at
// transform time and to incoming queries at search time, so both sides must
// go through Text.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var reSeparators = regexp.MustCompile(`[\s_-]+`)

// charMappings substitutes characters that NFKD decomposition does not fold.
// Grouped by intent: Greek/Cyrillic/IPA look-alikes to their Latin
// equivalent, decorative symbols to a space, and a few semantic folds
// ("&" -> "and", "±" -> "+", "×" -> "x", circles -> "0"). Titles like
// "Fate & Zero" and "Fate and Zero" must normalize identically, so the
// groupings here are load-bearing for matching.
var charMappings = map[rune]string{
	'&': "and",

	// look-alike letters
	'ə': "a",
	'ά': "a",
	'α': "a",
	'ɪ': "i",
	'Φ': "o",
	'ο': "o",
	'∀': "a",
	'æ': "a",
	'ø': "o",
	'ß': "b",
	'β': "b",
	'Я': "r",
	'я': "r",
	'ς': "s",
	'˥': "l",
	'í': "i",
	'ί': "i",
	'@': "a",

	// vowel diacritic families; mostly handled by NFKD already, kept so a
	// precomposed form that slips past decomposition still folds
	'ō': "o",
	'ó': "o",
	'ò': "o",
	'ö': "o",
	'ô': "o",
	'ū': "u",
	'û': "u",
	'ú': "u",
	'ù': "u",
	'ü': "u",
	'ǖ': "u",
	'ä': "a",
	'â': "a",
	'à': "a",
	'á': "a",
	'ạ': "a",
	'å': "a",
	'ā': "a",
	'č': "c",
	'é': "e",
	'ê': "e",
	'ё': "e",
	'ë': "e",
	'è': "e",
	'ē': "e",
	'ñ': "n",

	// semantic folds
	'²': "2",
	'³': "3",
	'×': "x",
	'±': "+",
	'∽': "~",
	'〜': "~",
	'◯': "0",
	'○': "0",

	// modifier letters dropped entirely
	'ˈ': "",

	// decorative symbols become a word boundary
	'★': " ",
	'☆': " ",
	'♥': " ",
	'♡': " ",
	'♪': " ",
	'†': " ",
	'・': " ",
	'⇔': " ",
	'≒': " ",
	'→': " ",
	'␣': " ",
	'∞': " ",
}

// stripCombining removes the combining diacritical marks block
// (U+0300-U+036F) after decomposition. Only this block is stripped, not all
// combining marks; kana voicing marks and the like pass through unchanged.
func stripCombining(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x0300 && r <= 0x036F {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Text normalizes s for comparison. Empty input is returned unchanged.
// The function is deterministic and idempotent: Text(Text(s)) == Text(s).
// Characters outside the substitution table and the stripped diacritic block
// pass through as-is.
func Text(s string) string {
	if s == "" {
		return s
	}

	s = strings.ToLower(s)
	s = norm.NFKD.String(s)
	s = stripCombining(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := charMappings[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = reSeparators.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
