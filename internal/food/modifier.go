package food

import (
	"regexp"
	"strings"
)

// SizeModifier scales a portion by a qualitative size word.
type SizeModifier struct {
	Token      string
	Multiplier float64
}

// Declaration order matters: compound phrases come before the single words
// that would otherwise shadow them ("extra" must not eat "extra large").
var sizeModifiers = []SizeModifier{
	{"extra large", 1.8},
	{"extra small", 0.5},
	{"jumbo", 2.0},
	{"huge", 2.0},
	{"giant", 2.0},
	{"large", 1.5},
	{"big", 1.5},
	{"extra", 1.3},
	{"medium", 1.0},
	{"regular", 1.0},
	{"small", 0.7},
	{"little", 0.7},
	{"mini", 0.6},
	{"tiny", 0.5},
}

var modifierPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(sizeModifiers))
	for i, m := range sizeModifiers {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(m.Token) + `\b`)
	}
	return patterns
}()

// modifierAlternation is the regex alternation used by the segmenter's
// item patterns. Table order keeps compounds ahead of their prefixes.
func modifierAlternation() string {
	tokens := make([]string, len(sizeModifiers))
	for i, m := range sizeModifiers {
		tokens[i] = regexp.QuoteMeta(m.Token)
	}
	return strings.Join(tokens, "|")
}

func modifierByToken(token string) SizeModifier {
	lower := strings.ToLower(token)
	for _, m := range sizeModifiers {
		if m.Token == lower {
			return m
		}
	}
	return SizeModifier{Multiplier: 1}
}

// ResolveSizeModifier finds the first size word in text, table order first.
// Exactly one modifier is applied per call. The remainder is the input with
// the matched span removed and whitespace tidied. No match yields a neutral
// multiplier and the input unchanged.
func ResolveSizeModifier(text string) (SizeModifier, string) {
	for i, re := range modifierPatterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		remainder := text[:loc[0]] + " " + text[loc[1]:]
		remainder = strings.Join(strings.Fields(remainder), " ")
		return sizeModifiers[i], remainder
	}
	return SizeModifier{Multiplier: 1}, text
}
