package utils

import (
	"strings"
	"unicode"
)

// Words that stay lower-case when title-casing a food name, unless
// they lead the phrase.
var smallWords = map[string]bool{
	"and": true, "with": true, "of": true, "in": true, "on": true,
	"the": true, "&": true, "a": true, "an": true, "at": true, "for": true,
}

// NormalizeFoodName cleans a free-form food name for display and
// matching: all-caps input is folded to lower case, whitespace runs
// collapse, parentheses are stripped, the result is capped at maxWords
// words and title-cased. Pure and idempotent.
func NormalizeFoodName(raw string, maxWords int) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if maxWords <= 0 {
		maxWords = 6
	}

	// Shouting input is emphasis, not an acronym.
	if len([]rune(s)) > 1 && s == strings.ToUpper(s) && s != strings.ToLower(s) {
		s = strings.ToLower(s)
	}

	s = strings.NewReplacer("(", "", ")", "").Replace(s)

	words := strings.Fields(s)
	if len(words) > maxWords {
		words = words[:maxWords]
	}

	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && smallWords[lower] {
			words[i] = lower
			continue
		}
		words[i] = capitalize(lower)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
