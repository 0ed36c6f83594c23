package shell

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var randomKeywords = map[string]bool{
	"aléatoire": true,
	"aleatoire": true,
	"random":    true,
}

var folder = cases.Fold()

// IsRandomKeyword reports whether a typed name asks for a random one.
// Matching ignores case and Unicode normalization form, so "ALÉATOIRE"
// typed with a combining accent still matches.
func IsRandomKeyword(in string) bool {
	key := folder.String(norm.NFC.String(strings.TrimSpace(in)))
	return randomKeywords[key]
}
