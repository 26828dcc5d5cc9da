package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord prepares a corpus word for comparison:
//   - trims leading/trailing whitespace
//   - applies Unicode NFC so composed and decomposed forms compare equal
//
// Case is preserved: the proper-noun rule depends on it.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	return norm.NFC.String(word)
}

// IsMultiToken reports whether word contains a space, hyphen or apostrophe.
func IsMultiToken(word string) bool {
	return strings.ContainsAny(word, " -'")
}

// IsNoiseToken reports whether word is too short to be a usable filler
// (single letters such as "p" or "c").
func IsNoiseToken(word string) bool {
	return utf8.RuneCountInString(word) <= 1
}

// IsProperNoun reports whether any character of word is uppercase.
func IsProperNoun(word string) bool {
	for _, r := range word {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Reasons a reference word is rejected from the candidate pool.
const (
	RejectMultiToken = "multi_token"
	RejectTooShort   = "too_short"
	RejectProperNoun = "proper_noun"
)

// RejectReason returns why word cannot be a lexical entry, or "" if it can.
func RejectReason(word string) string {
	switch {
	case IsMultiToken(word):
		return RejectMultiToken
	case IsNoiseToken(word):
		return RejectTooShort
	case IsProperNoun(word):
		return RejectProperNoun
	}
	return ""
}
