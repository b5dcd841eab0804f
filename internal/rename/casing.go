package rename

import (
	"strings"
	"unicode"
)

// Casing is the casing category of a piece of text.
type Casing int

const (
	Mixed Casing = iota // fallback; rendered title-cased
	Upper
	Title
	Lower
)

func (c Casing) String() string {
	switch c {
	case Upper:
		return "upper"
	case Title:
		return "title"
	case Lower:
		return "lower"
	}
	return "mixed"
}

// Classify returns the casing category of text. Upper and Lower require at
// least one cased letter and no letter of the other case. Title requires
// every run of letters to start upper-case and continue lower-case.
func Classify(text string) Casing {
	var hasUpper, hasLower bool
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	switch {
	case hasUpper && !hasLower:
		return Upper
	case hasLower && !hasUpper:
		return Lower
	case hasUpper && isTitle(text):
		return Title
	}
	return Mixed
}

func isTitle(text string) bool {
	prevCased := false
	for _, r := range text {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
		default:
			prevCased = false
		}
	}
	return true
}

// Apply renders token in the given casing.
func Apply(c Casing, token string) string {
	switch c {
	case Upper:
		return strings.ToUpper(token)
	case Lower:
		return strings.ToLower(token)
	}
	return ToTitle(token)
}

// ToTitle upper-cases the first letter of every run of letters and
// lower-cases the rest: "gemma" -> "Gemma", "new_model" -> "New_Model".
func ToTitle(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		sb.WriteRune(r)
		prevLetter = false
	}
	return sb.String()
}
