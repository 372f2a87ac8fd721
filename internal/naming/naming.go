// Package naming converts editor names into generated identifiers.
//
// The markup and stylesheet generators must both derive class names through
// ClassName; the two outputs are joined on that string.
package naming

import (
	"strings"
	"unicode"
)

// KebabToCamel deletes each '-' and uppercases the letter that follows it.
// Consecutive dashes collapse: "a--b" → "aB". A leading dash uppercases the
// first letter: "-a" → "A". Characters that have no upper case (digits) are
// kept as is.
func KebabToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	upperNext := false
	for _, r := range s {
		if r == '-' {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KebabToPascal is KebabToCamel with the first character uppercased.
func KebabToPascal(s string) string {
	camel := KebabToCamel(s)
	if camel == "" {
		return camel
	}
	runes := []rune(camel)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ClassName is the style hook shared by generated markup and CSS:
// PascalCase(componentName) + "-" + layerName. Layer names are display
// labels, so every rune that cannot appear in a CSS identifier is replaced
// with '_': "Layer 1" → "Card-Layer_1".
func ClassName(componentName, layerName string) string {
	return KebabToPascal(componentName) + "-" + classSafe(layerName)
}

func classSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
}

// IsIdentifier reports whether s is a valid JavaScript identifier that is
// also usable as the component prefix of a CSS class: an ASCII letter or
// '_' followed by ASCII letters, digits or '_'.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
