// Package casing converts identifiers between the naming conventions
// the generators can emit: original, snake_case, camelCase and
// PascalCase.
package casing

import (
	"strings"
	"unicode"
)

// Style names accepted by the generator config.
const (
	Original = "original"
	Snake    = "snake"
	Camel    = "camel"
	Pascal   = "pascal"
)

// Valid reports whether name is a recognized casing style.
func Valid(name string) bool {
	switch name {
	case Original, Snake, Camel, Pascal:
		return true
	}
	return false
}

// Styles returns the recognized style names in display order.
func Styles() []string {
	return []string{Original, Snake, Camel, Pascal}
}

// SplitWords breaks an identifier into its word parts. Separators
// (underscore, hyphen, space, dot) and lower-to-upper case boundaries
// both split; digits stay attached to the preceding word.
func SplitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				flush()
			} else if i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// Acronym followed by a word: HTTPServer -> HTTP, Server
				flush()
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

// ToPascal converts an identifier to PascalCase.
func ToPascal(s string) string {
	var b strings.Builder
	for _, word := range SplitWords(s) {
		b.WriteString(capitalize(word))
	}
	return b.String()
}

// ToCamel converts an identifier to camelCase.
func ToCamel(s string) string {
	words := SplitWords(s)
	var b strings.Builder
	for i, word := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		b.WriteString(capitalize(word))
	}
	return b.String()
}

// ToSnake converts an identifier to snake_case.
func ToSnake(s string) string {
	words := SplitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// Convert applies the named style to an identifier. Unrecognized styles
// return the identifier unchanged, as does Original.
func Convert(s, style string) string {
	switch style {
	case Snake:
		return ToSnake(s)
	case Camel:
		return ToCamel(s)
	case Pascal:
		return ToPascal(s)
	}
	return s
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(word)
	first := string(unicode.ToUpper(runes[0]))
	if len(runes) == 1 {
		return first
	}
	return first + strings.ToLower(string(runes[1:]))
}
