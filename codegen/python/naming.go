package python

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/teranos/jsongen/internal/casing"
)

// pythonKeywords are reserved words that cannot be used as identifiers.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	// Soft keywords (Python 3.10+)
	"match": true, "case": true, "type": true,
}

var separatorScrub = strings.NewReplacer("-", "_", " ", "_", ".", "_")

// sanitizer produces valid, unique Python identifiers for one scope
// (the file's class names, or one class's field names).
type sanitizer struct {
	used map[string]bool
}

func newSanitizer() *sanitizer {
	return &sanitizer{used: make(map[string]bool)}
}

// ident converts name into a Python identifier in the given casing
// style. The second result reports whether the identifier was altered
// beyond plain case conversion, so callers can warn about the rename.
func (s *sanitizer) ident(name, style string) (string, bool) {
	cleaned, changed := cleanIdent(name)
	if r := []rune(cleaned); len(r) > 0 && unicode.IsDigit(r[0]) {
		// JSON keys may start with a digit; Python identifiers may not.
		cleaned = "field " + cleaned
		changed = true
	}

	id := casing.Convert(cleaned, style)
	if strings.ContainsAny(id, "-. ") {
		id = separatorScrub.Replace(id)
		changed = true
	}
	if id == "" {
		id = casing.Convert("field", style)
		changed = true
	}
	if pythonKeywords[id] {
		id += "_"
		changed = true
	}

	base := id
	for n := 2; s.used[id]; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
		changed = true
	}
	s.used[id] = true
	return id, changed
}

// cleanIdent replaces runes that cannot appear in a Python identifier.
// Separator runes survive so the casing conversion can split on them.
func cleanIdent(name string) (string, bool) {
	var b strings.Builder
	changed := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
			changed = true
		}
	}
	return b.String(), changed
}
