package golang

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/teranos/jsongen/codegen"
	"github.com/teranos/jsongen/internal/casing"
)

// goReservedWords cannot be used as a package name.
var goReservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

var separatorScrub = strings.NewReplacer("-", "_", " ", "_", ".", "_")

// sanitizer produces valid, unique, exported Go identifiers for one
// scope (the file's type names, or one struct's field names).
type sanitizer struct {
	used map[string]bool
}

func newSanitizer() *sanitizer {
	return &sanitizer{used: make(map[string]bool)}
}

// ident converts name into an exported Go identifier in the given
// casing style. The second result reports whether the identifier was
// altered beyond plain case conversion, so callers can warn about the
// rename.
func (s *sanitizer) ident(name, style string) (string, bool) {
	cleaned, changed := cleanIdent(name)
	id := exported(casing.Convert(cleaned, style))

	// The original style keeps separators the case conversions would
	// have consumed.
	if strings.ContainsAny(id, "-. ") {
		id = separatorScrub.Replace(id)
		changed = true
	}

	switch {
	case id == "":
		id = "Field"
		changed = true
	case unicode.IsDigit([]rune(id)[0]):
		// JSON keys may start with a digit; Go identifiers may not.
		id = "Field" + id
		changed = true
	}

	base := id
	for n := 2; s.used[id]; n++ {
		id = fmt.Sprintf("%s%d", base, n)
		changed = true
	}
	s.used[id] = true
	return id, changed
}

// cleanIdent replaces runes that cannot appear in a Go identifier.
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

// exported upper-cases the first rune so the field survives
// encoding/json marshalling regardless of the configured case style.
func exported(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func validatePackageName(name string) error {
	if name == "" || goReservedWords[name] {
		return &codegen.ConfigError{
			Key:    "package_name",
			Value:  name,
			Reason: fmt.Sprintf("%q is not a usable Go package name", name),
		}
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return &codegen.ConfigError{
			Key:    "package_name",
			Value:  name,
			Reason: fmt.Sprintf("%q is not a valid Go identifier", name),
		}
	}
	return nil
}
