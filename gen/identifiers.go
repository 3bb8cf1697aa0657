package gen

import (
	"unicode"

	"github.com/Masterminds/sprig/v3"
)

// camelCaser is sprig's CamelCase converter (backed by huandu/xstrings),
// reused here instead of hand-rolling a snake_case/kebab-case splitter:
// schema names are author-controlled text, not guaranteed to already be
// valid Go identifiers.
var camelCaser = sprig.TxtFuncMap()["camelcase"].(func(string) string)

// goKeywords holds every reserved word that cannot be used as a Go
// identifier.
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// exportedName turns a schema identifier into a safe, exported Go
// identifier, escaping a reserved word with a trailing underscore.
func exportedName(s string) string {
	if s == "" {
		return "Field"
	}
	out := camelCaser(s)
	if out == "" {
		out = s
	}
	r := []rune(out)
	r[0] = unicode.ToUpper(r[0])
	out = string(r)
	if goKeywords[out] {
		out += "_"
	}
	return out
}

// unexportedName is exportedName with the first letter lower-cased, used
// for local read-statement variable names.
func unexportedName(s string) string {
	out := exportedName(s)
	r := []rune(out)
	r[0] = unicode.ToLower(r[0])
	out = string(r)
	if goKeywords[out] {
		out += "_"
	}
	return out
}
