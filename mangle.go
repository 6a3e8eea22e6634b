package pgfrag

import (
	"regexp"
	"strings"
	"unicode"
)

const maxMangledLength = 50

// mangleDescription normalizes a human-readable hint into a safe identifier
// fragment: each upper-case letter (the classic camelCase boundary) is
// lowered with a preceding underscore, so a run of capitals becomes
// underscore-separated letters; any other
// non-alphanumeric run collapses to a single underscore, consecutive
// underscores collapse, leading/trailing underscores are trimmed, the result
// is capped at 50 characters, and an empty result defaults to "local".
//
// This mirrors the alias-building walk in skillian-sqlstream's
// exprWriterVisitor.aliasOf/prefixOf: lower-case the first rune, treat word
// boundaries specially, accumulate into a builder.
func mangleDescription(hint string) string {
	var b strings.Builder
	b.Grow(len(hint) + 8)
	for _, r := range hint {
		switch {
		case unicode.IsUpper(r):
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := collapseUnderscores(b.String())
	s = strings.Trim(s, "_")
	if r := []rune(s); len(r) > maxMangledLength {
		s = string(r[:maxMangledLength])
		s = strings.TrimRight(s, "_")
	}
	if s == "" {
		return "local"
	}
	return s
}

var underscoreRun = regexp.MustCompile(`_+`)

func collapseUnderscores(s string) string {
	return underscoreRun.ReplaceAllString(s, "_")
}

// Parens-safety lexical productions, checked in the order the distilled
// spec lists them. Each is anchored to the whole rendered string.
var (
	reParensSafePlaceholder = regexp.MustCompile(`^\$[0-9]+$`)
	reParensSafeNumber      = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$|^\.[0-9]+$`)
	reParensSafeString      = regexp.MustCompile(`^'[^']*'$`)
	reParensSafeIdentPart   = regexp.MustCompile(`^(?:"[^"]*"|[a-zA-Z0-9_]+)(?:\.(?:"[^"]*"|[a-zA-Z0-9_]+))*$`)
)

// parensSafe is a pure lexical test on already-rendered inner text,
// answering whether the expression needs no parenthesization when embedded.
// It returns false for anything containing operators, casts, or function
// calls — those always get wrapped by Parens.
func parensSafe(rendered string) bool {
	switch {
	case reParensSafePlaceholder.MatchString(rendered):
		return true
	case reParensSafeNumber.MatchString(rendered):
		return true
	case reParensSafeString.MatchString(rendered):
		return true
	case reParensSafeIdentPart.MatchString(rendered):
		return true
	default:
		return false
	}
}
