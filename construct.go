package pgfrag

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Raw returns an interned Raw fragment that emits text verbatim at compile
// time. This is the package's one dangerous-by-design constructor: every
// other constructor funnels user-controlled data through Value/Literal/
// Identifier instead of through here. Calling Raw directly with anything
// other than a compile-time-known, trusted string is how SQL injection
// happens; the first call in a process logs a one-time warning (see
// logging.go) as a loud reminder of that.
func Raw(text string) (Fragment, error) {
	warnRawUsage()
	return internRaw(text), nil
}

// mustRaw is the internal, unlogged counterpart used by every other
// constructor to build fixed, trusted text (separators, keywords, quoting)
// without tripping the one-shot Raw warning meant for caller misuse.
func mustRaw(text string) Fragment {
	return internRaw(text)
}

// Identifier builds an Identifier fragment from one or more parts. Each part
// must be a string (escaped eagerly, embedded double quotes doubled) or a
// *Token (an opaque name stand-in whose alias is assigned at compile time).
// At least one part is required.
func Identifier(parts ...any) (Fragment, error) {
	if len(parts) == 0 {
		return nil, ErrEmptyIdentifier
	}
	out := make([]identPart, len(parts))
	for i, p := range parts {
		switch v := p.(type) {
		case string:
			out[i] = identPart{quoted: true, text: EscapeSqlIdentifier(v)}
		case *Token:
			out[i] = identPart{token: v}
		default:
			return nil, invalidArgument("identifier part %d: must be a string or *Token, got %T", i, p)
		}
	}
	return &identifierNode{parts: out}, nil
}

// isScalar reports whether v is a valid Value scalar: string, bool, nil,
// a finite float64-representable number, or an ordered slice of scalars.
func isScalar(v any) bool {
	switch x := v.(type) {
	case nil, string, bool:
		return true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case []any:
		for _, e := range x {
			if !isScalar(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Value constructs a Value fragment. v must be a scalar: string, bool, nil,
// a finite number, or a (possibly nested) []any of scalars. Anything else —
// notably maps and structs — is rejected.
func Value(v any) (Fragment, error) {
	if !isScalar(v) {
		return nil, invalidArgument("value(): %T is not a valid scalar", v)
	}
	return &valueNode{value: v}, nil
}

var inlineSafeString = regexp.MustCompile(`^[-a-zA-Z0-9_@!$ :".]*$`)

// Literal returns a Raw fragment if v can be rendered inline without any
// risk of injection, else it delegates to Value. Inline-safe cases: strings
// matching the conservative character class below (wrapped in single
// quotes), integer finite numbers (inlined as-is), non-integer finite
// numbers (inlined as '<n>'::float), booleans (TRUE/FALSE), and nil (NULL).
// Everything else — strings with apostrophes or other punctuation, and
// non-finite numbers — goes through Value, which parameterizes it (and, for
// non-finite numbers, rejects it: Value requires finite scalars).
func Literal(v any) (Fragment, error) {
	switch x := v.(type) {
	case nil:
		return NULL, nil
	case bool:
		if x {
			return TRUE, nil
		}
		return FALSE, nil
	case string:
		if inlineSafeString.MatchString(x) {
			return mustRaw("'" + x + "'"), nil
		}
		return Value(x)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return mustRaw(fmt.Sprintf("%d", x)), nil
	case float32:
		return literalFloat(float64(x))
	case float64:
		return literalFloat(x)
	default:
		return Value(v)
	}
}

func literalFloat(f float64) (Fragment, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value(f)
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return mustRaw(strconv.FormatInt(int64(f), 10)), nil
	}
	return mustRaw("'" + strconv.FormatFloat(f, 'g', -1, 64) + "'::float"), nil
}

// flattenInto appends f's contributed node sequence onto dst, inlining
// Query children so that a Query never ends up holding a Query: this is
// where the "Queries never nest" invariant is enforced.
func flattenInto(dst []Fragment, f Fragment) []Fragment {
	return append(dst, nodesOf(f)...)
}

// Join flattens each item into the result, inserting an interned Raw
// separator between items when separator is non-empty. An empty items slice
// yields BLANK; a single item is returned unchanged (not wrapped in a
// one-element Query).
func Join(items []Fragment, separator string) (Fragment, error) {
	for i, it := range items {
		if !isFragment(it) {
			return nil, invalidFragmentAt(fmt.Sprintf("join item %d", i))
		}
	}
	if len(items) == 0 {
		return BLANK, nil
	}
	if len(items) == 1 {
		return items[0], nil
	}
	var sep Fragment
	if separator != "" {
		sep = mustRaw(separator)
	}
	var nodes []Fragment
	for i, it := range items {
		if i > 0 && sep != nil {
			nodes = flattenInto(nodes, sep)
		}
		nodes = flattenInto(nodes, it)
	}
	return &queryNode{nodes: nodes}, nil
}

// Indent marks f as a pretty-print indentation point. The marker is always
// attached; whether it has any visible effect is decided once, per Compile
// call, by that call's dev-mode flag (see SPEC_FULL.md §4.9) — not here at
// construction time. This keeps a fragment tree reusable across both a dev
// and a production Compile of the same built value, and keeps the dev-mode
// decision in exactly one place.
func Indent(f Fragment) Fragment {
	return &indentNode{content: f}
}

// IndentIf applies Indent only when cond is true; otherwise returns f
// unchanged regardless of mode.
func IndentIf(cond bool, f Fragment) Fragment {
	if !cond {
		return f
	}
	return Indent(f)
}

// Parens wraps f in parentheses, applying the simplifications the compiler
// would otherwise have to repeat on every nested call: a length-1 Query
// recurses into its single child; an already-Parens fragment is returned
// as-is if its force is compatible, or rewrapped with the requested force
// otherwise; an Indent around a single-child Query whose child is a
// non-forced Parens is rewrapped directly. An empty Query is rejected.
func Parens(f Fragment, force ...bool) (Fragment, error) {
	forced := len(force) > 0 && force[0]
	return parens(f, forced)
}

func parens(f Fragment, forced bool) (Fragment, error) {
	switch v := f.(type) {
	case *queryNode:
		switch len(v.nodes) {
		case 0:
			return nil, ErrEmptyParens
		case 1:
			return parens(v.nodes[0], forced)
		}
	case *parensNode:
		// Compatible: same force setting already in effect, return
		// as-is. Otherwise rewrap the same content with the force
		// now being requested, rather than double-wrapping.
		if v.force == forced {
			return v, nil
		}
		return &parensNode{content: v.content, force: forced}, nil
	case *indentNode:
		if inner, ok := v.content.(*queryNode); ok && len(inner.nodes) == 1 {
			if p, ok := inner.nodes[0].(*parensNode); ok && !p.force {
				return &parensNode{content: p.content, force: forced}, nil
			}
		}
	}
	return &parensNode{content: f, force: forced}, nil
}

// SymbolAlias declares that two opaque tokens must render to the same
// identifier alias. Safe to call before either token has been seen by a
// compiler; the relationship is only resolved during Compile.
func SymbolAlias(a, b *Token) (Fragment, error) {
	if a == nil || b == nil {
		return nil, invalidArgument("symbolAlias(): both tokens must be non-nil")
	}
	return &symbolAliasNode{a: a, b: b}, nil
}

// Placeholder returns a Placeholder fragment resolved at compile time by a
// caller-supplied handle→Fragment map. If the handle is absent from that
// map, fallback (if provided) is used instead; if both are absent,
// compilation fails with ErrUnresolvedPlaceholder.
func Placeholder(handle *Token, fallback ...Fragment) (Fragment, error) {
	if handle == nil {
		return nil, invalidArgument("placeholder(): handle must be non-nil")
	}
	var fb Fragment
	if len(fallback) > 0 {
		if !isFragment(fallback[0]) {
			return nil, invalidFragmentAt("placeholder fallback")
		}
		fb = fallback[0]
	}
	return &placeholderNode{handle: handle, fallback: fb}, nil
}

// Template composes an interleaved sequence of string pieces and Fragment
// values — the ergonomic, template-literal-style entry point. Text pieces
// must be strings (they are trusted by origin: the caller wrote them as Go
// source, not as runtime-assembled data); every other slot must pass the
// trust check. A single string argument is served from the unbounded
// template cache; an empty argument list yields BLANK.
func Template(parts ...any) (Fragment, error) {
	if len(parts) == 0 {
		return BLANK, nil
	}
	if len(parts) == 1 {
		if s, ok := parts[0].(string); ok {
			return internTemplate(s, func() Fragment { return mustRaw(s) }), nil
		}
	}
	nodes := make([]Fragment, 0, len(parts))
	for i, p := range parts {
		switch v := p.(type) {
		case string:
			nodes = flattenInto(nodes, mustRaw(v))
		default:
			if !isFragment(v) {
				return nil, invalidFragmentAt(fmt.Sprintf("template placeholder %d", i))
			}
			nodes = flattenInto(nodes, v.(Fragment))
		}
	}
	return &queryNode{nodes: nodes}, nil
}

func isDevEnv() bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv("PGFRAG_ENV")))
	return v == "development" || v == "dev"
}
