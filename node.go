package pgfrag

// rawNode is emitted verbatim. Interned by text in intern.go.
type rawNode struct {
	text string
}

func (*rawNode) isFragment() {}

// valueNode carries a scalar that becomes a numbered placeholder at compile
// time. Scalars are: string, any Go integer type, finite float32 or
// float64, bool, nil, or a (possibly
// nested) ordered slice of scalars. See Value in construct.go for the
// validation that guarantees this invariant holds before a valueNode ever
// exists.
type valueNode struct {
	value any
}

func (*valueNode) isFragment() {}

// identPart is one segment of an Identifier: either a pre-escaped quoted
// string (quoted == true, text holds the already-`"`-escaped text) or an
// opaque token whose alias is assigned during compilation.
type identPart struct {
	quoted bool
	text   string
	token  *Token
}

type identifierNode struct {
	parts []identPart
}

func (*identifierNode) isFragment() {}

// indentNode is a pretty-print-only marker; semantically transparent in
// production mode (see Open Question decision in SPEC_FULL.md §9).
type indentNode struct {
	content Fragment
}

func (*indentNode) isFragment() {}

// parensNode wraps content in parentheses if force is true, or if content's
// rendered text is not parens-safe (see the parensSafe heuristic).
type parensNode struct {
	content Fragment
	force   bool
}

func (*parensNode) isFragment() {}

// symbolAliasNode declares that two opaque tokens must render to the same
// identifier alias. It renders to nothing; it only has a side effect on the
// compiler's handle→alias map.
type symbolAliasNode struct {
	a, b *Token
}

func (*symbolAliasNode) isFragment() {}

// placeholderNode is resolved at compile time against a caller-supplied
// handle→Fragment map; if the handle is absent, fallback is used instead; if
// both are absent, compilation fails with ErrUnresolvedPlaceholder.
type placeholderNode struct {
	handle   *Token
	fallback Fragment
}

func (*placeholderNode) isFragment() {}

// queryFlags is a bitset carried by a Query; the node model reserves it for
// future rendering hints. No bit is defined yet.
type queryFlags uint8

// queryNode is an ordered sequence of non-Query nodes. Queries never nest:
// composing a Query into another flattens its nodes in on insertion (see
// flattenInto in construct.go), so this invariant is enforced structurally
// rather than checked at compile time.
type queryNode struct {
	nodes []Fragment
	flags queryFlags
}

func (*queryNode) isFragment() {}

// nodesOf returns the node sequence a Fragment contributes to a Query:
// either the Query's own children, or a one-element slice wrapping a
// non-Query fragment. Used uniformly by the compiler and by flattenInto.
func nodesOf(f Fragment) []Fragment {
	if q, ok := f.(*queryNode); ok {
		return q.nodes
	}
	return []Fragment{f}
}
