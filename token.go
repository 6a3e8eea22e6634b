package pgfrag

import "sync/atomic"

var tokenSeq uint64

// Token is an opaque, process-unique identifier used as an identifier
// stand-in. Its final rendered alias is assigned the first time it is seen
// during a given Compile call; the same *Token always resolves to the same
// alias within that call, regardless of how many Identifier fragments
// reference it or in what order they are walked.
//
// Identity, not Description, governs matching: two tokens built from the same
// hint are still distinct tokens unless explicitly joined with SymbolAlias.
type Token struct {
	id uint64

	// description is the mangled, safe rendering of the hint passed to
	// NewToken. It is computed once, at construction.
	description string
}

// NewToken returns a fresh opaque token. hint is a human-readable
// description (e.g. a table or CTE name) that is normalized once into a
// identifier-safe string; see mangleDescription.
func NewToken(hint string) *Token {
	return &Token{
		id:          atomic.AddUint64(&tokenSeq, 1),
		description: mangleDescription(hint),
	}
}

// Description returns the token's mangled description, the text used to
// build its rendered alias.
func (t *Token) Description() string {
	if t == nil {
		return ""
	}
	return t.description
}
