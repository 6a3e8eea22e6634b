package pgfrag

import (
	"errors"
	"fmt"

	skerrors "github.com/skillian/errors"
)

// Sentinel error kinds. Callers branch on failure kind with errors.Is, never
// by matching error message text.
var (
	// ErrInvalidFragment means a non-fragment value appeared where a
	// Fragment was required — the sole anti-injection failure mode.
	ErrInvalidFragment = errors.New("pgfrag: invalid fragment")

	// ErrInvalidArgument means a constructor received an argument of the
	// wrong type or shape (non-string to Raw, wrong Identifier part,
	// non-scalar to Value, non-bool force, ...).
	ErrInvalidArgument = errors.New("pgfrag: invalid argument")

	// ErrEmptyIdentifier means Identifier was called with no parts.
	ErrEmptyIdentifier = errors.New("pgfrag: identifier requires at least one part")

	// ErrTooManyParameters means the value count during compilation would
	// exceed the PostgreSQL wire protocol's 65535-parameter ceiling.
	ErrTooManyParameters = errors.New("pgfrag: too many parameters")

	// ErrUnresolvedPlaceholder means a Placeholder had neither a supplied
	// value nor a fallback.
	ErrUnresolvedPlaceholder = errors.New("pgfrag: unresolved placeholder")

	// ErrConflictingSymbolAlias means two tokens joined by SymbolAlias
	// already had different, previously assigned aliases.
	ErrConflictingSymbolAlias = errors.New("pgfrag: conflicting symbol alias")

	// ErrEmptyParens means Parens was asked to wrap an empty Query.
	ErrEmptyParens = errors.New("pgfrag: cannot wrap an empty query in parentheses")

	// ErrSubstitutionCycle means a symbol-substitution chain looped
	// without resolving to a terminal handle.
	ErrSubstitutionCycle = errors.New("pgfrag: symbol substitution cycle")

	// ErrSelfSubstitution means a handle was mapped to itself.
	ErrSelfSubstitution = errors.New("pgfrag: symbol maps to itself")

	// ErrUnknownNode means the tree contained a node type this package
	// does not know how to render. Because Fragment is sealed (see
	// trust.go), this can only happen if the package's own invariants
	// were violated; it is an internal consistency check, not a
	// caller-reachable failure.
	ErrUnknownNode = errors.New("pgfrag: internal error: unknown node type")
)

// invalidFragmentAt reports ErrInvalidFragment naming the offending
// position, e.g. "item 3", "join item 5", "template placeholder 2".
func invalidFragmentAt(position string) error {
	return fmt.Errorf("%s: %w", position, ErrInvalidFragment)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// internalError formats an invariant-violation message using
// github.com/skillian/errors, the one formatted-error constructor the
// reference pack imports directly for exactly this kind of "should not
// happen" internal failure (skillian-sqlstream/expr.go).
func internalError(format string, args ...any) error {
	msg := skerrors.Errorf(format, args...)
	return fmt.Errorf("%s: %w", msg, ErrUnknownNode)
}
