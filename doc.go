/*
Package pgfrag composes parameterized SQL statements as immutable fragment
trees and compiles them to PostgreSQL wire-protocol text plus a values slice,
without ever interpolating caller data into the query string.

Every fragment is built through a constructor: Raw, Identifier, Value,
Literal, Join, Indent, Parens, SymbolAlias, Placeholder, or Template. Each
returns a value satisfying the sealed Fragment interface; nothing outside
this package can construct one, so a Fragment reaching Compile is a trust
mark, not merely a type.

Raw is the one constructor that takes arbitrary, unescaped text, and it is
the only place injection can happen: pass it compile-time-known SQL, never
caller-supplied data. Everything else funnels untrusted values through Value
or Literal, which become numbered placeholders ($1, $2, ...) rather than
inline text.

Building a query

	usersId, _ := Identifier("users", "id")
	users, _ := Identifier("users")
	val, _ := Value(42)
	f, _ := Template("select ", usersId, " from ", users, " where ", usersId, " = ", val)
	res, err := Compile(f, nil)
	// res.Text   == `select "users"."id" from "users" where "users"."id" = $1`
	// res.Values == []any{42}

Opaque identifiers

A *Token stands in for a name the caller doesn't want to spell out in
advance — a generated CTE alias, say. Two Identifier fragments built from the
same token always render to the same alias within one Compile call, even
across independent subtrees; two tokens that merely share a description
render to distinct aliases. SymbolAlias forces two tokens to share an alias
at compile time; joining two tokens that were already distinctly aliased is
an error (ErrConflictingSymbolAlias).

Equivalence and rewriting

IsEquivalent compares two fragment trees structurally, optionally treating
tokens in a substitution map as interchangeable. ReplaceSymbol rewrites every
occurrence of one token's identity to another's, preserving structural
sharing in subtrees the substitution never touches.

Pretty-printing

Indent is a semantically transparent marker in production; in development
mode (PGFRAG_ENV=development), Compile additionally pretty-prints Indent
nesting for readability. Parens emits parentheses in both modes when forced,
and otherwise applies a conservative parens-safety heuristic to avoid
redundant parentheses around already-atomic text.
*/
package pgfrag
