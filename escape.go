package pgfrag

import "github.com/lib/pq"

// EscapeSqlIdentifier double-quotes s for use as a SQL identifier, doubling
// any embedded double quotes. It is a pure function usable independently of
// Fragment construction, for callers who only need the escaping rule and
// not a compiled node. Delegates to lib/pq's own quoting rule rather than
// reimplementing it, since it already encodes the PostgreSQL driver's
// understanding of identifier quoting.
func EscapeSqlIdentifier(s string) string {
	return pq.QuoteIdentifier(s)
}

// EscapeSqlLiteral single-quotes s for use as an inline SQL string literal,
// doubling any embedded single quotes. Literal() prefers Value() for
// anything outside a conservative inline-safe character class, so this is
// mainly exposed for callers composing Raw text by hand who still want the
// standard quoting rule.
func EscapeSqlLiteral(s string) string {
	return pq.QuoteLiteral(s)
}
