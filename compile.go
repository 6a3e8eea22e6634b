package pgfrag

import (
	"regexp"
	"strconv"
	"strings"
)

// maxParameters is the PostgreSQL wire protocol's ordinal-parameter
// ceiling: the protocol encodes the parameter count in a 16-bit field.
const maxParameters = 65535

// CompileResult is the output of Compile: the rendered SQL text, with
// positional placeholders ($1, $2, ...), and the values slice indexed so
// that values[i] corresponds to $(i+1) in text.
type CompileResult struct {
	Text   string
	Values []any
}

// compileState is the per-call scratch context the tree walk threads
// through every render call: an output buffer, the accumulated values, the
// handle→alias map, and a per-description counter for disambiguating
// tokens that share a description but not an identity. Modeled on the
// teacher's PostgresCtx (postgres.go), which plays the same role for its
// own, differently-shaped node set.
type compileState struct {
	// buf is a pointer, never reassigned by value copy: strings.Builder
	// forbids copying a builder that has already been written to, so
	// renderParens swaps this field to a fresh *strings.Builder rather
	// than saving/restoring a value.
	buf               *strings.Builder
	values            []any
	aliases           map[*Token]string
	descCounts        map[string]int
	placeholderValues map[*Token]Fragment
	dev               bool
}

// Compile walks fragment, producing rendered SQL text and the values the
// text's $n placeholders refer to. placeholderValues resolves Placeholder
// nodes by handle; pass nil if the tree has none.
func Compile(fragment Fragment, placeholderValues map[*Token]Fragment) (CompileResult, error) {
	if !isFragment(fragment) {
		return CompileResult{}, invalidFragmentAt("compile root")
	}
	st := &compileState{
		buf:               &strings.Builder{},
		aliases:           make(map[*Token]string),
		descCounts:        make(map[string]int),
		placeholderValues: placeholderValues,
		dev:               isDevEnv(),
	}
	nodes := nodesOf(fragment)
	for i, n := range nodes {
		last := i == len(nodes)-1
		if err := st.render(n, 0, last); err != nil {
			return CompileResult{}, err
		}
	}
	text := st.buf.String()
	if st.dev {
		text = collapseBlankLines(text)
	}
	return CompileResult{Text: text, Values: st.values}, nil
}

var blankLineRun = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)*`)

func collapseBlankLines(s string) string {
	return blankLineRun.ReplaceAllString(s, "\n")
}

// render dispatches on the sealed Fragment variant. last is true only when f
// is the final node in the top-level sequence Compile is walking — it gates
// the trailing-";" newline trim in renderRaw. The default case is
// unreachable from outside this package (see trust.go) and signals an
// internal invariant violation if it is ever hit.
func (st *compileState) render(f Fragment, indent int, last bool) error {
	switch n := f.(type) {
	case *rawNode:
		return st.renderRaw(n, indent, last)
	case *valueNode:
		return st.renderValue(n)
	case *identifierNode:
		return st.renderIdentifier(n)
	case *indentNode:
		return st.renderIndent(n, indent, last)
	case *parensNode:
		return st.renderParens(n, indent, last)
	case *symbolAliasNode:
		return st.renderSymbolAlias(n)
	case *placeholderNode:
		return st.renderPlaceholder(n, indent, last)
	case *queryNode:
		for i, child := range n.nodes {
			childLast := last && i == len(n.nodes)-1
			if err := st.render(child, indent, childLast); err != nil {
				return err
			}
		}
		return nil
	default:
		return internalError("unrecognized fragment type %T", f)
	}
}

func (st *compileState) renderRaw(n *rawNode, indent int, last bool) error {
	text := n.text
	if st.dev && strings.Contains(text, "\n") {
		text = strings.ReplaceAll(text, "\n", "\n"+strings.Repeat("  ", indent))
	}
	if last && text == ";" && st.buf.Len() > 0 {
		trimTrailingNewline(st.buf)
	}
	st.buf.WriteString(text)
	return nil
}

// trimTrailingNewline removes the last "\n" in buf, together with any spaces
// or tabs written after it, so that a final ";" node does not leave a
// dangling blank line before it. buf is left as is when it does not end in a
// newline optionally followed by spaces or tabs.
func trimTrailingNewline(buf *strings.Builder) {
	s := buf.String()
	trimmed := strings.TrimRight(s, " \t")
	if strings.HasSuffix(trimmed, "\n") {
		buf.Reset()
		buf.WriteString(trimmed[:len(trimmed)-1])
	}
}

func (st *compileState) renderValue(n *valueNode) error {
	if len(st.values) >= maxParameters {
		return ErrTooManyParameters
	}
	st.values = append(st.values, n.value)
	st.buf.WriteByte('$')
	st.buf.WriteString(strconv.Itoa(len(st.values)))
	return nil
}

func (st *compileState) renderIdentifier(n *identifierNode) error {
	for i, part := range n.parts {
		if i > 0 {
			st.buf.WriteByte('.')
		}
		if part.quoted {
			st.buf.WriteString(part.text)
			continue
		}
		alias, err := st.aliasFor(part.token)
		if err != nil {
			return err
		}
		st.buf.WriteString(alias)
	}
	return nil
}

// aliasFor assigns (on first use) or returns the previously assigned alias
// for tok: "__<mangled>_" for the first token seen with a given mangled
// description, "__<mangled>_<n>" (n >= 2) for each subsequent distinct
// token sharing that description. Grounded on skillian-sqlstream's
// exprWriterVisitor.aliasOf/makeAlias: a per-prefix counter, incremented on
// each new identity sharing the prefix.
func (st *compileState) aliasFor(tok *Token) (string, error) {
	if alias, ok := st.aliases[tok]; ok {
		return alias, nil
	}
	desc := tok.Description()
	st.descCounts[desc]++
	n := st.descCounts[desc]
	var alias string
	if n == 1 {
		alias = "__" + desc + "_"
	} else {
		alias = "__" + desc + "_" + strconv.Itoa(n)
	}
	st.aliases[tok] = alias
	return alias, nil
}

func (st *compileState) renderIndent(n *indentNode, indent int, last bool) error {
	if !st.dev {
		return st.render(n.content, indent, last)
	}
	pad := strings.Repeat("  ", indent+1)
	st.buf.WriteByte('\n')
	st.buf.WriteString(pad)
	// The content is never the true final write of this node: a dedent
	// line always follows it, so the trailing-";" trim must not fire
	// inside it even if this indentNode itself is last.
	if err := st.render(n.content, indent+1, false); err != nil {
		return err
	}
	st.buf.WriteByte('\n')
	st.buf.WriteString(strings.Repeat("  ", indent))
	return nil
}

func (st *compileState) renderParens(n *parensNode, indent int, last bool) error {
	saved := st.buf
	st.buf = &strings.Builder{}
	// Content is rendered into a detached buffer to test parens-safety, so
	// last never applies to it: the closing ")" (or nothing, if omitted)
	// always follows, and that write happens on the outer st.buf below.
	err := st.render(n.content, indent, false)
	rendered := st.buf.String()
	st.buf = saved
	if err != nil {
		return err
	}
	if n.force || !parensSafe(rendered) {
		st.buf.WriteByte('(')
		st.buf.WriteString(rendered)
		st.buf.WriteByte(')')
		return nil
	}
	st.buf.WriteString(rendered)
	return nil
}

func (st *compileState) renderSymbolAlias(n *symbolAliasNode) error {
	aliasA, hasA := st.aliases[n.a]
	aliasB, hasB := st.aliases[n.b]
	switch {
	case hasA && hasB:
		if aliasA != aliasB {
			return ErrConflictingSymbolAlias
		}
		return nil
	case hasA && !hasB:
		st.aliases[n.b] = aliasA
		return nil
	case !hasA && hasB:
		st.aliases[n.a] = aliasB
		return nil
	default:
		alias, err := st.aliasFor(n.a)
		if err != nil {
			return err
		}
		st.aliases[n.b] = alias
		return nil
	}
}

func (st *compileState) renderPlaceholder(n *placeholderNode, indent int, last bool) error {
	resolved, ok := st.placeholderValues[n.handle]
	if !ok {
		if n.fallback == nil {
			return ErrUnresolvedPlaceholder
		}
		resolved = n.fallback
	}
	return st.render(resolved, indent, last)
}
