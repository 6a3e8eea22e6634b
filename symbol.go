package pgfrag

// ReplaceSymbol returns a Fragment equal to f but with every occurrence of
// needle's identity replaced by replacement, preserving structural sharing:
// any subtree that contains no occurrence of needle is returned unchanged
// (the same pointer), not rebuilt.
func ReplaceSymbol(f Fragment, needle, replacement *Token) Fragment {
	if needle == replacement {
		return f
	}
	switch n := f.(type) {
	case *rawNode, *valueNode:
		return f
	case *identifierNode:
		return replaceSymbolInIdentifier(n, needle, replacement)
	case *indentNode:
		rewritten := ReplaceSymbol(n.content, needle, replacement)
		if rewritten == n.content {
			return n
		}
		return &indentNode{content: rewritten}
	case *parensNode:
		rewritten := ReplaceSymbol(n.content, needle, replacement)
		if rewritten == n.content {
			return n
		}
		return &parensNode{content: rewritten, force: n.force}
	case *symbolAliasNode:
		a, b := n.a, n.b
		changed := false
		if a == needle {
			a, changed = replacement, true
		}
		if b == needle {
			b, changed = replacement, true
		}
		if !changed {
			return n
		}
		return &symbolAliasNode{a: a, b: b}
	case *placeholderNode:
		handle := n.handle
		fallback := n.fallback
		changed := false
		if handle == needle {
			handle, changed = replacement, true
		}
		if fallback != nil {
			rewritten := ReplaceSymbol(fallback, needle, replacement)
			if rewritten != fallback {
				fallback, changed = rewritten, true
			}
		}
		if !changed {
			return n
		}
		return &placeholderNode{handle: handle, fallback: fallback}
	case *queryNode:
		return replaceSymbolInQuery(n, needle, replacement)
	default:
		return f
	}
}

func replaceSymbolInIdentifier(n *identifierNode, needle, replacement *Token) Fragment {
	changed := false
	parts := n.parts
	for i, p := range parts {
		if p.token == needle {
			if !changed {
				parts = append([]identPart(nil), n.parts...)
				changed = true
			}
			parts[i] = identPart{token: replacement}
		}
	}
	if !changed {
		return n
	}
	return &identifierNode{parts: parts}
}

func replaceSymbolInQuery(n *queryNode, needle, replacement *Token) Fragment {
	changed := false
	nodes := n.nodes
	for i, child := range n.nodes {
		rewritten := ReplaceSymbol(child, needle, replacement)
		if rewritten != child {
			if !changed {
				nodes = append([]Fragment(nil), n.nodes...)
				changed = true
			}
			nodes[i] = rewritten
		}
	}
	if !changed {
		return n
	}
	return &queryNode{nodes: nodes, flags: n.flags}
}
