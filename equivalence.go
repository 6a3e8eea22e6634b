package pgfrag

// maxSubstitutionHops bounds how many links of a symbol-substitution chain
// IsEquivalent will follow before concluding the mapping contains a cycle.
const maxSubstitutionHops = 1000

// IsEquivalent reports whether a and b denote the same fragment, optionally
// treating handles present in symbolSubstitutes as identical to the handle
// they map to. It returns an error if a substitution chain followed from a
// compared handle reaches a self-loop or a cycle, or runs longer than
// maxSubstitutionHops.
func IsEquivalent(a, b Fragment, symbolSubstitutes map[*Token]*Token) (bool, error) {
	if a == b {
		return true, nil
	}
	return equivalent(a, b, symbolSubstitutes)
}

func resolveSubstitute(m map[*Token]*Token, h *Token) (*Token, error) {
	seen := make(map[*Token]bool, 4)
	cur := h
	for hops := 0; ; hops++ {
		next, ok := m[cur]
		if !ok {
			return cur, nil
		}
		if next == cur {
			return nil, ErrSelfSubstitution
		}
		if seen[next] {
			return nil, ErrSubstitutionCycle
		}
		seen[cur] = true
		if hops >= maxSubstitutionHops {
			return nil, ErrSubstitutionCycle
		}
		cur = next
	}
}

// tokensEquivalent decides whether two handles should be treated as the
// same identity under the given substitution map: each handle's chain is
// followed to its end, and the two are equivalent when both chains end at
// the same handle. An unmapped handle resolves to itself.
func tokensEquivalent(m map[*Token]*Token, a, b *Token) (bool, error) {
	if a == b {
		return true, nil
	}
	ra, err := resolveSubstitute(m, a)
	if err != nil {
		return false, err
	}
	rb, err := resolveSubstitute(m, b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}

func equivalent(a, b Fragment, m map[*Token]*Token) (bool, error) {
	if a == b {
		return true, nil
	}
	switch av := a.(type) {
	case *rawNode:
		bv, ok := b.(*rawNode)
		return ok && av.text == bv.text, nil
	case *valueNode:
		bv, ok := b.(*valueNode)
		return ok && scalarEqual(av.value, bv.value), nil
	case *identifierNode:
		bv, ok := b.(*identifierNode)
		if !ok || len(av.parts) != len(bv.parts) {
			return false, nil
		}
		for i := range av.parts {
			eq, err := identPartsEquivalent(av.parts[i], bv.parts[i], m)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case *indentNode:
		bv, ok := b.(*indentNode)
		if !ok {
			return false, nil
		}
		return equivalent(av.content, bv.content, m)
	case *parensNode:
		bv, ok := b.(*parensNode)
		if !ok || av.force != bv.force {
			return false, nil
		}
		return equivalent(av.content, bv.content, m)
	case *placeholderNode:
		bv, ok := b.(*placeholderNode)
		if !ok {
			return false, nil
		}
		return tokensEquivalent(m, av.handle, bv.handle)
	case *symbolAliasNode:
		// SymbolAlias is not equivalent to anything, including
		// another SymbolAlias: it is a compiler directive, not a
		// value with content to compare.
		return false, nil
	case *queryNode:
		bv, ok := b.(*queryNode)
		if !ok || len(av.nodes) != len(bv.nodes) {
			return false, nil
		}
		for i := range av.nodes {
			eq, err := equivalent(av.nodes[i], bv.nodes[i], m)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	default:
		return false, internalError("unrecognized fragment type %T", a)
	}
}

func identPartsEquivalent(a, b identPart, m map[*Token]*Token) (bool, error) {
	if a.quoted != b.quoted {
		return false, nil
	}
	if a.quoted {
		return a.text == b.text, nil
	}
	if a.token.Description() != b.token.Description() {
		return false, nil
	}
	return tokensEquivalent(m, a.token, b.token)
}

func scalarEqual(a, b any) bool {
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !scalarEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
