package pgfrag

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Compile", func() {
	It("S1: composes identifiers, literals and a value into one statement", func() {
		usersId, err := Identifier("users", "id")
		Expect(err).NotTo(HaveOccurred())
		users, err := Identifier("users")
		Expect(err).NotTo(HaveOccurred())
		v, err := Value(42)
		Expect(err).NotTo(HaveOccurred())

		f, err := Template("select ", usersId, " from ", users, " where ", usersId, " = ", v)
		Expect(err).NotTo(HaveOccurred())

		res, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal(`select "users"."id" from "users" where "users"."id" = $1`))
		Expect(res.Values).To(Equal([]any{42}))
	})

	It("S2: a token's alias is stable across independent compiles", func() {
		tok := NewToken("user_rows")
		ident, err := Identifier(tok)
		Expect(err).NotTo(HaveOccurred())
		f, err := Template("from ", ident)
		Expect(err).NotTo(HaveOccurred())

		first, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		second, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(first.Text).To(Equal("from __user_rows_"))
		Expect(second.Text).To(Equal("from __user_rows_"))
	})

	It("S3: join inserts a separator and numbers placeholders in order", func() {
		one, _ := Value(1)
		two, _ := Value(2)
		three, _ := Value(3)
		f, err := Join([]Fragment{one, two, three}, ", ")
		Expect(err).NotTo(HaveOccurred())

		res, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("$1, $2, $3"))
		Expect(res.Values).To(Equal([]any{1, 2, 3}))
	})

	It("S4: parens forces wrapping when the inner text is not parens-safe", func() {
		one, _ := Value(1)
		two, _ := Value(2)
		inner, err := Template(one, " = ", two)
		Expect(err).NotTo(HaveOccurred())
		wrapped, err := Parens(inner)
		Expect(err).NotTo(HaveOccurred())
		f, err := Template("where ", wrapped)
		Expect(err).NotTo(HaveOccurred())

		res, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("where ($1 = $2)"))
		Expect(res.Values).To(Equal([]any{1, 2}))
	})

	It("S5: parens around a bare value does not wrap, since a value is parens-safe", func() {
		v, err := Value(7)
		Expect(err).NotTo(HaveOccurred())
		wrapped, err := Parens(v)
		Expect(err).NotTo(HaveOccurred())

		res, err := Compile(wrapped, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("$1"))
		Expect(res.Values).To(Equal([]any{7}))
	})

	It("S6: boolean and null literals compile to bare keywords with no values", func() {
		for _, tc := range []struct {
			in   any
			text string
		}{
			{true, "TRUE"},
			{false, "FALSE"},
			{nil, "NULL"},
		} {
			lit, err := Literal(tc.in)
			Expect(err).NotTo(HaveOccurred())
			res, err := Compile(lit, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal(tc.text))
			Expect(res.Values).To(BeEmpty())
		}
	})

	It("S7: inline-safe strings render bare; everything else is parameterized", func() {
		hello, err := Literal("hello")
		Expect(err).NotTo(HaveOccurred())
		res, err := Compile(hello, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("'hello'"))
		Expect(res.Values).To(BeEmpty())

		apostrophe, err := Literal("it's")
		Expect(err).NotTo(HaveOccurred())
		res, err = Compile(apostrophe, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("$1"))
		Expect(res.Values).To(Equal([]any{"it's"}))
	})

	It("S8: SymbolAlias between two already-distinctly-aliased tokens fails", func() {
		a := NewToken("u")
		b := NewToken("u")
		identA, _ := Identifier(a)
		identB, _ := Identifier(b)
		alias, err := SymbolAlias(a, b)
		Expect(err).NotTo(HaveOccurred())

		f, err := Template(identA, "/", identB, "/", alias, identA, "/", identB)
		Expect(err).NotTo(HaveOccurred())

		_, err = Compile(f, nil)
		Expect(err).To(MatchError(ErrConflictingSymbolAlias))
	})

	It("adopts the other side's alias when only one token has been assigned one", func() {
		a := NewToken("u")
		b := NewToken("u")
		identA, _ := Identifier(a)
		identB, _ := Identifier(b)
		alias, err := SymbolAlias(a, b)
		Expect(err).NotTo(HaveOccurred())

		f, err := Template(identA, "/", alias, identB)
		Expect(err).NotTo(HaveOccurred())

		res, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("__u_/__u_"))
	})

	It("invariant 3: compiling the same fragment twice with the same placeholder map is byte-identical", func() {
		v, _ := Value(1)
		f, err := Template("x = ", v)
		Expect(err).NotTo(HaveOccurred())

		r1, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		r2, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(r1).To(Equal(r2))
	})

	It("invariant 5: distinct tokens sharing a description render to distinct aliases", func() {
		a := NewToken("t")
		b := NewToken("t")
		identA, _ := Identifier(a)
		identB, _ := Identifier(b)
		f, err := Template(identA, " ", identB)
		Expect(err).NotTo(HaveOccurred())

		res, err := Compile(f, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("__t_ __t_2"))
	})

	It("invariant 8: exceeding the 65535-parameter cap fails with TooManyParameters", func() {
		items := make([]Fragment, maxParameters+1)
		for i := range items {
			items[i], _ = Value(i)
		}
		f, err := Join(items, ",")
		Expect(err).NotTo(HaveOccurred())

		_, err = Compile(f, nil)
		Expect(err).To(MatchError(ErrTooManyParameters))
	})

	It("resolves a Placeholder from the supplied map, falling back when absent", func() {
		handle := NewToken("p")
		fallback, _ := Value(99)
		ph, err := Placeholder(handle, fallback)
		Expect(err).NotTo(HaveOccurred())

		res, err := Compile(ph, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Text).To(Equal("$1"))
		Expect(res.Values).To(Equal([]any{99}))

		supplied, _ := Value(7)
		res, err = Compile(ph, map[*Token]Fragment{handle: supplied})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Values).To(Equal([]any{7}))
	})

	It("fails with ErrUnresolvedPlaceholder when neither a value nor a fallback is available", func() {
		handle := NewToken("p")
		ph, err := Placeholder(handle)
		Expect(err).NotTo(HaveOccurred())

		_, err = Compile(ph, nil)
		Expect(err).To(MatchError(ErrUnresolvedPlaceholder))
	})
})
