package pgfrag

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// withDevEnv sets PGFRAG_ENV for the duration of fn, restoring whatever was
// there before. The dev-mode flag is read fresh inside Compile (isDevEnv()), so this is
// enough to exercise both modes without a subprocess or TestMain harness.
func withDevEnv(value string, fn func()) {
	prev, had := os.LookupEnv("PGFRAG_ENV")
	if value == "" {
		os.Unsetenv("PGFRAG_ENV")
	} else {
		os.Setenv("PGFRAG_ENV", value)
	}
	defer func() {
		if had {
			os.Setenv("PGFRAG_ENV", prev)
		} else {
			os.Unsetenv("PGFRAG_ENV")
		}
	}()
	fn()
}

var _ = Describe("dev mode", func() {
	It("strips Indent to its content in production", func() {
		withDevEnv("", func() {
			inner, _ := Template("x")
			f := Indent(inner)
			res, err := Compile(f, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("x"))
		})
	})

	It("wraps Indent's content in a newline/2-space-indent pair in dev mode", func() {
		withDevEnv("development", func() {
			inner, _ := Template("x")
			f := Indent(inner)
			res, err := Compile(f, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("\n  x\n"))
		})
	})

	It("nests Indent markers at increasing indent depth", func() {
		withDevEnv("dev", func() {
			innermost, _ := Template("y")
			f := Indent(Indent(innermost))
			res, err := Compile(f, nil)
			Expect(err).NotTo(HaveOccurred())
			// Before blank-line collapse this would be "\n  \n    y\n  \n":
			// the outer Indent's newline/pad pair around the inner Indent's
			// own opening newline is a whitespace-only line, which dev mode
			// collapses away like any other blank line.
			Expect(res.Text).To(Equal("\n    y\n"))
		})
	})

	It("pads embedded Raw newlines with indent copies of two spaces in dev mode", func() {
		withDevEnv("development", func() {
			body, err := Raw("a\nb")
			Expect(err).NotTo(HaveOccurred())
			f := Indent(body)
			res, err := Compile(f, nil)
			Expect(err).NotTo(HaveOccurred())
			// Indent itself puts body at depth 1, so the embedded newline
			// inside it is padded with 2*1 = 2 spaces, not a hardcoded
			// constant.
			Expect(res.Text).To(Equal("\n  a\n  b\n"))
		})
	})

	It("leaves embedded Raw newlines untouched in production", func() {
		withDevEnv("", func() {
			body, err := Raw("a\nb")
			Expect(err).NotTo(HaveOccurred())
			res, err := Compile(body, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("a\nb"))
		})
	})

	It("trims the newline before a trailing ';' only when it is the final node", func() {
		withDevEnv("development", func() {
			a, _ := Raw("a\n")
			semi, _ := Raw(";")
			f, err := Template(a, semi)
			Expect(err).NotTo(HaveOccurred())

			res, err := Compile(f, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("a;"))
		})
	})

	It("does not trim the newline when a ';' Raw node is followed by more content", func() {
		withDevEnv("development", func() {
			a, _ := Raw("a\n")
			semi, _ := Raw(";")
			b, _ := Raw("b")
			f, err := Template(a, semi, b)
			Expect(err).NotTo(HaveOccurred())

			res, err := Compile(f, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("a\n;b"))
		})
	})

	It("collapses runs of adjacent blank lines produced by dev-mode rendering", func() {
		withDevEnv("dev", func() {
			a, _ := Raw("a\n\n\nb")
			res, err := Compile(a, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("a\nb"))
		})
	})
})
