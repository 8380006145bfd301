// Package tester is the conformance-test runner interface of spec.md §6:
// a Catalog of (grammar, input, expected_xml) triples and a Run that
// compares the driver's actual output to each triple's expectation,
// grounded on the teacher's own tester package (TestCase/DiffTree/
// TestResult.String shape), adapted from syntax-tree diffing to
// normalized-XML diffing.
package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdubinko/earleybird/driver"
)

// Case is one conformance triple: a grammar and an input document, along
// with the XML a correct recognize-and-serialize run must produce.
type Case struct {
	Name         string
	GrammarPath  string
	InputPath    string
	ExpectedPath string
}

// CaseWithMetadata mirrors the teacher's TestCaseWithMetadata: a case plus
// the error encountered loading it, kept together so a caller can report
// every load failure in a directory at once instead of stopping at the
// first.
type CaseWithMetadata struct {
	Case     *Case
	FilePath string
	Error    error
}

// Catalog is a loaded, orderable set of cases, analogous to the teacher's
// Tester.Cases.
type Catalog struct {
	Cases []*CaseWithMetadata
}

// LoadCase loads a single case directory directly, for a CLI subcommand
// that names one case rather than a directory of them.
func LoadCase(dir string) *CaseWithMetadata {
	c := &Case{
		Name:         filepath.Base(dir),
		GrammarPath:  filepath.Join(dir, "grammar.ixml"),
		InputPath:    filepath.Join(dir, "input.txt"),
		ExpectedPath: filepath.Join(dir, "expected.xml"),
	}
	for _, p := range []string{c.GrammarPath, c.InputPath, c.ExpectedPath} {
		if _, err := os.Stat(p); err != nil {
			return &CaseWithMetadata{FilePath: dir, Error: err}
		}
	}
	return &CaseWithMetadata{Case: c, FilePath: dir}
}

// LoadCatalog walks dir for conformance cases. Each case is a
// subdirectory containing grammar.ixml, input.txt, and expected.xml; a
// malformed or incomplete subdirectory is recorded as a load error rather
// than skipped silently.
func LoadCatalog(dir string) *Catalog {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &Catalog{Cases: []*CaseWithMetadata{{FilePath: dir, Error: err}}}
	}

	var cat Catalog
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		casePath := filepath.Join(dir, e.Name())
		c := &Case{
			Name:         e.Name(),
			GrammarPath:  filepath.Join(casePath, "grammar.ixml"),
			InputPath:    filepath.Join(casePath, "input.txt"),
			ExpectedPath: filepath.Join(casePath, "expected.xml"),
		}
		if _, err := os.Stat(c.GrammarPath); err != nil {
			cat.Cases = append(cat.Cases, &CaseWithMetadata{FilePath: casePath, Error: err})
			continue
		}
		if _, err := os.Stat(c.InputPath); err != nil {
			cat.Cases = append(cat.Cases, &CaseWithMetadata{FilePath: casePath, Error: err})
			continue
		}
		if _, err := os.Stat(c.ExpectedPath); err != nil {
			cat.Cases = append(cat.Cases, &CaseWithMetadata{FilePath: casePath, Error: err})
			continue
		}
		cat.Cases = append(cat.Cases, &CaseWithMetadata{Case: c, FilePath: casePath})
	}
	return &Catalog{Cases: cat.Cases}
}

// Result is one case's outcome, mirroring the teacher's TestResult.
type Result struct {
	CasePath string
	Error    error
	Diff     string
}

func (r *Result) String() string {
	if r.Error != nil {
		const indent = "    "
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.CasePath, indent, r.Error)
		if r.Diff == "" {
			return msg
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent, r.Diff)
	}
	return fmt.Sprintf("Passed %v", r.CasePath)
}

// Run executes every loaded case through driver.LoadGrammar and
// driver.ParseString and returns one Result per case, in order, the way
// the teacher's Tester.Run does.
func Run(cat *Catalog) []*Result {
	var rs []*Result
	for _, c := range cat.Cases {
		rs = append(rs, runCase(c))
	}
	return rs
}

func runCase(c *CaseWithMetadata) *Result {
	if c.Error != nil {
		return &Result{CasePath: c.FilePath, Error: c.Error}
	}

	gf, err := os.Open(c.Case.GrammarPath)
	if err != nil {
		return &Result{CasePath: c.FilePath, Error: err}
	}
	defer gf.Close()

	g, err := driver.LoadGrammar(gf)
	if err != nil {
		return &Result{CasePath: c.FilePath, Error: fmt.Errorf("loading grammar: %w", err)}
	}

	input, err := os.ReadFile(c.Case.InputPath)
	if err != nil {
		return &Result{CasePath: c.FilePath, Error: err}
	}

	expected, err := os.ReadFile(c.Case.ExpectedPath)
	if err != nil {
		return &Result{CasePath: c.FilePath, Error: err}
	}

	result, err := driver.ParseString(g, string(input), nil)
	if err != nil {
		return &Result{CasePath: c.FilePath, Error: fmt.Errorf("parsing input: %w", err)}
	}

	diff := DiffXML(result.XML, string(expected))
	if diff != "" {
		return &Result{CasePath: c.FilePath, Error: fmt.Errorf("output mismatch"), Diff: diff}
	}
	return &Result{CasePath: c.FilePath}
}

// DiffXML compares two XML documents under spec.md §4.4's notion of
// equivalence: element and attribute names, attribute values, and text
// content must match; attribute order does not (spec.md §4.4 "attribute
// order is not significant"), but whitespace in text content is
// preserved and compared exactly. It returns an empty string when the
// documents are equivalent, or a human-readable description of the first
// difference found.
func DiffXML(actual, expected string) string {
	at, aerr := parseNormalized(actual)
	et, eerr := parseNormalized(expected)
	if aerr != nil {
		return fmt.Sprintf("actual is not well-formed XML: %v", aerr)
	}
	if eerr != nil {
		return fmt.Sprintf("expected is not well-formed XML: %v", eerr)
	}
	return diffNode(at, et, "/")
}

func diffNode(a, e *normalizedNode, path string) string {
	if a.Name != e.Name {
		return fmt.Sprintf("%s: element name: got %q, want %q", path, a.Name, e.Name)
	}
	if len(a.Attrs) != len(e.Attrs) {
		return fmt.Sprintf("%s<%s>: attribute count: got %d, want %d", path, a.Name, len(a.Attrs), len(e.Attrs))
	}
	for name, val := range e.Attrs {
		av, ok := a.Attrs[name]
		if !ok {
			return fmt.Sprintf("%s<%s>: missing attribute %q", path, a.Name, name)
		}
		if av != val {
			return fmt.Sprintf("%s<%s>: attribute %q: got %q, want %q", path, a.Name, name, av, val)
		}
	}
	if len(a.Children) != len(e.Children) {
		return fmt.Sprintf("%s<%s>: child count: got %d, want %d", path, a.Name, len(a.Children), len(e.Children))
	}
	for i := range e.Children {
		ac, ec := a.Children[i], e.Children[i]
		if ac.Text != nil || ec.Text != nil {
			at, et := "", ""
			if ac.Text != nil {
				at = *ac.Text
			}
			if ec.Text != nil {
				et = *ec.Text
			}
			if at != et {
				return fmt.Sprintf("%s<%s>: text content: got %q, want %q", path, a.Name, at, et)
			}
			continue
		}
		if d := diffNode(ac, ec, path+a.Name+"/"); d != "" {
			return d
		}
	}
	return ""
}

// ConvertSyntaxTreeToTestableTree mirrors the teacher's debug-formatting
// helper of the same name: a compact indented rendering of a derivation's
// element names, useful in a CLI's `--format tree` output.
func ConvertSyntaxTreeToTestableTree(xml string) (string, error) {
	n, err := parseNormalized(xml)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	formatTree(&b, n, 0)
	return b.String(), nil
}

func formatTree(b *strings.Builder, n *normalizedNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Name)
	b.WriteString("\n")
	for _, c := range n.Children {
		if c.Text != nil {
			b.WriteString(strings.Repeat("  ", depth+1))
			b.WriteString(fmt.Sprintf("%q\n", *c.Text))
			continue
		}
		formatTree(b, c, depth+1)
	}
}
