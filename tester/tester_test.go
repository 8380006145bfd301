package tester_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdubinko/earleybird/tester"
)

func TestDiffXMLEquivalentIgnoresAttributeOrder(t *testing.T) {
	a := `<x a="1" b="2">text</x>`
	e := `<x b="2" a="1">text</x>`
	assert.Empty(t, tester.DiffXML(a, e))
}

func TestDiffXMLDetectsTextMismatch(t *testing.T) {
	a := `<x>hello</x>`
	e := `<x>world</x>`
	diff := tester.DiffXML(a, e)
	assert.NotEmpty(t, diff)
}

func TestDiffXMLPreservesWhitespace(t *testing.T) {
	a := `<x>a  b</x>`
	e := `<x>a b</x>`
	diff := tester.DiffXML(a, e)
	assert.NotEmpty(t, diff, "differing whitespace must be reported, not normalized away")
}

func TestDiffXMLDetectsElementNameMismatch(t *testing.T) {
	a := `<x><y>1</y></x>`
	e := `<x><z>1</z></x>`
	assert.NotEmpty(t, tester.DiffXML(a, e))
}

func TestDiffXMLDetectsMissingAttribute(t *testing.T) {
	a := `<x a="1">v</x>`
	e := `<x a="1" b="2">v</x>`
	assert.NotEmpty(t, tester.DiffXML(a, e))
}

func TestLoadCatalogReportsMissingDirectory(t *testing.T) {
	cat := tester.LoadCatalog("/no/such/directory/ixml-tester-test")
	if assert.Len(t, cat.Cases, 1) {
		assert.Error(t, cat.Cases[0].Error)
	}
}
