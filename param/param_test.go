package param

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fpagnozzi/grammar2code/document"
	"github.com/fpagnozzi/grammar2code/param/crace"
)

func buildCategoricalGrammar() *document.Document {
	d := document.New()
	rule := d.NewElement("Start")
	d.Node(rule).SetAttr("output", "out.txt")
	a := d.NewCData("a")
	or := d.NewElement("or")
	b := d.NewCData("b")
	d.AppendChild(rule, a)
	d.AppendChild(rule, or)
	d.AppendChild(rule, b)
	d.AppendChild(d.Derivations(), rule)
	return d
}

func TestPrintEmitsOneLinePerChoicePoint(t *testing.T) {
	d := buildCategoricalGrammar()
	out, err := Print(d, crace.Dialect{}, 3, nil)
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "Start"))
	require.True(t, strings.Contains(out, "c (0, 1)"))
}

func TestPrintRangeParameter(t *testing.T) {
	d := document.New()
	rule := d.NewElement("Start")
	d.Node(rule).SetAttr("output", "out.txt")
	rng := d.NewElement("Amount")
	d.Node(rng).SetAttr("type", "int")
	d.Node(rng).SetAttr("min", "1")
	d.Node(rng).SetAttr("max", "5")
	d.AppendChild(rule, rng)
	d.AppendChild(d.Derivations(), rule)

	out, err := Print(d, crace.Dialect{}, 3, nil)
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "(1, 5)"))
}

func TestDuplicateParameterIsFatal(t *testing.T) {
	d := document.New()
	rule := d.NewElement("A")
	d.Node(rule).SetAttr("output", "out.txt")
	// Two children named identically would normally be disambiguated by
	// the rename-calls normalization pass; skipping normalization here
	// directly exercises the emitter's own last-line-of-defense check.
	a1 := d.NewElement("Shared")
	a2 := d.NewElement("Shared")
	d.AppendChild(rule, a1)
	d.AppendChild(rule, a2)
	target := d.NewElement("Shared")
	d.Node(target).SetAttr("type", "int")
	d.Node(target).SetAttr("min", "0")
	d.Node(target).SetAttr("max", "1")
	d.AppendChild(d.Derivations(), rule)
	d.AppendChild(d.Derivations(), target)

	_, err := Print(d, crace.Dialect{}, 3, nil)
	require.Error(t, err)
}
