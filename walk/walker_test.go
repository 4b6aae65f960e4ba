package walk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fpagnozzi/grammar2code/document"
)

// recorder is a walk.Visitor that just logs every callback it receives,
// always selecting every alternative (parameter-mode behavior).
type recorder struct {
	categoricals []string
	recursives   []string
	cdata        []string
}

func (r *recorder) Call(doc *document.Document, node int, path string, depth int) error {
	return nil
}
func (r *recorder) Categorical(doc *document.Document, node int, path string, depth int) (int, error) {
	r.categoricals = append(r.categoricals, path)
	return -1, nil
}
func (r *recorder) Recursive(doc *document.Document, node int, path string, depth int) (int, error) {
	r.recursives = append(r.recursives, path)
	return -1, nil
}
func (r *recorder) Range(doc *document.Document, node int, path string, depth int) error { return nil }
func (r *recorder) Copy(doc *document.Document, node int, path string, depth int) error  { return nil }
func (r *recorder) CData(doc *document.Document, node int, path string, depth int) error {
	r.cdata = append(r.cdata, doc.Node(node).Text)
	return nil
}
func (r *recorder) Plain(doc *document.Document, node int, path string, depth int) error { return nil }

func TestWalkCategorical(t *testing.T) {
	d := document.New()
	rule := d.NewElement("Start")
	d.Node(rule).SetAttr("output", "out.txt")
	altA := d.NewCData("a")
	or := d.NewElement("or")
	altB := d.NewCData("b")
	d.AppendChild(rule, altA)
	d.AppendChild(rule, or)
	d.AppendChild(rule, altB)
	d.AppendChild(d.Derivations(), rule)

	rec := &recorder{}
	w := &Walker{Doc: d, MaxDepth: 3, Visitor: rec}
	require.NoError(t, w.Walk())

	require.Equal(t, []string{"Start"}, rec.categoricals)
	require.Equal(t, []string{"a", "b"}, rec.cdata)
}

func TestWalkRecursionDepthCap(t *testing.T) {
	d := document.New()
	rule := d.NewElement("L")
	d.Node(rule).SetAttr("output", "out.txt")
	base := d.NewCData(".")
	or := d.NewElement("or")
	baseDot := d.NewCData(".")
	selfCall := d.NewElement("L")
	d.AppendChild(rule, base)
	d.AppendChild(rule, or)
	d.AppendChild(rule, baseDot)
	d.AppendChild(rule, selfCall)
	d.AppendChild(d.Derivations(), rule)

	rec := &recorder{}
	w := &Walker{Doc: d, MaxDepth: 2, Visitor: rec}
	require.NoError(t, w.Walk())

	// Recursive callback fires once per depth actually descended into,
	// plus the initial invocation; depth is capped at MaxDepth so the
	// walk cannot recurse forever.
	require.NotEmpty(t, rec.recursives)
	require.LessOrEqual(t, len(rec.recursives), 3)
}

func TestWalkCallMissingDerivationIsFatal(t *testing.T) {
	d := document.New()
	rule := d.NewElement("Start")
	d.Node(rule).SetAttr("output", "out.txt")
	call := d.NewElement("Missing")
	d.AppendChild(rule, call)
	d.AppendChild(d.Derivations(), rule)

	w := &Walker{Doc: d, MaxDepth: math.MaxInt32, Visitor: &recorder{}}
	err := w.Walk()
	require.Error(t, err)
}
