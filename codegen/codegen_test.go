package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fpagnozzi/grammar2code/document"
)

func TestGenerateWritesOutputFile(t *testing.T) {
	d := document.New()
	rule := d.NewElement("Start")
	d.Node(rule).SetAttr("output", "result.txt")
	lit := d.NewCData("hello")
	d.AppendChild(rule, lit)
	d.AppendChild(d.Derivations(), rule)

	tmp := t.TempDir()
	err := Generate(d, tmp, tmp, map[string]string{}, false, nil)
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(tmp, "result.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello\n\n", string(out))
}

func TestGenerateConsumesRangeParameter(t *testing.T) {
	d := document.New()
	rule := d.NewElement("Start")
	d.Node(rule).SetAttr("output", "result.txt")
	rng := d.NewElement("Amount")
	d.Node(rng).SetAttr("type", "int")
	d.AppendChild(rule, rng)
	d.AppendChild(d.Derivations(), rule)

	tmp := t.TempDir()
	params := map[string]string{"Start": "42"}
	err := Generate(d, tmp, tmp, params, false, nil)
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(tmp, "result.txt"))
	require.NoError(t, err)
	require.Equal(t, "42\n\n", string(out))
	require.Empty(t, params, "consumed parameter must be removed from the assignment map")
}

func TestGenerateMissingParameterIsFatal(t *testing.T) {
	d := document.New()
	rule := d.NewElement("Start")
	d.Node(rule).SetAttr("output", "result.txt")
	rng := d.NewElement("Amount")
	d.Node(rng).SetAttr("type", "int")
	d.AppendChild(rule, rng)
	d.AppendChild(d.Derivations(), rule)

	tmp := t.TempDir()
	err := Generate(d, tmp, tmp, map[string]string{}, false, nil)
	require.Error(t, err)
}

func TestCopySingleFile(t *testing.T) {
	d := document.New()
	rule := d.NewElement("Asset")
	d.Node(rule).SetAttr("source", "in.txt")
	d.Node(rule).SetAttr("destination", "out.txt")
	d.AppendChild(d.Derivations(), rule)

	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "in.txt"), []byte("payload"), 0o644))

	err := Generate(d, tmp, tmp, map[string]string{}, false, nil)
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(tmp, "out.txt"))
	require.NoError(t, err)
	require.Equal(t, "payload", string(out))
}
