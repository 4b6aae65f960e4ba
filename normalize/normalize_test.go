package normalize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fpagnozzi/grammar2code/document"
)

func mustParse(t *testing.T, src string) *document.Document {
	t.Helper()
	d, err := document.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return d
}

func TestMergeIncludesExpandsFile(t *testing.T) {
	dir := t.TempDir()
	included := `<gr:derivations><Helper output="helper.txt">text</Helper></gr:derivations>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.xml"), []byte(included), 0o644))

	main := mustParse(t, `<gr:derivations><gr:include source="helper.xml"/></gr:derivations>`)

	require.NoError(t, mergeIncludes(main, dir))

	_, ok := main.Derivation("Helper")
	require.True(t, ok)

	tops := main.TopLevel()
	require.Len(t, tops, 1)
	require.Equal(t, "Helper", main.Node(tops[0]).Name)
}

func TestApplyOverwriteReplacesMatchingRule(t *testing.T) {
	main := mustParse(t, `<gr:derivations><Rule attr="old">a</Rule></gr:derivations>`)
	overwrite := mustParse(t, `<gr:derivations><Rule attr="new">b</Rule></gr:derivations>`)

	require.NoError(t, applyOverwrite(main, overwrite))

	idx, ok := main.Derivation("Rule")
	require.True(t, ok)
	require.Equal(t, "new", main.Node(idx).AttrOr("attr", ""))
}

func TestApplyOverwriteMissingTargetIsFatal(t *testing.T) {
	main := mustParse(t, `<gr:derivations><Rule>a</Rule></gr:derivations>`)
	overwrite := mustParse(t, `<gr:derivations><Other>b</Other></gr:derivations>`)

	require.Error(t, applyOverwrite(main, overwrite))
}

func TestAppendDisjunctionsExtendsSibling(t *testing.T) {
	d := mustParse(t, `<gr:derivations><Rule>a</Rule><Rule append="disjunction">b</Rule></gr:derivations>`)

	require.NoError(t, appendDisjunctions(d))

	tops := d.TopLevel()
	require.Len(t, tops, 1)
	children := d.Children(tops[0])
	// original text node, "or", appended text node
	require.Len(t, children, 3)
	require.Equal(t, "or", d.Node(children[1]).Name)
}

func TestAppendDisjunctionsMissingTargetIsFatal(t *testing.T) {
	d := mustParse(t, `<gr:derivations><Rule append="disjunction">b</Rule></gr:derivations>`)
	require.Error(t, appendDisjunctions(d))
}

func TestRunEndToEnd(t *testing.T) {
	d := mustParse(t, `<gr:derivations>
		<Start output="out.txt"><Helper/></Start>
		<Helper>literal</Helper>
	</gr:derivations>`)

	require.NoError(t, Run(d, nil, t.TempDir(), nil))

	// Helper has no "or" children and no attributes, so remove-non-choices
	// inlines it into Start and drops the standalone rule.
	_, ok := d.Derivation("Helper")
	require.False(t, ok)

	start, ok := d.Derivation("Start")
	require.True(t, ok)
	children := d.Children(start)
	require.Len(t, children, 1)
	require.Equal(t, "literal", d.Node(children[0]).Text)
}
