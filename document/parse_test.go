package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBasicTree(t *testing.T) {
	src := `<gr:grammar xmlns:gr="urn:grammar2code">
	<gr:derivations>
		<Start output="out.txt">
			<Lit>hello</Lit>
		</Start>
	</gr:derivations>
</gr:grammar>`

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	tops := doc.TopLevel()
	require.Len(t, tops, 1)

	start := doc.Node(tops[0])
	require.Equal(t, "Start", start.Name)
	require.Equal(t, "out.txt", start.AttrOr("output", ""))

	children := doc.Children(tops[0])
	require.Len(t, children, 1)
	lit := doc.Node(children[0])
	require.Equal(t, "Lit", lit.Name)

	litChildren := doc.Children(children[0])
	require.Len(t, litChildren, 1)
	require.True(t, doc.Node(litChildren[0]).IsCData())
	require.Equal(t, "hello", doc.Node(litChildren[0]).Text)
}

func TestParseDiscardsInsignificantWhitespace(t *testing.T) {
	src := `<gr:derivations>
		<A>
		</A>
	</gr:derivations>`

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	a, ok := doc.Derivation("A")
	require.True(t, ok)
	require.Empty(t, doc.Children(a))
}

func TestParseKeepsSingleSpacePlaceholder(t *testing.T) {
	src := `<gr:derivations><A><B> </B></A></gr:derivations>`

	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	a, ok := doc.Derivation("A")
	require.True(t, ok)
	bChildren := doc.Children(a)
	require.Len(t, bChildren, 1)
	bGrandchildren := doc.Children(bChildren[0])
	require.Len(t, bGrandchildren, 1)
	require.Equal(t, " ", doc.Node(bGrandchildren[0]).Text)
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse(strings.NewReader(`<gr:derivations><A></gr:derivations>`))
	require.Error(t, err)
}
