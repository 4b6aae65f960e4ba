package emili

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRuleCondUsesInOperator(t *testing.T) {
	cond := Dialect{}.FormatRuleCond("Start%1%sub", "sub", -1)
	require.Equal(t, "\t| Start %in% c(1)", cond)
}

func TestFormatParameter(t *testing.T) {
	line := Dialect{}.FormatParameter("Start\t\"--Start=\"\t", "real", []string{"0.0", "1.0"}, "", false, "")
	require.Equal(t, "Start\t\"--Start=\"\t r (0.0, 1.0)", line)
}
