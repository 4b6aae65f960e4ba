package irace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRuleName(t *testing.T) {
	require.Equal(t, `Start "--Start=" `, Dialect{}.FormatRuleName("Start"))
}

func TestFormatParameterCategorical(t *testing.T) {
	line := Dialect{}.FormatParameter(`Start "--Start=" `, "categorical", []string{"0", "1"}, "", false, "")
	require.Equal(t, `Start "--Start=" c(0, 1)`, line)
}

func TestFormatRuleCondWithValue(t *testing.T) {
	cond := Dialect{}.FormatRuleCond("Start%1%sub", "sub", -1)
	require.Equal(t, " | Start == 1", cond)
}
