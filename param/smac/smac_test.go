package smac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRuleNameIsBareDisplay(t *testing.T) {
	require.Equal(t, "Start-sub", Dialect{}.FormatRuleName("Start:sub"))
}

func TestFormatParameterRange(t *testing.T) {
	line := Dialect{}.FormatParameter("Start", "int", []string{"0", "10"}, "5", false, "")
	require.Equal(t, "Start [0, 10][5]i", line)
}

func TestFormatParameterCategorical(t *testing.T) {
	line := Dialect{}.FormatParameter("Start", "categorical", []string{"0", "1", "2"}, "", false, "")
	require.Equal(t, "Start {0, 1, 2}[0]", line)
}

func TestTrailingBlock(t *testing.T) {
	block := Dialect{}.TrailingBlock([]string{"Start | sub in {1}"})
	require.Equal(t, "\nConditionals:\nStart | sub in {1}\n", block)
}
