package crace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRuleName(t *testing.T) {
	d := Dialect{}
	require.Equal(t, "Start\t\"--Start=\"\t", d.FormatRuleName("Start"))
}

func TestFormatRuleCondEmpty(t *testing.T) {
	d := Dialect{}
	require.Empty(t, d.FormatRuleCond("Start", "Start", -1))
}

func TestFormatParameterCategorical(t *testing.T) {
	d := Dialect{}
	line := d.FormatParameter("Start\t\"--Start=\"\t", "categorical", []string{"0", "1"}, "", false, "")
	require.Equal(t, "Start\t\"--Start=\"\t c (0, 1)", line)
}

func TestTrailingBlockIsEmpty(t *testing.T) {
	require.Empty(t, Dialect{}.TrailingBlock([]string{"anything"}))
}
