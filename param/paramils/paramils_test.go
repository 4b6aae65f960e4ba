package paramils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatParameterAlwaysEnumerated(t *testing.T) {
	line := Dialect{}.FormatParameter("Start", "int", []string{"0", "2", "4"}, "0", false, "")
	require.Equal(t, "Start {0, 2, 4}[0]", line)
}

func TestEnumerateRangesIsTrue(t *testing.T) {
	require.True(t, Dialect{}.EnumerateRanges())
}
