// Package crace implements param.Dialect for crace's parameter-file
// syntax: tab-separated "name type (values) [cond]" fields.
package crace

import (
	"strings"

	"github.com/fpagnozzi/grammar2code/pathcond"
)

// Dialect renders crace parameter files: conditions are inlined on each
// parameter line, never accumulated in a trailing block.
type Dialect struct{}

func (Dialect) FormatRuleName(path string) string {
	canonical, display := pathcond.RuleName(path)
	return canonical + "\t\"--" + display + "=\"\t"
}

func (Dialect) FormatRuleCond(path, nodeName string, recIndex int) string {
	condPath, condValue := pathcond.RuleCond(path, nodeName, recIndex)
	if condPath == "" || condValue == "" {
		return ""
	}
	condName, _ := pathcond.RuleName(condPath)
	return "\t| " + condName + " == " + condValue
}

func (Dialect) FormatParameter(rule, kind string, values []string, defaultValue string, logScale bool, cond string) string {
	var t string
	switch kind {
	case "int":
		t = "i"
	case "real":
		t = "r"
	case "categorical", "recursive":
		t = "c"
	}
	return rule + " " + t + " (" + strings.Join(values, ", ") + ")" + cond
}

func (Dialect) EnumerateRanges() bool { return false }

func (Dialect) TrailingBlock(conditionals []string) string { return "" }
