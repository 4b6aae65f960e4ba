// Package emili implements param.Dialect for emili's parameter-file
// syntax. Only the parameter-line format is covered; emili's wrapper-class
// boilerplate generation for algorithm components is out of scope here.
package emili

import (
	"strings"

	"github.com/fpagnozzi/grammar2code/pathcond"
)

// Dialect renders emili parameter files: conditions are inlined on each
// parameter line using R's %in% operator.
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
	return "\t| " + condName + " %in% c(" + condValue + ")"
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
