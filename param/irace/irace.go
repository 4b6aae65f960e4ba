// Package irace implements param.Dialect for irace's parameter-file
// syntax: `name "--switch=" type(values)`, with a "|" conditional keyword
// introducing a guard clause.
package irace

import (
	"strings"

	"github.com/fpagnozzi/grammar2code/pathcond"
)

// Dialect renders irace parameter files: conditions are inlined on each
// parameter line.
type Dialect struct{}

func (Dialect) FormatRuleName(path string) string {
	canonical, display := pathcond.RuleName(path)
	return canonical + " \"--" + display + "=\" "
}

func (Dialect) FormatRuleCond(path, nodeName string, recIndex int) string {
	condPath, condValue := pathcond.RuleCond(path, nodeName, recIndex)
	if condPath == "" || condValue == "" {
		return ""
	}
	condName, _ := pathcond.RuleName(condPath)
	return " | " + condName + " == " + condValue
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
	return rule + t + "(" + strings.Join(values, ", ") + ")" + cond
}

func (Dialect) EnumerateRanges() bool { return false }

func (Dialect) TrailingBlock(conditionals []string) string { return "" }
