// Package smac implements param.Dialect for SMAC's parameter-file syntax:
// "name {values}[default]" for categoricals, "name [lo, hi][default]" for
// ranges, with "|" guard clauses.
package smac

import (
	"strings"

	"github.com/fpagnozzi/grammar2code/pathcond"
)

// Dialect renders SMAC parameter files: numeric ranges as
// "name [min, max][default]il", categoricals as "name {v1, v2}[v1]", and
// all conditions accumulated into a trailing "Conditionals:" block.
type Dialect struct{}

func (Dialect) FormatRuleName(path string) string {
	_, display := pathcond.RuleName(path)
	return display
}

func (Dialect) FormatRuleCond(path, nodeName string, recIndex int) string {
	_, paramDisplay := pathcond.RuleName(path)
	condPath, condValue := pathcond.RuleCond(path, nodeName, recIndex)
	if condPath == "" || condValue == "" {
		return ""
	}
	_, condDisplay := pathcond.RuleName(condPath)
	return paramDisplay + " | " + condDisplay + " in {" + condValue + "}"
}

func (Dialect) FormatParameter(rule, kind string, values []string, defaultValue string, logScale bool, cond string) string {
	if kind == "int" || kind == "real" {
		l := ""
		if logScale {
			l = "l"
		}
		i := ""
		if kind == "int" {
			i = "i"
		}
		return rule + " [" + values[0] + ", " + values[1] + "][" + defaultValue + "]" + i + l
	}
	alternatives := strings.Join(values, ", ")
	return rule + " {" + alternatives + "}[" + values[0] + "]"
}

func (Dialect) EnumerateRanges() bool { return false }

func (Dialect) TrailingBlock(conditionals []string) string {
	out := "\nConditionals:\n"
	for _, c := range conditionals {
		out += c + "\n"
	}
	return out
}
