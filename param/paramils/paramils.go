// Package paramils implements param.Dialect for ParamILS's parameter-file
// syntax, which enumerates a stepped numeric range as a literal value list
// rather than a bounded interval.
package paramils

import (
	"strings"

	"github.com/fpagnozzi/grammar2code/pathcond"
)

// Dialect renders ParamILS parameter files: categoricals and stepped
// ranges as "name {v1, v2, ...}[default]", all conditions accumulated
// into a trailing "Conditionals:" block.
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
	alternatives := strings.Join(values, ", ")
	return rule + " {" + alternatives + "}[" + defaultValue + "]"
}

// EnumerateRanges is true: ParamILS has no native continuous-range
// syntax, so a stepIfEnumerated-bearing range is rendered as its full
// discrete enumeration.
func (Dialect) EnumerateRanges() bool { return true }

func (Dialect) TrailingBlock(conditionals []string) string {
	out := "\nConditionals:\n"
	for _, c := range conditionals {
		out += c + "\n"
	}
	return out
}
