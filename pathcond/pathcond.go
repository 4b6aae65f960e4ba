// Package pathcond derives parameter identity and conditional predicates
// from a walker path. Both functions are pure: they strip the "@depth" and
// "%choice" suffixes a path accumulates on its way through recursive and
// categorical rules to recover a stable parameter name and its guard.
package pathcond

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	recursionSuffix = regexp.MustCompile(`@[0-9]+$`)
	choiceSuffix    = regexp.MustCompile(`%[0-9]+$`)
)

// RuleName splits a walker path into its canonical (parameter-map) key and
// its display (command-line-fragment) form. The canonical key strips every
// "@", "%" and ":" from the path; the display form only replaces ":" with
// "-", preserving the "%"/"@" alphabet so configurators see the original
// branching structure.
func RuleName(path string) (canonical, display string) {
	canonical = path
	canonical = strings.ReplaceAll(canonical, "@", "")
	canonical = strings.ReplaceAll(canonical, "%", "")
	canonical = strings.ReplaceAll(canonical, ":", "")
	display = strings.ReplaceAll(path, ":", "-")
	return canonical, display
}

// RuleCond derives the conditional predicate under which the parameter
// named by path is active. recIndex is the alternative index of the
// recursive branch of the enclosing recursive rule, or -1 if node_name
// does not sit inside one (callers that are not inside callback_recursive
// pass -1, in which case a trailing "@k" with k==0 is treated the same as
// a plain recursion depth marker and simply stripped).
func RuleCond(path, nodeName string, recIndex int) (condPath, condValue string) {
	condition := path
	value := ""

	standardRule := true

	if loc := recursionSuffix.FindStringIndex(condition); loc != nil {
		suffix := condition[loc[0]:loc[1]]
		condition = condition[:loc[0]]
		digits := strings.TrimPrefix(suffix, "@")
		depth, _ := strconv.Atoi(digits)
		if depth > 0 {
			standardRule = false
			condition = condition + "@" + strconv.Itoa(depth-1)
			value = strconv.Itoa(recIndex)
		}
	}

	if standardRule {
		condition = eraseLastOccurrence(condition, "%"+nodeName)
		if loc := choiceSuffix.FindStringIndex(condition); loc != nil {
			suffix := condition[loc[0]:loc[1]]
			condition = condition[:loc[0]]
			value = strings.TrimPrefix(suffix, "%")
		} else {
			condition = ""
		}
	}

	return strings.TrimSpace(condition), strings.TrimSpace(value)
}

func eraseLastOccurrence(s, substr string) string {
	idx := strings.LastIndex(s, substr)
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(substr):]
}
