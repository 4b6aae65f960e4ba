// Package param drives the generic parameter-enumeration half of a walk,
// generalized over a Dialect: the walker callbacks (categorical/recursive
// bookkeeping, duplicate detection) are shared across every configurator
// target; only name/condition/parameter-line rendering is dialect-specific.
package param

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/fpagnozzi/grammar2code/document"
	"github.com/fpagnozzi/grammar2code/grerr"
	"github.com/fpagnozzi/grammar2code/walk"
)

// Dialect is the capability set a configurator-specific backend
// implements; param.Emitter is generic over it.
type Dialect interface {
	FormatRuleName(path string) string
	FormatRuleCond(path, nodeName string, recIndex int) string
	FormatParameter(rule, kind string, values []string, defaultValue string, logScale bool, cond string) string

	// EnumerateRanges reports whether a type=int/real range carrying
	// stepIfEnumerated should render as an explicit discrete domain
	// instead of [min, max]. Only ParamILS wants this.
	EnumerateRanges() bool

	// TrailingBlock renders accumulated conditionals as a trailing
	// section ("Conditionals:"), or returns "" for dialects (crace,
	// irace, emili) that inline the condition on each parameter line.
	TrailingBlock(conditionals []string) string
}

// Emitter implements walk.Visitor, accumulating one rendered line per
// parameter plus, for dialects with a trailing block, one conditional
// entry per conditioned parameter.
type Emitter struct {
	Dialect  Dialect
	MaxDepth int
	Log      *logrus.Logger

	lines        []string
	conditionals []string
	seen         map[string]bool
}

// NewEmitter returns an Emitter ready to drive a walk.Walker.
func NewEmitter(d Dialect, maxDepth int, log *logrus.Logger) *Emitter {
	if log == nil {
		log = logrus.New()
	}
	return &Emitter{Dialect: d, MaxDepth: maxDepth, Log: log, seen: map[string]bool{}}
}

// Lines returns the accumulated parameter lines, in emission order.
func (e *Emitter) Lines() []string { return e.lines }

// checkDuplicate is the fatal duplicate-parameter guard: the pack's
// identifier collision cases (e.g. A221 colliding between a depth-2
// recursion of A2 and choice 1 of A22) cannot be resolved by the
// normalizer's rename-calls pass, so they abort with the list emitted so
// far dumped to the diagnostic stream.
func (e *Emitter) checkDuplicate(rule string) error {
	if e.seen[rule] {
		for _, l := range e.lines {
			e.Log.Error(l)
		}
		return grerr.ErrDuplicateParameter.New(rule)
	}
	e.seen[rule] = true
	return nil
}

func (e *Emitter) Call(doc *document.Document, node int, path string, depth int) error {
	return nil
}

func (e *Emitter) Categorical(doc *document.Document, node int, path string, depth int) (int, error) {
	rule := e.Dialect.FormatRuleName(path)
	if err := e.checkDuplicate(rule); err != nil {
		return 0, err
	}
	cond := e.Dialect.FormatRuleCond(path, doc.Node(node).Name, -1)

	count := 0
	for _, c := range doc.Children(node) {
		if doc.Node(c).Name == "or" {
			count++
		}
	}
	values := make([]string, count+1)
	for i := range values {
		values[i] = strconv.Itoa(i)
	}

	e.emit(rule, "categorical", values, "", false, cond)
	return -1, nil
}

func (e *Emitter) Recursive(doc *document.Document, node int, path string, depth int) (int, error) {
	rule := e.Dialect.FormatRuleName(path)
	if err := e.checkDuplicate(rule); err != nil {
		return 0, err
	}

	name := doc.Node(node).Name
	var values []string
	recValue := -1
	count := 0
	for _, group := range choiceGroups(doc, node) {
		recursive := false
		for _, c := range group {
			if doc.Node(c).Name == name {
				recursive = true
			}
		}
		if recursive {
			if depth+1 < e.MaxDepth {
				values = append(values, strconv.Itoa(count))
			}
			recValue = count
		} else {
			values = append(values, strconv.Itoa(count))
		}
		count++
	}

	cond := e.Dialect.FormatRuleCond(path, name, recValue)
	e.emit(rule, "categorical", values, "", false, cond)
	return -1, nil
}

func (e *Emitter) Range(doc *document.Document, node int, path string, depth int) error {
	n := doc.Node(node)
	rule := e.Dialect.FormatRuleName(path)
	if err := e.checkDuplicate(rule); err != nil {
		return err
	}
	cond := e.Dialect.FormatRuleCond(path, n.Name, -1)

	typ := n.AttrOr("type", "")
	if typ != "int" && typ != "real" {
		return nil
	}

	min := n.AttrOr("min", "")
	max := n.AttrOr("max", "")
	defaultValue := n.AttrOr("default", min)
	logScale := isTruthy(n.AttrOr("log-scale", ""))

	values := []string{min, max}
	if e.Dialect.EnumerateRanges() {
		if step, ok := n.Attr("stepIfEnumerated"); ok && step != "" {
			enumerated, err := enumerate(typ, min, max, step)
			if err != nil {
				return err
			}
			values = enumerated
		}
	}

	e.emit(rule, typ, values, defaultValue, logScale, cond)
	return nil
}

func (e *Emitter) Copy(doc *document.Document, node int, path string, depth int) error  { return nil }
func (e *Emitter) CData(doc *document.Document, node int, path string, depth int) error  { return nil }
func (e *Emitter) Plain(doc *document.Document, node int, path string, depth int) error  { return nil }

func (e *Emitter) emit(rule, kind string, values []string, defaultValue string, logScale bool, cond string) {
	line := e.Dialect.FormatParameter(rule, kind, values, defaultValue, logScale, cond)
	e.lines = append(e.lines, line)
	if cond != "" {
		e.conditionals = append(e.conditionals, cond)
	}
}

// Print walks doc with a fresh Emitter for dialect d and returns the
// rendered parameter file content, dialect lines plus any trailing block.
func Print(doc *document.Document, d Dialect, maxDepth int, log *logrus.Logger) (string, error) {
	e := NewEmitter(d, maxDepth, log)
	w := &walk.Walker{Doc: doc, MaxDepth: maxDepth, Visitor: e}
	if err := w.Walk(); err != nil {
		return "", err
	}
	out := ""
	for _, l := range e.lines {
		out += l + "\n"
	}
	if block := d.TrailingBlock(e.conditionals); block != "" {
		out += block
	}
	return out, nil
}

func choiceGroups(doc *document.Document, node int) [][]int {
	groups := [][]int{{}}
	for _, c := range doc.Children(node) {
		if doc.Node(c).Name == "or" {
			groups = append(groups, []int{})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], c)
	}
	return groups
}

func isTruthy(s string) bool {
	switch s {
	case "true", "True", "TRUE", "yes", "Yes", "YES":
		return true
	}
	return false
}

func enumerate(typ, min, max, step string) ([]string, error) {
	if typ == "int" {
		lo, err := cast.ToIntE(min)
		if err != nil {
			return nil, grerr.ErrBadParameterToken.New(fmt.Sprintf("min=%s", min))
		}
		hi, err := cast.ToIntE(max)
		if err != nil {
			return nil, grerr.ErrBadParameterToken.New(fmt.Sprintf("max=%s", max))
		}
		st, err := cast.ToIntE(step)
		if err != nil || st == 0 {
			return nil, grerr.ErrBadParameterToken.New(fmt.Sprintf("stepIfEnumerated=%s", step))
		}
		var values []string
		for i := lo; i <= hi; i += st {
			values = append(values, strconv.Itoa(i))
		}
		return values, nil
	}
	lo, err := cast.ToFloat64E(min)
	if err != nil {
		return nil, grerr.ErrBadParameterToken.New(fmt.Sprintf("min=%s", min))
	}
	hi, err := cast.ToFloat64E(max)
	if err != nil {
		return nil, grerr.ErrBadParameterToken.New(fmt.Sprintf("max=%s", max))
	}
	st, err := cast.ToFloat64E(step)
	if err != nil || st == 0 {
		return nil, grerr.ErrBadParameterToken.New(fmt.Sprintf("stepIfEnumerated=%s", step))
	}
	var values []string
	for i := lo; i <= hi; i += st {
		values = append(values, strconv.FormatFloat(i, 'f', -1, 64))
	}
	return values, nil
}
