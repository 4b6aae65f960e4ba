// Package grerr collects grammar2code's fatal-condition taxonomy: one Kind
// per distinct failure, so callers can test the specific condition with
// the Kind's Is method instead of matching against string messages.
package grerr

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrParse is raised when an included grammar file cannot be opened.
	// A document that fails to parse is reported as *document.ParseError.
	ErrParse = errors.NewKind("failed to parse grammar document: %s")

	// ErrMissingDerivation is raised when a call references a rule that
	// has no derivation.
	ErrMissingDerivation = errors.NewKind("no derivation named %q")

	// ErrAppendTarget is raised when an append=\"disjunction\" rule has
	// no same-named sibling to extend.
	ErrAppendTarget = errors.NewKind("append target %q not found")

	// ErrOverwriteTarget is raised when an overwrite grammar names a
	// derivation absent from the main grammar.
	ErrOverwriteTarget = errors.NewKind("overwrite target %q not found")

	// ErrBadParameterToken is raised when a --name=value argument
	// cannot be parsed.
	ErrBadParameterToken = errors.NewKind("malformed parameter token %q")

	// ErrNoParameterForPath is raised in code mode when the walker
	// reaches a choice point with no corresponding assignment entry.
	ErrNoParameterForPath = errors.NewKind("no parameter assigned for %q")

	// ErrDuplicateParameter is raised when two distinct walker paths
	// produce the same canonical parameter name.
	ErrDuplicateParameter = errors.NewKind("duplicate parameter name %q")

	// ErrOutputFile is raised when an output file cannot be created or
	// written.
	ErrOutputFile = errors.NewKind("cannot open output file %q: %s")

	// ErrUnknownDialect is raised when -f/--format names a dialect the
	// emitter does not implement.
	ErrUnknownDialect = errors.NewKind("unrecognized dialect %q")

	// ErrCopySource is raised when a copy directive's source cannot be
	// read.
	ErrCopySource = errors.NewKind("cannot copy %q: %s")
)
