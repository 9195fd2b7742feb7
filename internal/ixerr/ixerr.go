// Package ixerr defines the error-kind taxonomy shared across the indexer
// core. Kinds are sentinel values, not types: callers compare with
// errors.Is, and every returned error still wraps the underlying cause with
// fmt.Errorf("%w").
package ixerr

import "errors"

// Kind identifies which bucket of the error taxonomy an error belongs to.
type Kind error

var (
	// InputError covers a bad path, an unreadable file, or non-UTF-8
	// content. Recorded against the file; the run continues.
	InputError Kind = errors.New("input_error")

	// ParseError covers a language parser failure or per-file timeout.
	// The affected construct (or file) is skipped; the run continues.
	ParseError Kind = errors.New("parse_error")

	// ResolutionAmbiguity marks a referenced name with multiple candidates.
	// Not surfaced as an error to callers — stored in the unresolved bucket.
	ResolutionAmbiguity Kind = errors.New("resolution_ambiguity")

	// IOError covers disk-full or permission-denied conditions against the
	// index directory. Fails the whole run; no temp file is renamed onto
	// its target.
	IOError Kind = errors.New("io_error")

	// LockContention means another writer already holds the index
	// directory's pid-file lock.
	LockContention Kind = errors.New("lock_contention")

	// InvariantViolation means the reverse index disagrees with the
	// forward edges. The run aborts; a query never attempts a silent
	// repair.
	InvariantViolation Kind = errors.New("invariant_violation")
)

// Is reports whether err was ultimately caused by kind.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}

// ExitCode maps a Kind to the indexer driver's documented exit code. A nil
// error maps to 0; an error of any other kind (InputError included) maps
// to 4. Code 1 (usage error) has no corresponding Kind and is left to the
// caller.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case Is(err, LockContention):
		return 2
	case Is(err, ParseError):
		return 3
	case Is(err, IOError):
		return 4
	case Is(err, InvariantViolation):
		return 5
	default:
		return 4
	}
}
