package rules

import "fmt"

// UnknownRegionError reports a region outside the set a call accepts.
// Hitting it is a programming error in the caller, not user input.
type UnknownRegionError struct {
	Region Region
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("region %q carries no colour rules", e.Region)
}

// RegexCompileError reports a malformed plain pattern. It wraps the
// regexp engine's diagnostic.
type RegexCompileError struct {
	Pattern string
	Err     error
}

func (e *RegexCompileError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *RegexCompileError) Unwrap() error {
	return e.Err
}

// PatternCompileError reports a malformed search expression. It wraps
// the expression compiler's diagnostic.
type PatternCompileError struct {
	Pattern string
	Err     error
}

func (e *PatternCompileError) Error() string {
	return fmt.Sprintf("invalid search expression %q: %v", e.Pattern, e.Err)
}

func (e *PatternCompileError) Unwrap() error {
	return e.Err
}
