// Package scimerr holds the library's two non-data error taxonomies (spec
// §7): usage errors, for API misuse by the caller, and internal errors,
// for invariant violations that must never occur. Data issues never
// surface here — see package issues.
package scimerr

import (
	"errors"
	"fmt"
)

// Usage error sentinels. Wrap these with fmt.Errorf("%w: detail", Err...)
// the way imulab/go-scim's patch.go wraps ErrInvalidSyntax, and test for
// them with errors.Is.
var (
	// ErrDuplicateAttribute is returned when a schema or complex attribute
	// is constructed with two sub-attributes (or attributes) whose names
	// compare case-insensitively equal.
	ErrDuplicateAttribute = errors.New("duplicate attribute name")
	// ErrUnknownExtension names a reference to a schema extension URI the
	// resource schema never registered. No function in this module
	// returns it.
	ErrUnknownExtension = errors.New("unknown schema extension")
	// ErrAttributeNotFound names an attribute absent from every
	// registered schema. No function in this module returns it; the
	// sorter and the filter evaluator treat such an attribute as absent.
	ErrAttributeNotFound = errors.New("attribute not found in schema")
	// ErrIncompatibleExtension is returned by ResourceSchema.Extend when
	// the extension's schema URI is already registered.
	ErrIncompatibleExtension = errors.New("incompatible schema extension")
	// ErrInvalidAttrName is returned by AttrName construction when the
	// name fails the ALPHA(ALPHA|DIGIT|-|_)* grammar.
	ErrInvalidAttrName = errors.New("invalid attribute name")
)

// Usage wraps a sentinel with call-site detail. Construct with Wrap.
type Usage struct {
	sentinel error
	detail   string
}

func (u *Usage) Error() string {
	if u.detail == "" {
		return u.sentinel.Error()
	}
	return fmt.Sprintf("%s: %s", u.sentinel.Error(), u.detail)
}

// Unwrap allows errors.Is(err, scimerr.ErrDuplicateAttribute) to succeed.
func (u *Usage) Unwrap() error {
	return u.sentinel
}

// Wrap builds a *Usage error from a sentinel and a formatted detail.
func Wrap(sentinel error, format string, args ...interface{}) *Usage {
	return &Usage{sentinel: sentinel, detail: fmt.Sprintf(format, args...)}
}

// Internal signals a violated invariant: a state the library guarantees
// can never arise from valid inputs. Callers should treat its surfacing
// as a library bug report, not a usage mistake.
type Internal struct {
	Context string
	Cause   error
}

func (e *Internal) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scim: internal invariant violated (%s): %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("scim: internal invariant violated: %s", e.Context)
}

func (e *Internal) Unwrap() error {
	return e.Cause
}

// Invariant panics with an *Internal error. Use for branches that must be
// unreachable given the library's own construction invariants (e.g. an
// Attribute with an attributeType tag outside the enum).
func Invariant(context string, cause error) {
	panic(&Internal{Context: context, Cause: cause})
}
