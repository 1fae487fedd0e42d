package schema

import (
	"regexp"
	"strings"

	"github.com/scimcore/scim/scimerr"
)

// attrNamePattern is the SCIM attribute name grammar: ALPHA (ALPHA|DIGIT|-|_)*.
var attrNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// AttrName is a validated SCIM attribute or sub-attribute token. Two
// AttrNames compare equal case-insensitively; String preserves the
// original display casing.
type AttrName struct {
	display string
}

// NewAttrName validates name against the SCIM attribute-name grammar and
// returns an AttrName, or scimerr.ErrInvalidAttrName if it does not match.
func NewAttrName(name string) (AttrName, error) {
	if !attrNamePattern.MatchString(name) {
		return AttrName{}, scimerr.Wrap(scimerr.ErrInvalidAttrName, "%q", name)
	}
	return AttrName{display: name}, nil
}

// MustName is NewAttrName, panicking on error. Intended for package-level
// schema construction where the name is a compile-time literal.
func MustName(name string) AttrName {
	n, err := NewAttrName(name)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the name in its original display casing.
func (n AttrName) String() string {
	return n.display
}

// EqualFold reports whether n and other name the same attribute,
// case-insensitively.
func (n AttrName) EqualFold(other AttrName) bool {
	return strings.EqualFold(n.display, other.display)
}

// EqualFoldString reports whether n names the same attribute as the raw
// string s, case-insensitively.
func (n AttrName) EqualFoldString(s string) bool {
	return strings.EqualFold(n.display, s)
}

// lower returns the name in its canonical lower-case form, used as a map
// key for case-insensitive lookups.
func (n AttrName) lower() string {
	return strings.ToLower(n.display)
}
