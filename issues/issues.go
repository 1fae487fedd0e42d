// Package issues implements the ValidationIssues tree (spec §4.K): a
// location-tagged collection of coded errors and warnings that validation
// accumulates instead of short-circuiting on the first problem.
package issues

import (
	"fmt"
	"sort"
)

// Severity distinguishes a hard validation error from an informational
// warning (e.g. a canonical-values mismatch outside a "must be one of"
// context). Only errors gate HasErrors.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Issue is a single coded problem found at a Location.
type Issue struct {
	Code     Code
	Severity Severity
	Message  string
	Location Location
}

// Location is an ordered path of keys into the validated document. Each
// segment is either a string (attribute name) or a non-negative int
// (array index), matching spec §3's ValidationIssues location model.
type Location []interface{}

// Child returns a new Location with seg appended.
func (l Location) Child(seg interface{}) Location {
	next := make(Location, len(l)+1)
	copy(next, l)
	next[len(l)] = seg
	return next
}

func (l Location) String() string {
	s := ""
	for i, seg := range l {
		switch v := seg.(type) {
		case int:
			s += fmt.Sprintf("[%d]", v)
		default:
			if i > 0 {
				s += "."
			}
			s += fmt.Sprintf("%v", v)
		}
	}
	return s
}

// node is one location's worth of accumulated issues plus its children,
// keyed the same way Location segments are.
type node struct {
	errors   []Issue
	warnings []Issue
	children map[interface{}]*node
}

func newNode() *node {
	return &node{children: map[interface{}]*node{}}
}

func (n *node) childAt(seg interface{}) *node {
	c, ok := n.children[seg]
	if !ok {
		c = newNode()
		n.children[seg] = c
	}
	return c
}

func (n *node) resolve(loc Location) *node {
	cur := n
	for _, seg := range loc {
		cur = cur.childAt(seg)
	}
	return cur
}

func (n *node) hasErrors() bool {
	if len(n.errors) > 0 {
		return true
	}
	for _, c := range n.children {
		if c.hasErrors() {
			return true
		}
	}
	return false
}

// Issues is the root of a ValidationIssues tree. The zero value is ready
// to use.
type Issues struct {
	root *node
}

// New returns an empty Issues tree.
func New() *Issues {
	return &Issues{root: newNode()}
}

func (is *Issues) ensure() *node {
	if is.root == nil {
		is.root = newNode()
	}
	return is.root
}

// Add records an issue at loc. message overrides the code's template when
// non-empty.
func (is *Issues) Add(code Code, loc Location, severity Severity, message string) {
	n := is.ensure().resolve(loc)
	issue := Issue{Code: code, Severity: severity, Message: message, Location: loc}
	if severity == SeverityWarning {
		n.warnings = append(n.warnings, issue)
	} else {
		n.errors = append(n.errors, issue)
	}
}

// AddError is shorthand for Add(code, loc, SeverityError, "").
func (is *Issues) AddError(code Code, loc Location) {
	is.Add(code, loc, SeverityError, "")
}

// AddErrorf records an error whose message is formatted against code's
// template.
func (is *Issues) AddErrorf(code Code, loc Location, args ...interface{}) {
	is.Add(code, loc, SeverityError, fmt.Sprintf(code.Template(), args...))
}

// AddWarning is shorthand for Add(code, loc, SeverityWarning, "").
func (is *Issues) AddWarning(code Code, loc Location) {
	is.Add(code, loc, SeverityWarning, "")
}

// Merge absorbs other's issues into is, prefixing every location with
// prefix.
func (is *Issues) Merge(other *Issues, prefix Location) {
	if other == nil || other.root == nil {
		return
	}
	is.mergeNode(other.root, prefix)
}

func (is *Issues) mergeNode(n *node, loc Location) {
	target := is.ensure().resolve(loc)
	target.errors = append(target.errors, n.errors...)
	target.warnings = append(target.warnings, n.warnings...)
	for seg, child := range n.children {
		is.mergeNode(child, loc.Child(seg))
	}
}

// HasErrors reports whether any error (not warning) was recorded anywhere
// in the tree.
func (is *Issues) HasErrors() bool {
	if is == nil || is.root == nil {
		return false
	}
	return is.root.hasErrors()
}

// Each calls fn for every issue in the tree, errors and warnings alike, in
// a deterministic order: within each location errors come before
// warnings, each in registration order, and child locations are visited
// in order of their keys' string form.
func (is *Issues) Each(fn func(Issue)) {
	if is == nil || is.root == nil {
		return
	}
	is.root.each(fn)
}

func (n *node) each(fn func(Issue)) {
	for _, i := range n.errors {
		fn(i)
	}
	for _, i := range n.warnings {
		fn(i)
	}
	keys := make([]interface{}, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i]) < fmt.Sprintf("%v", keys[j])
	})
	for _, k := range keys {
		n.children[k].each(fn)
	}
}

// ToDict renders the tree as a nested map, leaves carrying an "_errors"
// (and, when present, "_warnings") array per spec §9 Open Question 2
// (canonicalized on "_errors", not "errors"). includeMessage controls
// whether the Message field is rendered alongside the code.
func (is *Issues) ToDict(includeMessage bool) map[string]interface{} {
	if is == nil || is.root == nil {
		return map[string]interface{}{}
	}
	return nodeToDict(is.root, includeMessage)
}

func nodeToDict(n *node, includeMessage bool) map[string]interface{} {
	out := map[string]interface{}{}
	if len(n.errors) > 0 {
		out["_errors"] = issuesToDicts(n.errors, includeMessage)
	}
	if len(n.warnings) > 0 {
		out["_warnings"] = issuesToDicts(n.warnings, includeMessage)
	}
	for seg, child := range n.children {
		key := fmt.Sprintf("%v", seg)
		out[key] = nodeToDict(child, includeMessage)
	}
	return out
}

func issuesToDicts(list []Issue, includeMessage bool) []map[string]interface{} {
	out := make([]map[string]interface{}, len(list))
	for i, issue := range list {
		d := map[string]interface{}{"code": int(issue.Code)}
		if includeMessage {
			msg := issue.Message
			if msg == "" {
				msg = issue.Code.Template()
			}
			d["message"] = msg
		}
		out[i] = d
	}
	return out
}
