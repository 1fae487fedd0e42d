// Package presence implements the request/response attribute presence
// rules (spec §4.I): which attributes a caller may provide on a request
// and which a server may emit in a response, layered on top of each
// attribute's own Returned tag.
package presence

import (
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/schema"
)

// Direction distinguishes an inbound request body from an outbound
// response body; the truth table in spec §4.I differs between them.
type Direction int

const (
	Request Direction = iota
	Response
)

// Config is an attributes/excludedAttributes-style presence override:
// a caller-supplied allow- or deny-list of BoundedAttrReps layered on
// top of each attribute's Returned tag.
type Config struct {
	Direction Direction
	AttrReps  []schema.BoundedAttrRep
	Include   bool // true: AttrReps is an allow-list; false: a deny-list
}

func (c Config) requested(rep schema.BoundedAttrRep) bool {
	for _, r := range c.AttrReps {
		if r.Equals(rep) {
			return true
		}
	}
	return false
}

// explicitlyIncluded reports whether rep is named by an allow-list. A
// deny-list, or a Config with no AttrReps at all, explicitly includes
// nothing.
func (c Config) explicitlyIncluded(rep schema.BoundedAttrRep) bool {
	return c.Include && c.requested(rep)
}

func (c Config) explicitlyExcluded(rep schema.BoundedAttrRep) bool {
	if len(c.AttrReps) == 0 {
		return false
	}
	if c.Include {
		return !c.requested(rep)
	}
	return c.requested(rep)
}

// Hook returns a schema.PresenceHook bound to cfg, wired into
// ResourceSchema.Validate via schema.ResourceSchema.WithPresence (spec
// §4.E/§4.I). For Response direction it enforces that returned=never
// attributes are never emitted (code 7) and that returned=request
// attributes are only emitted when explicitly requested.
func (cfg Config) Hook() schema.PresenceHook {
	return func(rep schema.BoundedAttrRep, attr schema.Attribute, present bool, loc issues.Location, out *issues.Issues) {
		switch cfg.Direction {
		case Response:
			checkResponse(cfg, rep, attr, present, loc, out)
		case Request:
			checkRequest(cfg, rep, attr, present, loc, out)
		}
	}
}

func checkResponse(cfg Config, rep schema.BoundedAttrRep, attr schema.Attribute, present bool, loc issues.Location, out *issues.Issues) {
	if !present {
		return
	}
	switch attr.Returned() {
	case schema.ReturnedNever:
		out.AddError(issues.MustNotBeReturned, loc)
	case schema.ReturnedRequest:
		if !cfg.explicitlyIncluded(rep) {
			out.AddError(issues.MustNotBeReturned, loc)
		}
	case schema.ReturnedDefault:
		// Required attributes stay regardless of exclusion (spec
		// §4.I); only non-required default-returned attributes can be
		// excluded by a RESPONSE include- or deny-list.
		if !attr.Required() && cfg.explicitlyExcluded(rep) {
			out.AddError(issues.MustNotBeReturned, loc)
		}
	}
}

func checkRequest(cfg Config, rep schema.BoundedAttrRep, attr schema.Attribute, present bool, loc issues.Location, out *issues.Issues) {
	if !present {
		return
	}
	if attr.Mutability() == schema.MutabilityReadOnly {
		out.AddError(issues.MustNotBeProvided, loc)
	}
}
