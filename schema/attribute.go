package schema

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	datetime "github.com/di-wu/xsd-datetime"
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/scimerr"
)

// Validator is a caller-supplied extra check run after the built-in
// type/encoding validation succeeds. It reports additional issues at loc.
type Validator func(value interface{}, loc issues.Location, out *issues.Issues)

// Codec converts a value to and from its wire representation on
// serialize/deserialize. The zero Codec is the type's built-in behavior.
type Codec struct {
	Serialize   func(value interface{}) interface{}
	Deserialize func(value interface{}) interface{}
}

// defaultCodecs holds the process-wide, type-keyed default (de)serializer
// registry (spec §9 Design Notes: "class-level default (de)serializers").
// It is written only during library initialization (RegisterDefaultCodec)
// and read concurrently thereafter; callers must finish registering
// before starting concurrent validation.
var (
	defaultCodecsMu sync.RWMutex
	defaultCodecs   = map[AttributeType]Codec{}
)

// RegisterDefaultCodec installs the process-wide default Codec for t.
// Must be called during program initialization, before any concurrent
// validate/serialize/deserialize call begins; see spec §5.
func RegisterDefaultCodec(t AttributeType, codec Codec) {
	defaultCodecsMu.Lock()
	defer defaultCodecsMu.Unlock()
	defaultCodecs[t] = codec
}

func defaultCodecFor(t AttributeType) Codec {
	defaultCodecsMu.RLock()
	defer defaultCodecsMu.RUnlock()
	return defaultCodecs[t]
}

// Attribute is the immutable description of a single SCIM attribute or
// sub-attribute (spec §3). The teacher's Attribute -> AttributeWithCaseExact
// -> AttributeWithUniqueness hierarchy is flattened here into one struct
// with optional case-exactness/uniqueness fields, per spec §9.
type Attribute struct {
	name            AttrName
	typ             AttributeType
	description     string
	multiValued     bool
	required        bool
	mutability      Mutability
	returned        Returned
	uniqueness      Uniqueness
	caseExact       bool
	canonicalValues []string
	referenceTypes  []ReferenceType
	subAttributes   Attrs
	exclusiveWith   []AttrName

	validators []Validator
	codec      Codec
}

// Params configures an Attribute at construction time via NewAttribute.
type Params struct {
	Name            string
	Type            AttributeType
	Description     string
	MultiValued     bool
	Required        bool
	Mutability      Mutability
	Returned        Returned
	Uniqueness      Uniqueness
	CaseExact       bool
	CanonicalValues []string
	ReferenceTypes  []ReferenceType
	SubAttributes   []Attribute
	// ExclusiveWith names sibling attributes that must not be present
	// alongside this one (spec §4.E code 11); checked against the same
	// Attrs collection this attribute belongs to.
	ExclusiveWith []string
	Validators    []Validator
	Codec         Codec
}

// NewAttribute builds an Attribute from Params. Panics (a usage error,
// per spec §7) if Params.Name fails the attribute-name grammar or two
// sub-attributes collide case-insensitively.
func NewAttribute(p Params) Attribute {
	name := MustName(p.Name)

	var subAttrs Attrs
	if len(p.SubAttributes) > 0 {
		subAttrs = NewAttrs(p.SubAttributes...)
	}

	var exclusiveWith []AttrName
	for _, n := range p.ExclusiveWith {
		exclusiveWith = append(exclusiveWith, MustName(n))
	}

	return Attribute{
		name:            name,
		typ:             p.Type,
		description:     p.Description,
		multiValued:     p.MultiValued,
		required:        p.Required,
		mutability:      p.Mutability,
		returned:        p.Returned,
		uniqueness:      p.Uniqueness,
		caseExact:       p.CaseExact,
		canonicalValues: p.CanonicalValues,
		referenceTypes:  p.ReferenceTypes,
		subAttributes:   subAttrs,
		exclusiveWith:   exclusiveWith,
		validators:      p.Validators,
		codec:           p.Codec,
	}
}

// Accessors mirror the teacher's CoreAttribute getters.

func (a Attribute) Name() AttrName                    { return a.name }
func (a Attribute) Type() AttributeType                { return a.typ }
func (a Attribute) Description() string                { return a.description }
func (a Attribute) MultiValued() bool                   { return a.multiValued }
func (a Attribute) Required() bool                      { return a.required }
func (a Attribute) Mutability() Mutability              { return a.mutability }
func (a Attribute) Returned() Returned                  { return a.returned }
func (a Attribute) Uniqueness() Uniqueness              { return a.uniqueness }
func (a Attribute) CaseExact() bool                     { return a.caseExact }
func (a Attribute) CanonicalValues() []string           { return a.canonicalValues }
func (a Attribute) ReferenceTypes() []ReferenceType     { return a.referenceTypes }
func (a Attribute) SubAttributes() Attrs                { return a.subAttributes }
func (a Attribute) HasSubAttributes() bool              { return a.typ == TypeComplex && len(a.subAttributes) > 0 }
func (a Attribute) ExclusiveWith() []AttrName           { return append([]AttrName(nil), a.exclusiveWith...) }

// Validate checks value against a's type, requirement, canonical values,
// and custom validators, recursing into complex/multi-valued structure.
// It never short-circuits: every independent problem at and below loc is
// reported (spec §4.E, §8).
func (a Attribute) Validate(value interface{}, loc issues.Location, out *issues.Issues) {
	if value == nil {
		if a.required {
			out.AddError(issues.Missing, loc)
		}
		return
	}

	if a.multiValued {
		arr, ok := value.([]interface{})
		if !ok {
			out.AddErrorf(issues.BadType, loc, "array")
			return
		}
		if a.required && len(arr) == 0 {
			out.AddError(issues.Missing, loc)
		}
		primaryCount := 0
		seen := make([]interface{}, 0, len(arr))
		for i, elem := range arr {
			elemLoc := loc.Child(i)
			a.validateSingular(elem, elemLoc, out)
			if a.typ == TypeComplex {
				if m, ok := elem.(map[string]interface{}); ok {
					if p, ok := m["primary"].(bool); ok && p {
						primaryCount++
					}
				}
			}
			if isDuplicate(seen, elem) {
				out.AddError(issues.DuplicateValue, elemLoc)
			}
			seen = append(seen, elem)
		}
		if primaryCount > 1 {
			for extra := 1; extra < primaryCount; extra++ {
				out.AddError(issues.MultiplePrimary, loc)
			}
		}
		return
	}

	a.validateSingular(value, loc, out)
}

func isDuplicate(seen []interface{}, value interface{}) bool {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false
	}
	for _, s := range seen {
		se, err := json.Marshal(s)
		if err == nil && string(se) == string(encoded) {
			return true
		}
	}
	return false
}

func (a Attribute) validateSingular(value interface{}, loc issues.Location, out *issues.Issues) {
	switch a.typ {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			out.AddErrorf(issues.BadType, loc, "string")
			return
		}
		a.validateCanonical(s, loc, out)
	case TypeReference:
		s, ok := value.(string)
		if !ok {
			out.AddErrorf(issues.BadType, loc, "string")
			return
		}
		a.validateReference(s, loc, out)
		a.validateCanonical(s, loc, out)
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			out.AddErrorf(issues.BadType, loc, "boolean")
			return
		}
	case TypeInteger:
		if !isIntegerValue(value) {
			out.AddErrorf(issues.BadType, loc, "integer")
			return
		}
	case TypeDecimal:
		if !isNumericValue(value) {
			out.AddErrorf(issues.BadType, loc, "decimal")
			return
		}
	case TypeDateTime:
		s, ok := value.(string)
		if !ok {
			out.AddErrorf(issues.BadType, loc, "dateTime")
			return
		}
		if _, err := datetime.Parse(s); err != nil {
			out.AddError(issues.BadValueSyntax, loc)
			return
		}
	case TypeBinary:
		s, ok := value.(string)
		if !ok {
			out.AddErrorf(issues.BadType, loc, "binary")
			return
		}
		if _, err := base64.StdEncoding.DecodeString(s); err != nil {
			out.AddError(issues.BadEncoding, loc)
			return
		}
	case TypeComplex:
		m, ok := value.(map[string]interface{})
		if !ok {
			out.AddErrorf(issues.BadType, loc, "complex")
			return
		}
		a.subAttributes.Each(func(sub Attribute) {
			hit, found := lookupFold(m, sub.name)
			subLoc := loc.Child(sub.name.String())
			if !found {
				sub.Validate(nil, subLoc, out)
				return
			}
			sub.Validate(hit, subLoc, out)
		})
		checkMutualExclusion(a.subAttributes, m, loc, out)
	default:
		scimerr.Invariant("attribute "+a.name.String(), fmt.Errorf("unknown attribute type %d", int(a.typ)))
	}

	for _, v := range a.validators {
		v(value, loc, out)
	}
}

// validateReference checks well-formedness of a Reference value's
// URI shape (spec §4.E code 16). It never attempts to resolve the
// target — that is stateful and out of scope (spec §1 Non-goals).
// When every one of the attribute's reference types is "external" or
// "uri", the value must be an absolute URI (scheme present); otherwise
// the value just needs to parse as a URI reference at all.
func (a Attribute) validateReference(s string, loc issues.Location, out *issues.Issues) {
	u, err := url.Parse(s)
	if err != nil {
		out.AddError(issues.UnknownReferenceTarget, loc)
		return
	}
	if a.isExternalOnly() && u.Scheme == "" {
		out.AddError(issues.UnknownReferenceTarget, loc)
	}
}

func (a Attribute) isExternalOnly() bool {
	if len(a.referenceTypes) == 0 {
		return false
	}
	for _, rt := range a.referenceTypes {
		if !strings.EqualFold(string(rt), "external") && !strings.EqualFold(string(rt), "uri") {
			return false
		}
	}
	return true
}

// checkMutualExclusion reports code 11 for every attribute in attrs that
// declares ExclusiveWith and is present in data alongside one of the
// attributes it names (spec §4.E).
func checkMutualExclusion(attrs Attrs, data map[string]interface{}, base issues.Location, out *issues.Issues) {
	attrs.Each(func(a Attribute) {
		if len(a.exclusiveWith) == 0 {
			return
		}
		if _, found := lookupFold(data, a.name); !found {
			return
		}
		for _, other := range a.exclusiveWith {
			if _, found := lookupFold(data, other); found {
				out.AddErrorf(issues.MutuallyExclusive, base.Child(a.name.String()), other.String())
			}
		}
	})
}

func (a Attribute) validateCanonical(s string, loc issues.Location, out *issues.Issues) {
	if len(a.canonicalValues) == 0 {
		return
	}
	for _, cv := range a.canonicalValues {
		if a.caseExact {
			if cv == s {
				return
			}
		} else if strings.EqualFold(cv, s) {
			return
		}
	}
	out.Add(issues.MustBeOneOf, loc, issues.SeverityWarning,
		fmt.Sprintf(issues.MustBeOneOf.Template(), strings.Join(a.canonicalValues, ", ")))
}

func isIntegerValue(value interface{}) bool {
	switch n := value.(type) {
	case json.Number:
		_, err := n.Int64()
		return err == nil
	case int, int8, int16, int32, int64:
		return true
	case float64:
		return n == float64(int64(n))
	default:
		return false
	}
}

func isNumericValue(value interface{}) bool {
	switch value.(type) {
	case json.Number, int, int8, int16, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

func lookupFold(m map[string]interface{}, name AttrName) (interface{}, bool) {
	for k, v := range m {
		if name.EqualFoldString(k) {
			return v, true
		}
	}
	return nil, false
}

// Deserialize applies a's codec (custom, else process-wide default for
// a.typ, else identity) to value, recursing into complex/multi-valued
// structure. Assumes value already passed Validate.
func (a Attribute) Deserialize(value interface{}) interface{} {
	return a.transform(value, func(at Attribute) func(interface{}) interface{} {
		if at.codec.Deserialize != nil {
			return at.codec.Deserialize
		}
		if c := defaultCodecFor(at.typ); c.Deserialize != nil {
			return c.Deserialize
		}
		return identity
	})
}

// Serialize is the inverse of Deserialize.
func (a Attribute) Serialize(value interface{}) interface{} {
	return a.transform(value, func(at Attribute) func(interface{}) interface{} {
		if at.codec.Serialize != nil {
			return at.codec.Serialize
		}
		if c := defaultCodecFor(at.typ); c.Serialize != nil {
			return c.Serialize
		}
		return identity
	})
}

func identity(v interface{}) interface{} { return v }

func (a Attribute) transform(value interface{}, pick func(Attribute) func(interface{}) interface{}) interface{} {
	if value == nil {
		return nil
	}
	if a.multiValued {
		arr, ok := value.([]interface{})
		if !ok {
			return value
		}
		out := make([]interface{}, len(arr))
		for i, elem := range arr {
			out[i] = a.transformSingular(elem, pick)
		}
		return out
	}
	return a.transformSingular(value, pick)
}

func (a Attribute) transformSingular(value interface{}, pick func(Attribute) func(interface{}) interface{}) interface{} {
	if a.typ == TypeComplex {
		m, ok := value.(map[string]interface{})
		if !ok {
			return value
		}
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = v
		}
		a.subAttributes.Each(func(sub Attribute) {
			hit, found := lookupFold(m, sub.name)
			if !found {
				return
			}
			out[sub.name.String()] = sub.transform(hit, pick)
		})
		return out
	}
	return pick(a)(value)
}
