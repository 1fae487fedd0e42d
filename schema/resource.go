package schema

import (
	"strings"

	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/scimdata"
	"github.com/scimcore/scim/scimerr"
)

// Schema is a collection of attribute definitions describing the
// contents of an entire or partial resource (spec §3).
type Schema struct {
	URI         string
	Name        string
	PluralName  string
	Endpoint    string
	Description string
	Attrs       Attrs
}

// SchemaExtension pairs a Schema with whether a resource of the owning
// type must include it (spec §3).
type SchemaExtension struct {
	Schema   Schema
	Required bool
}

// PresenceHook lets a caller (typically the validator package) layer
// direction-aware presence rules (spec §4.I) on top of the structural
// checks ResourceSchema.Validate performs, without schema depending on
// the presence package. present is false when the attribute was entirely
// absent from data.
type PresenceHook func(rep BoundedAttrRep, attr Attribute, present bool, loc issues.Location, out *issues.Issues)

// ResourceSchema composes a base Schema with zero or more registered
// SchemaExtensions into the validated contract for one resource type
// (spec §4.E). Immutable once constructed.
type ResourceSchema struct {
	Schema
	attrs      *BoundedAttrs
	extensions []SchemaExtension
}

// NewResourceSchema builds a ResourceSchema. base.Attrs is the resource's
// own attributes; "schemas", "id", "externalId", and "meta" are added
// automatically and always retained regardless of filter (spec §3/§4.E).
// filter may be nil to keep every attribute of base.
func NewResourceSchema(base Schema, filter *AttrFilter) *ResourceSchema {
	rs := &ResourceSchema{Schema: base}

	all := append(Attrs{}, commonAttrs()...)
	for _, a := range base.Attrs {
		bound := BoundedAttrRep{SchemaURI: base.URI, Attr: a.name}
		if filter != nil && !filter.Allows(bound) && !a.required && a.returned != ReturnedAlways {
			continue
		}
		all = append(all, a)
	}
	rs.Schema.Attrs = NewAttrs(all...)
	rs.attrs = NewBoundedAttrs(base.URI, rs.Schema.Attrs)
	return rs
}

// commonAttrs returns the SCIM-mandated attributes every resource schema
// carries: schemas, id, externalId, meta (grounded on imulab/go-scim's
// CoreSchema and the teacher's schemaWithCommon externalId injection).
func commonAttrs() Attrs {
	return Attrs{
		NewAttribute(Params{
			Name: "schemas", Type: TypeReference, MultiValued: true,
			Required: true, CaseExact: true, Returned: ReturnedAlways,
		}),
		NewAttribute(Params{
			Name: "id", Type: TypeString, CaseExact: true,
			Mutability: MutabilityReadOnly, Returned: ReturnedAlways, Uniqueness: UniquenessGlobal,
		}),
		NewAttribute(Params{
			Name: "externalId", Type: TypeString, CaseExact: true,
		}),
		NewAttribute(Params{
			Name: "meta", Type: TypeComplex, Mutability: MutabilityReadOnly,
			SubAttributes: []Attribute{
				NewAttribute(Params{Name: "resourceType", Type: TypeString, CaseExact: true, Mutability: MutabilityReadOnly}),
				NewAttribute(Params{Name: "created", Type: TypeDateTime, Mutability: MutabilityReadOnly}),
				NewAttribute(Params{Name: "lastModified", Type: TypeDateTime, Mutability: MutabilityReadOnly}),
				NewAttribute(Params{Name: "location", Type: TypeReference, CaseExact: true, Mutability: MutabilityReadOnly}),
				NewAttribute(Params{Name: "version", Type: TypeString, Mutability: MutabilityReadOnly}),
			},
		}),
	}
}

// Extend registers an extension's attributes under its schema URI.
// Returns scimerr.ErrIncompatibleExtension if the URI is already
// registered.
func (rs *ResourceSchema) Extend(ext SchemaExtension) error {
	if !rs.attrs.Extend(ext.Schema.URI, ext.Schema.Attrs) {
		return scimerr.Wrap(scimerr.ErrIncompatibleExtension, "%s", ext.Schema.URI)
	}
	rs.extensions = append(rs.extensions, ext)
	return nil
}

// Extensions returns the registered extensions in registration order.
func (rs *ResourceSchema) Extensions() []SchemaExtension {
	return append([]SchemaExtension(nil), rs.extensions...)
}

// BoundedAttrs returns the bounded attribute set (base + extensions).
func (rs *ResourceSchema) BoundedAttrs() *BoundedAttrs {
	return rs.attrs
}

// Validate walks data against every registered schema (base then
// extensions, in registration order) and returns every issue found: type/
// encoding (1-3), presence (5), canonical/duplicate/primary (9,10,15),
// schemas-array integrity (12-14), attribute-name legality (17) for keys
// that resolve to nothing. It never short-circuits (spec §4.E/§7/§8).
// hook, if non-nil, is invoked once per resolved attribute to layer
// direction-aware presence rules (spec §4.I) on top.
func (rs *ResourceSchema) Validate(data map[string]interface{}, hook PresenceHook) *issues.Issues {
	out := issues.New()

	rs.validateSchemasArray(data, out)

	rs.validateAttrs(rs.Schema.Attrs, rs.Schema.URI, false, data, issues.Location{}, hook, out)

	for _, ext := range rs.extensions {
		extData, _ := data[ext.Schema.URI].(map[string]interface{})
		if extData == nil {
			if ext.Required {
				out.AddError(issues.Missing, issues.Location{ext.Schema.URI})
			}
			continue
		}
		rs.validateAttrs(ext.Schema.Attrs, ext.Schema.URI, true, extData, issues.Location{ext.Schema.URI}, hook, out)
	}

	rs.validateUnknownKeys(data, out)

	return out
}

func (rs *ResourceSchema) validateAttrs(attrs Attrs, uri string, isExt bool, data map[string]interface{}, base issues.Location, hook PresenceHook, out *issues.Issues) {
	attrs.Each(func(a Attribute) {
		hit, found := lookupFold(data, a.name)
		loc := base.Child(a.name.String())
		a.Validate(hit, loc, out)
		if hook != nil {
			rep := BoundedAttrRep{SchemaURI: uri, Attr: a.name, Extension: isExt}
			hook(rep, a, found, loc, out)
		}
	})
	checkMutualExclusion(attrs, data, base, out)
}

// validateUnknownKeys reports code 17 for top-level keys that name no
// known attribute, and code 14 for "urn:" keys that are not a registered
// extension URI. Keys that fail the attribute-name grammar entirely
// (spec §7: data issues are always collected, never raised) also report
// code 17 rather than panicking.
func (rs *ResourceSchema) validateUnknownKeys(data map[string]interface{}, out *issues.Issues) {
	for k := range data {
		if k == "schemas" {
			continue
		}
		if strings.HasPrefix(k, "urn:") {
			if rs.hasExtension(k) {
				continue
			}
			out.AddErrorf(issues.UnknownSchemaURI, issues.Location{k}, k)
			continue
		}
		name, err := NewAttrName(k)
		if err != nil {
			out.AddErrorf(issues.BadAttributeName, issues.Location{k}, k)
			continue
		}
		if _, ok := rs.Schema.Attrs.GetByName(name); ok {
			continue
		}
		out.AddErrorf(issues.BadAttributeName, issues.Location{k}, k)
	}
}

func (rs *ResourceSchema) hasExtension(uri string) bool {
	for _, e := range rs.extensions {
		if strings.EqualFold(e.Schema.URI, uri) {
			return true
		}
	}
	return false
}

// validateSchemasArray enforces the "schemas" array invariants: it must
// be present and contain the base URI (12), and a registered extension's
// URI must be present when that extension is required or its data is
// actually supplied (13); a listed extension URI without data is not
// reported. Any URI not recognized as the base or a registered extension
// is unknown (14).
func (rs *ResourceSchema) validateSchemasArray(data map[string]interface{}, out *issues.Issues) {
	raw, ok := lookupFold(data, MustName("schemas"))
	if !ok {
		out.AddError(issues.SchemasMissingBase, issues.Location{"schemas"})
		return
	}
	arr, ok := raw.([]interface{})
	if !ok || len(arr) == 0 {
		out.AddError(issues.SchemasMissingBase, issues.Location{"schemas"})
		return
	}

	present := map[string]bool{}
	for _, v := range arr {
		if s, ok := v.(string); ok {
			present[strings.ToLower(s)] = true
		}
	}

	if !present[strings.ToLower(rs.Schema.URI)] {
		out.AddError(issues.SchemasMissingBase, issues.Location{"schemas"})
	}

	for _, ext := range rs.extensions {
		_, hasData := data[ext.Schema.URI]
		inSchemas := present[strings.ToLower(ext.Schema.URI)]
		switch {
		case ext.Required && !inSchemas:
			out.AddErrorf(issues.SchemasMissingExt, issues.Location{"schemas"}, ext.Schema.URI)
		case hasData && !inSchemas:
			out.AddErrorf(issues.SchemasMissingExt, issues.Location{"schemas"}, ext.Schema.URI)
		}
	}

	for uri := range present {
		if strings.EqualFold(uri, rs.Schema.URI) {
			continue
		}
		if !rs.hasExtension(uri) {
			out.AddErrorf(issues.UnknownSchemaURI, issues.Location{"schemas"}, uri)
		}
	}
}

// Deserialize converts already-validated, already-decoded JSON data into
// a ScimData, applying each attribute's codec. No validation is
// performed — callers must Validate first (spec §4.E).
func (rs *ResourceSchema) Deserialize(data map[string]interface{}) *scimdata.ScimData {
	d := scimdata.New()
	rs.Schema.Attrs.Each(func(a Attribute) {
		hit, found := lookupFold(data, a.name)
		if !found {
			return
		}
		d.Set(a.name.String(), a.Deserialize(hit))
	})
	for _, ext := range rs.extensions {
		extData, ok := data[ext.Schema.URI].(map[string]interface{})
		if !ok {
			continue
		}
		ext.Schema.Attrs.Each(func(a Attribute) {
			hit, found := lookupFold(extData, a.name)
			if !found {
				return
			}
			d.Set(ext.Schema.URI+":"+a.name.String(), a.Deserialize(hit))
		})
	}
	return d
}

// Serialize is the inverse of Deserialize: core attributes are emitted
// inline, each extension nested under its full URI key (spec §3/§6).
func (rs *ResourceSchema) Serialize(d *scimdata.ScimData) map[string]interface{} {
	out := map[string]interface{}{}
	rs.Schema.Attrs.Each(func(a Attribute) {
		v := d.Get(a.name.String())
		if scimdata.IsMissing(v) {
			return
		}
		out[a.name.String()] = a.Serialize(unwrapForSerialize(v))
	})
	for _, ext := range rs.extensions {
		extOut := map[string]interface{}{}
		ext.Schema.Attrs.Each(func(a Attribute) {
			v := d.Get(ext.Schema.URI + ":" + a.name.String())
			if scimdata.IsMissing(v) {
				return
			}
			extOut[a.name.String()] = a.Serialize(unwrapForSerialize(v))
		})
		if len(extOut) > 0 {
			out[ext.Schema.URI] = extOut
		}
	}
	return out
}

func unwrapForSerialize(v interface{}) interface{} {
	if sd, ok := v.(*scimdata.ScimData); ok {
		return sd.ToDict()
	}
	if arr, ok := v.([]interface{}); ok {
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = unwrapForSerialize(e)
		}
		return out
	}
	return v
}

// Filter drops attributes from d whose metadata does not match af,
// always retaining attributes that are required=true or returned=always
// (spec §4.E invariant).
func (rs *ResourceSchema) Filter(d *scimdata.ScimData, af AttrFilter) *scimdata.ScimData {
	out := scimdata.New()
	rs.Schema.Attrs.Each(func(a Attribute) {
		rep := BoundedAttrRep{SchemaURI: rs.Schema.URI, Attr: a.name}
		if !af.Allows(rep) && !a.required && a.returned != ReturnedAlways {
			return
		}
		v := d.Get(a.name.String())
		if scimdata.IsMissing(v) {
			return
		}
		out.Set(a.name.String(), v)
	})
	for _, ext := range rs.extensions {
		ext.Schema.Attrs.Each(func(a Attribute) {
			rep := BoundedAttrRep{SchemaURI: ext.Schema.URI, Attr: a.name, Extension: true}
			if !af.Allows(rep) && !a.required && a.returned != ReturnedAlways {
				return
			}
			v := d.Get(ext.Schema.URI + ":" + a.name.String())
			if scimdata.IsMissing(v) {
				return
			}
			out.Set(ext.Schema.URI+":"+a.name.String(), v)
		})
	}
	return out
}
