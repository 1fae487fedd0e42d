package schema

import "strings"

// AttrRep is a pair (attr, sub_attr?) naming an attribute local to a
// schema, with no schema-URI qualification.
type AttrRep struct {
	Attr AttrName
	Sub  AttrName // zero value means "no sub-attribute"
}

// HasSub reports whether the rep names a sub-attribute.
func (r AttrRep) HasSub() bool {
	return r.Sub.display != ""
}

// String renders the canonical short form: "attr" or "attr.sub".
func (r AttrRep) String() string {
	if r.HasSub() {
		return r.Attr.String() + "." + r.Sub.String()
	}
	return r.Attr.String()
}

// Equals compares two AttrReps case-insensitively on both components.
func (r AttrRep) Equals(other AttrRep) bool {
	if !r.Attr.EqualFold(other.Attr) {
		return false
	}
	return r.Sub.EqualFold(other.Sub)
}

// BoundedAttrRep is a triple (schema_uri, attr, sub_attr?), the
// fully-qualified identifier used once a rep is resolved against a
// specific schema or extension.
type BoundedAttrRep struct {
	SchemaURI string
	Attr      AttrName
	Sub       AttrName
	Extension bool // true when Attr belongs to a registered schema extension
}

// HasSub reports whether the rep names a sub-attribute.
func (r BoundedAttrRep) HasSub() bool {
	return r.Sub.display != ""
}

// AttrRep projects away the schema URI.
func (r BoundedAttrRep) AttrRep() AttrRep {
	return AttrRep{Attr: r.Attr, Sub: r.Sub}
}

// String renders the canonical long form "schema_uri:attr[.sub_attr]".
func (r BoundedAttrRep) String() string {
	s := r.SchemaURI + ":" + r.Attr.String()
	if r.HasSub() {
		s += "." + r.Sub.String()
	}
	return s
}

// ShortString renders "attr[.sub_attr]", omitting the schema URI.
func (r BoundedAttrRep) ShortString() string {
	return r.AttrRep().String()
}

// Equals compares two BoundedAttrReps: schema URIs case-insensitively,
// attr/sub-attr case-insensitively.
func (r BoundedAttrRep) Equals(other BoundedAttrRep) bool {
	if !strings.EqualFold(r.SchemaURI, other.SchemaURI) {
		return false
	}
	return r.AttrRep().Equals(other.AttrRep())
}
