// Package scimdata implements ScimData (spec §3/§4.D): a case-insensitive,
// path-addressable, schema-URI-aware nested map with a sentinel Missing
// value distinct from explicit JSON null.
package scimdata

import "strings"

// missingType is the sentinel type for ScimData.Get misses.
type missingType struct{}

// Missing is returned by Get when no value exists at the requested path.
// It is distinct from an explicit JSON null, which SCIM uses to request
// attribute clearing.
var Missing interface{} = missingType{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v interface{}) bool {
	_, ok := v.(missingType)
	return ok
}

// entry is one case-insensitively-keyed slot: it remembers the casing it
// was first stored under.
type entry struct {
	display string
	value   interface{}
}

// ScimData is a mutable, caller-owned nested map keyed case-insensitively
// on attribute names, addressable by plain names, dotted paths, or
// schema-URI-prefixed paths. The zero value is ready to use.
type ScimData struct {
	order []string // lower-case keys, insertion order
	slots map[string]entry
}

// New returns an empty ScimData.
func New() *ScimData {
	return &ScimData{slots: map[string]entry{}}
}

// FromMap builds a ScimData from a plain, already-decoded JSON object.
// Nested objects/arrays are wrapped recursively so path resolution works
// at every depth.
func FromMap(m map[string]interface{}) *ScimData {
	d := New()
	for k, v := range m {
		d.Set(k, wrap(v))
	}
	return d
}

func wrap(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return FromMap(t)
	case *ScimData:
		return t
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = wrap(e)
		}
		return out
	default:
		return v
	}
}

func unwrap(v interface{}) interface{} {
	switch t := v.(type) {
	case *ScimData:
		return t.ToDict()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = unwrap(e)
		}
		return out
	default:
		return v
	}
}

// Set stores value under key, preserving the first-seen casing of key.
// A dotted key ("name.givenName") auto-vivifies the parent complex
// attribute. A schema-URI-prefixed key ("urn:...:User:employeeNumber")
// auto-nests under that URI's sub-object, the way ToDict nests extension
// data (spec §3).
func (d *ScimData) Set(key string, value interface{}) {
	if d.slots == nil {
		d.slots = map[string]entry{}
	}
	if uri, rest, ok := splitURIPrefix(key); ok {
		nested := d.extensionObject(uri)
		nested.Set(rest, value)
		return
	}
	if dot := strings.IndexByte(key, '.'); dot >= 0 {
		head, tail := key[:dot], key[dot+1:]
		child := d.complexChild(head)
		child.Set(tail, value)
		return
	}
	lower := strings.ToLower(key)
	if existing, ok := d.slots[lower]; ok {
		existing.value = value
		d.slots[lower] = existing
		return
	}
	d.slots[lower] = entry{display: key, value: value}
	d.order = append(d.order, lower)
}

func (d *ScimData) complexChild(name string) *ScimData {
	lower := strings.ToLower(name)
	if e, ok := d.slots[lower]; ok {
		if child, ok := e.value.(*ScimData); ok {
			return child
		}
	}
	child := New()
	if _, ok := d.slots[lower]; !ok {
		d.order = append(d.order, lower)
	}
	d.slots[lower] = entry{display: name, value: child}
	return child
}

func (d *ScimData) extensionObject(uri string) *ScimData {
	// Extension namespaces are stored under their full URI as the key,
	// case-insensitively like any other key.
	return d.complexChildVerbatim(uri)
}

func (d *ScimData) complexChildVerbatim(name string) *ScimData {
	lower := strings.ToLower(name)
	if e, ok := d.slots[lower]; ok {
		if child, ok := e.value.(*ScimData); ok {
			return child
		}
	}
	child := New()
	if _, ok := d.slots[lower]; !ok {
		d.order = append(d.order, lower)
	}
	d.slots[lower] = entry{display: name, value: child}
	return child
}

// Get resolves key (plain, dotted, schema-URI-prefixed, or projecting
// across a multi-valued complex attribute) and returns its value, or
// Missing if absent.
func (d *ScimData) Get(key string) interface{} {
	if uri, rest, ok := splitURIPrefix(key); ok {
		lower := strings.ToLower(uri)
		e, ok := d.slots[lower]
		if !ok {
			return Missing
		}
		child, ok := e.value.(*ScimData)
		if !ok {
			return Missing
		}
		return child.Get(rest)
	}
	if dot := strings.IndexByte(key, '.'); dot >= 0 {
		head, tail := key[:dot], key[dot+1:]
		return d.getProjected(head, tail)
	}
	lower := strings.ToLower(key)
	e, ok := d.slots[lower]
	if !ok {
		return Missing
	}
	return e.value
}

func (d *ScimData) getProjected(head, tail string) interface{} {
	lower := strings.ToLower(head)
	e, ok := d.slots[lower]
	if !ok {
		return Missing
	}
	switch v := e.value.(type) {
	case *ScimData:
		return v.Get(tail)
	case []interface{}:
		// Project tail across every element of a multi-valued complex
		// attribute (e.g. emails.value).
		out := make([]interface{}, 0, len(v))
		for _, elem := range v {
			if child, ok := elem.(*ScimData); ok {
				val := child.Get(tail)
				if !IsMissing(val) {
					out = append(out, val)
				}
			}
		}
		return out
	default:
		return Missing
	}
}

// Has reports whether key resolves to a present, non-Missing value.
func (d *ScimData) Has(key string) bool {
	return !IsMissing(d.Get(key))
}

// Delete removes key (case-insensitively) if present. Like Set, it
// follows a schema-URI-prefixed or dotted key into the nested object.
func (d *ScimData) Delete(key string) {
	if uri, rest, ok := splitURIPrefix(key); ok {
		if e, ok := d.slots[strings.ToLower(uri)]; ok {
			if child, ok := e.value.(*ScimData); ok {
				child.Delete(rest)
			}
		}
		return
	}
	if dot := strings.IndexByte(key, '.'); dot >= 0 {
		if e, ok := d.slots[strings.ToLower(key[:dot])]; ok {
			if child, ok := e.value.(*ScimData); ok {
				child.Delete(key[dot+1:])
			}
		}
		return
	}
	lower := strings.ToLower(key)
	if _, ok := d.slots[lower]; !ok {
		return
	}
	delete(d.slots, lower)
	for i, k := range d.order {
		if k == lower {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Keys returns the top-level keys in first-seen display casing, in
// insertion order.
func (d *ScimData) Keys() []string {
	out := make([]string, 0, len(d.order))
	for _, lower := range d.order {
		out = append(out, d.slots[lower].display)
	}
	return out
}

// ToDict renders the container as a plain nested map: core attributes
// inline, each extension namespace nested under its full URI key, the
// same layout schema.ResourceSchema.Serialize produces (spec §3/§4.E).
func (d *ScimData) ToDict() map[string]interface{} {
	out := make(map[string]interface{}, len(d.order))
	for _, lower := range d.order {
		e := d.slots[lower]
		out[e.display] = unwrap(e.value)
	}
	return out
}

// splitURIPrefix splits "urn:...:User:userName" into ("urn:...:User",
// "userName"), recognizing the last colon-delimited segment as the
// attribute name when the prefix looks like a SCIM schema URI (starts
// with "urn:").
func splitURIPrefix(key string) (uri, rest string, ok bool) {
	if !strings.HasPrefix(key, "urn:") {
		return "", "", false
	}
	idx := strings.LastIndexByte(key, ':')
	if idx < 0 || idx == len(key)-1 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}
