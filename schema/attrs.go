package schema

// Attrs is an ordered, case-insensitive keyed collection of Attributes
// local to one schema (spec §3/§4.C).
type Attrs []Attribute

// NewAttrs builds an Attrs from attrs, panicking (a usage error) if two
// names collide case-insensitively, the way the teacher's
// ComplexCoreAttribute panics on duplicate sub-attribute names.
func NewAttrs(attrs ...Attribute) Attrs {
	seen := map[string]bool{}
	for _, a := range attrs {
		key := a.name.lower()
		if seen[key] {
			panic(wrapDuplicate(a.name.String()))
		}
		seen[key] = true
	}
	return Attrs(attrs)
}

// Get looks up an attribute by AttrRep, case-insensitively, resolving a
// sub-attribute when rep.HasSub(). ok is false if any segment is unknown.
func (as Attrs) Get(rep AttrRep) (Attribute, bool) {
	for _, a := range as {
		if !a.name.EqualFold(rep.Attr) {
			continue
		}
		if !rep.HasSub() {
			return a, true
		}
		if a.typ != TypeComplex {
			return Attribute{}, false
		}
		return a.subAttributes.Get(AttrRep{Attr: rep.Sub})
	}
	return Attribute{}, false
}

// GetByName looks up a top-level attribute by name only, ignoring
// sub-attributes.
func (as Attrs) GetByName(name AttrName) (Attribute, bool) {
	for _, a := range as {
		if a.name.EqualFold(name) {
			return a, true
		}
	}
	return Attribute{}, false
}

// Each iterates in registration order.
func (as Attrs) Each(fn func(Attribute)) {
	for _, a := range as {
		fn(a)
	}
}

// Len returns the number of top-level attributes.
func (as Attrs) Len() int { return len(as) }

// BoundedAttrs partitions the effective attribute set of a resource
// schema by owning schema URI: the base schema plus every registered
// extension (spec §4.C).
type BoundedAttrs struct {
	baseURI string
	base    Attrs
	exts    map[string]Attrs // keyed lower-case URI
	extOrd  []string         // registration order, original casing
}

// NewBoundedAttrs constructs a BoundedAttrs for a base schema; extensions
// are added with Extend.
func NewBoundedAttrs(baseURI string, base Attrs) *BoundedAttrs {
	return &BoundedAttrs{baseURI: baseURI, base: base, exts: map[string]Attrs{}}
}

// Extend registers an extension's attribute set under its schema URI.
// Returns false if uri is already registered.
func (b *BoundedAttrs) Extend(uri string, attrs Attrs) bool {
	key := lowerURI(uri)
	if _, ok := b.exts[key]; ok {
		return false
	}
	b.exts[key] = attrs
	b.extOrd = append(b.extOrd, uri)
	return true
}

// Get resolves a BoundedAttrRep against the base schema or the named
// extension.
func (b *BoundedAttrs) Get(rep BoundedAttrRep) (Attribute, bool) {
	if rep.SchemaURI == "" || lowerURI(rep.SchemaURI) == lowerURI(b.baseURI) {
		return b.base.Get(rep.AttrRep())
	}
	ext, ok := b.exts[lowerURI(rep.SchemaURI)]
	if !ok {
		return Attribute{}, false
	}
	return ext.Get(rep.AttrRep())
}

// Resolve finds a bare AttrRep against the base schema first, then each
// extension in registration order, returning the fully bound rep.
func (b *BoundedAttrs) Resolve(rep AttrRep) (BoundedAttrRep, Attribute, bool) {
	if attr, ok := b.base.Get(rep); ok {
		return BoundedAttrRep{SchemaURI: b.baseURI, Attr: rep.Attr, Sub: rep.Sub}, attr, true
	}
	for _, uri := range b.extOrd {
		if attr, ok := b.exts[lowerURI(uri)].Get(rep); ok {
			return BoundedAttrRep{SchemaURI: uri, Attr: rep.Attr, Sub: rep.Sub, Extension: true}, attr, true
		}
	}
	return BoundedAttrRep{}, Attribute{}, false
}

// BaseURI returns the base schema's URI.
func (b *BoundedAttrs) BaseURI() string { return b.baseURI }

// Base returns the base schema's attribute set.
func (b *BoundedAttrs) Base() Attrs { return b.base }

// ExtensionURIs returns registered extension URIs in registration order.
func (b *BoundedAttrs) ExtensionURIs() []string {
	return append([]string(nil), b.extOrd...)
}

// Extension returns the attribute set registered under uri.
func (b *BoundedAttrs) Extension(uri string) (Attrs, bool) {
	a, ok := b.exts[lowerURI(uri)]
	return a, ok
}

func lowerURI(uri string) string {
	out := make([]byte, len(uri))
	for i := 0; i < len(uri); i++ {
		c := uri[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
