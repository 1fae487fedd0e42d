package schema

// AttrFilter is a predicate used to include- or exclude-list attributes,
// both at ResourceSchema construction time and by ResourceSchema.Filter
// when projecting data (spec §4.E).
type AttrFilter struct {
	reps    []BoundedAttrRep
	include bool // true: only reps pass; false: reps are excluded
}

// IncludeOnly returns an AttrFilter that keeps only the named attributes
// (plus whatever the caller always keeps regardless, e.g. required or
// returned=always attributes — enforced by the caller, not the filter).
func IncludeOnly(reps ...BoundedAttrRep) AttrFilter {
	return AttrFilter{reps: reps, include: true}
}

// ExcludeOnly returns an AttrFilter that drops the named attributes and
// keeps everything else.
func ExcludeOnly(reps ...BoundedAttrRep) AttrFilter {
	return AttrFilter{reps: reps, include: false}
}

// Allows reports whether rep passes the filter.
func (f AttrFilter) Allows(rep BoundedAttrRep) bool {
	if len(f.reps) == 0 {
		return f.include == false
	}
	for _, r := range f.reps {
		if r.Equals(rep) {
			return f.include
		}
	}
	return !f.include
}

// IsZero reports whether f has no configured attributes (i.e. it is a
// no-op filter that keeps everything).
func (f AttrFilter) IsZero() bool {
	return len(f.reps) == 0 && !f.include
}
