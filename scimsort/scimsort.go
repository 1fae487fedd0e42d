// Package scimsort implements sortBy/sortOrder resource-list ordering
// (spec §4.H): stable, case-exactness-aware, "absent sorts last."
package scimsort

import (
	"sort"
	"strings"

	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/scimdata"
)

// Order is the sortOrder query parameter.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Sorter orders a slice of resources by one BoundedAttrRep.
type Sorter struct {
	Rep   schema.BoundedAttrRep
	Order Order
	Attrs *schema.BoundedAttrs
}

// Sort stably reorders resources in place. Absent or Missing values
// always sort after every present value, in either direction, and
// comparisons among absent values are equal (so Sort is stable for
// them, per spec §4.H). For a multi-valued complex attribute, the
// primary element's projected value is used when present, else the
// first element's.
func (s Sorter) Sort(resources []*scimdata.ScimData) {
	sort.SliceStable(resources, func(i, j int) bool {
		return s.less(resources[i], resources[j])
	})
}

func (s Sorter) less(a, b *scimdata.ScimData) bool {
	av, aok := s.value(a)
	bv, bok := s.value(b)
	if !aok && !bok {
		return false
	}
	if !aok {
		return false // a (absent) never sorts before b
	}
	if !bok {
		return true // b absent: a (present) sorts first
	}

	caseExact := false
	if attr, ok := s.Attrs.Get(s.Rep); ok {
		caseExact = attr.CaseExact()
	}
	cmp := compareValues(av, bv, caseExact)
	if s.Order == Descending {
		return cmp > 0
	}
	return cmp < 0
}

func (s Sorter) value(d *scimdata.ScimData) (interface{}, bool) {
	key := s.Rep.AttrRep().String()
	if s.Rep.SchemaURI != "" && s.Rep.Extension {
		key = s.Rep.SchemaURI + ":" + key
	}
	v := d.Get(key)
	if scimdata.IsMissing(v) || v == nil {
		return nil, false
	}
	if arr, ok := v.([]interface{}); ok {
		return primaryOrFirst(arr)
	}
	return v, true
}

// primaryOrFirst implements the "primary element first" sort-key rule
// for multi-valued complex attributes (spec §4.H).
func primaryOrFirst(arr []interface{}) (interface{}, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	for _, elem := range arr {
		child, ok := elem.(*scimdata.ScimData)
		if !ok {
			continue
		}
		if p, ok := child.Get("primary").(bool); ok && p {
			return child, true
		}
	}
	return arr[0], true
}

func compareValues(a, b interface{}, caseExact bool) int {
	if ac, ok := a.(*scimdata.ScimData); ok {
		a = ac.Get("value")
	}
	if bc, ok := b.(*scimdata.ScimData); ok {
		b = bc.Get("value")
	}
	if scimdata.IsMissing(a) {
		a = nil
	}
	if scimdata.IsMissing(b) {
		b = nil
	}

	switch at := a.(type) {
	case string:
		bt, ok := b.(string)
		if !ok {
			return 1
		}
		if !caseExact {
			at, bt = strings.ToLower(at), strings.ToLower(bt)
		}
		return strings.Compare(at, bt)
	case float64:
		bt, ok := b.(float64)
		if !ok {
			return 1
		}
		switch {
		case at < bt:
			return -1
		case at > bt:
			return 1
		default:
			return 0
		}
	case bool:
		bt, ok := b.(bool)
		if !ok {
			return 1
		}
		if at == bt {
			return 0
		}
		if !at {
			return -1
		}
		return 1
	default:
		return 0
	}
}
