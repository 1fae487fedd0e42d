package filter

import (
	"strconv"
	"strings"

	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/scimdata"
)

// Evaluate reports whether data satisfies expr (spec §4.F). attrs, when
// non-nil, resolves each path to its declared Attribute so comparisons
// honor case-exactness; with a nil attrs every string comparison is
// case-insensitive, the SCIM default.
//
// Evaluation is total: every node yields true or false, never an error,
// so Not(F) always equals !F(d) (spec §8 boundary: total Boolean
// evaluation). An unknown attribute behaves as absent: comparisons and
// "pr" are false, "not (... pr)" is true.
func Evaluate(expr Expression, data *scimdata.ScimData, attrs *schema.BoundedAttrs) bool {
	if expr == nil {
		return false
	}
	switch e := expr.(type) {
	case Or:
		return Evaluate(e.Left, data, attrs) || Evaluate(e.Right, data, attrs)
	case And:
		return Evaluate(e.Left, data, attrs) && Evaluate(e.Right, data, attrs)
	case Not:
		return !Evaluate(e.Expr, data, attrs)
	case Present:
		return isPresent(resolveValue(e.Path, data))
	case Compare:
		return evalCompare(e, data, attrs)
	case Complex:
		return evalComplex(e, data, attrs)
	default:
		return false
	}
}

func resolveValue(path AttrPath, data *scimdata.ScimData) interface{} {
	if data == nil {
		return scimdata.Missing
	}
	key := path.Attr
	if path.Sub != "" {
		key += "." + path.Sub
	}
	if path.URI != "" {
		key = path.URI + ":" + key
	}
	return data.Get(key)
}

func isPresent(v interface{}) bool {
	if scimdata.IsMissing(v) || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case []interface{}:
		return len(t) > 0
	default:
		return true
	}
}

func evalCompare(e Compare, data *scimdata.ScimData, attrs *schema.BoundedAttrs) bool {
	v := resolveValue(e.Path, data)
	if scimdata.IsMissing(v) {
		return false
	}
	caseExact := attributeCaseExact(e.Path, attrs)

	if arr, ok := v.([]interface{}); ok {
		for _, elem := range arr {
			if compareOne(e.Op, elem, e.Value, caseExact) {
				return true
			}
		}
		return false
	}
	return compareOne(e.Op, v, e.Value, caseExact)
}

func attributeCaseExact(path AttrPath, attrs *schema.BoundedAttrs) bool {
	if attrs == nil {
		return false
	}
	attrName, err := schema.NewAttrName(path.Attr)
	if err != nil {
		return false
	}
	rep := schema.AttrRep{Attr: attrName}
	if path.Sub != "" {
		subName, err := schema.NewAttrName(path.Sub)
		if err != nil {
			return false
		}
		rep.Sub = subName
	}
	var attr schema.Attribute
	var ok bool
	if path.URI != "" {
		attr, ok = attrs.Get(schema.BoundedAttrRep{SchemaURI: path.URI, Attr: rep.Attr, Sub: rep.Sub})
	} else {
		_, attr, ok = attrs.Resolve(rep)
	}
	if !ok {
		return false
	}
	return attr.CaseExact()
}

func compareOne(op CompareOp, actual, want interface{}, caseExact bool) bool {
	switch op {
	case OpEq:
		return equalValues(actual, want, caseExact)
	case OpNe:
		return !equalValues(actual, want, caseExact)
	case OpCo, OpSw, OpEw:
		as, aok := asString(actual)
		ws, wok := want.(string)
		if !aok || !wok {
			return false
		}
		if !caseExact {
			as, ws = strings.ToLower(as), strings.ToLower(ws)
		}
		switch op {
		case OpCo:
			return strings.Contains(as, ws)
		case OpSw:
			return strings.HasPrefix(as, ws)
		default:
			return strings.HasSuffix(as, ws)
		}
	case OpGt, OpGe, OpLt, OpLe:
		return orderedCompare(op, actual, want, caseExact)
	default:
		return false
	}
}

func equalValues(actual, want interface{}, caseExact bool) bool {
	if as, ok := asString(actual); ok {
		if ws, ok := want.(string); ok {
			if caseExact {
				return as == ws
			}
			return strings.EqualFold(as, ws)
		}
		return false
	}
	if af, ok := asFloat(actual); ok {
		if wf, ok := asFloat(want); ok {
			return af == wf
		}
		return false
	}
	if ab, ok := actual.(bool); ok {
		wb, ok := want.(bool)
		return ok && ab == wb
	}
	if actual == nil {
		return want == nil
	}
	return false
}

// orderedCompare implements gt/ge/lt/le: numeric operands compare
// numerically, string operands (including DateTime, which SCIM carries
// as an RFC 3339 string whose lexicographic order matches chronological
// order) compare lexicographically.
func orderedCompare(op CompareOp, actual, want interface{}, caseExact bool) bool {
	if as, ok := asString(actual); ok {
		ws, wok := want.(string)
		if !wok {
			return false
		}
		if !caseExact {
			as, ws = strings.ToLower(as), strings.ToLower(ws)
		}
		return compareOrdering(op, strings.Compare(as, ws))
	}
	if af, ok := asFloat(actual); ok {
		if wf, ok := asFloat(want); ok {
			return compareOrdering(op, numCmp(af, wf))
		}
	}
	return false
}

func numCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareOrdering(op CompareOp, cmp int) bool {
	switch op {
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	default:
		return false
	}
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// evalComplex implements the complex-attribute-group existential
// semantics: true if any element of the multi-valued complex attribute
// at e.Path satisfies e.Inner, evaluated against that one element.
func evalComplex(e Complex, data *scimdata.ScimData, attrs *schema.BoundedAttrs) bool {
	v := resolveValue(e.Path, data)
	arr, ok := v.([]interface{})
	if !ok {
		return false
	}
	// Inner paths name sub-attributes of the group's attribute, so they
	// resolve against its sub-attributes, not the top-level attributes.
	var inner *schema.BoundedAttrs
	if name, err := schema.NewAttrName(e.Path.Attr); err == nil && attrs != nil {
		var attr schema.Attribute
		found := false
		if e.Path.URI != "" {
			attr, found = attrs.Get(schema.BoundedAttrRep{SchemaURI: e.Path.URI, Attr: name})
		} else {
			_, attr, found = attrs.Resolve(schema.AttrRep{Attr: name})
		}
		if found && attr.HasSubAttributes() {
			inner = schema.NewBoundedAttrs(attrs.BaseURI(), attr.SubAttributes())
		}
	}
	for _, elem := range arr {
		child, ok := elem.(*scimdata.ScimData)
		if !ok {
			continue
		}
		if Evaluate(e.Inner, child, inner) {
			return true
		}
	}
	return false
}
