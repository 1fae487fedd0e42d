// Package patch implements PATCH request semantics (spec §4.G): parsing
// and applying an "add"/"remove"/"replace" operation list against a
// ScimData resource, guided by the resource's schema for mutability and
// required-attribute checks.
package patch

import (
	"strings"

	"github.com/scimcore/scim/filter"
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/scimdata"
)

// Op names the three PATCH operation kinds.
type Op int

const (
	OpAdd Op = iota
	OpRemove
	OpReplace
	opUnknown
)

func parseOp(s string) Op {
	switch strings.ToLower(s) {
	case "add":
		return OpAdd
	case "remove":
		return OpRemove
	case "replace":
		return OpReplace
	default:
		return opUnknown
	}
}

// Operation is one element of a PatchRequest's Operations array, still
// in wire shape: Path is the raw path string, Value already JSON-decoded.
type Operation struct {
	Op    string
	Path  string
	Value interface{}
}

// Request is a decoded PATCH request body (spec §4.G).
type Request struct {
	Operations []Operation
}

// Apply runs every operation in req against data in order, resolving
// each path against attrs. It does not short-circuit: independent
// problems across operations are all collected, indexed by operation
// position, into the returned Issues (spec §4.K). Callers must check
// HasErrors before trusting that data was mutated as requested.
func Apply(req Request, data *scimdata.ScimData, attrs *schema.BoundedAttrs) *issues.Issues {
	out := issues.New()
	for i, op := range req.Operations {
		loc := issues.Location{i}
		applyOne(op, data, attrs, loc, out)
	}
	return out
}

func applyOne(op Operation, data *scimdata.ScimData, attrs *schema.BoundedAttrs, loc issues.Location, out *issues.Issues) {
	kind := parseOp(op.Op)
	if kind == opUnknown {
		out.AddError(issues.BadValueSyntax, loc)
		return
	}

	valueOK := true
	if kind == OpRemove {
		if strings.TrimSpace(op.Path) == "" {
			out.AddError(issues.Missing, loc.Child("path"))
			return
		}
		if op.Value != nil {
			out.AddError(issues.BadValueSyntax, loc.Child("value"))
		}
	} else if op.Value == nil {
		// Recorded, but path validation still proceeds below: §4.G
		// requires every independent per-operation problem to surface,
		// not just the first one found (spec scenario S4).
		out.AddError(issues.Missing, loc.Child("value"))
		valueOK = false
	}

	if strings.TrimSpace(op.Path) == "" {
		if valueOK {
			applyRoot(kind, op.Value, data, loc, out)
		}
		return
	}

	path, pathIssues := filter.ParsePath(op.Path)
	if pathIssues.HasErrors() {
		// Any path-grammar failure (unbalanced brackets, missing
		// operand, ...) is reported under patch as a single bad-value-
		// syntax issue (spec §4.G: "Path syntax errors → code 1"), not
		// the raw filter-grammar codes.
		out.AddError(issues.BadValueSyntax, loc.Child("path"))
		return
	}
	if !valueOK {
		return
	}

	rep := schema.AttrRep{}
	if attrName, err := schema.NewAttrName(path.AttrPath.Attr); err == nil {
		rep.Attr = attrName
	} else {
		out.AddError(issues.UnknownModTarget, loc.Child("path"))
		return
	}
	if path.AttrPath.Sub != "" {
		if subName, err := schema.NewAttrName(path.AttrPath.Sub); err == nil {
			rep.Sub = subName
		}
	}

	boundedRep, attr, ok := resolveRep(path, rep, attrs)
	if !ok {
		out.AddError(issues.UnknownModTarget, loc.Child("path"))
		return
	}

	if kind == OpReplace && attr.Mutability() == schema.MutabilityImmutable {
		out.AddError(issues.AttributeNotModifiable, loc.Child("path"))
		return
	}
	if kind != OpRemove && attr.Mutability() == schema.MutabilityReadOnly {
		out.AddError(issues.AttributeNotModifiable, loc.Child("path"))
		return
	}
	if kind == OpRemove && (attr.Required() || attr.Mutability() == schema.MutabilityReadOnly || attr.Mutability() == schema.MutabilityImmutable) {
		out.AddError(issues.AttributeNotRemovable, loc.Child("path"))
		return
	}

	key := targetKey(boundedRep)

	switch {
	case !path.HasValueFilter():
		applyDirect(kind, key, attr, op.Value, data)
	default:
		applyFiltered(kind, key, path, op.Value, data, attrs, loc, out)
	}
}

func resolveRep(path filter.Path, rep schema.AttrRep, attrs *schema.BoundedAttrs) (schema.BoundedAttrRep, schema.Attribute, bool) {
	if path.AttrPath.URI != "" {
		if subName, err := schema.NewAttrName(path.AttrPath.Sub); err == nil || path.AttrPath.Sub == "" {
			bounded := schema.BoundedAttrRep{SchemaURI: path.AttrPath.URI, Attr: rep.Attr, Sub: subName}
			attr, ok := attrs.Get(bounded)
			return bounded, attr, ok
		}
	}
	return attrs.Resolve(rep)
}

func targetKey(rep schema.BoundedAttrRep) string {
	if rep.Extension {
		return rep.SchemaURI + ":" + rep.AttrRep().String()
	}
	return rep.AttrRep().String()
}

func applyRoot(kind Op, value interface{}, data *scimdata.ScimData, loc issues.Location, out *issues.Issues) {
	if kind == OpRemove {
		// A path-less remove has no well-defined target; nothing to do.
		return
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		out.AddErrorf(issues.BadType, loc.Child("value"), "object")
		return
	}
	for k, v := range m {
		data.Set(k, v)
	}
}

func applyDirect(kind Op, key string, attr schema.Attribute, value interface{}, data *scimdata.ScimData) {
	switch kind {
	case OpRemove:
		data.Delete(key)
	case OpReplace:
		data.Set(key, value)
	case OpAdd:
		if attr.MultiValued() {
			existing := data.Get(key)
			var arr []interface{}
			if cur, ok := existing.([]interface{}); ok {
				arr = append(arr, cur...)
			}
			if incoming, ok := value.([]interface{}); ok {
				arr = append(arr, incoming...)
			} else {
				arr = append(arr, value)
			}
			data.Set(key, arr)
			return
		}
		data.Set(key, value)
	}
}

// applyFiltered handles "attr[filter]" and "attr[filter].sub" targets:
// it re-reads the multi-valued complex attribute, mutates every element
// that satisfies path.ValueFilter, and writes the attribute back.
func applyFiltered(kind Op, key string, path filter.Path, value interface{}, data *scimdata.ScimData, attrs *schema.BoundedAttrs, loc issues.Location, out *issues.Issues) {
	existing := data.Get(key)
	arr, ok := existing.([]interface{})
	if !ok {
		out.AddError(issues.UnknownModTarget, loc.Child("path"))
		return
	}

	kept := make([]interface{}, 0, len(arr))
	matched := false
	for _, elem := range arr {
		child, ok := elem.(*scimdata.ScimData)
		if !ok || !filter.Evaluate(path.ValueFilter, child, attrs) {
			kept = append(kept, elem)
			continue
		}
		matched = true
		if mutateElement(kind, path.SubAttr, child, value) {
			kept = append(kept, child)
		}
		// kind == OpRemove with no SubAttr drops the element entirely.
	}
	if !matched {
		out.AddError(issues.UnknownModTarget, loc.Child("path"))
		return
	}
	data.Set(key, kept)
}

// mutateElement applies the operation to one matched complex element.
// It returns false when the element itself should be dropped (a
// whole-element remove, i.e. no sub-attribute named).
func mutateElement(kind Op, subAttr string, elem *scimdata.ScimData, value interface{}) bool {
	if subAttr == "" {
		switch kind {
		case OpRemove:
			return false
		default:
			if m, ok := value.(map[string]interface{}); ok {
				for k, v := range m {
					elem.Set(k, v)
				}
			}
			return true
		}
	}

	switch kind {
	case OpRemove:
		elem.Delete(subAttr)
	default:
		elem.Set(subAttr, value)
	}
	return true
}
