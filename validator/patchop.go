package validator

import (
	"strings"

	"github.com/scimcore/scim/filter"
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/patch"
)

// ResourceObjectPatch validates PATCH /Resource/{id}.
type ResourceObjectPatch struct{ Resource }

// ValidateRequest checks the PatchOp envelope's "schemas" array and
// every operation's path and value (spec §4.G/§4.J). It never
// short-circuits: every operation's problems are collected, indexed by
// position.
func (v ResourceObjectPatch) ValidateRequest(schemas []string, req patch.Request) *issues.Issues {
	out := issues.New()

	found := false
	for _, s := range schemas {
		if s == PatchOpSchema {
			found = true
			break
		}
	}
	if !found {
		out.AddError(issues.SchemasMissingBase, issues.Location{"body", "schemas"})
	}

	for i, op := range req.Operations {
		loc := issues.Location{"body", "Operations", i}
		validateOperation(op, loc, out)
	}
	return out
}

func validateOperation(op patch.Operation, loc issues.Location, out *issues.Issues) {
	switch strings.ToLower(op.Op) {
	case "add", "replace":
		if op.Value == nil {
			out.AddError(issues.Missing, loc.Child("value"))
		}
	case "remove":
		if op.Path == "" {
			out.AddError(issues.Missing, loc.Child("path"))
		}
	default:
		out.AddError(issues.BadValueSyntax, loc.Child("op"))
	}
	if op.Path != "" {
		_, pathIssues := filter.ParsePath(op.Path)
		if pathIssues.HasErrors() {
			// Path syntax errors collapse to a single code 1 (spec
			// §4.G), not the raw filter-grammar codes ParsePath uses
			// internally.
			out.AddError(issues.BadValueSyntax, loc.Child("path"))
		}
	}
}

// ValidateResponse checks the PATCH response: 200 with a body (the
// patched resource echoed back) or 204 with none.
func (v ResourceObjectPatch) ValidateResponse(statusCode int, hasBody bool) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 200, 204)
	if statusCode == 204 && hasBody {
		out.AddErrorf(issues.BadType, issues.Location{"body"}, "empty")
	}
	if statusCode == 200 && !hasBody {
		out.AddError(issues.Missing, issues.Location{"body"})
	}
	return out
}
