package validator

import (
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/spconfig"
)

// BulkOp is one operation within a bulk request/response (spec §4.J).
type BulkOp struct {
	Method       string
	Path         string
	ResourceType string // derived from Path; empty if not a recognized resource endpoint
	Status       string // response only
}

// BulkOperations validates the Bulk endpoint.
type BulkOperations struct {
	Config spconfig.ServiceProviderConfig
	// KnownResourceTypes lists the resource-type segments ("Users",
	// "Groups", ...) the embedding application actually serves.
	KnownResourceTypes []string
}

// ValidateRequest checks the operation count against the configured
// maximum (code 26) and flags operations against unknown resource
// types (code 25).
func (v BulkOperations) ValidateRequest(ops []BulkOp) *issues.Issues {
	out := issues.New()
	if v.Config.Bulk.MaxOperations > 0 && len(ops) > v.Config.Bulk.MaxOperations {
		out.AddError(issues.BulkOperationsExceed, issues.Location{"body", "Operations"})
	}
	for i, op := range ops {
		if !v.knownType(op.ResourceType) {
			out.AddError(issues.UnknownBulkResource, issues.Location{"body", "Operations", i})
		}
	}
	return out
}

func (v BulkOperations) knownType(rt string) bool {
	if rt == "" {
		return false
	}
	for _, k := range v.KnownResourceTypes {
		if k == rt {
			return true
		}
	}
	return false
}

// ValidateResponse checks the number of per-operation errors against
// the caller's declared failOnErrors threshold (code 27, -1 meaning
// "no threshold declared").
func (v BulkOperations) ValidateResponse(statusCode int, ops []BulkOp, failOnErrors int) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 200)

	if failOnErrors < 0 {
		return out
	}
	errCount := 0
	for _, op := range ops {
		if len(op.Status) > 0 && op.Status[0] != '2' {
			errCount++
		}
	}
	if errCount > failOnErrors {
		out.AddError(issues.TooManyBulkErrors, issues.Location{"body", "Operations"})
	}
	return out
}
