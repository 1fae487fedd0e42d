// Package validator implements one validator type per SCIM endpoint
// (spec §4.J), composing the schema engine, filter/patch-path grammar,
// sorter, presence configuration, and service-provider configuration
// into the status-code and body contracts each endpoint promises.
package validator

import (
	"strconv"

	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/presence"
	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/spconfig"
)

// ListResponseSchema is the URN of the ListResponse envelope used by
// query/search endpoints (spec §4.J).
const ListResponseSchema = "urn:ietf:params:scim:api:messages:2.0:ListResponse"

// PatchOpSchema is the URN a PATCH request body's "schemas" array must
// contain (spec §4.G).
const PatchOpSchema = "urn:ietf:params:scim:api:messages:2.0:PatchOp"

// Resource bundles the collaborators every endpoint validator composes:
// the resource type's schema, and the process-wide service-provider
// configuration it must respect (spec §5: both immutable after init).
type Resource struct {
	Schema *schema.ResourceSchema
	Config spconfig.ServiceProviderConfig
}

// checkStatus records code 19 if got is not one of want.
func checkStatus(got int, out *issues.Issues, want ...int) {
	for _, w := range want {
		if got == w {
			return
		}
	}
	out.AddError(issues.BadStatusCode, issues.Location{"status"})
}

// checkErrorBody validates the SCIM Error response contract (spec §4.J,
// §6): when an error body carries a "status" field, it must equal the
// actual HTTP status code as a decimal string, or code 18 is reported.
func checkErrorBody(statusCode int, body map[string]interface{}, out *issues.Issues) {
	raw, ok := body["status"]
	if !ok {
		return
	}
	s, ok := raw.(string)
	if !ok || s != strconv.Itoa(statusCode) {
		out.AddError(issues.BadErrorStatus, issues.Location{"body", "status"})
	}
}

// validateBody runs schema validation with a presence hook bound to dir,
// merging results under the "body" key.
func (r Resource) validateBody(body map[string]interface{}, dir presence.Direction, attrReps []schema.BoundedAttrRep, include bool) *issues.Issues {
	hook := presence.Config{Direction: dir, AttrReps: attrReps, Include: include}.Hook()
	out := issues.New()
	out.Merge(r.Schema.Validate(body, hook), issues.Location{"body"})
	return out
}
