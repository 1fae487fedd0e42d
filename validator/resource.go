package validator

import (
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/presence"
	"github.com/scimcore/scim/schema"
)

// ResourceObjectGet validates GET /Resource/{id}.
type ResourceObjectGet struct{ Resource }

// ValidateResponse checks the 200 response body against RESPONSE
// presence rules (spec §4.J).
func (v ResourceObjectGet) ValidateResponse(statusCode int, body map[string]interface{}, attrReps []schema.BoundedAttrRep, include bool) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 200)
	if statusCode != 200 {
		checkErrorBody(statusCode, body, out)
		return out
	}
	out.Merge(v.validateBody(body, presence.Response, attrReps, include), nil)
	return out
}

// ResourcesPost validates POST /Resources.
type ResourcesPost struct{ Resource }

// ValidateRequest checks that required attributes are present and that
// no readOnly attribute was supplied (spec §4.J).
func (v ResourcesPost) ValidateRequest(body map[string]interface{}) *issues.Issues {
	return v.validateBody(body, presence.Request, nil, false)
}

// ValidateResponse checks the 201 response body.
func (v ResourcesPost) ValidateResponse(statusCode int, body map[string]interface{}, attrReps []schema.BoundedAttrRep, include bool) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 201)
	if statusCode != 201 {
		checkErrorBody(statusCode, body, out)
		return out
	}
	out.Merge(v.validateBody(body, presence.Response, attrReps, include), nil)
	return out
}

// ResourceObjectPut validates PUT /Resource/{id}. The "immutable must
// equal stored value" rule is stateful (requires the prior resource)
// and is explicitly out of this library's scope (spec §4.J, §1
// Non-goals); callers enforce it themselves with the prior ScimData.
type ResourceObjectPut struct{ Resource }

func (v ResourceObjectPut) ValidateRequest(body map[string]interface{}) *issues.Issues {
	return v.validateBody(body, presence.Request, nil, false)
}

func (v ResourceObjectPut) ValidateResponse(statusCode int, body map[string]interface{}, attrReps []schema.BoundedAttrRep, include bool) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 200)
	if statusCode != 200 {
		checkErrorBody(statusCode, body, out)
		return out
	}
	out.Merge(v.validateBody(body, presence.Response, attrReps, include), nil)
	return out
}

// ResourceObjectDelete validates DELETE /Resource/{id}: success is 204
// with an empty body.
type ResourceObjectDelete struct{ Resource }

func (v ResourceObjectDelete) ValidateResponse(statusCode int, bodyLen int) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 204)
	if bodyLen != 0 {
		out.AddErrorf(issues.BadType, issues.Location{"body"}, "empty")
	}
	return out
}
