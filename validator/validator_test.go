package validator_test

import (
	"testing"

	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/spconfig"
	"github.com/scimcore/scim/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validatorUserURI = "urn:ietf:params:scim:schemas:core:2.0:User"

func codes(is *issues.Issues) []issues.Code {
	var out []issues.Code
	is.Each(func(i issues.Issue) { out = append(out, i.Code) })
	return out
}

func userSchema(t *testing.T) *schema.ResourceSchema {
	t.Helper()
	base := schema.Schema{
		URI: validatorUserURI,
		Attrs: schema.Attrs{
			schema.NewAttribute(schema.Params{Name: "userName", Type: schema.TypeString, Required: true}),
			schema.NewAttribute(schema.Params{Name: "password", Type: schema.TypeString, Returned: schema.ReturnedNever, Mutability: schema.MutabilityWriteOnly}),
		},
	}
	return schema.NewResourceSchema(base, nil)
}

func userResource(t *testing.T) validator.Resource {
	return validator.Resource{Schema: userSchema(t), Config: spconfig.Default()}
}

func TestResourceObjectGetValidateResponseWrongStatus(t *testing.T) {
	v := validator.ResourceObjectGet{Resource: userResource(t)}
	out := v.ValidateResponse(404, map[string]interface{}{
		"schemas": []interface{}{validatorUserURI}, "userName": "bjensen",
	}, nil, false)
	assert.Contains(t, codes(out), issues.BadStatusCode)
}

func TestResourceObjectGetValidateResponseBadErrorStatus(t *testing.T) {
	v := validator.ResourceObjectGet{Resource: userResource(t)}
	out := v.ValidateResponse(404, map[string]interface{}{
		"schemas": []interface{}{"urn:ietf:params:scim:api:messages:2.0:Error"},
		"status":  "500",
		"detail":  "not found",
	}, nil, false)
	assert.Contains(t, codes(out), issues.BadErrorStatus)
}

func TestResourceObjectGetValidateResponseMatchingErrorStatusOK(t *testing.T) {
	v := validator.ResourceObjectGet{Resource: userResource(t)}
	out := v.ValidateResponse(404, map[string]interface{}{
		"schemas": []interface{}{"urn:ietf:params:scim:api:messages:2.0:Error"},
		"status":  "404",
		"detail":  "not found",
	}, nil, false)
	assert.NotContains(t, codes(out), issues.BadErrorStatus)
}

func TestResourceObjectGetValidateResponseNeverReturnedBlocked(t *testing.T) {
	v := validator.ResourceObjectGet{Resource: userResource(t)}
	out := v.ValidateResponse(200, map[string]interface{}{
		"schemas": []interface{}{validatorUserURI}, "userName": "bjensen", "password": "hunter2",
	}, nil, false)
	assert.Contains(t, codes(out), issues.MustNotBeReturned)
}

func TestResourcesPostValidateRequestMissingRequired(t *testing.T) {
	v := validator.ResourcesPost{Resource: userResource(t)}
	out := v.ValidateRequest(map[string]interface{}{
		"schemas": []interface{}{validatorUserURI},
	})
	assert.Contains(t, codes(out), issues.Missing)
}

func TestResourcesPostValidateResponseHappyPath(t *testing.T) {
	v := validator.ResourcesPost{Resource: userResource(t)}
	out := v.ValidateResponse(201, map[string]interface{}{
		"schemas": []interface{}{validatorUserURI}, "userName": "bjensen",
	}, nil, false)
	assert.False(t, out.HasErrors())
}

func TestResourceObjectDeleteExpectsEmpty204(t *testing.T) {
	v := validator.ResourceObjectDelete{Resource: userResource(t)}
	out := v.ValidateResponse(204, 0)
	assert.False(t, out.HasErrors())

	out2 := v.ValidateResponse(204, 12)
	assert.True(t, out2.HasErrors())

	out3 := v.ValidateResponse(200, 0)
	require.True(t, out3.HasErrors())
	assert.Contains(t, codes(out3), issues.BadStatusCode)
}
