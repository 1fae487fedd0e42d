package validator_test

import (
	"testing"

	"github.com/scimcore/scim/filter"
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/scimdata"
	"github.com/scimcore/scim/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUserData(name string) *scimdata.ScimData {
	d := scimdata.New()
	d.Set("userName", name)
	return d
}

func TestResourcesQueryValidateResponseHappyPath(t *testing.T) {
	v := validator.ResourcesQuery{Resource: userResource(t)}
	resp := validator.ListResponse{
		Schemas:      []string{validator.ListResponseSchema},
		TotalResults: 1,
		ItemsPerPage: 1,
		Resources:    []*scimdata.ScimData{makeUserData("bjensen")},
	}
	out := v.ValidateResponse(200, resp, nil, schema.BoundedAttrRep{}, false, false)
	assert.False(t, out.HasErrors())
}

func TestResourcesQueryValidateResponseBadResourceCount(t *testing.T) {
	v := validator.ResourcesQuery{Resource: userResource(t)}
	resp := validator.ListResponse{
		Schemas:      []string{validator.ListResponseSchema},
		TotalResults: 0,
		ItemsPerPage: 1,
		Resources:    []*scimdata.ScimData{makeUserData("bjensen")},
	}
	out := v.ValidateResponse(200, resp, nil, schema.BoundedAttrRep{}, false, false)
	assert.Contains(t, codes(out), issues.BadResourceCount)
}

func TestResourcesQueryValidateResponseFilterMismatch(t *testing.T) {
	v := validator.ResourcesQuery{Resource: userResource(t)}
	expr, is := filter.ParseFilter(`userName eq 'other'`)
	require.False(t, is.HasErrors())
	resp := validator.ListResponse{
		Schemas:      []string{validator.ListResponseSchema},
		TotalResults: 1,
		ItemsPerPage: 1,
		Resources:    []*scimdata.ScimData{makeUserData("bjensen")},
	}
	out := v.ValidateResponse(200, resp, expr, schema.BoundedAttrRep{}, false, false)
	assert.Contains(t, codes(out), issues.ResourceNotMatchFilter)
}

func TestResourcesQueryValidateResponseNotSorted(t *testing.T) {
	v := validator.ResourcesQuery{Resource: userResource(t)}
	rep := schema.BoundedAttrRep{SchemaURI: validatorUserURI, Attr: schema.MustName("userName")}
	resp := validator.ListResponse{
		Schemas:      []string{validator.ListResponseSchema},
		TotalResults: 2,
		ItemsPerPage: 2,
		Resources:    []*scimdata.ScimData{makeUserData("charlie"), makeUserData("alice")},
	}
	out := v.ValidateResponse(200, resp, nil, rep, true, false)
	assert.Contains(t, codes(out), issues.ResourcesNotSorted)
}

func TestSearchRequestPostValidateRequestMissingSchema(t *testing.T) {
	v := validator.SearchRequestPost{Resource: userResource(t)}
	out := v.ValidateRequest([]string{"urn:wrong"})
	assert.Contains(t, codes(out), issues.SchemasMissingBase)
}

func TestSearchRequestPostValidateRequestHappyPath(t *testing.T) {
	v := validator.SearchRequestPost{Resource: userResource(t)}
	out := v.ValidateRequest([]string{"urn:ietf:params:scim:api:messages:2.0:SearchRequest"})
	assert.False(t, out.HasErrors())
}
