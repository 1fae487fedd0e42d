package validator_test

import (
	"testing"

	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/spconfig"
	"github.com/scimcore/scim/validator"
	"github.com/stretchr/testify/assert"
)

func bulkValidator() validator.BulkOperations {
	cfg := spconfig.Default()
	cfg.Bulk.MaxOperations = 2
	return validator.BulkOperations{Config: cfg, KnownResourceTypes: []string{"Users", "Groups"}}
}

func TestBulkValidateRequestExceedsMaxOperations(t *testing.T) {
	v := bulkValidator()
	out := v.ValidateRequest([]validator.BulkOp{
		{Method: "POST", ResourceType: "Users"},
		{Method: "POST", ResourceType: "Users"},
		{Method: "POST", ResourceType: "Users"},
	})
	assert.Contains(t, codes(out), issues.BulkOperationsExceed)
}

func TestBulkValidateRequestUnknownResourceType(t *testing.T) {
	v := bulkValidator()
	out := v.ValidateRequest([]validator.BulkOp{
		{Method: "POST", ResourceType: "Widgets"},
	})
	assert.Contains(t, codes(out), issues.UnknownBulkResource)
}

func TestBulkValidateRequestHappyPath(t *testing.T) {
	v := bulkValidator()
	out := v.ValidateRequest([]validator.BulkOp{
		{Method: "POST", ResourceType: "Users"},
	})
	assert.False(t, out.HasErrors())
}

func TestBulkValidateResponseTooManyErrors(t *testing.T) {
	v := bulkValidator()
	out := v.ValidateResponse(200, []validator.BulkOp{
		{Status: "400"},
		{Status: "500"},
		{Status: "201"},
	}, 1)
	assert.Contains(t, codes(out), issues.TooManyBulkErrors)
}

func TestBulkValidateResponseNoThresholdSkipsCheck(t *testing.T) {
	v := bulkValidator()
	out := v.ValidateResponse(200, []validator.BulkOp{
		{Status: "500"}, {Status: "500"}, {Status: "500"},
	}, -1)
	assert.False(t, out.HasErrors())
}

func TestBulkValidateResponseWrongStatus(t *testing.T) {
	v := bulkValidator()
	out := v.ValidateResponse(500, nil, -1)
	assert.Contains(t, codes(out), issues.BadStatusCode)
}
