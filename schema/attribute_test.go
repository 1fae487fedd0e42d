package schema_test

import (
	"testing"

	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiredMissing(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{Name: "userName", Type: schema.TypeString, Required: true})
	out := issues.New()
	attr.Validate(nil, issues.Location{"userName"}, out)
	require.True(t, out.HasErrors())

	var got issues.Issue
	out.Each(func(i issues.Issue) { got = i })
	assert.Equal(t, issues.Missing, got.Code)
}

func TestValidateBadType(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{Name: "active", Type: schema.TypeBoolean})
	out := issues.New()
	attr.Validate("not-a-bool", issues.Location{"active"}, out)
	require.True(t, out.HasErrors())
}

func TestValidateDateTimeSyntax(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{Name: "created", Type: schema.TypeDateTime})

	out := issues.New()
	attr.Validate("2011-05-13T04:42:34Z", issues.Location{"created"}, out)
	assert.False(t, out.HasErrors())

	out2 := issues.New()
	attr.Validate("not-a-date", issues.Location{"created"}, out2)
	assert.True(t, out2.HasErrors())
}

func TestValidateCanonicalValuesWarnsNotErrors(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{
		Name: "type", Type: schema.TypeString, CanonicalValues: []string{"work", "home"},
	})
	out := issues.New()
	attr.Validate("other", issues.Location{"type"}, out)
	assert.False(t, out.HasErrors())
}

func TestValidateMultiValuedMultiplePrimary(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{
		Name: "emails", Type: schema.TypeComplex, MultiValued: true,
		SubAttributes: []schema.Attribute{
			schema.NewAttribute(schema.Params{Name: "value", Type: schema.TypeString}),
			schema.NewAttribute(schema.Params{Name: "primary", Type: schema.TypeBoolean}),
		},
	})
	out := issues.New()
	attr.Validate([]interface{}{
		map[string]interface{}{"value": "a@example.com", "primary": true},
		map[string]interface{}{"value": "b@example.com", "primary": true},
	}, issues.Location{"emails"}, out)

	var codes []issues.Code
	out.Each(func(i issues.Issue) { codes = append(codes, i.Code) })
	assert.Contains(t, codes, issues.MultiplePrimary)
}

func TestValidateReferenceRequiresAbsoluteURIForExternalType(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{
		Name: "photo", Type: schema.TypeReference, ReferenceTypes: []schema.ReferenceType{"external"},
	})

	out := issues.New()
	attr.Validate("https://example.com/photo.jpg", issues.Location{"photo"}, out)
	assert.False(t, out.HasErrors())

	out2 := issues.New()
	attr.Validate("http://example.com/\x7f", issues.Location{"photo"}, out2)
	assert.Contains(t, codesOf(out2), issues.UnknownReferenceTarget)

	out3 := issues.New()
	attr.Validate("relative/path", issues.Location{"photo"}, out3)
	assert.Contains(t, codesOf(out3), issues.UnknownReferenceTarget)
}

func TestValidateReferenceAllowsRelativeForResourceType(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{
		Name: "manager", Type: schema.TypeReference, ReferenceTypes: []schema.ReferenceType{"User"},
	})
	out := issues.New()
	attr.Validate("../Users/26118915-6090-4610-87e4-49d8ca9f808d", issues.Location{"manager"}, out)
	assert.False(t, out.HasErrors())
}

func TestValidateMutualExclusionOnComplexSubAttributes(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{
		Name: "certificate", Type: schema.TypeComplex,
		SubAttributes: []schema.Attribute{
			schema.NewAttribute(schema.Params{Name: "value", Type: schema.TypeString, ExclusiveWith: []string{"ref"}}),
			schema.NewAttribute(schema.Params{Name: "ref", Type: schema.TypeReference, ReferenceTypes: []schema.ReferenceType{"external"}}),
		},
	})
	out := issues.New()
	attr.Validate(map[string]interface{}{
		"value": "abc123",
		"ref":   "https://example.com/cert",
	}, issues.Location{"certificate"}, out)
	assert.Contains(t, codesOf(out), issues.MutuallyExclusive)
}

func codesOf(out *issues.Issues) []issues.Code {
	var codes []issues.Code
	out.Each(func(i issues.Issue) { codes = append(codes, i.Code) })
	return codes
}

func TestDeserializeSerializeRoundTripIdentityByDefault(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{Name: "displayName", Type: schema.TypeString})
	got := attr.Serialize(attr.Deserialize("Barbara Jensen"))
	assert.Equal(t, "Barbara Jensen", got)
}

func TestCustomCodecAppliesOnDeserializeAndSerialize(t *testing.T) {
	attr := schema.NewAttribute(schema.Params{
		Name: "secret", Type: schema.TypeString,
		Codec: schema.Codec{
			Serialize:   func(v interface{}) interface{} { return "***" },
			Deserialize: func(v interface{}) interface{} { return "decoded" },
		},
	})
	assert.Equal(t, "decoded", attr.Deserialize("***"))
	assert.Equal(t, "***", attr.Serialize("hunter2"))
}
