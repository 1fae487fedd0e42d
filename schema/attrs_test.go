package schema_test

import (
	"errors"
	"testing"

	"github.com/scimcore/scim/scimerr"
	"github.com/scimcore/scim/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttrsPanicsOnDuplicateCaseInsensitive(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, scimerr.ErrDuplicateAttribute))
	}()
	schema.NewAttrs(
		schema.NewAttribute(schema.Params{Name: "userName", Type: schema.TypeString}),
		schema.NewAttribute(schema.Params{Name: "USERNAME", Type: schema.TypeString}),
	)
}

func TestAttrsGetResolvesSubAttribute(t *testing.T) {
	attrs := schema.NewAttrs(
		schema.NewAttribute(schema.Params{
			Name: "name", Type: schema.TypeComplex,
			SubAttributes: []schema.Attribute{
				schema.NewAttribute(schema.Params{Name: "familyName", Type: schema.TypeString}),
			},
		}),
	)
	attr, ok := attrs.Get(schema.AttrRep{Attr: schema.MustName("name"), Sub: schema.MustName("familyName")})
	require.True(t, ok)
	assert.Equal(t, "familyName", attr.Name().String())
}

func TestBoundedAttrsResolveFallsThroughExtensions(t *testing.T) {
	base := schema.NewAttrs(schema.NewAttribute(schema.Params{Name: "userName", Type: schema.TypeString}))
	ba := schema.NewBoundedAttrs("urn:ietf:params:scim:schemas:core:2.0:User", base)
	ext := schema.NewAttrs(schema.NewAttribute(schema.Params{Name: "employeeNumber", Type: schema.TypeString}))
	require.True(t, ba.Extend("urn:ietf:params:scim:schemas:extension:enterprise:2.0:User", ext))

	rep, attr, ok := ba.Resolve(schema.AttrRep{Attr: schema.MustName("employeeNumber")})
	require.True(t, ok)
	assert.True(t, rep.Extension)
	assert.Equal(t, "employeeNumber", attr.Name().String())
}
