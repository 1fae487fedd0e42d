package scimdata_test

import (
	"testing"

	"github.com/scimcore/scim/scimdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingReturnsSentinel(t *testing.T) {
	d := scimdata.New()
	v := d.Get("userName")
	assert.True(t, scimdata.IsMissing(v))
}

func TestSetGetCaseInsensitive(t *testing.T) {
	d := scimdata.New()
	d.Set("userName", "bjensen")
	assert.Equal(t, "bjensen", d.Get("USERNAME"))
}

func TestDottedPathAutoVivifiesComplex(t *testing.T) {
	d := scimdata.New()
	d.Set("name.familyName", "Jensen")
	assert.Equal(t, "Jensen", d.Get("name.familyName"))

	keys := d.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, "name", keys[0])
}

func TestSchemaURIPrefixedKeyNests(t *testing.T) {
	const uri = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
	d := scimdata.New()
	d.Set(uri+":employeeNumber", "701984")
	assert.Equal(t, "701984", d.Get(uri+":employeeNumber"))

	dict := d.ToDict()
	ext, ok := dict[uri].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "701984", ext["employeeNumber"])
}

func TestProjectionAcrossMultiValuedComplex(t *testing.T) {
	d := scimdata.New()
	email1 := scimdata.New()
	email1.Set("value", "a@example.com")
	email2 := scimdata.New()
	email2.Set("value", "b@example.com")
	d.Set("emails", []interface{}{email1, email2})

	got := d.Get("emails.value")
	arr, ok := got.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"a@example.com", "b@example.com"}, arr)
}

func TestMissingIsDistinctFromExplicitNull(t *testing.T) {
	d := scimdata.New()
	d.Set("nickName", nil)
	assert.True(t, d.Has("nickName"), "an explicit null is present, unlike an absent key")
	assert.False(t, scimdata.IsMissing(d.Get("nickName")))
	assert.Nil(t, d.Get("nickName"))

	assert.False(t, d.Has("neverSet"))
	assert.True(t, scimdata.IsMissing(d.Get("neverSet")))
}

func TestDeleteRemovesKeyAndOrder(t *testing.T) {
	d := scimdata.New()
	d.Set("userName", "bjensen")
	d.Delete("username")
	assert.True(t, scimdata.IsMissing(d.Get("userName")))
	assert.Empty(t, d.Keys())
}

func TestFromMapWrapsNestedObjects(t *testing.T) {
	d := scimdata.FromMap(map[string]interface{}{
		"name": map[string]interface{}{"familyName": "Jensen"},
	})
	assert.Equal(t, "Jensen", d.Get("name.familyName"))
}
