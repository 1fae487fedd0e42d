package issues_test

import (
	"testing"

	"github.com/scimcore/scim/issues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyHasNoErrors(t *testing.T) {
	is := issues.New()
	assert.False(t, is.HasErrors())
}

func TestAddErrorIsLocated(t *testing.T) {
	is := issues.New()
	is.AddError(issues.Missing, issues.Location{"userName"})
	require.True(t, is.HasErrors())

	var got []issues.Issue
	is.Each(func(i issues.Issue) { got = append(got, i) })
	require.Len(t, got, 1)
	assert.Equal(t, issues.Missing, got[0].Code)
	assert.Equal(t, issues.Location{"userName"}, got[0].Location)
}

func TestWarningsDoNotCountAsErrors(t *testing.T) {
	is := issues.New()
	is.AddWarning(issues.MustBeOneOf, issues.Location{"title"})
	assert.False(t, is.HasErrors())

	dict := is.ToDict(false)
	child := dict["title"].(map[string]interface{})
	assert.Contains(t, child, "_warnings")
	assert.NotContains(t, child, "_errors")
}

func TestMergePrefixesLocation(t *testing.T) {
	inner := issues.New()
	inner.AddError(issues.BadType, issues.Location{"value"})

	outer := issues.New()
	outer.Merge(inner, issues.Location{"emails", 0})

	dict := outer.ToDict(false)
	emails := dict["emails"].(map[string]interface{})
	elem := emails["0"].(map[string]interface{})
	value := elem["value"].(map[string]interface{})
	errs := value["_errors"].([]map[string]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, int(issues.BadType), errs[0]["code"])
}

func TestToDictCanonicalKeyIsErrors(t *testing.T) {
	is := issues.New()
	is.AddError(issues.Missing, issues.Location{})
	dict := is.ToDict(false)
	_, ok := dict["_errors"]
	assert.True(t, ok, `ToDict must key error lists as "_errors"`)
}

func TestAddErrorfFormatsTemplate(t *testing.T) {
	is := issues.New()
	is.AddErrorf(issues.UnknownOperator, issues.Location{"filter"}, "neq")

	var got issues.Issue
	is.Each(func(i issues.Issue) { got = i })
	assert.Equal(t, `unknown operator "neq"`, got.Message)
}
