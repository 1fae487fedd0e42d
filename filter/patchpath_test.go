package filter_test

import (
	"testing"

	"github.com/scimcore/scim/filter"
	"github.com/scimcore/scim/issues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathPlain(t *testing.T) {
	p, is := filter.ParsePath("displayName")
	require.False(t, is.HasErrors())
	assert.Equal(t, "displayName", p.AttrPath.Attr)
	assert.False(t, p.HasValueFilter())
}

func TestParsePathDottedSubAttr(t *testing.T) {
	p, is := filter.ParsePath("name.familyName")
	require.False(t, is.HasErrors())
	assert.Equal(t, "name", p.AttrPath.Attr)
	assert.Equal(t, "familyName", p.AttrPath.Sub)
}

func TestParsePathEmptyIsNotAnError(t *testing.T) {
	p, is := filter.ParsePath("")
	assert.False(t, is.HasErrors())
	assert.Equal(t, filter.Path{}, p)
}

func TestParsePathValueFiltered(t *testing.T) {
	p, is := filter.ParsePath(`emails[type eq 'work']`)
	require.False(t, is.HasErrors())
	assert.Equal(t, "emails", p.AttrPath.Attr)
	require.True(t, p.HasValueFilter())
	cmp, ok := p.ValueFilter.(filter.Compare)
	require.True(t, ok)
	assert.Equal(t, "type", cmp.Path.Attr)
}

func TestParsePathValueFilteredWithTrailingSubAttr(t *testing.T) {
	p, is := filter.ParsePath(`emails[type eq 'work'].value`)
	require.False(t, is.HasErrors())
	assert.True(t, p.HasValueFilter())
	assert.Equal(t, "value", p.SubAttr)
}

func TestParsePathComplexOnSubAttrForbidden(t *testing.T) {
	_, is := filter.ParsePath(`name.familyName[type eq 'work']`)
	var codes []issues.Code
	is.Each(func(i issues.Issue) { codes = append(codes, i.Code) })
	assert.Contains(t, codes, issues.ComplexOnSubAttr)
}

func TestParsePathUnbalancedBracket(t *testing.T) {
	_, is := filter.ParsePath(`emails[type eq 'work'`)
	var codes []issues.Code
	is.Each(func(i issues.Issue) { codes = append(codes, i.Code) })
	assert.Contains(t, codes, issues.UnbalancedBrackets)
}

func TestParsePathRoundTrip(t *testing.T) {
	p, is := filter.ParsePath(`emails[type eq 'work'].value`)
	require.False(t, is.HasErrors())
	assert.Equal(t, `emails[type eq 'work'].value`, p.String())
}
