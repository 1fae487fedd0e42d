package filter_test

import (
	"testing"

	"github.com/scimcore/scim/filter"
	"github.com/scimcore/scim/issues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codesOf(t *testing.T, is *issues.Issues) []issues.Code {
	t.Helper()
	var out []issues.Code
	is.Each(func(i issues.Issue) { out = append(out, i.Code) })
	return out
}

func TestParseSimpleCompare(t *testing.T) {
	expr, is := filter.ParseFilter(`userName eq 'bjensen'`)
	require.False(t, is.HasErrors())
	cmp, ok := expr.(filter.Compare)
	require.True(t, ok)
	assert.Equal(t, "userName", cmp.Path.Attr)
	assert.Equal(t, filter.OpEq, cmp.Op)
	assert.Equal(t, "bjensen", cmp.Value)
}

func TestParsePresent(t *testing.T) {
	expr, is := filter.ParseFilter(`title pr`)
	require.False(t, is.HasErrors())
	_, ok := expr.(filter.Present)
	assert.True(t, ok)
}

func TestParseAndOrNotPrecedence(t *testing.T) {
	expr, is := filter.ParseFilter(`userName eq 'bjensen' or (title pr and not (active eq false))`)
	require.False(t, is.HasErrors())
	or, ok := expr.(filter.Or)
	require.True(t, ok)
	and, ok := or.Right.(filter.And)
	require.True(t, ok)
	_, ok = and.Right.(filter.Not)
	assert.True(t, ok)
}

func TestParseComplexGroup(t *testing.T) {
	expr, is := filter.ParseFilter(`emails[type eq 'work' and value co '@example.com']`)
	require.False(t, is.HasErrors())
	cx, ok := expr.(filter.Complex)
	require.True(t, ok)
	assert.Equal(t, "emails", cx.Path.Attr)
	_, ok = cx.Inner.(filter.And)
	assert.True(t, ok)
}

func TestParseURIQualifiedAttrPath(t *testing.T) {
	expr, is := filter.ParseFilter(`urn:ietf:params:scim:schemas:extension:enterprise:2.0:User:employeeNumber eq '701984'`)
	require.False(t, is.HasErrors())
	cmp := expr.(filter.Compare)
	assert.Equal(t, "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User", cmp.Path.URI)
	assert.Equal(t, "employeeNumber", cmp.Path.Attr)
}

func TestParseDottedSubAttrPath(t *testing.T) {
	expr, is := filter.ParseFilter(`name.familyName eq 'Jensen'`)
	require.False(t, is.HasErrors())
	cmp := expr.(filter.Compare)
	assert.Equal(t, "name", cmp.Path.Attr)
	assert.Equal(t, "familyName", cmp.Path.Sub)
}

// TestUnknownOperatorAndOperandMismatchBothReported exercises the
// exhaustive-error-collection requirement: two independent problems in
// one filter must both surface, not just the first encountered.
func TestUnknownOperatorAndOperandMismatchBothReported(t *testing.T) {
	_, is := filter.ParseFilter(`userName eq 'johndoe' or (emails[type neq 'home'] and nickName sw 15)`)
	codes := codesOf(t, is)
	assert.Contains(t, codes, issues.UnknownOperator)
	assert.Contains(t, codes, issues.OperandTypeMismatch)
}

func TestUnbalancedParens(t *testing.T) {
	_, is := filter.ParseFilter(`(userName eq 'bjensen'`)
	assert.Contains(t, codesOf(t, is), issues.UnbalancedParens)
}

func TestUnbalancedBrackets(t *testing.T) {
	_, is := filter.ParseFilter(`emails[type eq 'work'`)
	assert.Contains(t, codesOf(t, is), issues.UnbalancedBrackets)
}

func TestEmptyParenGroup(t *testing.T) {
	_, is := filter.ParseFilter(`()`)
	assert.Contains(t, codesOf(t, is), issues.EmptyParenGroup)
}

func TestEmptyComplexGroup(t *testing.T) {
	_, is := filter.ParseFilter(`emails[]`)
	assert.Contains(t, codesOf(t, is), issues.EmptyComplexGroup)
}

func TestNestedComplexGroupForbidden(t *testing.T) {
	_, is := filter.ParseFilter(`emails[addresses[type eq 'work'] pr]`)
	assert.Contains(t, codesOf(t, is), issues.NestedComplexGroup)
}

func TestOperatorMissingOperand(t *testing.T) {
	_, is := filter.ParseFilter(`userName eq`)
	assert.Contains(t, codesOf(t, is), issues.OperatorMissingOperand)
}

func TestStringRoundTrip(t *testing.T) {
	expr, is := filter.ParseFilter(`userName eq 'bjensen'`)
	require.False(t, is.HasErrors())
	reparsed, is2 := filter.ParseFilter(expr.String())
	require.False(t, is2.HasErrors())
	assert.Equal(t, expr.String(), reparsed.String())
}
