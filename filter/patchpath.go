package filter

import (
	"strings"

	"github.com/scimcore/scim/issues"
)

// Path is a parsed PATCH path (spec §4.G grammar: attrpath ("[" filter
// "]")? ("." subname)?). Attr/Sub mirror AttrPath; ValueFilter and
// SubAttr are only set when the respective optional clause was present.
type Path struct {
	AttrPath    AttrPath
	ValueFilter Expression // the bracketed "attr[filter]" selector, if any
	SubAttr     string     // the sub-attribute named after a bracketed selector, if any
}

// HasValueFilter reports whether the path selects a subset of a
// multi-valued attribute via a bracketed filter.
func (p Path) HasValueFilter() bool { return p.ValueFilter != nil }

func (p Path) String() string {
	s := p.AttrPath.String()
	if p.ValueFilter != nil {
		s += "[" + p.ValueFilter.String() + "]"
	}
	if p.SubAttr != "" {
		s += "." + p.SubAttr
	}
	return s
}

// ParsePath parses a PATCH operation path. Like ParseFilter, it collects
// every independent grammar problem into the returned Issues instead of
// stopping at the first.
func ParsePath(input string) (Path, *issues.Issues) {
	out := issues.New()
	if strings.TrimSpace(input) == "" {
		return Path{}, out
	}

	p := &parser{toks: scan(input), out: out}
	if p.cur().kind != tokIdent {
		out.AddError(issues.BadFilterExpression, issues.Location{"path"})
		return Path{}, out
	}

	attrPath := splitAttrPath(p.advance().text)
	path := Path{AttrPath: attrPath}

	if p.cur().kind == tokLBracket {
		if attrPath.HasSub() {
			out.AddError(issues.ComplexOnSubAttr, issues.Location{"path"})
		}
		p.advance()
		if p.cur().kind == tokRBracket {
			out.AddError(issues.EmptyComplexGroup, issues.Location{"path"})
			p.advance()
		} else {
			path.ValueFilter = p.parseOr(1)
			if p.cur().kind == tokRBracket {
				p.advance()
			} else {
				out.AddError(issues.UnbalancedBrackets, issues.Location{"path"})
			}
		}
		if p.cur().kind == tokIdent && strings.HasPrefix(p.cur().text, ".") {
			path.SubAttr = strings.TrimPrefix(p.advance().text, ".")
		}
	}

	if p.cur().kind != tokEOF {
		out.AddError(issues.BadFilterExpression, issues.Location{"path"})
	}
	return path, out
}
