package filter

import "strings"

// AttrPath is a possibly URI-prefixed attribute path with an optional
// sub-attribute (spec §4.F grammar: attrpath).
type AttrPath struct {
	URI  string
	Attr string
	Sub  string
}

// HasSub reports whether the path names a sub-attribute.
func (p AttrPath) HasSub() bool { return p.Sub != "" }

func (p AttrPath) String() string {
	s := ""
	if p.URI != "" {
		s += p.URI + ":"
	}
	s += p.Attr
	if p.HasSub() {
		s += "." + p.Sub
	}
	return s
}

// Expression is a node in a parsed filter AST (spec §9 Design Notes:
// Or|And|Not|Pr|Cmp|Complex).
//
// There is no ToDict/FromDict on Expression: the round-trip invariant
// (spec §4.F/§8) is satisfied by String() alone (parse -> serialize
// reparses to an equivalent expression), and no caller needs a nested-
// map form of the AST independent of its wire string. A dict encoding
// would just be String()'s information laid out as a tree instead of
// text.
type Expression interface {
	isExpression()
	String() string
}

// Or is a disjunction of filters.
type Or struct{ Left, Right Expression }

// And is a conjunction of filters.
type And struct{ Left, Right Expression }

// Not negates an inner filter.
type Not struct{ Expr Expression }

// Present is the unary "attr pr" filter: true when the attribute is
// non-empty, non-null, and present.
type Present struct{ Path AttrPath }

// Compare is a binary "attr OP value" filter.
type Compare struct {
	Path  AttrPath
	Op    CompareOp
	Value interface{} // string, float64, bool, or nil (JSON null)
}

// Complex is the "attr[filter]" complex-attribute-group filter: true if
// any element of the multi-valued complex attribute at Path satisfies
// Inner (spec §4.F).
type Complex struct {
	Path  AttrPath
	Inner Expression
}

func (Or) isExpression()      {}
func (And) isExpression()     {}
func (Not) isExpression()     {}
func (Present) isExpression() {}
func (Compare) isExpression() {}
func (Complex) isExpression() {}

func (e Or) String() string  { return "(" + e.Left.String() + " or " + e.Right.String() + ")" }
func (e And) String() string { return "(" + e.Left.String() + " and " + e.Right.String() + ")" }
func (e Not) String() string { return "not (" + e.Expr.String() + ")" }
func (e Present) String() string {
	return e.Path.String() + " pr"
}
func (e Compare) String() string {
	return e.Path.String() + " " + e.Op.String() + " " + valueString(e.Value)
}
func (e Complex) String() string {
	inner := ""
	if e.Inner != nil {
		inner = e.Inner.String()
	}
	return e.Path.String() + "[" + inner + "]"
}

func valueString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		escaped := strings.ReplaceAll(t, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `'`, `\'`)
		return "'" + escaped + "'"
	case float64:
		return formatNumber(t)
	default:
		return "null"
	}
}
