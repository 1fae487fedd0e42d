package filter

import (
	"strconv"
	"strings"

	"github.com/scimcore/scim/issues"
)

// ParseFilter parses a SCIM filter expression (spec §4.F). It never stops
// at the first problem: every independent grammar and operand-type error
// is collected into the returned Issues (spec §8, scenario S2), rooted at
// the "filter" key. expr is the best-effort parse tree even when issues
// were found, so callers can still inspect structure for diagnostics;
// callers MUST check the returned Issues before trusting expr.
func ParseFilter(input string) (Expression, *issues.Issues) {
	out := issues.New()
	p := &parser{toks: scan(input), out: out}
	expr := p.parseOr(0)
	if p.cur().kind == tokRParen {
		out.AddError(issues.UnbalancedParens, issues.Location{"filter"})
	} else if p.cur().kind != tokEOF {
		out.AddError(issues.BadFilterExpression, issues.Location{"filter"})
	}
	return expr, out
}

func scan(input string) []token {
	l := newLexer(input)
	var toks []token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.kind == tokEOF {
			break
		}
	}
	return toks
}

type parser struct {
	toks []token
	pos  int
	out  *issues.Issues
}

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parseOr := and ("or" and)*
func (p *parser) parseOr(depth int) Expression {
	left := p.parseAnd(depth)
	for p.cur().kind == tokOr {
		p.advance()
		right := p.parseAnd(depth)
		left = Or{Left: left, Right: right}
	}
	return left
}

// parseAnd := not ("and" not)*
func (p *parser) parseAnd(depth int) Expression {
	left := p.parseNot(depth)
	for p.cur().kind == tokAnd {
		p.advance()
		right := p.parseNot(depth)
		left = And{Left: left, Right: right}
	}
	return left
}

// parseNot := "not"? term
func (p *parser) parseNot(depth int) Expression {
	if p.cur().kind == tokNot {
		p.advance()
		return Not{Expr: p.parseTerm(depth)}
	}
	return p.parseTerm(depth)
}

// parseTerm := "(" filter ")" | complex | unary | binary
func (p *parser) parseTerm(depth int) Expression {
	switch p.cur().kind {
	case tokLParen:
		p.advance()
		if p.cur().kind == tokRParen {
			p.out.AddError(issues.EmptyParenGroup, issues.Location{"filter"})
			p.advance()
			return nil
		}
		inner := p.parseOr(depth)
		if p.cur().kind == tokRParen {
			p.advance()
		} else {
			p.out.AddError(issues.UnbalancedParens, issues.Location{"filter"})
		}
		return inner
	case tokIdent:
		return p.parseAttrExpr(depth)
	case tokEOF:
		p.out.AddError(issues.OperatorMissingOperand, issues.Location{"filter"})
		return nil
	default:
		p.out.AddError(issues.BadFilterExpression, issues.Location{"filter"})
		p.advance()
		return nil
	}
}

func (p *parser) parseAttrExpr(depth int) Expression {
	path := p.parseAttrPath()

	switch p.cur().kind {
	case tokLBracket:
		return p.parseComplex(path, depth)
	case tokPr:
		p.advance()
		return Present{Path: path}
	default:
		return p.parseCompare(path)
	}
}

func (p *parser) parseComplex(path AttrPath, depth int) Expression {
	p.advance() // consume '['
	if depth > 0 {
		p.out.AddError(issues.NestedComplexGroup, issues.Location{"filter"})
	}
	if p.cur().kind == tokRBracket {
		p.out.AddError(issues.EmptyComplexGroup, issues.Location{"filter"})
		p.advance()
		return Complex{Path: path}
	}
	inner := p.parseOr(depth + 1)
	if p.cur().kind == tokRBracket {
		p.advance()
	} else {
		p.out.AddError(issues.UnbalancedBrackets, issues.Location{"filter"})
	}
	return Complex{Path: path, Inner: inner}
}

// parseAttrPath consumes one tokIdent and splits it into URI/attr/sub on
// ':' and '.' (the lexer keeps these characters inside a single ident
// token so that e.g. "urn:...:User:name.familyName" lexes as one unit).
func (p *parser) parseAttrPath() AttrPath {
	return splitAttrPath(p.advance().text)
}

// splitAttrPath splits raw ident text into URI/attr/sub on ':' and '.'.
func splitAttrPath(text string) AttrPath {
	var uri string
	if idx := strings.LastIndex(text, ":"); idx >= 0 {
		uri = text[:idx]
		text = text[idx+1:]
	}
	attr, sub := text, ""
	if idx := strings.IndexByte(text, '.'); idx >= 0 {
		attr, sub = text[:idx], text[idx+1:]
	}
	return AttrPath{URI: uri, Attr: attr, Sub: sub}
}

var compareKinds = map[tokenKind]bool{
	tokEq: true, tokNe: true, tokCo: true, tokSw: true, tokEw: true,
	tokGt: true, tokGe: true, tokLt: true, tokLe: true,
}

func (p *parser) parseCompare(path AttrPath) Expression {
	t := p.cur()
	if compareKinds[t.kind] {
		op := tokenToOp[t.kind]
		p.advance()
		return p.finishCompare(path, op)
	}

	if t.kind == tokIdent {
		// Looks like an attempted operator that isn't one of the nine
		// recognized comparators (e.g. "neq"): report 104 but keep
		// parsing so sibling sub-expressions still get checked (S2).
		p.out.AddErrorf(issues.UnknownOperator, issues.Location{"filter"}, t.text)
		p.advance()
		return p.finishCompare(path, OpEq)
	}

	p.out.AddError(issues.OperatorMissingOperand, issues.Location{"filter"})
	return Present{Path: path}
}

func (p *parser) finishCompare(path AttrPath, op CompareOp) Expression {
	value, ok := p.parseValue()
	if !ok {
		p.out.AddError(issues.OperatorMissingOperand, issues.Location{"filter"})
		return Compare{Path: path, Op: op}
	}
	if !operandCompatible(op, value) {
		p.out.AddError(issues.OperandTypeMismatch, issues.Location{"filter"})
	}
	return Compare{Path: path, Op: op, Value: value}
}

func (p *parser) parseValue() (interface{}, bool) {
	t := p.cur()
	switch t.kind {
	case tokString:
		p.advance()
		return t.text, true
	case tokNumber:
		p.advance()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			p.out.AddError(issues.BadValueSyntax, issues.Location{"filter"})
			return nil, false
		}
		return f, true
	case tokTrue:
		p.advance()
		return true, true
	case tokFalse:
		p.advance()
		return false, true
	case tokNull:
		p.advance()
		return nil, true
	case tokIdent:
		p.out.AddErrorf(issues.UnrecognizedOperand, issues.Location{"filter"}, t.text)
		p.advance()
		return nil, false
	default:
		return nil, false
	}
}

// operandCompatible implements the operand-type matrix (spec §4.F): co/
// sw/ew require a string operand; gt/ge/lt/le reject boolean/null;
// eq/ne accept anything.
func operandCompatible(op CompareOp, value interface{}) bool {
	switch op {
	case OpCo, OpSw, OpEw:
		_, ok := value.(string)
		return ok
	case OpGt, OpGe, OpLt, OpLe:
		switch value.(type) {
		case float64, string:
			return true
		default:
			return false
		}
	default:
		return true
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
