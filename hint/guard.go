package hint

import (
	"fmt"
	"strings"

	"github.com/termfx/hintfix/core"
)

// ParseGuard parses one guard expression:
//
//	or    := and ('||' and)*
//	and   := unary ('&&' unary)*
//	unary := '!' unary | primary
//	primary := '(' or ')'
//	         | placeholder 'instanceof' type
//	         | name '(' args ')'
//	         | placeholder            (sugar for matchesAny)
//	         | name                   (zero-argument call)
//
// Arguments stay verbatim: placeholders keep their $ prefix and string
// literals keep their quotes. Names are not resolved here.
func ParseGuard(src string) (core.GuardExpression, error) {
	toks, err := lexGuard(src)
	if err != nil {
		return nil, err
	}
	p := &guardParser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("unexpected %q", p.peek().text)
	}
	return expr, nil
}

type gtokenKind int

const (
	tokAtom gtokenKind = iota
	tokString
	tokLParen
	tokRParen
	tokComma
	tokNot
	tokAnd
	tokOr
	tokEOF
)

type gtoken struct {
	kind gtokenKind
	text string
}

func lexGuard(src string) ([]gtoken, error) {
	var toks []gtoken
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			toks = append(toks, gtoken{tokLParen, "("})
			i++
		case ch == ')':
			toks = append(toks, gtoken{tokRParen, ")"})
			i++
		case ch == ',':
			toks = append(toks, gtoken{tokComma, ","})
			i++
		case ch == '!':
			toks = append(toks, gtoken{tokNot, "!"})
			i++
		case strings.HasPrefix(src[i:], "&&"):
			toks = append(toks, gtoken{tokAnd, "&&"})
			i += 2
		case strings.HasPrefix(src[i:], "||"):
			toks = append(toks, gtoken{tokOr, "||"})
			i += 2
		case ch == '"':
			j := i + 1
			for j < len(src) {
				if src[j] == '\\' {
					j += 2
					continue
				}
				if src[j] == '"' {
					break
				}
				j++
			}
			if j >= len(src) {
				return nil, fmt.Errorf("unterminated string literal")
			}
			toks = append(toks, gtoken{tokString, src[i : j+1]})
			i = j + 1
		default:
			j := i
			for j < len(src) && isAtomChar(src[j]) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("unexpected character %q", ch)
			}
			toks = append(toks, gtoken{tokAtom, src[i:j]})
			i = j
		}
	}
	return append(toks, gtoken{kind: tokEOF}), nil
}

func isAtomChar(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}
	return strings.IndexByte("_$.[]<>-", ch) >= 0
}

type guardParser struct {
	toks []gtoken
	pos  int
}

func (p *guardParser) peek() gtoken { return p.toks[p.pos] }
func (p *guardParser) next() gtoken { t := p.toks[p.pos]; p.pos++; return t }
func (p *guardParser) done() bool   { return p.peek().kind == tokEOF }

func (p *guardParser) parseOr() (core.GuardExpression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = core.Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *guardParser) parseAnd() (core.GuardExpression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = core.And{Left: left, Right: right}
	}
	return left, nil
}

func (p *guardParser) parseUnary() (core.GuardExpression, error) {
	if p.peek().kind == tokNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return core.Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *guardParser) parsePrimary() (core.GuardExpression, error) {
	tok := p.next()
	switch tok.kind {
	case tokLParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, fmt.Errorf("missing ')'")
		}
		return expr, nil
	case tokAtom:
		return p.parseCall(tok.text)
	}
	return nil, fmt.Errorf("unexpected %q", tok.text)
}

func (p *guardParser) parseCall(name string) (core.GuardExpression, error) {
	// $x instanceof Type desugars to instanceof($x, Type)
	if p.peek().kind == tokAtom && p.peek().text == "instanceof" {
		if !strings.HasPrefix(name, "$") {
			return nil, fmt.Errorf("instanceof requires a placeholder on the left")
		}
		p.next()
		typeTok := p.next()
		if typeTok.kind != tokAtom {
			return nil, fmt.Errorf("instanceof requires a type name")
		}
		return core.FunctionCall{Name: "instanceof", Args: []string{name, typeTok.text}}, nil
	}

	if p.peek().kind == tokLParen {
		p.next()
		var args []string
		for p.peek().kind != tokRParen {
			arg := p.next()
			if arg.kind != tokAtom && arg.kind != tokString {
				return nil, fmt.Errorf("unexpected %q in argument list", arg.text)
			}
			args = append(args, arg.text)
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			if p.peek().kind != tokRParen {
				return nil, fmt.Errorf("missing ',' or ')' in argument list")
			}
		}
		p.next()
		return core.FunctionCall{Name: name, Args: args}, nil
	}

	// a bare placeholder asks whether it bound anything
	if strings.HasPrefix(name, "$") {
		return core.FunctionCall{Name: "matchesAny", Args: []string{name}}, nil
	}
	return core.FunctionCall{Name: name}, nil
}
