// Package parser turns array-literal text into a value tree. It implements
// both decode tiers over the same token stream: the strict tier accepts a
// JSON-compatible grammar extended with unquoted identifier keys,
// single-quoted strings and trailing commas; the permissive tier additionally
// accepts a small whitelist of side-effect-free forms (substitution-free
// template strings, unary plus and minus, parenthesized literals). Neither
// tier evaluates anything: a construct that would require execution, such as
// an identifier used as a value, is a parse error in both.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"arrayfile/internal/lexer"
	"arrayfile/internal/token"
	"arrayfile/value"
)

const maxDepth = 200

type prefixParseFn func() value.Value

// Parser holds the state of a single parse over literal text.
type Parser struct {
	l      *lexer.Lexer
	errors Errors

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	depth          int
}

// New creates a strict-tier parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.NUMBER, p.parseNumber)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.TRUE, p.parseBool)
	p.registerPrefix(token.FALSE, p.parseBool)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.LBRACK, p.parseArray)
	p.registerPrefix(token.LBRACE, p.parseObject)
	p.registerPrefix(token.ILLEGAL, p.parseIllegal)

	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

// NewPermissive creates a fallback-tier parser reading from l. It extends the
// strict grammar with the whitelisted side-effect-free forms and with number
// notations the strict tier rejects (hexadecimal).
func NewPermissive(l *lexer.Lexer) *Parser {
	p := New(l)
	p.registerPrefix(token.NUMBER, p.parseNumberPermissive)
	p.registerPrefix(token.TEMPLATE, p.parseString)
	p.registerPrefix(token.MINUS, p.parseUnary)
	p.registerPrefix(token.PLUS, p.parseUnary)
	p.registerPrefix(token.LPAREN, p.parseGrouped)
	return p
}

// Errors returns the diagnostics collected during parsing.
func (p *Parser) Errors() Errors {
	return p.errors
}

// Parse parses the literal text as a single expression and returns the
// resulting value. A nil value is returned when diagnostics were collected;
// callers must consult Errors.
func (p *Parser) Parse() value.Value {
	if p.curTokenIs(token.EOF) {
		p.addError("empty literal text")
		return nil
	}

	v := p.parseValue()

	if v != nil && !p.curTokenIs(token.EOF) {
		p.addError(fmt.Sprintf("unexpected token after literal: %s (%q)", p.curToken.Type, p.curToken.Literal))
		return nil
	}
	if len(p.errors) > 0 {
		return nil
	}
	return v
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// The contract for all parse functions is that they are entered with
// p.curToken being the first token of the construct, and they must return
// with p.curToken pointing to the token *after* the construct.

func (p *Parser) parseValue() value.Value {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		p.addError("literal nesting exceeds maximum depth")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	return prefix()
}

func (p *Parser) parseNumber() value.Value {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(fmt.Sprintf("could not parse %q as number", p.curToken.Literal))
		p.nextToken()
		return nil
	}
	p.nextToken()
	return &value.Number{Val: v}
}

func (p *Parser) parseNumberPermissive() value.Value {
	lit := p.curToken.Literal
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		n, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			p.addError(fmt.Sprintf("could not parse %q as number", lit))
			p.nextToken()
			return nil
		}
		p.nextToken()
		return &value.Number{Val: float64(n)}
	}
	return p.parseNumber()
}

func (p *Parser) parseString() value.Value {
	v := &value.String{Val: p.curToken.Literal}
	p.nextToken()
	return v
}

func (p *Parser) parseBool() value.Value {
	v := &value.Bool{Val: p.curTokenIs(token.TRUE)}
	p.nextToken()
	return v
}

func (p *Parser) parseNull() value.Value {
	p.nextToken()
	return &value.Null{}
}

func (p *Parser) parseIllegal() value.Value {
	p.addError(fmt.Sprintf("illegal token: %s", p.curToken.Literal))
	p.nextToken()
	return nil
}

// parseUnary handles the whitelisted prefix operators. The operand must be a
// number; negating or coercing anything else would need evaluation semantics.
func (p *Parser) parseUnary() value.Value {
	op := p.curToken
	p.nextToken()
	operand := p.parseValue()
	if operand == nil {
		return nil
	}
	n, ok := operand.(*value.Number)
	if !ok {
		p.errors = append(p.errors, Error{
			Message: fmt.Sprintf("unary %q applied to non-numeric literal", op.Literal),
			Line:    op.Line,
			Column:  op.Column,
		})
		return nil
	}
	if op.Type == token.MINUS {
		return &value.Number{Val: -n.Val}
	}
	return n
}

func (p *Parser) parseGrouped() value.Value {
	p.nextToken() // consume '('
	v := p.parseValue()
	if v == nil {
		return nil
	}
	if !p.curTokenIs(token.RPAREN) {
		p.addError(fmt.Sprintf("expected ')' got %s", p.curToken.Type))
		return nil
	}
	p.nextToken() // consume ')'
	return v
}

func (p *Parser) parseArray() value.Value {
	arr := &value.Array{Elems: []value.Value{}}
	p.nextToken() // consume '['

	for !p.curTokenIs(token.RBRACK) && !p.curTokenIs(token.EOF) {
		el := p.parseValue()
		if el == nil {
			return nil
		}
		arr.Elems = append(arr.Elems, el)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.curTokenIs(token.RBRACK) {
		p.addError(fmt.Sprintf("unterminated array literal, expected ']' got %s", p.curToken.Type))
		return nil
	}
	p.nextToken() // consume ']'
	return arr
}

func (p *Parser) parseObject() value.Value {
	obj := &value.Object{Pairs: []value.Pair{}}
	p.nextToken() // consume '{'

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		key, ok := p.parseObjectKey()
		if !ok {
			return nil
		}

		if !p.curTokenIs(token.COLON) {
			p.addError(fmt.Sprintf("expected ':' after object key %q, got %s", key, p.curToken.Type))
			return nil
		}
		p.nextToken() // consume ':'

		v := p.parseValue()
		if v == nil {
			return nil
		}
		// Duplicate keys collapse last-wins, keeping the first position,
		// matching object literal semantics in the source language.
		obj.Set(key, v)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.curTokenIs(token.RBRACE) {
		p.addError(fmt.Sprintf("unterminated object literal, expected '}' got %s", p.curToken.Type))
		return nil
	}
	p.nextToken() // consume '}'
	return obj
}

func (p *Parser) parseObjectKey() (string, bool) {
	var key string
	switch p.curToken.Type {
	case token.STRING, token.NUMBER:
		key = p.curToken.Literal
	case token.IDENT, token.TRUE, token.FALSE, token.NULL:
		// Keywords are plain identifiers in key position.
		key = p.curToken.Literal
	default:
		p.addError(fmt.Sprintf("invalid token for object key: %s (%q)", p.curToken.Type, p.curToken.Literal))
		return "", false
	}
	p.nextToken()
	return key, true
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	msg := fmt.Sprintf("unexpected token %s (%q) in literal", t.Type, t.Literal)
	if t.Type == token.IDENT {
		msg = fmt.Sprintf("identifier %q as a value requires evaluation", t.Literal)
	}
	p.errors = append(p.errors, Error{Message: msg, Line: t.Line, Column: t.Column})
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, Error{Message: msg, Line: p.curToken.Line, Column: p.curToken.Column})
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}
