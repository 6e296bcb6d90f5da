// Package lexer tokenizes array-literal text. The token stream is shared by
// both decode tiers: the strict parser rejects tokens the JSON-superset
// grammar has no use for (templates, operators, parens), while the permissive
// parser consumes them.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"arrayfile/internal/token"
)

// Lexer holds the state for tokenizing literal text.
type Lexer struct {
	input        []byte
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New creates and returns a new Lexer over input.
func New(input []byte) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1}
	l.readChar()
	return l
}

// NextToken scans the input and returns the next token. Whitespace and
// comments (line and block) are skipped as trivia; the literal grammar is
// not newline-sensitive.
func (l *Lexer) NextToken() token.Token {
	l.skipTrivia()
	tok := token.Token{Line: l.line, Column: l.column}
	switch l.ch {
	case '{', '}', '[', ']', '(', ')', ',', ':', '+':
		tok.Type = token.Type(l.ch)
		tok.Literal = string(l.ch)
	case '-':
		// A minus glued to a digit is part of a number literal, as in JSON.
		// A free-standing minus is a prefix operator for the permissive tier.
		if isDigit(l.peekChar()) || l.peekChar() == '.' {
			return l.lexNumber()
		}
		tok.Type = token.MINUS
		tok.Literal = "-"
	case '"', '\'':
		lit, ok := l.readString(l.ch)
		if !ok {
			tok.Type = token.ILLEGAL
		} else {
			tok.Type = token.STRING
		}
		tok.Literal = lit
		return tok
	case '`':
		lit, ok := l.readTemplate()
		if !ok {
			tok.Type = token.ILLEGAL
		} else {
			tok.Type = token.TEMPLATE
		}
		tok.Literal = lit
		return tok
	case 0:
		// A decoded rune of 0 is EOF only past the end of input; a raw NUL
		// byte in the input is not valid literal text.
		if l.atEOF() {
			tok.Type = token.EOF
			tok.Literal = ""
			return tok
		}
		tok.Type = token.ILLEGAL
		tok.Literal = "invalid NUL byte"
	case -1:
		tok.Type = token.ILLEGAL
		tok.Literal = "invalid utf-8"
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return l.lexNumber()
		}
		if isIdentifierStart(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		}
		tok.Type = token.ILLEGAL
		tok.Literal = string(l.ch)
	}
	l.advance()
	return tok
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
	} else {
		r, size := utf8.DecodeRune(l.input[l.readPosition:])
		if r == utf8.RuneError && size == 1 {
			l.ch = -1
		} else {
			l.ch = r
		}
		l.position = l.readPosition
		l.readPosition += size
	}
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readChar()
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.advance()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.advance() // consume '/'
			l.advance() // consume '*'
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.advance()
			}
			if l.ch != 0 {
				l.advance() // consume '*'
				l.advance() // consume '/'
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexNumber() token.Token {
	tok := token.Token{Line: l.line, Column: l.column}
	literal := l.readNumberText()
	if ok := validNumber(literal); !ok {
		tok.Type = token.ILLEGAL
		tok.Literal = fmt.Sprintf("malformed number %q", literal)
		return tok
	}
	tok.Type = token.NUMBER
	tok.Literal = literal
	return tok
}

func (l *Lexer) readNumberText() string {
	start := l.position
	if l.ch == '-' {
		l.advance()
	}
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.advance()
		l.advance()
		for isHexDigit(l.ch) {
			l.advance()
		}
		return string(l.input[start:l.position])
	}
	for isDigit(l.ch) || l.ch == '.' || l.ch == 'e' || l.ch == 'E' {
		if (l.ch == 'e' || l.ch == 'E') && (l.peekChar() == '+' || l.peekChar() == '-') {
			l.advance()
		}
		l.advance()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentifierChar(l.ch) {
		l.advance()
	}
	return string(l.input[start:l.position])
}

// readString lexes a single- or double-quoted string. Unknown escape
// sequences keep the escaped character, matching the source language rather
// than JSON.
func (l *Lexer) readString(quote rune) (string, bool) {
	l.advance() // consume opening quote
	var buf strings.Builder
	for {
		switch l.ch {
		case quote:
			l.advance() // consume closing quote
			return buf.String(), true
		case '\n':
			return "unterminated string", false
		case 0:
			if l.atEOF() {
				return "unterminated string", false
			}
			return "invalid NUL byte in string", false
		case -1:
			return "invalid utf-8 sequence in string", false
		case '\\':
			r, ok, errMsg := l.readEscapeSequence()
			if !ok {
				return errMsg, false
			}
			buf.WriteRune(r)
		default:
			buf.WriteRune(l.ch)
			l.advance()
		}
	}
}

// readTemplate lexes a substitution-free template string. A template with a
// ${ substitution cannot be decoded without evaluation, so it is rejected.
func (l *Lexer) readTemplate() (string, bool) {
	l.advance() // consume opening backtick
	var buf strings.Builder
	for {
		switch l.ch {
		case '`':
			l.advance()
			return buf.String(), true
		case 0:
			if !l.atEOF() {
				return "invalid NUL byte in template string", false
			}
			return "unterminated template string", false
		case -1:
			return "invalid utf-8 sequence in template string", false
		case '$':
			if l.peekChar() == '{' {
				return "template substitution requires evaluation", false
			}
			buf.WriteRune(l.ch)
			l.advance()
		case '\\':
			r, ok, errMsg := l.readEscapeSequence()
			if !ok {
				return errMsg, false
			}
			buf.WriteRune(r)
		default:
			buf.WriteRune(l.ch)
			l.advance()
		}
	}
}

func (l *Lexer) readEscapeSequence() (rune, bool, string) {
	l.advance() // consume backslash
	ch := l.ch
	switch ch {
	case 0:
		return 0, false, "unterminated escape sequence"
	case 'u':
		val, ok := l.readHex(4)
		if !ok {
			return 0, false, "invalid unicode escape"
		}
		l.advance()
		return val, true, ""
	case 'x':
		val, ok := l.readHex(2)
		if !ok {
			return 0, false, "invalid hex escape"
		}
		l.advance()
		return val, true, ""
	default:
		l.advance()
		return unescape(ch), true, ""
	}
}

func (l *Lexer) readHex(n int) (rune, bool) {
	var val rune
	for range n {
		l.advance()
		var d rune
		switch {
		case '0' <= l.ch && l.ch <= '9':
			d = l.ch - '0'
		case 'a' <= l.ch && l.ch <= 'f':
			d = l.ch - 'a' + 10
		case 'A' <= l.ch && l.ch <= 'F':
			d = l.ch - 'A' + 10
		default:
			return 0, false
		}
		val = val*16 + d
	}
	return val, true
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isIdentifierStart(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentifierChar(ch rune) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}

func unescape(ch rune) rune {
	switch ch {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	case '0':
		return 0
	}
	// The source language keeps the character for unrecognized escapes.
	return ch
}

func validNumber(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '-' {
		i++
		if i == len(s) {
			return false
		}
	}
	if strings.HasPrefix(s[i:], "0x") || strings.HasPrefix(s[i:], "0X") {
		return len(s) > i+2
	}
	seenDigit, seenDot, seenExp := false, false, false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.':
			if seenDot || seenExp {
				return false
			}
			seenDot = true
		case c == 'e' || c == 'E':
			if seenExp || !seenDigit {
				return false
			}
			seenExp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
			if i+1 == len(s) {
				return false
			}
		default:
			return false
		}
	}
	return seenDigit
}
