// Package token defines the lexical tokens of the array-literal grammar.
package token

// Type is the type of a token.
type Type string

// Token represents a lexical token within the literal text.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of input

	// Literals
	IDENT    Type = "IDENT"    // bare identifier: name, url
	NUMBER   Type = "NUMBER"   // 123, 1.5, -2e3
	STRING   Type = "STRING"   // "a" or 'a'
	TEMPLATE Type = "TEMPLATE" // `a` with no substitutions

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
	LBRACK Type = "["
	RBRACK Type = "]"
	LPAREN Type = "("
	RPAREN Type = ")"
	COMMA  Type = ","
	COLON  Type = ":"

	// Operators (permissive tier only)
	PLUS  Type = "+"
	MINUS Type = "-"

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NULL  Type = "NULL"
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}

// LookupIdent checks the keywords table for an identifier.
// If the identifier is a keyword, it returns the keyword's token type.
// Otherwise, it returns IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
