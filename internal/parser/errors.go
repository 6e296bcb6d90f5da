package parser

import "fmt"

// Error is a single diagnostic produced while parsing literal text.
// It includes the position of the error within the literal.
type Error struct {
	Message string
	Line    int
	Column  int
}

// Errors is a slice of Error that implements the error interface.
// This allows returning all diagnostics found during a parse at once.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	// The default message for the collection reports the first diagnostic.
	return fmt.Sprintf("line %d, column %d: %s", e[0].Line, e[0].Column, e[0].Message)
}
