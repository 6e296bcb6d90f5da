// Package scanner locates the import header and the exported array literal
// in a JS/TS module without executing it. Parsing is done with Tree-sitter,
// which is error-tolerant: unsupported constructs elsewhere in the file
// produce ERROR nodes but do not abort the scan.
package scanner

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// DefaultExportName is the binding name used when the literal is a default
// export and therefore has no declared identifier.
const DefaultExportName = "data"

// ErrNoExportedArray is returned when no top-level export of an array
// literal exists in the module.
var ErrNoExportedArray = errors.New("no exported array literal found")

// ExportBinding is the matched export: the binding name and the byte-exact
// source span of its array literal.
type ExportBinding struct {
	Name        string
	LiteralText []byte
}

// Result holds everything the scanner extracts from a module.
type Result struct {
	// ImportHeader is the verbatim block of top-level import statements, in
	// source order, joined by newlines. It is opaque: reproduced on output
	// but never interpreted.
	ImportHeader string
	Binding      ExportBinding
}

// Scanner parses JS/TS modules. It is safe for sequential reuse from a
// single goroutine.
type Scanner struct {
	jsParser  *sitter.Parser
	tsParser  *sitter.Parser
	tsxParser *sitter.Parser
}

// New creates a Scanner with parsers for each supported grammar.
func New() *Scanner {
	jsParser := sitter.NewParser()
	jsParser.SetLanguage(javascript.GetLanguage())
	tsParser := sitter.NewParser()
	tsParser.SetLanguage(typescript.GetLanguage())
	tsxParser := sitter.NewParser()
	tsxParser.SetLanguage(tsx.GetLanguage())
	return &Scanner{jsParser: jsParser, tsParser: tsParser, tsxParser: tsxParser}
}

// Scan walks the module's top-level statements in source order and returns
// the import header plus the first qualifying exported array literal:
// either a default export whose value is an array literal, or a named
// export of a variable declaration initialized with one. Array literals
// nested inside functions or other scopes never match.
func (s *Scanner) Scan(ctx context.Context, filename string, src []byte) (*Result, error) {
	parser := s.parserFor(filename)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	res := &Result{}
	var imports []string
	found := false

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "import_statement":
			imports = append(imports, string(src[stmt.StartByte():stmt.EndByte()]))
		case "export_statement":
			if found {
				continue // first match wins
			}
			if binding, ok := matchExport(stmt, src); ok {
				res.Binding = binding
				found = true
			}
		}
	}

	res.ImportHeader = strings.Join(imports, "\n")
	if !found {
		return nil, ErrNoExportedArray
	}
	return res, nil
}

func (s *Scanner) parserFor(filename string) *sitter.Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts":
		return s.tsParser
	case ".tsx":
		return s.tsxParser
	default:
		return s.jsParser
	}
}

// matchExport inspects one top-level export statement. A default export
// carries the expression in the "value" field; a named export carries a
// lexical or var declaration in the "declaration" field.
func matchExport(stmt *sitter.Node, src []byte) (ExportBinding, bool) {
	if v := stmt.ChildByFieldName("value"); v != nil {
		if arr := unwrapArray(v); arr != nil {
			return ExportBinding{
				Name:        DefaultExportName,
				LiteralText: src[arr.StartByte():arr.EndByte()],
			}, true
		}
		return ExportBinding{}, false
	}

	decl := stmt.ChildByFieldName("declaration")
	if decl == nil {
		return ExportBinding{}, false
	}
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
	default:
		return ExportBinding{}, false
	}

	for i := 0; i < int(decl.NamedChildCount()); i++ {
		declarator := decl.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		val := declarator.ChildByFieldName("value")
		if name == nil || name.Type() != "identifier" || val == nil {
			continue
		}
		if arr := unwrapArray(val); arr != nil {
			return ExportBinding{
				Name:        string(src[name.StartByte():name.EndByte()]),
				LiteralText: src[arr.StartByte():arr.EndByte()],
			}, true
		}
	}
	return ExportBinding{}, false
}

// unwrapArray returns the array literal node behind v, looking through the
// type-only wrappers TypeScript allows around an initializer, such as
// `[...] as const` or `[...] satisfies T`.
func unwrapArray(v *sitter.Node) *sitter.Node {
	for v != nil {
		switch v.Type() {
		case "array":
			return v
		case "as_expression", "satisfies_expression", "non_null_expression", "parenthesized_expression":
			v = v.NamedChild(0)
		default:
			return nil
		}
	}
	return nil
}
