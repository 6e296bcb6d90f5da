package arrayfile

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"arrayfile/internal/lexer"
	"arrayfile/internal/parser"
	"arrayfile/internal/scanner"
	"arrayfile/value"
)

// DefaultExportName is the binding name used for default exports, and the
// base of the fallback output filename.
const DefaultExportName = scanner.DefaultExportName

// quotedKeyRe matches a double-quoted object key: a double-quoted string
// immediately followed by a colon.
var quotedKeyRe = regexp.MustCompile(`"[^"\n]*"\s*:`)

// ValidFilename reports whether name matches the accepted module file
// patterns (.ts, .tsx, .js, .jsx).
func ValidFilename(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ts", ".tsx", ".js", ".jsx":
		return true
	}
	return false
}

// Load scans and decodes a module into a Document.
func Load(filename string, src []byte) (*Document, error) {
	return LoadContext(context.Background(), filename, src)
}

// LoadContext scans and decodes a module into a Document. The filename
// selects the grammar and must match an accepted module pattern; the scan
// locates the import header and the first exported array literal, and the
// decoder turns the literal into the value tree. Decoding either fully
// succeeds or fails without producing a partial document.
func LoadContext(ctx context.Context, filename string, src []byte) (*Document, error) {
	if !ValidFilename(filename) {
		return nil, ErrFileTypeRejected
	}

	res, err := scanner.New().Scan(ctx, filename, src)
	if err != nil {
		return nil, err
	}

	v, err := DecodeLiteral(res.Binding.LiteralText)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*value.Array)
	if !ok {
		return nil, ErrNotAnArray
	}

	quoted := InferQuotedKeys(res.Binding.LiteralText)
	return newDocument(root, res.Binding.Name, quoted, res.ImportHeader, filepath.Base(filename)), nil
}

// DecodeLiteral decodes array-literal text into a value tree using the
// two-tier strategy: a strict JSON-superset parse first, and only if that
// fails, a constrained parse of whitelisted side-effect-free forms. Neither
// tier executes code. When both fail the returned error is a *DecodeError
// carrying both tiers' diagnostics.
func DecodeLiteral(literal []byte) (value.Value, error) {
	strict := parser.New(lexer.New(literal))
	if v := strict.Parse(); v != nil {
		return v, nil
	}

	fallback := parser.NewPermissive(lexer.New(literal))
	if v := fallback.Parse(); v != nil {
		return v, nil
	}

	return nil, &DecodeError{StrictErr: strict.Errors(), FallbackErr: fallback.Errors()}
}

// InferQuotedKeys inspects literal text for the document-wide key quoting
// convention: true when the first double-quoted key is found. Mixed quoting
// styles collapse to a single inferred style.
func InferQuotedKeys(literal []byte) bool {
	return quotedKeyRe.Match(literal)
}

// OutputName returns the filename the rendered document should be written
// under: the original upload's name, or "data.ts" when unknown.
func (d *Document) OutputName() string {
	if d.Filename == "" {
		return DefaultExportName + ".ts"
	}
	return d.Filename
}
