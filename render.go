package arrayfile

import (
	"bytes"
	"strings"

	"arrayfile/value"
)

const indent = "  "

// Render serializes the document back to complete module source text. It is
// pure and deterministic: the same document always yields byte-identical
// output, so callers can re-render on every change instead of maintaining a
// separate buffer.
//
// String scalars are wrapped in double quotes with embedded quotes and
// backslashes left unescaped; see DESIGN.md before changing this.
func Render(d *Document) []byte {
	var buf bytes.Buffer

	if d.ImportHeader != "" {
		buf.WriteString(d.ImportHeader)
		buf.WriteString("\n\n")
	}

	buf.WriteString("export const ")
	buf.WriteString(d.ExportName)
	buf.WriteString(" = ")
	writeValue(&buf, d.Root, d.QuotedKeys, 0)
	buf.WriteString(";\n")

	return buf.Bytes()
}

func writeValue(buf *bytes.Buffer, v value.Value, quotedKeys bool, depth int) {
	switch n := v.(type) {
	case *value.Array:
		if len(n.Elems) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, el := range n.Elems {
			writeIndent(buf, depth+1)
			writeValue(buf, el, quotedKeys, depth+1)
			if i < len(n.Elems)-1 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
		}
		writeIndent(buf, depth)
		buf.WriteString("]")

	case *value.Object:
		if len(n.Pairs) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, p := range n.Pairs {
			writeIndent(buf, depth+1)
			writeKey(buf, p.Key, quotedKeys)
			buf.WriteString(": ")
			writeValue(buf, p.Value, quotedKeys, depth+1)
			if i < len(n.Pairs)-1 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
		}
		writeIndent(buf, depth)
		buf.WriteString("}")

	case *value.String:
		buf.WriteString(`"`)
		buf.WriteString(n.Val)
		buf.WriteString(`"`)

	case *value.Number:
		buf.WriteString(value.FormatNumber(n.Val))

	case *value.Bool:
		if n.Val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case *value.Null:
		buf.WriteString("null")
	}
}

func writeKey(buf *bytes.Buffer, key string, quoted bool) {
	if quoted {
		buf.WriteString(`"`)
		buf.WriteString(key)
		buf.WriteString(`"`)
		return
	}
	buf.WriteString(key)
}

func writeIndent(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat(indent, depth))
}
