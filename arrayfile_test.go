package arrayfile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"arrayfile/value"
)

func TestLoad(t *testing.T) {
	src := []byte(`import { Item } from "./types";

export const items = [{name: "A", url: "a.png"}, {name: "B", url: "b.png"}];
`)
	doc, err := Load("items.ts", src)
	require.NoError(t, err)

	require.Equal(t, "items", doc.ExportName)
	require.Equal(t, 2, doc.Len())
	require.False(t, doc.QuotedKeys)
	require.Equal(t, `import { Item } from "./types";`, doc.ImportHeader)
	require.Equal(t, "items.ts", doc.Filename)

	name, err := doc.Read(Path{Index(0), Key("name")})
	require.NoError(t, err)
	require.Equal(t, "A", name.(*value.String).Val)
}

func TestLoadRejectsFileType(t *testing.T) {
	for _, name := range []string{"data.txt", "data", "data.json", "script.py"} {
		_, err := Load(name, []byte(`export const x = [];`))
		require.ErrorIs(t, err, ErrFileTypeRejected, name)
	}
	for _, name := range []string{"a.ts", "a.tsx", "a.js", "a.jsx", "A.TS"} {
		_, err := Load(name, []byte(`export const x = [];`))
		require.NoError(t, err, name)
	}
}

func TestLoadNoExportedArray(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"not exported", `const x = [1, 2];`},
		{"not an array", `export const x = {a: 1};`},
		{"nested in a function", `export function f() { return [1, 2]; }`},
		{"not a top-level export", `if (true) { module.exports = [1, 2]; }`},
		{"empty module", ``},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load("data.ts", []byte(tc.src))
			require.ErrorIs(t, err, ErrNoExportedArray)
		})
	}
}

func TestLoadDecodeFailure(t *testing.T) {
	_, err := Load("data.ts", []byte(`export const x = [Date.now()];`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Error(t, decodeErr.StrictErr)
	require.Error(t, decodeErr.FallbackErr)
}

// The fallback tier rescues side-effect-free non-JSON constructs the strict
// tier cannot parse.
func TestLoadUsesFallbackTier(t *testing.T) {
	src := []byte("export const items = [{label: `plain`, offset: -(4)}];")
	doc, err := Load("data.ts", src)
	require.NoError(t, err)

	label, err := doc.Read(Path{Index(0), Key("label")})
	require.NoError(t, err)
	require.Equal(t, "plain", label.(*value.String).Val)

	offset, err := doc.Read(Path{Index(0), Key("offset")})
	require.NoError(t, err)
	require.Equal(t, -4.0, offset.(*value.Number).Val)
}

func TestLoadDefaultExport(t *testing.T) {
	doc, err := Load("data.ts", []byte(`export default ["a", "b"];`))
	require.NoError(t, err)
	require.Equal(t, DefaultExportName, doc.ExportName)
	require.Equal(t, 2, doc.Len())
}

func TestLoadQuotedKeysInference(t *testing.T) {
	doc, err := Load("data.ts", []byte(`export const x = [{"name": "A"}];`))
	require.NoError(t, err)
	require.True(t, doc.QuotedKeys)

	doc, err = Load("data.ts", []byte(`export const x = [{name: "A"}];`))
	require.NoError(t, err)
	require.False(t, doc.QuotedKeys)
}

func TestInferQuotedKeys(t *testing.T) {
	testCases := []struct {
		literal string
		want    bool
	}{
		{`[{"name": "A"}]`, true},
		{`[{"name" : "A"}]`, true},
		{`[{name: "A"}]`, false},
		{`[{name: "A", "mixed": 1}]`, true},
		{`["no objects here"]`, false},
		{`[]`, false},
	}
	for _, tc := range testCases {
		t.Run(tc.literal, func(t *testing.T) {
			require.Equal(t, tc.want, InferQuotedKeys([]byte(tc.literal)))
		})
	}
}

// Full pipeline round trip: loading the rendered output again yields a
// deep-equal tree.
func TestLoadRenderRoundTrip(t *testing.T) {
	src := []byte(`import type { Member } from "./member";

export const members = [
  { name: "A", roles: ["admin"], active: true, score: 9.5 },
  { name: "B", roles: [], active: false, score: null },
];
`)
	doc, err := Load("members.ts", src)
	require.NoError(t, err)

	doc2, err := Load("members.ts", Render(doc))
	require.NoError(t, err)

	require.True(t, doc.Root.Equal(doc2.Root))
	require.Equal(t, doc.ExportName, doc2.ExportName)
	require.Equal(t, doc.ImportHeader, doc2.ImportHeader)
	require.Equal(t, doc.QuotedKeys, doc2.QuotedKeys)

	// A second round trip is byte-stable.
	require.Equal(t, Render(doc), Render(doc2))
}
