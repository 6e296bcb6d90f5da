/*
Package arrayfile loads, edits and regenerates JS/TS data modules whose
single export is an array-of-records literal.

A module is never executed. Loading runs in two stages: a Tree-sitter scan
locates the import header and the exported array literal, then a two-tier
decoder turns the literal text into a generic value tree. The strict tier
parses a JSON-compatible grammar extended with unquoted keys, single-quoted
strings and trailing commas; only if it fails does the constrained fallback
tier accept a small whitelist of additional side-effect-free forms. Anything
that would require evaluation fails closed.

	doc, err := arrayfile.Load("team.ts", src)
	if err != nil {
		// handle error
	}

The document is edited through a path-addressed, copy-on-write mutation API.
Every operation returns a new document and leaves the old one untouched:

	doc2, err := doc.Write(arrayfile.Path{arrayfile.Index(0), arrayfile.Key("name")}, &value.String{Val: "C"})

Render turns a document back into module source text, reproducing the
original import header and key quoting convention:

	out := arrayfile.Render(doc2)

Rendering is deterministic, so callers treat it as a live projection of the
editable state rather than keeping a separate buffer.
*/
package arrayfile
