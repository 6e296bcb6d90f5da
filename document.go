package arrayfile

import (
	"sort"

	"github.com/google/uuid"

	"arrayfile/value"
)

// Document is the in-memory form of one scanned and decoded module. The root
// is always an array. Mutating operations are copy-on-write: they return a
// new Document built from a deep clone and never touch the receiver, so a
// prior document and all of its subtrees stay valid for diffing against the
// result.
//
// Each top-level item carries a stable identity, assigned at decode time and
// on append. Removal is addressed by identity, not index: with two removals
// pending at once, resolving one shifts the remaining indices but not the
// identities, so the pending set cannot desynchronize from the array.
type Document struct {
	Root         *value.Array
	ExportName   string
	QuotedKeys   bool
	ImportHeader string

	// Filename is the name of the originally loaded module, if known.
	Filename string

	itemIDs []string
	pending map[string]struct{}
}

func newDocument(root *value.Array, exportName string, quotedKeys bool, importHeader, filename string) *Document {
	d := &Document{
		Root:         root,
		ExportName:   exportName,
		QuotedKeys:   quotedKeys,
		ImportHeader: importHeader,
		Filename:     filename,
		pending:      map[string]struct{}{},
	}
	d.itemIDs = make([]string, len(root.Elems))
	for i := range d.itemIDs {
		d.itemIDs[i] = uuid.NewString()
	}
	return d
}

// clone returns a deep copy of the document. Full deep cloning on every edit
// is deliberate: documents are small, and structural sharing would
// complicate the independence guarantee for no measurable gain here.
func (d *Document) clone() *Document {
	out := &Document{
		Root:         d.Root.Clone().(*value.Array),
		ExportName:   d.ExportName,
		QuotedKeys:   d.QuotedKeys,
		ImportHeader: d.ImportHeader,
		Filename:     d.Filename,
		itemIDs:      make([]string, len(d.itemIDs)),
		pending:      make(map[string]struct{}, len(d.pending)),
	}
	copy(out.itemIDs, d.itemIDs)
	for id := range d.pending {
		out.pending[id] = struct{}{}
	}
	return out
}

// Len returns the number of top-level items, including ones pending removal.
func (d *Document) Len() int {
	return len(d.Root.Elems)
}

// ItemID returns the stable identity of the item at index i.
func (d *Document) ItemID(i int) (string, bool) {
	if i < 0 || i >= len(d.itemIDs) {
		return "", false
	}
	return d.itemIDs[i], true
}

// ItemIndex returns the current index of the item with the given identity.
func (d *Document) ItemIndex(id string) (int, bool) {
	for i, existing := range d.itemIDs {
		if existing == id {
			return i, true
		}
	}
	return 0, false
}

// IsPending reports whether the item with the given identity is scheduled
// for removal.
func (d *Document) IsPending(id string) bool {
	_, ok := d.pending[id]
	return ok
}

// PendingRemovals returns the identities of all items scheduled for removal,
// sorted for deterministic output.
func (d *Document) PendingRemovals() []string {
	ids := make([]string, 0, len(d.pending))
	for id := range d.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Read resolves path and returns the addressed node. The returned value is
// part of the document tree and must not be modified by the caller.
func (d *Document) Read(p Path) (value.Value, error) {
	v, err := resolve(d.Root, p)
	if err != nil {
		return nil, &PathError{Path: p, Err: err}
	}
	return v, nil
}

// Write replaces or creates the node at path and returns the new document.
// Every step but the last must resolve through an existing array index or
// object key; the last step may address a new object key or the index one
// past the end of an array. The written value is cloned in, so the caller's
// copy stays independent of the document.
func (d *Document) Write(p Path, v value.Value) (*Document, error) {
	if len(p) == 0 {
		return nil, &PathError{Path: p, Err: ErrPathNotFound}
	}
	out := d.clone()
	parent, err := resolve(out.Root, p[:len(p)-1])
	if err != nil {
		return nil, &PathError{Path: p, Err: err}
	}

	last := p[len(p)-1]
	switch node := parent.(type) {
	case *value.Object:
		if !last.IsKey() {
			return nil, &PathError{Path: p, Err: ErrPathNotFound}
		}
		node.Set(last.KeyName(), v.Clone())
	case *value.Array:
		if last.IsKey() {
			return nil, &PathError{Path: p, Err: ErrPathNotFound}
		}
		i := last.ArrayIndex()
		switch {
		case i >= 0 && i < len(node.Elems):
			node.Elems[i] = v.Clone()
		case i == len(node.Elems):
			node.Elems = append(node.Elems, v.Clone())
			if node == out.Root {
				out.itemIDs = append(out.itemIDs, uuid.NewString())
			}
		default:
			return nil, &PathError{Path: p, Err: ErrPathNotFound}
		}
	default:
		return nil, &PathError{Path: p, Err: ErrPathNotFound}
	}
	return out, nil
}

// AppendArrayElement appends one element to the array at path and returns
// the new document. The new element mirrors the apparent schema of its
// siblings: an empty object when the array's first element is an object,
// otherwise an empty string, so it is immediately editable in the same
// shape.
func (d *Document) AppendArrayElement(p Path) (*Document, error) {
	out := d.clone()
	node, err := resolve(out.Root, p)
	if err != nil {
		return nil, &PathError{Path: p, Err: err}
	}
	arr, ok := node.(*value.Array)
	if !ok {
		return nil, &PathError{Path: p, Err: ErrPathNotFound}
	}

	var elem value.Value = &value.String{}
	if len(arr.Elems) > 0 {
		if _, isObj := arr.Elems[0].(*value.Object); isObj {
			elem = &value.Object{}
		}
	}
	arr.Elems = append(arr.Elems, elem)
	if arr == out.Root {
		out.itemIDs = append(out.itemIDs, uuid.NewString())
	}
	return out, nil
}

// AppendItem appends a new top-level item and returns the new document. The
// item is an object with the same key set as the first existing item, every
// value reset to an empty string; if the document is empty the item has no
// keys.
func (d *Document) AppendItem() *Document {
	out := d.clone()
	item := &value.Object{}
	if len(out.Root.Elems) > 0 {
		if first, ok := out.Root.Elems[0].(*value.Object); ok {
			for _, key := range first.Keys() {
				item.Set(key, &value.String{})
			}
		}
	}
	out.Root.Elems = append(out.Root.Elems, item)
	out.itemIDs = append(out.itemIDs, uuid.NewString())
	return out
}

// RemoveItem schedules the item with the given identity for removal and
// returns the new document. The item stays in place, marked pending, until
// CompleteRemoval splices it out; callers drive the delay between the two.
// There is no transition back from pending to present.
func (d *Document) RemoveItem(id string) (*Document, error) {
	if _, ok := d.ItemIndex(id); !ok {
		return nil, ErrUnknownItem
	}
	out := d.clone()
	out.pending[id] = struct{}{}
	return out, nil
}

// CompleteRemoval physically removes the item with the given identity,
// renumbering the items after it, and clears its pending mark.
func (d *Document) CompleteRemoval(id string) (*Document, error) {
	i, ok := d.ItemIndex(id)
	if !ok {
		return nil, ErrUnknownItem
	}
	out := d.clone()
	out.Root.Elems = append(out.Root.Elems[:i], out.Root.Elems[i+1:]...)
	out.itemIDs = append(out.itemIDs[:i], out.itemIDs[i+1:]...)
	delete(out.pending, id)
	return out, nil
}

// resolve walks p from root. Every step must go through an existing array
// index or object key.
func resolve(root value.Value, p Path) (value.Value, error) {
	cur := root
	for _, step := range p {
		switch node := cur.(type) {
		case *value.Object:
			if !step.IsKey() {
				return nil, ErrPathNotFound
			}
			v, ok := node.Get(step.KeyName())
			if !ok {
				return nil, ErrPathNotFound
			}
			cur = v
		case *value.Array:
			if step.IsKey() {
				return nil, ErrPathNotFound
			}
			i := step.ArrayIndex()
			if i < 0 || i >= len(node.Elems) {
				return nil, ErrPathNotFound
			}
			cur = node.Elems[i]
		default:
			return nil, ErrPathNotFound
		}
	}
	return cur, nil
}
