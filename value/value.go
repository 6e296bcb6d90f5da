// Package value defines the generic, mutable value tree decoded from an
// exported array literal. Every node is one of six kinds: Array, Object,
// String, Number, Bool or Null. Mutation and serialization code switches
// exhaustively on the concrete type instead of inspecting runtime types.
package value

import (
	"bytes"
	"strings"
)

// Kind identifies the concrete type of a Value.
type Kind string

const (
	KindArray  Kind = "array"
	KindObject Kind = "object"
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindNull   Kind = "null"
)

// Value is the base interface for all nodes in the value tree.
type Value interface {
	// Kind returns the node's kind tag.
	Kind() Kind
	// Clone returns a deep copy sharing no structure with the receiver.
	Clone() Value
	// Equal reports deep structural equality, including element and key order.
	Equal(other Value) bool
	// String returns a compact single-line representation, for diagnostics.
	String() string
}

// Array is an ordered sequence of values.
type Array struct {
	Elems []Value
}

func (a *Array) Kind() Kind { return KindArray }

func (a *Array) Clone() Value {
	out := &Array{}
	if a.Elems != nil {
		out.Elems = make([]Value, len(a.Elems))
		for i, el := range a.Elems {
			out.Elems[i] = el.Clone()
		}
	}
	return out
}

func (a *Array) Equal(other Value) bool {
	o, ok := other.(*Array)
	if !ok || len(a.Elems) != len(o.Elems) {
		return false
	}
	for i, el := range a.Elems {
		if !el.Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

func (a *Array) String() string {
	var out bytes.Buffer
	elems := make([]string, 0, len(a.Elems))
	for _, el := range a.Elems {
		elems = append(elems, el.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elems, ", "))
	out.WriteString("]")
	return out.String()
}

// Pair is a single key-value entry of an Object.
type Pair struct {
	Key   string
	Value Value
}

// Object is an ordered mapping of unique string keys to values. Insertion
// order is preserved through mutation and serialization.
type Object struct {
	Pairs []Pair
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) Clone() Value {
	out := &Object{}
	if o.Pairs != nil {
		out.Pairs = make([]Pair, len(o.Pairs))
		for i, p := range o.Pairs {
			out.Pairs[i] = Pair{Key: p.Key, Value: p.Value.Clone()}
		}
	}
	return out
}

func (o *Object) Equal(other Value) bool {
	ov, ok := other.(*Object)
	if !ok || len(o.Pairs) != len(ov.Pairs) {
		return false
	}
	for i, p := range o.Pairs {
		if p.Key != ov.Pairs[i].Key || !p.Value.Equal(ov.Pairs[i].Value) {
			return false
		}
	}
	return true
}

func (o *Object) String() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(o.Pairs))
	for _, p := range o.Pairs {
		pairs = append(pairs, p.Key+": "+p.Value.String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

// Get returns the value bound to key and whether it exists.
func (o *Object) Get(key string) (Value, bool) {
	for _, p := range o.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set replaces the value bound to key, or appends a new pair if the key is
// not present yet.
func (o *Object) Set(key string, v Value) {
	for i, p := range o.Pairs {
		if p.Key == key {
			o.Pairs[i].Value = v
			return
		}
	}
	o.Pairs = append(o.Pairs, Pair{Key: key, Value: v})
}

// Keys returns the object's keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Pairs))
	for i, p := range o.Pairs {
		keys[i] = p.Key
	}
	return keys
}

// String is a string scalar. The raw text is stored without surrounding
// quotes and without escape processing applied.
type String struct {
	Val string
}

func (s *String) Kind() Kind   { return KindString }
func (s *String) Clone() Value { return &String{Val: s.Val} }

func (s *String) Equal(other Value) bool {
	o, ok := other.(*String)
	return ok && s.Val == o.Val
}

func (s *String) String() string { return `"` + s.Val + `"` }

// Number is a numeric scalar. All source numbers, integral or not, collapse
// to a float64 the way the source language's number type does.
type Number struct {
	Val float64
}

func (n *Number) Kind() Kind   { return KindNumber }
func (n *Number) Clone() Value { return &Number{Val: n.Val} }

func (n *Number) Equal(other Value) bool {
	o, ok := other.(*Number)
	return ok && n.Val == o.Val
}

func (n *Number) String() string { return FormatNumber(n.Val) }

// Bool is a boolean scalar.
type Bool struct {
	Val bool
}

func (b *Bool) Kind() Kind   { return KindBool }
func (b *Bool) Clone() Value { return &Bool{Val: b.Val} }

func (b *Bool) Equal(other Value) bool {
	o, ok := other.(*Bool)
	return ok && b.Val == o.Val
}

func (b *Bool) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Null is the null scalar.
type Null struct{}

func (n *Null) Kind() Kind             { return KindNull }
func (n *Null) Clone() Value           { return &Null{} }
func (n *Null) Equal(other Value) bool { _, ok := other.(*Null); return ok }
func (n *Null) String() string         { return "null" }
