package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sample() *Array {
	return &Array{Elems: []Value{
		&Object{Pairs: []Pair{
			{Key: "name", Value: &String{Val: "A"}},
			{Key: "count", Value: &Number{Val: 2}},
			{Key: "tags", Value: &Array{Elems: []Value{&String{Val: "x"}}}},
		}},
		&Bool{Val: true},
		&Null{},
	}}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sample()
	clone := orig.Clone().(*Array)

	require.True(t, orig.Equal(clone))

	// Mutating the clone must not touch the original anywhere.
	obj := clone.Elems[0].(*Object)
	obj.Set("name", &String{Val: "B"})
	nested := mustGet(t, obj, "tags").(*Array)
	nested.Elems = append(nested.Elems, &String{Val: "y"})

	origObj := orig.Elems[0].(*Object)
	name := mustGet(t, origObj, "name").(*String)
	require.Equal(t, "A", name.Val)
	require.Len(t, mustGet(t, origObj, "tags").(*Array).Elems, 1)
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"identical trees", sample(), sample(), true},
		{"different string", &String{Val: "a"}, &String{Val: "b"}, false},
		{"different kinds", &String{Val: "1"}, &Number{Val: 1}, false},
		{"null equals null", &Null{}, &Null{}, true},
		{
			"key order matters",
			&Object{Pairs: []Pair{{Key: "a", Value: &Null{}}, {Key: "b", Value: &Null{}}}},
			&Object{Pairs: []Pair{{Key: "b", Value: &Null{}}, {Key: "a", Value: &Null{}}}},
			false,
		},
		{
			"element order matters",
			&Array{Elems: []Value{&Number{Val: 1}, &Number{Val: 2}}},
			&Array{Elems: []Value{&Number{Val: 2}, &Number{Val: 1}}},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Equal(tc.b))
		})
	}
}

func TestObjectSet(t *testing.T) {
	obj := &Object{}
	obj.Set("a", &Number{Val: 1})
	obj.Set("b", &Number{Val: 2})
	// Overwriting keeps the original position.
	obj.Set("a", &Number{Val: 3})

	require.Equal(t, []string{"a", "b"}, obj.Keys())
	require.Equal(t, 3.0, mustGet(t, obj, "a").(*Number).Val)
}

func TestString(t *testing.T) {
	require.Equal(t, `[{name: "A", count: 2, tags: ["x"]}, true, null]`, sample().String())
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2, "2"},
		{-1.5, "-1.5"},
		{123456, "123456"},
		{1234567, "1234567"},
		{-1234567, "-1234567"},
		{1.75648e12, "1756480000000"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.want, FormatNumber(tc.in))
	}
}

func mustGet(t *testing.T, obj *Object, key string) Value {
	t.Helper()
	v, ok := obj.Get(key)
	require.True(t, ok, "key %q missing", key)
	return v
}
