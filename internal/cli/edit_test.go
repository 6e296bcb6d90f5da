package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"arrayfile"
	"arrayfile/value"
)

func modelFor(t *testing.T, literal string) editModel {
	t.Helper()
	v, err := arrayfile.DecodeLiteral([]byte(literal))
	require.NoError(t, err)
	return newEditModel(docFromArray(t, v), t.TempDir()+"/items.ts")
}

func docFromArray(t *testing.T, v value.Value) *arrayfile.Document {
	t.Helper()
	root, ok := v.(*value.Array)
	require.True(t, ok)

	doc, err := arrayfile.Load("items.ts", []byte("export const items = [];"))
	require.NoError(t, err)
	for i, el := range root.Elems {
		doc, err = doc.Write(arrayfile.Path{arrayfile.Index(i)}, el)
		require.NoError(t, err)
	}
	return doc
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditDeleteSchedulesRemoval(t *testing.T) {
	m := modelFor(t, `[{name: "A"}, {name: "B"}]`)

	id0, ok := m.doc.ItemID(0)
	require.True(t, ok)

	next, cmd := m.Update(key("d"))
	m = next.(editModel)

	require.NotNil(t, cmd, "delete must arm the removal timer")
	require.True(t, m.doc.IsPending(id0))
	require.Equal(t, 2, m.doc.Len(), "pending item is still rendered")

	// The timer fires removalResolvedMsg; the splice happens then.
	next, _ = m.Update(removalResolvedMsg{id: id0})
	m = next.(editModel)

	require.Equal(t, 1, m.doc.Len())
	require.Empty(t, m.doc.PendingRemovals())
	name, err := m.doc.Read(arrayfile.Path{arrayfile.Index(0), arrayfile.Key("name")})
	require.NoError(t, err)
	require.Equal(t, "B", name.(*value.String).Val)
}

func TestEditPendingItemIsFrozen(t *testing.T) {
	m := modelFor(t, `[{name: "A"}]`)

	next, _ := m.Update(key("d"))
	m = next.(editModel)

	// Neither editing nor a second delete may touch a pending item.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(editModel)
	require.False(t, m.editing)
	require.Nil(t, cmd)

	_, cmd = m.Update(key("d"))
	require.Nil(t, cmd)
}

func TestEditAppendAndCommit(t *testing.T) {
	m := modelFor(t, `[{name: "A", url: "a.png"}]`)

	next, _ := m.Update(key("a"))
	m = next.(editModel)
	require.Equal(t, 2, m.doc.Len())
	require.Equal(t, 1, m.cursor)

	item := m.doc.Root.Elems[1].(*value.Object)
	require.Equal(t, []string{"name", "url"}, item.Keys())

	// Enter edit mode on the new item's first field, type, commit.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(editModel)
	require.True(t, m.editing)

	m.input.SetValue("C")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(editModel)
	require.False(t, m.editing)

	name, err := m.doc.Read(arrayfile.Path{arrayfile.Index(1), arrayfile.Key("name")})
	require.NoError(t, err)
	require.Equal(t, "C", name.(*value.String).Val)
}

func TestParseLiteralArg(t *testing.T) {
	testCases := []struct {
		in   string
		want value.Value
	}{
		{`"quoted"`, &value.String{Val: "quoted"}},
		{`plain text`, &value.String{Val: "plain text"}},
		{`42`, &value.Number{Val: 42}},
		{`true`, &value.Bool{Val: true}},
		{`null`, &value.Null{}},
		{`["a", "b"]`, &value.Array{Elems: []value.Value{&value.String{Val: "a"}, &value.String{Val: "b"}}}},
		{``, &value.String{Val: ""}},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.True(t, tc.want.Equal(parseLiteralArg(tc.in)), "got %s", parseLiteralArg(tc.in))
		})
	}
}

func TestItemLabel(t *testing.T) {
	obj := &value.Object{Pairs: []value.Pair{
		{Key: "name", Value: &value.String{Val: "Ada"}},
		{Key: "url", Value: &value.String{Val: "a.png"}},
	}}
	require.Equal(t, `"Ada"`, itemLabel(obj))
	require.Equal(t, `"plain"`, itemLabel(&value.String{Val: "plain"}))
}
