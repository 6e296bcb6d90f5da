package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFmtCmd(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "items.ts")
	src := "export const items = [{name:'A'}];\n"
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))

	cmd := newFmtCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{file})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "export const items = [\n  {\n    name: \"A\"\n  }\n];\n", out.String())
}

func TestFmtCmdWriteInPlace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "items.ts")
	require.NoError(t, os.WriteFile(file, []byte("export const items = [1,2,];"), 0o644))

	cmd := newFmtCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-w", file})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "export const items = [\n  1,\n  2\n];\n", string(got))
}

func TestSetCmd(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "items.ts")
	require.NoError(t, os.WriteFile(file, []byte(`export const items = [{name: "A"}];`), 0o644))

	cmd := newSetCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{file, "0.name", "B"})
	require.NoError(t, cmd.Execute())

	require.Equal(t, "export const items = [\n  {\n    name: \"B\"\n  }\n];\n", out.String())
}
