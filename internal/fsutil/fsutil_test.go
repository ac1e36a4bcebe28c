package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", ".a.gsm", "notes.txt", ".hidden/c.hcl", "sub/d.hcl"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "sub", "d.hcl"),
	}, files)

	_, err = FindFilesByExtension(root, "")
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")

	require.NoError(t, WriteFile(path, []byte("first"), 0o644))
	require.NoError(t, WriteFile(path, []byte("second"), 0o600))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestArtifactPaths(t *testing.T) {
	a := ArtifactPaths("out", "crossroad")
	assert.Equal(t, filepath.Join("out", ".crossroad.gsm"), a.Flattened)
	assert.Equal(t, filepath.Join("out", ".crossroad.uppaal"), a.Network)
	assert.Equal(t, filepath.Join("out", ".crossroad.g2u"), a.Trace)
	assert.Equal(t, filepath.Join("out", "crossroad.xml"), a.XML)
	assert.Equal(t, filepath.Join("out", "crossroad.q"), a.Queries)
	assert.Len(t, a.All(), 5)
}
