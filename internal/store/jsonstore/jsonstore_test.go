package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type doc struct {
	Next int   `json:"next"`
	Rows []row `json:"rows"`
}

func TestReadMissingFile(t *testing.T) {
	got := doc{Next: 3}
	found, err := Read(filepath.Join(t.TempDir(), "none.json"), &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 3, got.Next, "target left untouched")
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	want := doc{Next: 7, Rows: []row{{ID: 1, Name: "a"}, {ID: 6, Name: "f"}}}

	require.NoError(t, Write(path, want))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	var got doc
	found, err := Read(path, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestReadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var got doc
	found, err := Read(path, &got)
	require.Error(t, err)
	assert.True(t, found)
	assert.Contains(t, err.Error(), "json unmarshal")
}

func TestWriteFailsWhenTempIsDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	err := Write(path, doc{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write file")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
