package awsclouddirectory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSDocumentReader(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/schemas/orgs.json", []byte(`{"a":1}`), 0o644))
	reader := NewFSDocumentReader(fsys)

	data, err := reader.ReadDocument("/schemas/orgs.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	_, err = reader.ReadDocument("/schemas/missing.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOSDocumentReaderRelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte(`{"b":2}`), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	data, err := NewOSDocumentReader().ReadDocument("doc.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"b":2}`), data)

	data, err = NewOSDocumentReader().ReadDocument(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"b":2}`), data)
}
