package awsclouddirectory

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// DocumentReader loads a schema document as raw bytes.
type DocumentReader interface {
	ReadDocument(path string) ([]byte, error)
}

// FSDocumentReader reads documents from a billy filesystem.
type FSDocumentReader struct {
	fs billy.Filesystem
	// absolute resolves relative paths against the working directory.
	absolute bool
}

func NewFSDocumentReader(fs billy.Filesystem) *FSDocumentReader {
	return &FSDocumentReader{fs: fs}
}

// NewOSDocumentReader reads from the local filesystem.
func NewOSDocumentReader() *FSDocumentReader {
	return &FSDocumentReader{fs: osfs.New("/"), absolute: true}
}

func (r *FSDocumentReader) ReadDocument(path string) ([]byte, error) {
	if r.absolute && !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		path = abs
	}
	return util.ReadFile(r.fs, path)
}
