package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

const (
	documentsDirName    = "documents"
	artifactFilesSubdir = "artifacts"
)

// File implements ports.StateStore with one JSON file per entry. Documents
// are keyed by a hash of their source path, artifacts by their input hash.
type File struct {
	dir string
}

var _ ports.StateStore = (*File)(nil)

// NewFile creates a file store rooted at dir, creating the layout if needed.
func NewFile(dir string) (*File, error) {
	for _, sub := range []string{documentsDirName, artifactFilesSubdir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), domain.DirPerm); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
		}
	}
	return &File{dir: dir}, nil
}

// SaveDocument stores the document and its token list, replacing any previous
// version for the same source path.
func (s *File) SaveDocument(_ context.Context, doc *domain.Document) error {
	rec, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}
	if err := os.WriteFile(s.documentFilename(doc.Path), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// LoadDocument retrieves the last stored document for a source path.
// Returns nil, nil if not found.
func (s *File) LoadDocument(_ context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(s.documentFilename(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var rec documentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return decodeDocument(rec)
}

// PutArtifact stores the artifact under its input hash.
func (s *File) PutArtifact(_ context.Context, artifact *domain.CompiledArtifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}
	if err := os.WriteFile(s.artifactFilename(artifact.InputHash), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// GetArtifact retrieves the artifact stored for an input hash.
// Returns nil, nil if not found.
func (s *File) GetArtifact(_ context.Context, inputHash string) (*domain.CompiledArtifact, error) {
	data, err := os.ReadFile(s.artifactFilename(inputHash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var artifact domain.CompiledArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return &artifact, nil
}

// Close is a no-op for the file store.
func (s *File) Close() error {
	return nil
}

func (s *File) documentFilename(path string) string {
	hash := sha256.Sum256([]byte(path))
	return filepath.Join(s.dir, documentsDirName, hex.EncodeToString(hash[:])+".json")
}

// artifactFilename keys artifacts by input hash directly; the hash is hex
// and filesystem-safe by construction.
func (s *File) artifactFilename(inputHash string) string {
	return filepath.Join(s.dir, artifactFilesSubdir, inputHash+".json")
}
