package spec

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/polyforge/polyforge/internal/errors"
)

// SupportedSchemaVersions lists the specification schema versions this
// compiler understands. The authoring tool and the compiler must agree on
// the schema version field; anything else is rejected before any work starts.
var SupportedSchemaVersions = []string{"1.0", "1.1"}

// Repository defines the interface for loading and saving Specification
// documents. This interface enables dependency injection and makes testing
// easier.
type Repository interface {
	// Load reads a Specification from a file
	Load(path string) (*Specification, error)

	// Save writes a Specification to a file
	Save(spec *Specification, path string) error
}

// FileRepository implements Repository for file-based storage
type FileRepository struct{}

// NewFileRepository creates a new file-based spec repository
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load reads a Specification from a YAML file
func (r *FileRepository) Load(path string) (*Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSpecNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read spec file", err)
	}

	var s Specification
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "YAML", err)
	}

	return &s, nil
}

// Save writes a Specification to a YAML file
func (r *FileRepository) Save(spec *Specification, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "create directory", err)
	}

	data, err := yaml.Marshal(spec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal spec", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write spec file", err)
	}

	return nil
}

// Default instance for package-level functions
var defaultRepository = NewFileRepository()

// Load reads a Specification from a YAML file using the default repository.
func Load(path string) (*Specification, error) {
	return defaultRepository.Load(path)
}

// Save writes a Specification to a YAML file using the default repository.
func Save(spec *Specification, path string) error {
	return defaultRepository.Save(spec, path)
}

// CheckSchemaVersion rejects specifications whose schema version the
// compiler does not recognize.
func CheckSchemaVersion(s *Specification) error {
	for _, v := range SupportedSchemaVersions {
		if s.SchemaVersion == v {
			return nil
		}
	}
	return errors.NewSchemaVersionError(s.SchemaVersion, SupportedSchemaVersions)
}

// Compile-time verification that FileRepository implements Repository
var _ Repository = (*FileRepository)(nil)
