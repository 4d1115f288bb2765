package repository

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/sanjay9585813868/Portfolio/internal/domain"
)

// Collection file names inside the upload directory. The names are part of
// the persisted layout and must not change.
const (
	profilesFile = "users.json"
	projectsFile = "projects.json"
	contactsFile = "contact-info.json"
)

// Store is whole-file persistence over one upload directory: three JSON array
// files, one per record kind, plus raw uploaded files. Reads return the whole
// array; appends re-read, push and re-write the whole file under a per-file
// mutex so concurrent appends cannot lose updates.
type Store interface {
	Profiles() ([]domain.ProfileRecord, error)
	// AppendProfile appends rec and returns the record that was last before
	// the append, if any.
	AppendProfile(rec domain.ProfileRecord) (*domain.ProfileRecord, error)

	Projects() ([]domain.ProjectRecord, error)
	AppendProject(rec domain.ProjectRecord) error

	Contacts() ([]domain.ContactRecord, error)
	AppendContact(rec domain.ContactRecord) error

	// SaveUpload writes a raw uploaded file under the given name and returns
	// its path.
	SaveUpload(name string, src io.Reader) (string, error)
	// DeleteUpload removes an uploaded file. A missing file is not an error.
	DeleteUpload(name string) error
	// ReplaceFile atomically replaces (or creates) the named file with the
	// contents of src.
	ReplaceFile(name string, src io.Reader) error
	UploadPath(name string) string
}

type fileStore struct {
	dir string
	log *zap.Logger

	profilesMu sync.Mutex
	projectsMu sync.Mutex
	contactsMu sync.Mutex
}

// NewFileStore ensures the upload directory and the three collection files
// exist (missing collections are created holding an empty array) and returns
// a Store over them.
func NewFileStore(dir string, log *zap.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}

	s := &fileStore{dir: dir, log: log}

	for _, name := range []string{profilesFile, projectsFile, contactsFile} {
		path := s.UploadPath(name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		log.Info("Collection file created", zap.String("file", name))
	}

	return s, nil
}

func (s *fileStore) UploadPath(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *fileStore) Profiles() ([]domain.ProfileRecord, error) {
	return readCollection[domain.ProfileRecord](s.UploadPath(profilesFile))
}

func (s *fileStore) AppendProfile(rec domain.ProfileRecord) (*domain.ProfileRecord, error) {
	s.profilesMu.Lock()
	defer s.profilesMu.Unlock()

	path := s.UploadPath(profilesFile)
	records, err := readCollection[domain.ProfileRecord](path)
	if err != nil {
		return nil, err
	}

	var prev *domain.ProfileRecord
	if len(records) > 0 {
		last := records[len(records)-1]
		prev = &last
	}

	records = append(records, rec)
	if err := writeCollection(path, records); err != nil {
		return nil, err
	}
	return prev, nil
}

func (s *fileStore) Projects() ([]domain.ProjectRecord, error) {
	return readCollection[domain.ProjectRecord](s.UploadPath(projectsFile))
}

func (s *fileStore) AppendProject(rec domain.ProjectRecord) error {
	s.projectsMu.Lock()
	defer s.projectsMu.Unlock()

	path := s.UploadPath(projectsFile)
	records, err := readCollection[domain.ProjectRecord](path)
	if err != nil {
		return err
	}
	return writeCollection(path, append(records, rec))
}

func (s *fileStore) Contacts() ([]domain.ContactRecord, error) {
	return readCollection[domain.ContactRecord](s.UploadPath(contactsFile))
}

func (s *fileStore) AppendContact(rec domain.ContactRecord) error {
	s.contactsMu.Lock()
	defer s.contactsMu.Unlock()

	path := s.UploadPath(contactsFile)
	records, err := readCollection[domain.ContactRecord](path)
	if err != nil {
		return err
	}
	return writeCollection(path, append(records, rec))
}

func (s *fileStore) SaveUpload(name string, src io.Reader) (string, error) {
	path := s.UploadPath(name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload %s: %w", path, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload %s: %w", path, err)
	}

	s.log.Info("Upload stored",
		zap.String("name", name),
		zap.String("path", path))

	return path, nil
}

func (s *fileStore) DeleteUpload(name string) error {
	err := os.Remove(s.UploadPath(name))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		s.log.Warn("Upload already absent", zap.String("name", name))
		return nil
	}
	return fmt.Errorf("failed to delete upload %s: %w", name, err)
}

func (s *fileStore) ReplaceFile(name string, src io.Reader) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.UploadPath(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	s.log.Info("File replaced", zap.String("name", name))
	return nil
}

// readCollection reads a whole JSON array file. A missing or empty file
// yields an empty slice.
func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func writeCollection[T any](path string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
