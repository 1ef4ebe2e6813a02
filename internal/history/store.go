package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
)

// MemoryStore keeps records for the lifetime of the process. Useful as the
// default when the embedding caller wires no persistence.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]Record, len(records))
	copy(s.records, records)
	return nil
}

// FileStore persists the history array as JSON in a single file. An absent
// file is a fresh history; malformed content degrades to empty rather than
// erroring, matching the "never throw on corrupt data" contract.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]Record, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "reading history file")
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

func (s *FileStore) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "encoding history")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "creating history dir")
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "writing history file")
	}
	return nil
}
