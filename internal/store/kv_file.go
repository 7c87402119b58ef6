package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileKV is a JSON-file backed [KVStore]. The whole keyspace is held in
// memory and flushed to disk on every mutation, which is plenty for the
// small per-user state the vault keeps (one record list and one salt per
// user). Path ":memory:" disables persistence entirely — tests only.
type fileKV struct {
	path     string
	inMemory bool

	mu    sync.RWMutex
	items map[string][]byte
}

type filePersistedState struct {
	Items map[string][]byte `json:"items"`
}

// NewFileKV opens (or initializes) a file-backed KV store at path.
func NewFileKV(path string) (KVStore, error) {
	if path == "" {
		path = ":memory:"
	}

	inMemory := path == ":memory:" || path == "memory"
	s := &fileKV{
		path:     path,
		inMemory: inMemory,
		items:    make(map[string][]byte),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *fileKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.items[key] = stored

	return s.persist()
}

func (s *fileKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)

	return s.persist()
}

func (s *fileKV) Close() error {
	return nil
}

func (s *fileKV) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}

	if st.Items == nil {
		st.Items = make(map[string][]byte)
	}
	s.items = st.Items

	return nil
}

func (s *fileKV) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(filePersistedState{Items: s.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	// 0600: the file holds ciphertext and salts, but there is no reason to
	// share it with other local users either.
	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}

	return nil
}
