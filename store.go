package gate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// StorageKey is the single well-known key the credential persists under.
const StorageKey = "token"

// CredentialStore holds the one opaque bearer credential for this client
// session. Absence is a first-class state: an empty string means anonymous.
//
// The store has a single writer at a time by construction (login success,
// logout, or the request client's rejection handler) and readers always see
// the latest written value.
type CredentialStore interface {
	Get() string
	Set(credential string)
	Clear()
	// Subscribe registers a listener invoked with the new value after every
	// Set or Clear. The returned function unsubscribes.
	Subscribe(fn func(credential string)) func()
}

// MemoryStore is the in-process CredentialStore.
type MemoryStore struct {
	mu         sync.RWMutex
	credential string
	subs       map[int]func(string)
	nextSub    int
}

var _ CredentialStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: map[int]func(string){}}
}

func (s *MemoryStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

func (s *MemoryStore) Set(credential string) {
	s.mu.Lock()
	s.credential = credential
	listeners := s.listeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(credential)
	}
}

func (s *MemoryStore) Clear() {
	s.Set("")
}

func (s *MemoryStore) Subscribe(fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// listeners must be called with the lock held.
func (s *MemoryStore) listeners() []func(string) {
	out := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// FileStore persists the credential across process restarts as a small JSON
// document keyed under StorageKey. A missing file is the anonymous state.
type FileStore struct {
	path string
	mem  *MemoryStore
}

var _ CredentialStore = (*FileStore)(nil)

// NewFileStore loads any previously persisted credential from path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, mem: NewMemoryStore()}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read credential storage")
	}

	stored := map[string]string{}
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Corrupt storage decodes to anonymous, same as a garbage credential.
		return s, nil
	}

	s.mem.Set(stored[StorageKey])
	return s, nil
}

func (s *FileStore) Get() string {
	return s.mem.Get()
}

func (s *FileStore) Set(credential string) {
	s.persist(credential)
	s.mem.Set(credential)
}

func (s *FileStore) Clear() {
	_ = os.Remove(s.path)
	s.mem.Set("")
}

func (s *FileStore) Subscribe(fn func(string)) func() {
	return s.mem.Subscribe(fn)
}

func (s *FileStore) persist(credential string) {
	if credential == "" {
		_ = os.Remove(s.path)
		return
	}

	raw, err := json.Marshal(map[string]string{StorageKey: credential})
	if err != nil {
		return
	}

	_ = os.MkdirAll(filepath.Dir(s.path), 0o700)
	_ = os.WriteFile(s.path, raw, 0o600)
}
