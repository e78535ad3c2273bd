package registry

// Flat-file registry of tool servers.  The whole file is read on open and
// rewritten wholesale on every mutation – a single synchronous writer is the
// design intent, so no file locking is attempted.

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ToolRef is the name/description pair a server advertises for one tool.
type ToolRef struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ServerEntry is one registered tool server.
type ServerEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	Tools       []ToolRef `json:"tools,omitempty"`
}

// Store maps server ids to entries, backed by a single JSON file.
type Store struct {
	mu      sync.Mutex
	path    string
	servers map[string]ServerEntry
}

func NewStore(path string) *Store {
	return &Store{
		path:    path,
		servers: make(map[string]ServerEntry),
	}
}

// Load reads the backing file into memory.  A missing file is an empty
// registry, not an error.
func (store *Store) Load() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := os.ReadFile(store.path)

	if err != nil {
		if os.IsNotExist(err) {
			store.servers = make(map[string]ServerEntry)
			return nil
		}
		return fmt.Errorf("failed to read registry %s: %w", store.path, err)
	}

	servers := make(map[string]ServerEntry)
	if err := json.Unmarshal(data, &servers); err != nil {
		return fmt.Errorf("failed to decode registry %s: %w", store.path, err)
	}

	store.servers = servers
	return nil
}

// save rewrites the whole file.  Caller holds the lock.
func (store *Store) save() error {
	data, err := json.MarshalIndent(store.servers, "", "  ")

	if err != nil {
		return err
	}

	if err := os.WriteFile(store.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry %s: %w", store.path, err)
	}

	return nil
}

// Add registers a server and persists the registry.  An empty ID is filled
// with a fresh uuid.  The stored entry is returned.
func (store *Store) Add(entry ServerEntry) (ServerEntry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	log.Info("registering server", "id", entry.ID, "name", entry.Name, "address", entry.Address)

	store.servers[entry.ID] = entry
	return entry, store.save()
}

// Remove deletes a server and persists the registry, reporting whether the
// id existed.
func (store *Store) Remove(id string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.servers[id]; !ok {
		return false, nil
	}

	log.Info("removing server", "id", id)

	delete(store.servers, id)
	return true, store.save()
}

// Get retrieves a server entry by id.
func (store *Store) Get(id string) (ServerEntry, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.servers[id]
	return entry, ok
}

// List returns every entry, ordered by id for stable output.
func (store *Store) List() []ServerEntry {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries := make([]ServerEntry, 0, len(store.servers))
	for _, entry := range store.servers {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})

	return entries
}

// Export writes the registry contents as JSON.  The output of Export fed back
// into Import yields the same entries.
func (store *Store) Export(w io.Writer) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(store.servers)
}

// Import replaces the registry contents with the decoded JSON and persists.
func (store *Store) Import(r io.Reader) error {
	servers := make(map[string]ServerEntry)

	if err := json.NewDecoder(r).Decode(&servers); err != nil {
		return fmt.Errorf("failed to decode registry import: %w", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.servers = servers
	return store.save()
}
