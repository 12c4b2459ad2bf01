package mediastore

import (
	"fmt"
)

var store ObjectStore

// Setup initializes the global media store from the environment
func Setup() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("media store config: %w", err)
	}
	client, err := NewClient(cfg)
	if err != nil {
		return err
	}
	store = client
	return nil
}

// GetStore returns the global media store instance
func GetStore() ObjectStore {
	if store == nil {
		panic("Media store not initialized. Call Setup first.")
	}
	return store
}

// SetStore overrides the global media store (used by tests)
func SetStore(s ObjectStore) {
	store = s
}
