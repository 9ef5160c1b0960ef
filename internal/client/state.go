// Copyright (c) 2026 Authapp. All rights reserved.

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// State is the persisted session: the bearer token plus a cached copy of
// the user it belonged to when last verified.
type State struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user,omitempty"`
}

// StateStore persists the session state as a JSON file.
//
// The file is written with 0600 permissions since it holds a live
// credential.
type StateStore struct {
	path string
}

// NewStateStore creates a store writing to the given file path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load reads the persisted state. A missing file returns (nil, nil); a
// corrupt file is treated the same, since either way there is no session
// to resume.
func (store *StateStore) Load() (*State, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state: read %s: %w", store.path, err)
	}

	state := &State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, nil
	}
	if state.Token == "" {
		return nil, nil
	}

	return state, nil
}

// Save writes the state, creating parent directories as needed.
func (store *StateStore) Save(state *State) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("state: create dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}

	if err := os.WriteFile(store.path, data, 0o600); err != nil {
		return fmt.Errorf("state: write %s: %w", store.path, err)
	}

	return nil
}

// Clear removes the persisted state. Removing an absent file succeeds.
func (store *StateStore) Clear() error {
	err := os.Remove(store.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("state: remove %s: %w", store.path, err)
	}
	return nil
}
