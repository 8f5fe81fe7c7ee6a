package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	identityerrors "pawsteps/internal/identity/errors"
	"pawsteps/pkg/model"
)

// IdentityFileName is the named storage entry holding the serialized active
// identity in the local variant.
const IdentityFileName = "identity.json"

// LocalIdentityRepository persists the fabricated identity of the local
// variant. One identity at a time; Clear on sign-out.
type LocalIdentityRepository struct {
	path string
	mu   sync.Mutex
}

func NewLocalIdentityRepository(dataDir string) (*LocalIdentityRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &LocalIdentityRepository{
		path: filepath.Join(dataDir, IdentityFileName),
	}, nil
}

func (r *LocalIdentityRepository) Save(identity *model.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize identity: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write identity store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace identity store: %w", err)
	}
	return nil
}

func (r *LocalIdentityRepository) Load() (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, identityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read identity store: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode identity store: %w", err)
	}
	return &identity, nil
}

// Clear removes the persisted identity. Removing an already absent identity
// is not an error.
func (r *LocalIdentityRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear identity store: %w", err)
	}
	return nil
}
