package store

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/arloliu/tensorbuf/errs"
)

// ErrNotFound is returned when an artifact does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = errs.ErrNotFound

// ErrInvalidName is returned for names rejected by ValidateName.
var ErrInvalidName = errs.ErrInvalidName

// Store is a flat namespace of immutable artifacts.
type Store interface {
	// Put writes an artifact, replacing any previous one with the same name.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads a whole artifact.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes an artifact. Deleting a missing artifact is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names that start with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ValidateName rejects names that are empty, absolute, or escape the store
// root through "..".
func ValidateName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	clean := path.Clean(name)
	if clean != name || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}
