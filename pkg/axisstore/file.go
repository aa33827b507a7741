package axisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/isogrid/isogrid/pkg/pafv"
)

// FileStore is a file-based facet and view-state store for CLI workflows.
// The facet table lives in facets.json; each view state is stored as one
// JSON file under views/.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to ~/.config/isogrid/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "isogrid")
	}
	if err := os.MkdirAll(filepath.Join(baseDir, "views"), 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) facetsPath() string {
	return filepath.Join(s.baseDir, "facets.json")
}

// viewPath builds a filesystem-safe filename from the composite key. Both
// parts are query-escaped so canvas IDs and view names cannot introduce
// path separators.
func (s *FileStore) viewPath(canvasID, viewName string) string {
	name := url.QueryEscape(canvasID) + "." + url.QueryEscape(viewName) + ".json"
	return filepath.Join(s.baseDir, "views", name)
}

// ListFacets reads the facet table. A missing facets.json yields an empty
// table, not an error.
func (s *FileStore) ListFacets(ctx context.Context) ([]pafv.FacetRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.facetsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read facet table: %w", err)
	}

	var facets []pafv.FacetRow
	if err := json.Unmarshal(data, &facets); err != nil {
		return nil, fmt.Errorf("parse facet table: %w", err)
	}
	return facets, nil
}

// SetFacets writes the facet table.
func (s *FileStore) SetFacets(facets []pafv.FacetRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(facets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal facet table: %w", err)
	}
	if err := os.WriteFile(s.facetsPath(), data, 0600); err != nil {
		return fmt.Errorf("write facet table: %w", err)
	}
	return nil
}

func (s *FileStore) UpsertViewState(ctx context.Context, state pafv.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal view state: %w", err)
	}

	path := s.viewPath(state.CanvasID, state.ViewName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write view state: %w", err)
	}
	return nil
}

func (s *FileStore) GetViewState(ctx context.Context, canvasID, viewName string) (*pafv.ViewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.viewPath(canvasID, viewName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read view state: %w", err)
	}

	var state pafv.ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse view state: %w", err)
	}
	return &state, nil
}

// DeleteViewState removes a stored view state. Deleting a missing state is
// a no-op.
func (s *FileStore) DeleteViewState(canvasID, viewName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.viewPath(canvasID, viewName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove view state: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for store files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var (
	_ pafv.FacetStore = (*FileStore)(nil)
	_ pafv.ViewStore  = (*FileStore)(nil)
)
