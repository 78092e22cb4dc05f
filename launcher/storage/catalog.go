package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrNoContent is returned when the catalog file is missing, empty, or
// not a JSON object. The UI shows its retry screen in response.
var ErrNoContent = errors.New("no HDD content found")

// Catalog maps display names to content paths relative to the HDD root.
// The catalog is read-only from the launcher's point of view; users edit
// layout.json by hand.
type Catalog struct {
	entries map[string]string
	names   []string
}

// LoadCatalog reads and validates layout.json at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoContent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	if len(entries) == 0 {
		return nil, ErrNoContent
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{entries: entries, names: names}, nil
}

// Names returns the display names in stable sorted order.
func (c *Catalog) Names() []string {
	return c.names
}

// Path returns the relative content path for a display name.
func (c *Catalog) Path(name string) (string, bool) {
	p, ok := c.entries[name]
	return p, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Contains reports whether name is a catalog entry.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.entries[name]
	return ok
}
