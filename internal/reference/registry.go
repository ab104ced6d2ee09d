package reference

import (
	"embed"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// DefaultVersion is the table used when a caller does not ask for a specific one.
const DefaultVersion = "3.0"

//go:embed presets/*.yaml
var presetFS embed.FS

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Registry holds validated tables keyed by version.
type Registry struct {
	tables map[string]*Table
}

// NewRegistry creates a registry from already decoded tables. Every table is validated.
func NewRegistry(tables ...*Table) (*Registry, error) {
	r := &Registry{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if err := r.Add(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns the registry of embedded presets. A broken preset is a build defect, so this panics
// instead of returning an error.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := LoadPresets()
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// DefaultTable returns the DefaultVersion table of the embedded presets.
func DefaultTable() *Table {
	t, err := Default().Lookup(DefaultVersion)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadPresets decodes every embedded preset into a new registry.
func LoadPresets() (*Registry, error) {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded presets")
	}

	r := &Registry{tables: make(map[string]*Table, len(entries))}
	for _, entry := range entries {
		data, err := presetFS.ReadFile(path.Join("presets", entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "reading preset %s", entry.Name())
		}
		t, err := Decode(data)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %s", entry.Name())
		}
		if err := r.Add(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Decode parses a YAML (or JSON) table document and validates it.
func Decode(data []byte) (*Table, error) {
	var t Table
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return nil, NewErrConfiguration("decoding reference table: %v", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads and validates a table from disk.
func LoadFile(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading reference table %s", filename)
	}
	return Decode(data)
}

// Add registers a table. Versions are unique.
func (r *Registry) Add(t *Table) error {
	if t == nil {
		return NewErrConfiguration("nil reference table")
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := r.tables[t.Version]; exists {
		return NewErrConfiguration("reference table %s registered twice", t.Version)
	}
	r.tables[t.Version] = t
	return nil
}

// Lookup returns the table for version.
func (r *Registry) Lookup(version string) (*Table, error) {
	t, ok := r.tables[version]
	if !ok {
		return nil, NewErrUnknownVersion(version)
	}
	return t, nil
}

// Versions returns the registered versions in ascending order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.tables))
	for v := range r.tables {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Tables returns the registered tables ordered by version.
func (r *Registry) Tables() []*Table {
	res := make([]*Table, 0, len(r.tables))
	for _, v := range r.Versions() {
		res = append(res, r.tables[v])
	}
	return res
}
