package split

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package is one sync database entry.
type Package struct {
	Name     string   `yaml:"name"`
	Provides []string `yaml:"provides"`
	Groups   []string `yaml:"groups"`
}

// Repo is a named sync database.
type Repo struct {
	Name     string    `yaml:"name"`
	Packages []Package `yaml:"packages"`
}

type inventoryFile struct {
	Repos []Repo `yaml:"repos"`
}

// MemoryInventory is an Inventory built from repository listings.
type MemoryInventory struct {
	packages map[string]string
	provides map[string]struct{}
	groups   map[string]struct{}
}

// NewInventory indexes the given repositories.
func NewInventory(repos ...Repo) *MemoryInventory {
	inv := &MemoryInventory{
		packages: make(map[string]string),
		provides: make(map[string]struct{}),
		groups:   make(map[string]struct{}),
	}
	for _, r := range repos {
		for _, p := range r.Packages {
			name := strings.TrimSpace(p.Name)
			if name == "" {
				continue
			}
			if _, exists := inv.packages[name]; !exists {
				inv.packages[name] = r.Name
			}
			for _, prov := range p.Provides {
				if prov = depName(prov); prov != "" {
					inv.provides[prov] = struct{}{}
				}
			}
			for _, g := range p.Groups {
				if g = strings.TrimSpace(g); g != "" {
					inv.groups[g] = struct{}{}
				}
			}
		}
	}
	return inv
}

// LoadInventory reads a YAML repository listing.
func LoadInventory(path string) (*MemoryInventory, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("inventory file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory file: %w", err)
	}

	var file inventoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	for i, r := range file.Repos {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("repos[%d]: name is required", i)
		}
	}
	return NewInventory(file.Repos...), nil
}

// Has reports whether a repository package is named exactly name.
func (m *MemoryInventory) Has(name string) bool {
	_, ok := m.packages[name]
	return ok
}

// Satisfies reports whether dep, ignoring any version constraint, names or is
// provided by a repository package.
func (m *MemoryInventory) Satisfies(dep string) bool {
	name := depName(dep)
	if m.Has(name) {
		return true
	}
	_, ok := m.provides[name]
	return ok
}

// HasGroup reports whether some repository package belongs to group name.
func (m *MemoryInventory) HasGroup(name string) bool {
	_, ok := m.groups[name]
	return ok
}

// RepoOf returns the repository that holds name.
func (m *MemoryInventory) RepoOf(name string) (string, bool) {
	repo, ok := m.packages[name]
	return repo, ok
}

// depName strips a version constraint such as ">=1.2".
func depName(dep string) string {
	dep = strings.TrimSpace(dep)
	if i := strings.IndexAny(dep, "<>="); i >= 0 {
		dep = dep[:i]
	}
	return dep
}
