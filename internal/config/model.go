package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vk/fittings/internal/property"
)

// Model is the unified, format-agnostic representation of every framework
// declaration that was loaded.
type Model struct {
	Frameworks map[string]*Framework
	// Order holds framework names in the order they were declared.
	Order []string
}

// Framework is the format-agnostic representation of a `framework` block.
type Framework struct {
	Name      string
	Directory string
	TagPrefix string
	// Properties holds every other declared attribute, already converted.
	Properties map[string]property.Value
	// Initialize names a catalog initializer, empty when none is declared.
	Initialize string
	// Source is the file the declaration came from.
	Source string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Frameworks: make(map[string]*Framework)}
}

// Add inserts a framework, refusing duplicate names.
func (m *Model) Add(fw *Framework) error {
	if fw == nil || fw.Name == "" {
		return fmt.Errorf("framework declaration without a name")
	}
	if prev, ok := m.Frameworks[fw.Name]; ok {
		return fmt.Errorf("framework %q declared twice (%s and %s)", fw.Name, prev.Source, fw.Source)
	}
	m.Frameworks[fw.Name] = fw
	m.Order = append(m.Order, fw.Name)
	return nil
}

// Merge adds every framework of other to m.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, name := range other.Order {
		if err := m.Add(other.Frameworks[name]); err != nil {
			return err
		}
	}
	return nil
}

// Framework picks a declaration by name. An empty name is accepted when
// exactly one framework was declared.
func (m *Model) Framework(name string) (*Framework, error) {
	if name == "" {
		switch len(m.Frameworks) {
		case 0:
			return nil, fmt.Errorf("no framework declarations found")
		case 1:
			return m.Frameworks[m.Order[0]], nil
		default:
			return nil, fmt.Errorf("several frameworks declared, pick one of %v", m.Names())
		}
	}
	fw, ok := m.Frameworks[name]
	if !ok {
		return nil, fmt.Errorf("framework %q not declared, have %v", name, m.Names())
	}
	return fw, nil
}

// Names returns the declared framework names, sorted.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Frameworks))
	for name := range m.Frameworks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnchorDirectory resolves a declared directory against the declaration file.
// An undeclared directory is the file's own directory.
func AnchorDirectory(file, dir string) string {
	base := filepath.Dir(file)
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	switch {
	case dir == "":
		return base
	case filepath.IsAbs(dir):
		return filepath.Clean(dir)
	default:
		return filepath.Join(base, dir)
	}
}
