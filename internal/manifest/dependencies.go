package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/conn-castle/project-install/internal/messages"
)

// Dependency is a single name@version requirement.
type Dependency struct {
	Name    string
	Version string
}

// String renders the dependency as name@version.
func (d Dependency) String() string {
	return d.Name + "@" + d.Version
}

// Dependencies is an insertion-ordered name -> version mapping.
// Order is significant: it fixes the order of the dependency string handed to the installer.
type Dependencies struct {
	entries []Dependency
}

// NewDependencies builds Dependencies from entries. Later duplicates replace earlier versions in place.
func NewDependencies(entries ...Dependency) *Dependencies {
	deps := &Dependencies{}
	for _, entry := range entries {
		deps.Set(entry.Name, entry.Version)
	}
	return deps
}

// Set records version for name, keeping the original position of an existing name.
func (d *Dependencies) Set(name string, version string) {
	for i := range d.entries {
		if d.entries[i].Name == name {
			d.entries[i].Version = version
			return
		}
	}
	d.entries = append(d.entries, Dependency{Name: name, Version: version})
}

// Len returns the number of entries.
func (d *Dependencies) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns a copy of the entries in order.
func (d *Dependencies) Entries() []Dependency {
	if d == nil {
		return nil
	}
	return append([]Dependency(nil), d.entries...)
}

// String returns the space-joined name@version list, or "" when empty.
func (d *Dependencies) String() string {
	if d.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.entries))
	for _, entry := range d.entries {
		parts = append(parts, entry.String())
	}
	return strings.Join(parts, " ")
}

// UnmarshalJSON decodes a JSON object of string versions, keeping document order.
func (d *Dependencies) UnmarshalJSON(data []byte) error {
	obj, err := Parse(data)
	if err != nil {
		return err
	}
	parsed, err := dependenciesFrom(obj)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// MarshalJSON encodes the dependencies as a JSON object in order.
func (d *Dependencies) MarshalJSON() ([]byte, error) {
	obj := NewObject()
	for _, entry := range d.Entries() {
		obj.Set(entry.Name, entry.Version)
	}
	return obj.MarshalJSON()
}

// DependenciesFromObject reads the dependency map stored under key in a manifest.
// It returns nil (absent) when the key is missing or null.
func DependenciesFromObject(obj *Object, key string) (*Dependencies, error) {
	value, ok := obj.Get(key)
	if !ok || value == nil {
		return nil, nil
	}
	nested, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf(messages.ManifestDepsNotObjectFmt, key, describe(value))
	}
	deps, err := dependenciesFrom(nested)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestDepsKeyFmt, key, err)
	}
	return deps, nil
}

func dependenciesFrom(obj *Object) (*Dependencies, error) {
	deps := &Dependencies{}
	for _, name := range obj.Keys() {
		value, _ := obj.Get(name)
		version, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf(messages.ManifestDepVersionFmt, name, describe(value))
		}
		deps.Set(name, version)
	}
	return deps, nil
}

func describe(value any) string {
	var buf bytes.Buffer
	if err := writeScalar(&buf, value); err != nil {
		return fmt.Sprintf("%T", value)
	}
	return buf.String()
}

// ParseDependency splits a name@version specifier. Scoped names such as
// @scope/pkg@1.0.0 split at the last @.
func ParseDependency(value string) (Dependency, error) {
	value = strings.TrimSpace(value)
	idx := strings.LastIndex(value, "@")
	if idx <= 0 || idx == len(value)-1 {
		return Dependency{}, fmt.Errorf(messages.ManifestDepSpecifierFmt, value)
	}
	return Dependency{Name: value[:idx], Version: value[idx+1:]}, nil
}
