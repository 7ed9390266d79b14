package genctx

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// PackageDescriptor describes the identity of the generated ROS package.
type PackageDescriptor struct {
	// Name is the ROS package name.
	Name string `yaml:"name" validate:"required"`
	// Version is the package version string.
	Version string `yaml:"version" validate:"required"`
	// Description is the free-form package description.
	Description string `yaml:"description"`
	// AuthorEmail is the maintainer e-mail written to package.xml.
	AuthorEmail string `yaml:"author_email"`
	// AuthorName is the maintainer name written to package.xml.
	AuthorName string `yaml:"author_name"`
	// License is the license identifier.
	License string `yaml:"license"`
	// WithMarkers enables the visualization marker publisher.
	WithMarkers bool `yaml:"with_markers"`
	// Dependencies is the set of ROS package dependencies. Message packages
	// used by publishers and subscribers are added by Derive.
	Dependencies StringSet `yaml:"dependencies"`
}

// DefaultPackageDescriptor returns the package identity used without a descriptor.
func DefaultPackageDescriptor() PackageDescriptor {
	return PackageDescriptor{
		Name:         "my_package",
		Version:      "0.0.1",
		Description:  "A package for my project",
		AuthorEmail:  "your.name@email.com",
		AuthorName:   "Your Name",
		License:      "MY LICENSE",
		WithMarkers:  false,
		Dependencies: StringSet{},
	}
}

// Clone deep-copies the descriptor.
func (p PackageDescriptor) Clone() PackageDescriptor {
	out := p
	out.Dependencies = p.Dependencies.Clone()
	return out
}

// ToMap renders the descriptor as a plain mapping.
func (p PackageDescriptor) ToMap() map[string]any {
	return map[string]any{
		"name":         p.Name,
		"version":      p.Version,
		"description":  p.Description,
		"author_email": p.AuthorEmail,
		"author_name":  p.AuthorName,
		"license":      p.License,
		"with_markers": p.WithMarkers,
		"dependencies": p.Dependencies.Sorted(),
	}
}

// StringSet is an unordered set of strings. It serializes as a sorted sequence.
type StringSet map[string]struct{}

// NewStringSet builds a set from values, collapsing duplicates.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v into the set.
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy; a nil set clones to an empty one.
func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// MarshalYAML renders the set as a sorted sequence.
func (s StringSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}

// UnmarshalYAML reads a sequence of strings into the set.
func (s *StringSet) UnmarshalYAML(node *yaml.Node) error {
	var values []string
	if err := node.Decode(&values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
