// Package plugins loads user-defined lookup operations from YAML manifests.
// A manifest declares the operation's backend path and parameter rule; the
// loaded operation behaves exactly like a built-in on every surface.
package plugins

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/onecloudtech/insight/internal/lookup"
)

// Manifest declares one user-defined lookup operation.
type Manifest struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Path        string          `yaml:"path"`
	Rule        string          `yaml:"rule"` // "any_of" (default) or "all_of"
	Require     []string        `yaml:"require"`
	Params      []ManifestParam `yaml:"params"`
}

// ManifestParam declares one accepted parameter.
type ManifestParam struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// LoadManifest reads and validates a single manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if manifest.Name == "" {
		return nil, fmt.Errorf("operation name is required")
	}
	if manifest.Path == "" || !strings.HasPrefix(manifest.Path, "/") {
		return nil, fmt.Errorf("operation path must start with /")
	}
	if len(manifest.Require) == 0 {
		return nil, fmt.Errorf("operation needs at least one required field")
	}
	switch manifest.Rule {
	case "", "any_of", "all_of":
	default:
		return nil, fmt.Errorf("unknown rule %q (want any_of or all_of)", manifest.Rule)
	}

	// Required fields that were not declared as params get a bare
	// declaration, so the schema and the cleaner always know them.
	declared := make(map[string]bool, len(manifest.Params))
	for _, p := range manifest.Params {
		declared[p.Name] = true
	}
	for _, f := range manifest.Require {
		if !declared[f] {
			manifest.Params = append(manifest.Params, ManifestParam{Name: f})
		}
	}

	return &manifest, nil
}

// ToOperation converts the manifest into a catalog operation.
func (m *Manifest) ToOperation() *lookup.Operation {
	kind := lookup.AnyOf
	if m.Rule == "all_of" {
		kind = lookup.AllOf
	}

	params := make([]lookup.Param, 0, len(m.Params))
	for _, p := range m.Params {
		desc := p.Description
		if desc == "" {
			desc = p.Name
		}
		params = append(params, lookup.Param{Name: p.Name, Description: desc})
	}

	return &lookup.Operation{
		Name:        m.Name,
		Description: m.Description,
		Path:        m.Path,
		Rule:        lookup.Rule{Kind: kind, Fields: append([]string(nil), m.Require...)},
		Params:      params,
	}
}
