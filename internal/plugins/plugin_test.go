package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/lookup"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "bank.yaml", `
name: query_bank_accounts
description: Look up bank accounts tied to a person.
path: /ai/bank
rule: any_of
require: [id, phonenum]
params:
  - name: id
    description: National ID number
  - name: phonenum
    description: Phone number
  - name: bank_code
    description: Optional bank filter
`)

	manifest, err := LoadManifest(filepath.Join(dir, "bank.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if manifest.Name != "query_bank_accounts" {
		t.Errorf("Name = %q, want query_bank_accounts", manifest.Name)
	}
	if manifest.Path != "/ai/bank" {
		t.Errorf("Path = %q, want /ai/bank", manifest.Path)
	}
	if len(manifest.Params) != 3 {
		t.Errorf("Params length = %d, want 3", len(manifest.Params))
	}
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "missing name",
			file: "noname.yaml",
			content: `
path: /ai/thing
require: [id]
`,
		},
		{
			name: "relative path",
			file: "relpath.yaml",
			content: `
name: query_thing
path: ai/thing
require: [id]
`,
		},
		{
			name: "no required fields",
			file: "norequire.yaml",
			content: `
name: query_thing
path: /ai/thing
`,
		},
		{
			name: "unknown rule",
			file: "badrule.yaml",
			content: `
name: query_thing
path: /ai/thing
rule: one_of
require: [id]
`,
		},
		{
			name:    "invalid yaml",
			file:    "broken.yaml",
			content: "name: [unclosed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeManifest(t, dir, tt.file, tt.content)
			if _, err := LoadManifest(filepath.Join(dir, tt.file)); err == nil {
				t.Errorf("LoadManifest(%s) expected error, got nil", tt.file)
			}
		})
	}
}

func TestLoadManifestBackfillsRequiredParams(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "trail.yaml", `
name: query_device_trail
path: /ai/device
rule: all_of
require: [device_id, day]
`)

	manifest, err := LoadManifest(filepath.Join(dir, "trail.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if len(manifest.Params) != 2 {
		t.Fatalf("Params length = %d, want 2", len(manifest.Params))
	}

	op := manifest.ToOperation()
	if op.Rule.Kind != lookup.AllOf {
		t.Errorf("Rule.Kind = %v, want AllOf", op.Rule.Kind)
	}
	names := make(map[string]bool)
	for _, p := range op.Params {
		names[p.Name] = true
	}
	for _, want := range []string{"device_id", "day"} {
		if !names[want] {
			t.Errorf("operation params missing backfilled field %q", want)
		}
	}
}

func TestToOperationDefaultsToAnyOf(t *testing.T) {
	manifest := &Manifest{
		Name:    "query_thing",
		Path:    "/ai/thing",
		Require: []string{"id"},
		Params:  []ManifestParam{{Name: "id"}},
	}
	op := manifest.ToOperation()
	if op.Rule.Kind != lookup.AnyOf {
		t.Errorf("Rule.Kind = %v, want AnyOf", op.Rule.Kind)
	}
	if op.Params[0].Description != "id" {
		t.Errorf("empty param description should fall back to name, got %q", op.Params[0].Description)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "good.yaml", `
name: query_bank_accounts
path: /ai/bank
require: [id]
`)
	writeManifest(t, dir, "bad.yaml", `
path: /ai/orphan
require: [id]
`)
	writeManifest(t, dir, "notes.txt", "not a manifest")

	loader := NewLoader(dir, zerolog.Nop())
	manifests := loader.LoadAll()
	if len(manifests) != 1 {
		t.Fatalf("LoadAll() returned %d manifests, want 1", len(manifests))
	}
	if manifests[0].Name != "query_bank_accounts" {
		t.Errorf("loaded %q, want query_bank_accounts", manifests[0].Name)
	}
}

func TestLoaderMissingDir(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"), zerolog.Nop())
	if got := loader.LoadAll(); got != nil {
		t.Errorf("LoadAll() on missing dir = %v, want nil", got)
	}
}

func TestLoaderRegister(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "bank.yaml", `
name: query_bank_accounts
path: /ai/bank
require: [id]
`)
	writeManifest(t, dir, "dup.yaml", `
name: get_person_baseinfo
path: /ai/clone
require: [id]
`)

	catalog, err := lookup.NewCatalog(lookup.Builtins()...)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	before := catalog.Len()

	loader := NewLoader(dir, zerolog.Nop())
	added := loader.Register(catalog)
	if added != 1 {
		t.Errorf("Register() added = %d, want 1", added)
	}
	if catalog.Len() != before+1 {
		t.Errorf("catalog length = %d, want %d", catalog.Len(), before+1)
	}
	if _, ok := catalog.Get("query_bank_accounts"); !ok {
		t.Error("catalog missing registered manifest operation")
	}
}
