package plugins

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/lookup"
)

// Loader discovers operation manifests in a directory.
type Loader struct {
	dir string
	log zerolog.Logger
}

// NewLoader creates a loader for the given manifest directory.
func NewLoader(dir string, log zerolog.Logger) *Loader {
	return &Loader{dir: dir, log: log}
}

// LoadAll reads every *.yaml / *.yml file in the directory. Invalid
// manifests are logged and skipped so one bad file never takes down the
// rest; a missing directory simply yields no manifests.
func (l *Loader) LoadAll() []*Manifest {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			l.log.Warn().Err(err).Str("dir", l.dir).Msg("cannot read manifest directory")
		}
		return nil
	}

	var manifests []*Manifest
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		manifest, err := LoadManifest(filepath.Join(l.dir, name))
		if err != nil {
			l.log.Warn().Err(err).Str("file", name).Msg("skipping invalid operation manifest")
			continue
		}

		l.log.Debug().Str("operation", manifest.Name).Str("file", name).Msg("loaded operation manifest")
		manifests = append(manifests, manifest)
	}

	return manifests
}

// Register loads all manifests and adds them to the catalog. Manifests
// that collide with a built-in or an earlier manifest are logged and
// skipped. Returns the number of operations added.
func (l *Loader) Register(catalog *lookup.Catalog) int {
	added := 0
	for _, manifest := range l.LoadAll() {
		if err := catalog.Add(manifest.ToOperation()); err != nil {
			l.log.Warn().Err(err).Str("operation", manifest.Name).Msg("skipping manifest")
			continue
		}
		added++
	}
	return added
}
