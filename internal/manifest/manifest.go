// Package manifest reads the package-manager manifest subset the Linker
// needs (spec §6): name, version, main, typings, and repository.
package manifest

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/sourcegraph/lsif-link/protocol"
)

var fastJSON = jsoniter.ConfigFastest

const (
	defaultMain    = "index.js"
	defaultTypings = "index.d.ts"
	fileName       = "package.json"
)

// Manifest is the decoded subset of package.json the Linker consults.
type Manifest struct {
	Name       string               `json:"name"`
	Version    string               `json:"version"`
	Main       string               `json:"main"`
	Typings    string               `json:"typings"`
	Repository *protocol.Repository `json:"repository"`

	// Dir is the directory containing the manifest file; monikers are made
	// relative to it (spec's "$location").
	Dir string `json:"-"`
}

// Load reads and parses the package.json file in dir. A missing "name" is
// treated as no manifest at all (spec §7 ManifestError, §8 boundary
// behavior "Manifest missing name → treated as absent").
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}

	var m Manifest
	if err := fastJSON.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", path)
	}

	if m.Name == "" {
		return nil, errors.Errorf("manifest %s has no name", path)
	}

	if m.Main == "" {
		m.Main = defaultMain
	}
	if m.Typings == "" {
		m.Typings = defaultTypings
	}
	m.Dir = filepath.Clean(dir)

	return &m, nil
}
