// Package configfile loads stylecheck configuration files.
//
// The configuration engine consumes plain maps; this package produces
// them from TOML or JSON files on disk. Loaders return nil, nil when the
// file does not exist so callers can fall through to defaults.
package configfile

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Config file names probed by Discover, in order.
var discoverNames = []string{
	".stylecheckrc.toml",
	".stylecheckrc.json",
	"stylecheck.toml",
}

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads configuration from a specific path.
	LoadFrom(path string) (map[string]any, error)
}

// ReaderLoader is the interface for loaders that read from io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads configuration from a reader.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns a loader appropriate for the file extension.
// TOML is the default for unknown extensions.
func ForPath(path string) FileLoader {
	if filepath.Ext(path) == ".json" {
		return NewJSONLoader(path)
	}
	return NewTOMLLoader(path)
}

// Discover probes dir for a configuration file and loads the first one
// found. Returns nil, "" and no error when none exists.
func Discover(dir string) (map[string]any, string, error) {
	for _, name := range discoverNames {
		path := filepath.Join(dir, name)
		cfg, err := ForPath(path).LoadFrom(path)
		if err != nil {
			return nil, "", err
		}
		if cfg != nil {
			return cfg, path, nil
		}
	}
	return nil, "", nil
}
