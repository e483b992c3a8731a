package configfile

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// JSONLoader loads configuration from JSON files.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *JSONLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *JSONLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return l.parse("<reader>", data)
}

// parse parses JSON data into a map.
func (l *JSONLoader) parse(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{
			Path:    source,
			Message: "invalid JSON",
		}
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, &ParseError{
			Path:    source,
			Message: fmt.Sprintf("expected a JSON object, got %s", parsed.Type),
		}
	}

	config, ok := parsed.Value().(map[string]any)
	if !ok {
		return nil, &ParseError{
			Path:    source,
			Message: "expected a JSON object",
		}
	}

	return config, nil
}
