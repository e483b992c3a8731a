// Package preset holds the built-in preset catalog.
//
// Each preset is a named raw configuration object shipped as embedded
// JSON. Presets are data, not logic: the engine expands them through the
// same resolution path as any other configuration, so a preset may itself
// reference another preset.
package preset

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/dshills/stylecheck/internal/rule"
)

//go:embed presets/*.json
var presetFS embed.FS

var (
	catalogOnce sync.Once
	catalog     map[string]map[string]any
	catalogErr  error
)

// Builtin returns the built-in preset catalog, keyed by preset name.
// The catalog is parsed from the embedded files once and cached.
func Builtin() (map[string]map[string]any, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = loadEmbedded()
	})
	return catalog, catalogErr
}

// Register installs every built-in preset into the registrar.
func Register(reg rule.Registrar) error {
	presets, err := Builtin()
	if err != nil {
		return err
	}
	for name, config := range presets {
		reg.RegisterPreset(name, config)
	}
	return nil
}

// Names returns the built-in preset names, sorted.
func Names() ([]string, error) {
	presets, err := Builtin()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func loadEmbedded() (map[string]map[string]any, error) {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil, fmt.Errorf("reading embedded presets: %w", err)
	}

	presets := make(map[string]map[string]any, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		data, err := presetFS.ReadFile("presets/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded preset %s: %w", name, err)
		}

		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("embedded preset %s is not valid JSON", name)
		}
		config, ok := gjson.ParseBytes(data).Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("embedded preset %s is not a JSON object", name)
		}
		presets[name] = config
	}

	return presets, nil
}
