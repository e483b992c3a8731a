package engine

import (
	"errors"
	"sort"
)

var errNotStringSlice = errors.New("not a string slice")

// Reserved configuration keys. These control engine behavior and never
// name rules.
const (
	keyPlugins         = "plugins"
	keyPreset          = "preset"
	keyExcludeFiles    = "excludeFiles"
	keyAdditionalRules = "additionalRules"
	keyFileExtensions  = "fileExtensions"
)

var reservedKeys = map[string]bool{
	keyPlugins:         true,
	keyPreset:          true,
	keyExcludeFiles:    true,
	keyAdditionalRules: true,
	keyFileExtensions:  true,
}

// IsReservedKey reports whether the key is one of the five reserved
// configuration keys.
func IsReservedKey(key string) bool {
	return reservedKeys[key]
}

// resolve turns a raw configuration into the flat rule-settings mapping,
// updating fileExtensions and excludedFiles on the way.
func (e *Engine) resolve(config map[string]any) (*settingsMap, error) {
	out := newSettingsMap()
	if err := e.resolveInto(config, out, make(map[string]bool)); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveInto processes one configuration object. A referenced preset
// recursively re-enters this same function before the outer object's own
// keys are copied, so outer values override preset values. active holds
// the preset names currently being expanded; a repeat is a cycle.
func (e *Engine) resolveInto(config map[string]any, out *settingsMap, active map[string]bool) error {
	if raw, ok := config[keyPlugins]; ok {
		refs, ok := raw.([]any)
		if !ok {
			return NewConfigError(KindInvalidPluginsType, "plugins must be an array, got %T", raw)
		}
		for _, ref := range refs {
			if err := e.pluginLoader.Load(ref, e); err != nil {
				return err
			}
		}
	}

	if raw, ok := config[keyPreset]; ok {
		name, ok := raw.(string)
		if !ok {
			return NewConfigError(KindInvalidPresetType, "preset must be a string, got %T", raw)
		}
		preset, ok := e.presets[name]
		if !ok {
			return NewConfigError(KindPresetNotFound, "preset %q is not registered", name)
		}
		if active[name] {
			return NewConfigError(KindPresetCycle, "preset %q references itself through its preset chain", name)
		}
		active[name] = true
		e.log.Debug().Str("preset", name).Msg("expanding preset")
		if err := e.resolveInto(preset, out, active); err != nil {
			return err
		}
		delete(active, name)
	}

	if raw, ok := config[keyFileExtensions]; ok {
		exts, err := stringOrStringSlice(raw)
		if err != nil {
			return NewConfigError(KindInvalidFileExtensionsType,
				"fileExtensions must be a string or an array of strings, got %T", raw)
		}
		e.fileExtensions = exts
	}

	if raw, ok := config[keyExcludeFiles]; ok {
		patterns, err := stringSlice(raw)
		if err != nil {
			return NewConfigError(KindInvalidExcludeFilesType,
				"excludeFiles must be an array of strings, got %T", raw)
		}
		e.excludedFiles = patterns
	}

	if raw, ok := config[keyAdditionalRules]; ok {
		refs, ok := raw.([]any)
		if !ok {
			return NewConfigError(KindInvalidAdditionalRulesType,
				"additionalRules must be an array, got %T", raw)
		}
		for _, ref := range refs {
			if err := e.ruleLoader.Load(ref, e); err != nil {
				return err
			}
		}
	}

	// Direct keys. Go maps carry no author order, so keys of a single
	// object are visited lexicographically; set keeps the position of
	// keys already placed by preset expansion while overwriting their
	// values.
	names := make([]string, 0, len(config))
	for key := range config {
		if !reservedKeys[key] {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	for _, key := range names {
		out.set(key, config[key])
	}

	return nil
}

// stringOrStringSlice normalizes a bare string to a single-element slice.
func stringOrStringSlice(raw any) ([]string, error) {
	if s, ok := raw.(string); ok {
		return []string{s}, nil
	}
	return stringSlice(raw)
}

// stringSlice accepts []string directly or []any holding only strings.
func stringSlice(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errNotStringSlice
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, errNotStringSlice
	}
}
