package engine

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes configuration errors.
type ErrorKind uint8

const (
	// KindInvalidPluginsType indicates plugins is not an array.
	KindInvalidPluginsType ErrorKind = iota
	// KindInvalidPresetType indicates preset is not a string.
	KindInvalidPresetType
	// KindPresetNotFound indicates the named preset is not registered.
	KindPresetNotFound
	// KindPresetCycle indicates a preset whose expansion reaches itself
	// again through the preset chain.
	KindPresetCycle
	// KindInvalidFileExtensionsType indicates fileExtensions is neither a
	// string nor an array of strings.
	KindInvalidFileExtensionsType
	// KindInvalidExcludeFilesType indicates excludeFiles is not an array
	// of strings.
	KindInvalidExcludeFilesType
	// KindInvalidAdditionalRulesType indicates additionalRules is not an
	// array.
	KindInvalidAdditionalRulesType
	// KindInvalidPlugin indicates a plugin reference the loader cannot
	// turn into an initializer.
	KindInvalidPlugin
	// KindInvalidAdditionalRule indicates an additional-rule reference the
	// loader cannot turn into a rule.
	KindInvalidAdditionalRule
	// KindUnsupportedRules indicates configuration keys that matched no
	// registered rule.
	KindUnsupportedRules
)

// String returns a stable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidPluginsType:
		return "invalid_plugins_type"
	case KindInvalidPresetType:
		return "invalid_preset_type"
	case KindPresetNotFound:
		return "preset_not_found"
	case KindPresetCycle:
		return "preset_cycle"
	case KindInvalidFileExtensionsType:
		return "invalid_file_extensions_type"
	case KindInvalidExcludeFilesType:
		return "invalid_exclude_files_type"
	case KindInvalidAdditionalRulesType:
		return "invalid_additional_rules_type"
	case KindInvalidPlugin:
		return "invalid_plugin"
	case KindInvalidAdditionalRule:
		return "invalid_additional_rule"
	case KindUnsupportedRules:
		return "unsupported_rules"
	default:
		return "unknown"
	}
}

// ConfigError describes a configuration failure.
type ConfigError struct {
	// Kind categorizes the failure.
	Kind ErrorKind
	// Message is the human-readable description.
	Message string
	// Names carries the offending option names for KindUnsupportedRules,
	// in encounter order. Empty for every other kind.
	Names []string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(kind ErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapConfigError builds a ConfigError around an underlying error.
func WrapConfigError(kind ErrorKind, err error, format string, args ...any) *ConfigError {
	return &ConfigError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// UnsupportedRulesError builds the aggregated error for configuration
// keys that matched no registered rule. Names are reported in the order
// they were encountered.
func UnsupportedRulesError(names []string) *ConfigError {
	return &ConfigError{
		Kind:    KindUnsupportedRules,
		Message: "unsupported rules: " + strings.Join(names, ", "),
		Names:   names,
	}
}
