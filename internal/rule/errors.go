package rule

import (
	"errors"
	"fmt"
)

// Errors shared by rule implementations.
var (
	// ErrInvalidSetting indicates a settings value the rule does not accept.
	ErrInvalidSetting = errors.New("invalid rule setting")

	// ErrNotConfigured indicates Check was called before Configure.
	ErrNotConfigured = errors.New("rule not configured")
)

// SettingError builds an ErrInvalidSetting for the given rule and value.
func SettingError(option string, value any, expected string) error {
	return fmt.Errorf("%w for %s: expected %s, got %T", ErrInvalidSetting, option, expected, value)
}
