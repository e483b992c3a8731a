package builtin

import "github.com/dshills/stylecheck/internal/rule"

// Register installs the built-in rule catalog into the registrar.
func Register(reg rule.Registrar) {
	reg.RegisterRule(&DisallowEmptyBlocks{})
	reg.RegisterRule(&DisallowTrailingWhitespace{})
	reg.RegisterRule(&DisallowMultipleLineBreaks{})
	reg.RegisterRule(&DisallowTabs{})
	reg.RegisterRule(&MaximumLineLength{})
	reg.RegisterRule(&RequireLineFeedAtFileEnd{})
}

// boolSetting validates the common "must be literally true" setting shape.
func boolSetting(option string, value any) error {
	b, ok := value.(bool)
	if !ok || !b {
		return rule.SettingError(option, value, "true")
	}
	return nil
}

// intSetting validates a positive integer setting, tolerating the numeric
// types JSON and TOML decoders produce.
func intSetting(option string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, nil
		}
	case int64:
		if v > 0 {
			return int(v), nil
		}
	case float64:
		if v > 0 && v == float64(int64(v)) {
			return int(v), nil
		}
	}
	return 0, rule.SettingError(option, value, "positive integer")
}
