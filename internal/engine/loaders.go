package engine

import "github.com/dshills/stylecheck/internal/rule"

// Initializer is an in-memory plugin: a callable run with the engine's
// registration surface, free to register rules and presets.
type Initializer func(reg rule.Registrar) error

// PluginLoader resolves a plugin reference from the plugins configuration
// key and runs it against the registrar.
//
// The base implementation accepts only Initializer values. Environment-
// specific implementations may additionally accept string locators.
type PluginLoader interface {
	Load(ref any, reg rule.Registrar) error
}

// RuleLoader resolves an additional-rule reference from the
// additionalRules configuration key and registers zero or more rules.
//
// The base implementation accepts only rule.Rule values. Environment-
// specific implementations may additionally accept glob pattern strings.
type RuleLoader interface {
	Load(ref any, reg rule.Registrar) error
}

// BasePluginLoader is the restricted plugin loader: it accepts directly
// callable initializers and nothing else.
type BasePluginLoader struct{}

// NewBasePluginLoader creates the restricted plugin loader.
func NewBasePluginLoader() *BasePluginLoader {
	return &BasePluginLoader{}
}

// Load runs the initializer with the registrar, synchronously.
func (l *BasePluginLoader) Load(ref any, reg rule.Registrar) error {
	switch fn := ref.(type) {
	case Initializer:
		return fn(reg)
	case func(rule.Registrar) error:
		return fn(reg)
	default:
		return NewConfigError(KindInvalidPlugin, "plugin must be an initializer function, got %T", ref)
	}
}

// BaseRuleLoader is the restricted additional-rule loader: it accepts
// already-instantiated rules and nothing else.
type BaseRuleLoader struct{}

// NewBaseRuleLoader creates the restricted additional-rule loader.
func NewBaseRuleLoader() *BaseRuleLoader {
	return &BaseRuleLoader{}
}

// Load registers the rule with the registrar.
func (l *BaseRuleLoader) Load(ref any, reg rule.Registrar) error {
	r, ok := ref.(rule.Rule)
	if !ok {
		return NewConfigError(KindInvalidAdditionalRule, "additional rule must be a rule instance, got %T", ref)
	}
	reg.RegisterRule(r)
	return nil
}
