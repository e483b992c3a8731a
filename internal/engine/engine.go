package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/stylecheck/internal/configfile"
	"github.com/dshills/stylecheck/internal/rule"
)

// defaultFileExtensions is the extension list used when the configuration
// does not set fileExtensions.
var defaultFileExtensions = []string{".js"}

// Engine owns the rule and preset registries and the state derived from
// the most recent Load.
type Engine struct {
	rules   map[string]rule.Rule
	presets map[string]map[string]any

	pluginLoader PluginLoader
	ruleLoader   RuleLoader

	fileExtensions  []string
	excludedFiles   []string
	configuredRules []rule.Rule

	log zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPluginLoader sets the plugin loader. The default accepts only
// in-memory initializers.
func WithPluginLoader(l PluginLoader) Option {
	return func(e *Engine) {
		e.pluginLoader = l
	}
}

// WithRuleLoader sets the additional-rule loader. The default accepts only
// already-instantiated rules.
func WithRuleLoader(l RuleLoader) Option {
	return func(e *Engine) {
		e.ruleLoader = l
	}
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine with empty registries.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:          make(map[string]rule.Rule),
		presets:        make(map[string]map[string]any),
		pluginLoader:   NewBasePluginLoader(),
		ruleLoader:     NewBaseRuleLoader(),
		fileExtensions: append([]string(nil), defaultFileExtensions...),
		log:            zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RegisterRule stores the rule under its option name, replacing any
// existing entry. Last registration wins.
func (e *Engine) RegisterRule(r rule.Rule) {
	name := r.OptionName()
	if _, exists := e.rules[name]; exists {
		e.log.Debug().Str("rule", name).Msg("rule registration replaced")
	}
	e.rules[name] = r
}

// RegisterPreset stores a raw configuration under the preset name,
// replacing any existing entry. The config is deep-cloned so later caller
// mutation cannot alter the registered preset.
func (e *Engine) RegisterPreset(name string, config map[string]any) {
	e.presets[name] = configfile.Clone(config)
}

// HasRule reports whether a rule is registered under the option name.
func (e *Engine) HasRule(name string) bool {
	_, ok := e.rules[name]
	return ok
}

// HasPreset reports whether a preset is registered under the name.
func (e *Engine) HasPreset(name string) bool {
	_, ok := e.presets[name]
	return ok
}

// Load resolves the raw configuration and configures every matched rule.
//
// Keys of the resolved rule-settings mapping that match no registered
// rule are collected; every key is attempted before the aggregated
// unsupported-rules error is returned. Rules that did match are
// configured even when Load ultimately fails that way.
func (e *Engine) Load(config map[string]any) error {
	settings, err := e.resolve(config)
	if err != nil {
		return err
	}

	configured := make([]rule.Rule, 0, settings.len())
	var unsupported []string

	for _, name := range settings.keys() {
		r, ok := e.rules[name]
		if !ok {
			unsupported = append(unsupported, name)
			continue
		}

		value, _ := settings.get(name)
		if err := r.Configure(value); err != nil {
			return fmt.Errorf("configuring rule %s: %w", name, err)
		}
		configured = append(configured, r)
		e.log.Debug().Str("rule", name).Msg("rule configured")
	}

	e.configuredRules = configured

	if len(unsupported) > 0 {
		return UnsupportedRulesError(unsupported)
	}
	return nil
}

// ConfiguredRules returns the rules configured by the most recent Load,
// in key-encounter order.
func (e *Engine) ConfiguredRules() []rule.Rule {
	out := make([]rule.Rule, len(e.configuredRules))
	copy(out, e.configuredRules)
	return out
}

// FileExtensions returns the file extensions to scan.
func (e *Engine) FileExtensions() []string {
	out := make([]string, len(e.fileExtensions))
	copy(out, e.fileExtensions)
	return out
}

// ExcludedFiles returns the exclusion glob patterns.
func (e *Engine) ExcludedFiles() []string {
	out := make([]string, len(e.excludedFiles))
	copy(out, e.excludedFiles)
	return out
}
