package engine

import (
	"github.com/dshills/stylecheck/internal/preset"
	"github.com/dshills/stylecheck/internal/rule/builtin"
)

// RegisterDefaults installs the built-in rule catalog and the built-in
// named presets.
func (e *Engine) RegisterDefaults() error {
	builtin.Register(e)
	return preset.Register(e)
}

// NewWithDefaults creates an Engine pre-populated with the built-in rule
// and preset catalogs.
func NewWithDefaults(opts ...Option) (*Engine, error) {
	e := New(opts...)
	if err := e.RegisterDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}
