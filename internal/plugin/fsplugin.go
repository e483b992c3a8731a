package plugin

import (
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stylecheck/internal/engine"
	"github.com/dshills/stylecheck/internal/plugin/luart"
	"github.com/dshills/stylecheck/internal/rule"
)

// FSPluginLoader is the filesystem-capable plugin loader. In addition to
// the in-memory initializers the base loader accepts, it resolves string
// locators to Lua plugin scripts.
//
// A plugin script returns an initializer function. The function is
// invoked with a checker table exposing register_rule and register_preset:
//
//	return function(checker)
//	    checker.register_rule{ option = "my-rule" }
//	    checker.register_preset("mine", { ["my-rule"] = true })
//	end
type FSPluginLoader struct {
	base   *engine.BasePluginLoader
	paths  []string
	states []*luart.State
}

// FSPluginOption configures an FSPluginLoader.
type FSPluginOption func(*FSPluginLoader)

// WithPluginPaths sets the directories searched for plugin scripts,
// checked in order. The default is the working directory.
func WithPluginPaths(paths ...string) FSPluginOption {
	return func(l *FSPluginLoader) {
		l.paths = paths
	}
}

// NewFSPluginLoader creates a filesystem-capable plugin loader.
func NewFSPluginLoader(opts ...FSPluginOption) *FSPluginLoader {
	l := &FSPluginLoader{
		base:  engine.NewBasePluginLoader(),
		paths: []string{"."},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves a plugin reference and runs it against the registrar.
// String references are treated as Lua script locators; everything else
// is handed to the base loader.
func (l *FSPluginLoader) Load(ref any, reg rule.Registrar) error {
	locator, ok := ref.(string)
	if !ok {
		return l.base.Load(ref, reg)
	}

	path, err := l.resolve(locator)
	if err != nil {
		return engine.WrapConfigError(engine.KindInvalidPlugin, err, "cannot resolve plugin %q", locator)
	}

	state := luart.NewState()
	l.states = append(l.states, state)

	result, err := state.DoFile(path)
	if err != nil {
		return engine.WrapConfigError(engine.KindInvalidPlugin, err, "plugin %q failed to load: %v", locator, err)
	}

	fn, ok := result.(*lua.LFunction)
	if !ok {
		return engine.NewConfigError(engine.KindInvalidPlugin,
			"plugin %q must return an initializer function, got %s", locator, result.Type())
	}

	if err := state.CallFunction(fn, checkerTable(state, reg)); err != nil {
		return engine.WrapConfigError(engine.KindInvalidPlugin, err, "plugin %q failed: %v", locator, err)
	}
	return nil
}

// resolve locates the Lua script for a plugin locator. Absolute and
// relative paths are used as given; bare names are searched across the
// configured paths, with a .lua suffix appended when missing.
func (l *FSPluginLoader) resolve(locator string) (string, error) {
	candidates := []string{locator}
	if filepath.Ext(locator) != ".lua" {
		candidates = append(candidates, locator+".lua")
	}

	if filepath.IsAbs(locator) || filepath.Dir(locator) != "." {
		for _, c := range candidates {
			if fileExists(c) {
				return c, nil
			}
		}
		return "", os.ErrNotExist
	}

	for _, dir := range l.paths {
		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if fileExists(p) {
				return p, nil
			}
		}
	}
	return "", os.ErrNotExist
}

// Close releases the Lua states created by loaded plugins. Rules a plugin
// registered become unusable afterwards.
func (l *FSPluginLoader) Close() {
	for _, s := range l.states {
		s.Close()
	}
	l.states = nil
}

// checkerTable builds the registration surface handed to plugin
// initializers.
func checkerTable(state *luart.State, reg rule.Registrar) *lua.LTable {
	funcs := map[string]lua.LGFunction{
		"register_rule": func(L *lua.LState) int {
			def := L.CheckTable(1)
			r, err := newLuaRule(state, def)
			if err != nil {
				L.RaiseError("register_rule: %s", err.Error())
				return 0
			}
			reg.RegisterRule(r)
			return 0
		},
		"register_preset": func(L *lua.LState) int {
			name := L.CheckString(1)
			tbl := L.CheckTable(2)
			config, ok := luart.ToGoValue(tbl).(map[string]any)
			if !ok {
				L.RaiseError("register_preset: preset %q must be a table of settings", name)
				return 0
			}
			reg.RegisterPreset(name, config)
			return 0
		},
	}
	return state.SetFuncs(state.NewTable(), funcs)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
