package plugin

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/match"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stylecheck/internal/engine"
	"github.com/dshills/stylecheck/internal/plugin/luart"
	"github.com/dshills/stylecheck/internal/rule"
)

// FSRuleLoader is the filesystem-capable additional-rule loader. In
// addition to the rule instances the base loader accepts, it expands glob
// pattern strings to Lua rule files.
//
// A rule file returns either a rule definition table (see LuaRule) or a
// constructor function that, called with no arguments, returns one.
// A pattern matching nothing registers zero rules; that is not an error.
type FSRuleLoader struct {
	base    *engine.BaseRuleLoader
	workDir string
	states  []*luart.State
}

// FSRuleOption configures an FSRuleLoader.
type FSRuleOption func(*FSRuleLoader)

// WithWorkDir sets the directory glob patterns are resolved against.
// The default is the working directory.
func WithWorkDir(dir string) FSRuleOption {
	return func(l *FSRuleLoader) {
		l.workDir = dir
	}
}

// NewFSRuleLoader creates a filesystem-capable additional-rule loader.
func NewFSRuleLoader(opts ...FSRuleOption) *FSRuleLoader {
	l := &FSRuleLoader{
		base:    engine.NewBaseRuleLoader(),
		workDir: ".",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves an additional-rule reference. String references are glob
// patterns; everything else is handed to the base loader.
func (l *FSRuleLoader) Load(ref any, reg rule.Registrar) error {
	pattern, ok := ref.(string)
	if !ok {
		return l.base.Load(ref, reg)
	}

	paths, err := l.expand(pattern)
	if err != nil {
		return engine.WrapConfigError(engine.KindInvalidAdditionalRule, err,
			"invalid additional rules pattern %q: %v", pattern, err)
	}

	for _, path := range paths {
		if err := l.loadRuleFile(path, reg); err != nil {
			return err
		}
	}
	return nil
}

// expand resolves a glob pattern to an ordered list of file paths.
// Patterns containing ** walk the tree and match against the
// slash-separated path relative to the work directory.
func (l *FSRuleLoader) expand(pattern string) ([]string, error) {
	if !strings.Contains(pattern, "**") {
		paths, err := filepath.Glob(filepath.Join(l.workDir, pattern))
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)
		return paths, nil
	}

	// A leading **/ also matches zero directories, so rules/**/*.lua and
	// **/*.lua both cover files sitting directly in the work directory.
	flat, hasFlat := strings.CutPrefix(pattern, "**/")

	var paths []string
	err := filepath.WalkDir(l.workDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(l.workDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if match.Match(rel, pattern) || (hasFlat && match.Match(rel, flat)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// loadRuleFile runs one Lua rule file and registers the rule it defines.
func (l *FSRuleLoader) loadRuleFile(path string, reg rule.Registrar) error {
	state := luart.NewState()
	l.states = append(l.states, state)

	result, err := state.DoFile(path)
	if err != nil {
		return engine.WrapConfigError(engine.KindInvalidAdditionalRule, err,
			"additional rule %s failed to load: %v", path, err)
	}

	// A constructor function is instantiated with no arguments.
	if fn, ok := result.(*lua.LFunction); ok {
		result, err = state.Call(fn)
		if err != nil {
			return engine.WrapConfigError(engine.KindInvalidAdditionalRule, err,
				"additional rule %s failed to instantiate: %v", path, err)
		}
	}

	def, ok := result.(*lua.LTable)
	if !ok {
		return engine.NewConfigError(engine.KindInvalidAdditionalRule,
			"additional rule %s must return a rule definition, got %s", path, result.Type())
	}

	r, err := newLuaRule(state, def)
	if err != nil {
		return engine.WrapConfigError(engine.KindInvalidAdditionalRule, err,
			"additional rule %s: %v", path, err)
	}
	reg.RegisterRule(r)
	return nil
}

// Close releases the Lua states created for loaded rule files.
func (l *FSRuleLoader) Close() {
	for _, s := range l.states {
		s.Close()
	}
	l.states = nil
}
