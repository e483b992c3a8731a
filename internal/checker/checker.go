// Package checker ties the configuration engine to the filesystem: it
// wires the environment-capable loaders, resolves a configuration, and
// runs the configured rules over source files.
package checker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/match"

	"github.com/dshills/stylecheck/internal/engine"
	"github.com/dshills/stylecheck/internal/plugin"
	"github.com/dshills/stylecheck/internal/rule"
)

// Checker owns a fully wired engine and the file-walking logic.
type Checker struct {
	engine  *engine.Engine
	plugins *plugin.FSPluginLoader
	rules   *plugin.FSRuleLoader
	log     zerolog.Logger
	runID   string
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the checker logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Checker) {
		c.log = log
	}
}

// New creates a Checker whose engine carries the built-in catalogs and
// the filesystem-capable plugin and rule loaders rooted at workDir.
func New(workDir string, opts ...Option) (*Checker, error) {
	c := &Checker{
		plugins: plugin.NewFSPluginLoader(plugin.WithPluginPaths(workDir)),
		rules:   plugin.NewFSRuleLoader(plugin.WithWorkDir(workDir)),
		log:     zerolog.Nop(),
		runID:   uuid.NewString(),
	}

	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("run_id", c.runID).Logger()

	eng, err := engine.NewWithDefaults(
		engine.WithPluginLoader(c.plugins),
		engine.WithRuleLoader(c.rules),
		engine.WithLogger(c.log),
	)
	if err != nil {
		return nil, err
	}
	c.engine = eng

	return c, nil
}

// Engine exposes the underlying configuration engine.
func (c *Checker) Engine() *engine.Engine {
	return c.engine
}

// Configure resolves the raw configuration into configured rules.
func (c *Checker) Configure(config map[string]any) error {
	return c.engine.Load(config)
}

// Check walks the given paths and runs every configured checking rule
// over each matching file. Files are kept when their extension is in the
// engine's fileExtensions list and skipped when they match any exclusion
// pattern.
func (c *Checker) Check(paths ...string) ([]rule.Problem, error) {
	var problems []rule.Problem

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}

		if !info.IsDir() {
			found, err := c.checkFile(path)
			if err != nil {
				return nil, err
			}
			problems = append(problems, found...)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if c.excluded(p, path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !c.wantExtension(p) || c.excluded(p, path) {
				return nil
			}
			found, err := c.checkFile(p)
			if err != nil {
				return err
			}
			problems = append(problems, found...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}

	c.log.Info().Int("problems", len(problems)).Msg("check complete")
	return problems, nil
}

// checkFile runs all configured checking rules over one file.
func (c *Checker) checkFile(path string) ([]rule.Problem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f := rule.NewFile(path, content)
	var problems []rule.Problem
	for _, r := range c.engine.ConfiguredRules() {
		checkRule, ok := r.(rule.Checker)
		if !ok {
			continue
		}
		problems = append(problems, checkRule.Check(f)...)
	}

	c.log.Debug().Str("file", path).Int("problems", len(problems)).Msg("file checked")
	return problems, nil
}

// wantExtension reports whether the file's extension is in scope.
func (c *Checker) wantExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.engine.FileExtensions() {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// excluded reports whether the path, relative to the walk root, matches
// any exclusion pattern.
func (c *Checker) excluded(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range c.engine.ExcludedFiles() {
		if match.Match(rel, pattern) {
			return true
		}
		// A directory pattern like node_modules/** also excludes the
		// directory itself so the walk can skip it.
		if suffix, ok := strings.CutSuffix(pattern, "/**"); ok && match.Match(rel, suffix) {
			return true
		}
	}
	return false
}

// Close releases resources held by loaded plugins and rule scripts.
func (c *Checker) Close() {
	c.plugins.Close()
	c.rules.Close()
}
