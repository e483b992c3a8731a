package engine

import (
	"errors"
	"testing"

	"github.com/dshills/stylecheck/internal/rule"
)

func loadKind(t *testing.T, e *Engine, config map[string]any) ErrorKind {
	t.Helper()
	err := e.Load(config)
	if err == nil {
		t.Fatal("Load succeeded, want error")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error is %T, want *ConfigError", err)
	}
	return cfgErr.Kind
}

func TestResolveTypeErrors(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]any
		want   ErrorKind
	}{
		{
			name:   "plugins not an array",
			config: map[string]any{"plugins": "nope"},
			want:   KindInvalidPluginsType,
		},
		{
			name:   "preset not a string",
			config: map[string]any{"preset": 12},
			want:   KindInvalidPresetType,
		},
		{
			name:   "preset unknown",
			config: map[string]any{"preset": "missing"},
			want:   KindPresetNotFound,
		},
		{
			name:   "fileExtensions wrong type",
			config: map[string]any{"fileExtensions": 5},
			want:   KindInvalidFileExtensionsType,
		},
		{
			name:   "fileExtensions mixed array",
			config: map[string]any{"fileExtensions": []any{".js", 7}},
			want:   KindInvalidFileExtensionsType,
		},
		{
			name:   "excludeFiles not an array",
			config: map[string]any{"excludeFiles": "node_modules"},
			want:   KindInvalidExcludeFilesType,
		},
		{
			name:   "excludeFiles mixed array",
			config: map[string]any{"excludeFiles": []any{"a", true}},
			want:   KindInvalidExcludeFilesType,
		},
		{
			name:   "additionalRules not an array",
			config: map[string]any{"additionalRules": "rules/*.lua"},
			want:   KindInvalidAdditionalRulesType,
		},
		{
			name:   "plugin not callable",
			config: map[string]any{"plugins": []any{42}},
			want:   KindInvalidPlugin,
		},
		{
			name:   "additional rule not a rule",
			config: map[string]any{"additionalRules": []any{42}},
			want:   KindInvalidAdditionalRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loadKind(t, New(), tt.config); got != tt.want {
				t.Errorf("kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveFailFast(t *testing.T) {
	r := &testRule{name: "good-rule"}
	e := newTestEngine(r)

	// The structural failure aborts before any key is classified.
	err := e.Load(map[string]any{
		"preset":    "missing",
		"good-rule": true,
	})
	if err == nil {
		t.Fatal("Load succeeded, want preset error")
	}
	if len(r.configured) != 0 {
		t.Error("rule was configured despite the structural failure")
	}
	if len(e.ConfiguredRules()) != 0 {
		t.Error("ConfiguredRules() populated despite the structural failure")
	}
}

func TestResolveNestedPresets(t *testing.T) {
	ra := &testRule{name: "base-rule"}
	rb := &testRule{name: "mid-rule"}
	e := newTestEngine(ra, rb)

	e.RegisterPreset("base", map[string]any{
		"base-rule": "base",
		"mid-rule":  "base",
	})
	e.RegisterPreset("mid", map[string]any{
		"preset":   "base",
		"mid-rule": "mid",
	})

	if err := e.Load(map[string]any{"preset": "mid", "base-rule": "outer"}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Each level overrides the one beneath it.
	if got := ra.lastSetting(t); got != "outer" {
		t.Errorf("base-rule = %v, want outer", got)
	}
	if got := rb.lastSetting(t); got != "mid" {
		t.Errorf("mid-rule = %v, want mid", got)
	}
}

func TestResolvePresetCycle(t *testing.T) {
	e := New()
	e.RegisterPreset("a", map[string]any{"preset": "b"})
	e.RegisterPreset("b", map[string]any{"preset": "a"})
	e.RegisterPreset("self", map[string]any{"preset": "self"})

	if got := loadKind(t, e, map[string]any{"preset": "a"}); got != KindPresetCycle {
		t.Errorf("kind = %s, want %s", got, KindPresetCycle)
	}
	if got := loadKind(t, e, map[string]any{"preset": "self"}); got != KindPresetCycle {
		t.Errorf("kind = %s, want %s", got, KindPresetCycle)
	}
}

func TestResolvePresetChainReuse(t *testing.T) {
	// Expanding a preset in one Load does not poison later Loads that
	// reach the same preset again.
	r := &testRule{name: "shared-rule"}
	e := newTestEngine(r)
	e.RegisterPreset("base", map[string]any{"shared-rule": true})
	e.RegisterPreset("mid", map[string]any{"preset": "base"})

	if err := e.Load(map[string]any{"preset": "mid"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := e.Load(map[string]any{"preset": "base"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestResolvePresetReservedKeysDoNotLeak(t *testing.T) {
	e := New()
	e.RegisterPreset("p", map[string]any{
		"fileExtensions": []any{".jsx"},
	})

	if err := e.Load(map[string]any{"preset": "p"}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The preset's reserved key took effect as a setting of the engine,
	// not as a rule option; nothing reached the rule-settings mapping.
	if len(e.ConfiguredRules()) != 0 {
		t.Error("reserved preset key leaked into rule settings")
	}
	if got := e.FileExtensions(); len(got) != 1 || got[0] != ".jsx" {
		t.Errorf("FileExtensions() = %v, want [.jsx]", got)
	}
}

func TestResolveOuterFileExtensionsWinOverPreset(t *testing.T) {
	e := New()
	e.RegisterPreset("p", map[string]any{"fileExtensions": ".jsx"})

	err := e.Load(map[string]any{
		"preset":         "p",
		"fileExtensions": ".es6",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := e.FileExtensions(); len(got) != 1 || got[0] != ".es6" {
		t.Errorf("FileExtensions() = %v, want [.es6]", got)
	}
}

func TestIsReservedKey(t *testing.T) {
	for _, key := range []string{"plugins", "preset", "excludeFiles", "additionalRules", "fileExtensions"} {
		if !IsReservedKey(key) {
			t.Errorf("IsReservedKey(%s) = false", key)
		}
	}
	if IsReservedKey("disallow-empty-blocks") {
		t.Error("IsReservedKey(disallow-empty-blocks) = true")
	}
}

func TestPluginInitializerError(t *testing.T) {
	initErr := errors.New("boom")
	e := New()

	err := e.Load(map[string]any{
		"plugins": []any{Initializer(func(reg rule.Registrar) error {
			return initErr
		})},
	})
	if !errors.Is(err, initErr) {
		t.Errorf("error %v does not wrap the initializer error", err)
	}
}
