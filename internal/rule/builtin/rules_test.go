package builtin

import (
	"errors"
	"testing"

	"github.com/dshills/stylecheck/internal/rule"
)

// fakeRegistrar collects registrations for catalog tests.
type fakeRegistrar struct {
	rules   []rule.Rule
	presets map[string]map[string]any
}

func (f *fakeRegistrar) RegisterRule(r rule.Rule) {
	f.rules = append(f.rules, r)
}

func (f *fakeRegistrar) RegisterPreset(name string, config map[string]any) {
	if f.presets == nil {
		f.presets = make(map[string]map[string]any)
	}
	f.presets[name] = config
}

func TestRegisterCatalog(t *testing.T) {
	reg := &fakeRegistrar{}
	Register(reg)

	want := map[string]bool{
		"disallow-empty-blocks":         true,
		"disallow-trailing-whitespace":  true,
		"disallow-multiple-line-breaks": true,
		"disallow-tabs":                 true,
		"maximum-line-length":           true,
		"require-line-feed-at-file-end": true,
	}

	if len(reg.rules) != len(want) {
		t.Fatalf("registered %d rules, want %d", len(reg.rules), len(want))
	}
	for _, r := range reg.rules {
		if !want[r.OptionName()] {
			t.Errorf("unexpected rule %s", r.OptionName())
		}
	}
}

func TestBoolRulesRejectBadSettings(t *testing.T) {
	rules := []rule.Rule{
		&DisallowEmptyBlocks{},
		&DisallowTrailingWhitespace{},
		&DisallowMultipleLineBreaks{},
		&DisallowTabs{},
		&RequireLineFeedAtFileEnd{},
	}

	for _, r := range rules {
		t.Run(r.OptionName(), func(t *testing.T) {
			if err := r.Configure(true); err != nil {
				t.Errorf("Configure(true): %v", err)
			}
			for _, bad := range []any{false, "yes", 1, nil} {
				if err := r.Configure(bad); !errors.Is(err, rule.ErrInvalidSetting) {
					t.Errorf("Configure(%v) = %v, want ErrInvalidSetting", bad, err)
				}
			}
		})
	}
}

func checkFile(t *testing.T, r rule.Checker, content string) []rule.Problem {
	t.Helper()
	return r.Check(rule.NewFile("test.js", []byte(content)))
}

func TestDisallowEmptyBlocks(t *testing.T) {
	r := &DisallowEmptyBlocks{}
	if err := r.Configure(true); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"no blocks", "var x = 1;\n", 0},
		{"empty block", "if (x) {}\n", 1},
		{"empty block with spaces", "if (x) { }\n", 1},
		{"non-empty block", "if (x) { y(); }\n", 0},
		{"two empty blocks one line", "if (x) {} else {}\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFile(t, r, tt.content); len(got) != tt.want {
				t.Errorf("got %d problems, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestDisallowTrailingWhitespace(t *testing.T) {
	r := &DisallowTrailingWhitespace{}
	if err := r.Configure(true); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	problems := checkFile(t, r, "clean line\ndirty line \n\tindented\t\n")
	if len(problems) != 2 {
		t.Fatalf("got %d problems, want 2: %v", len(problems), problems)
	}
	if problems[0].Line != 2 || problems[0].Column != 11 {
		t.Errorf("first problem at %d:%d, want 2:11", problems[0].Line, problems[0].Column)
	}
	if problems[1].Line != 3 {
		t.Errorf("second problem at line %d, want 3", problems[1].Line)
	}
}

func TestDisallowMultipleLineBreaks(t *testing.T) {
	r := &DisallowMultipleLineBreaks{}
	if err := r.Configure(true); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"single blank line", "a\n\nb\n", 0},
		{"double blank line", "a\n\n\nb\n", 1},
		{"triple blank reported once", "a\n\n\n\nb\n", 1},
		{"two separate runs", "a\n\n\nb\n\n\nc\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFile(t, r, tt.content); len(got) != tt.want {
				t.Errorf("got %d problems, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDisallowTabs(t *testing.T) {
	r := &DisallowTabs{}
	if err := r.Configure(true); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	problems := checkFile(t, r, "    spaces\n\ttab\n")
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(problems))
	}
	if problems[0].Line != 2 || problems[0].Column != 1 {
		t.Errorf("problem at %d:%d, want 2:1", problems[0].Line, problems[0].Column)
	}
}

func TestMaximumLineLength(t *testing.T) {
	r := &MaximumLineLength{}

	for _, bad := range []any{0, -1, "80", 2.5, true} {
		if err := r.Configure(bad); !errors.Is(err, rule.ErrInvalidSetting) {
			t.Errorf("Configure(%v) = %v, want ErrInvalidSetting", bad, err)
		}
	}

	if err := r.Configure(10); err != nil {
		t.Fatalf("Configure(10): %v", err)
	}
	problems := checkFile(t, r, "short\nthis line is too long\n")
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(problems))
	}
	if problems[0].Line != 2 {
		t.Errorf("problem at line %d, want 2", problems[0].Line)
	}

	// Decoder numeric shapes are accepted too.
	if err := r.Configure(float64(100)); err != nil {
		t.Errorf("Configure(float64): %v", err)
	}
	if err := r.Configure(int64(100)); err != nil {
		t.Errorf("Configure(int64): %v", err)
	}
}

func TestRequireLineFeedAtFileEnd(t *testing.T) {
	r := &RequireLineFeedAtFileEnd{}
	if err := r.Configure(true); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"ends with newline", "a\nb\n", 0},
		{"missing newline", "a\nb", 1},
		{"empty file", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFile(t, r, tt.content); len(got) != tt.want {
				t.Errorf("got %d problems, want %d", len(got), tt.want)
			}
		})
	}
}
