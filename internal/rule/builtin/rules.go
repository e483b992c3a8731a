package builtin

import (
	"fmt"
	"strings"

	"github.com/dshills/stylecheck/internal/rule"
)

// DisallowEmptyBlocks reports blocks with no statements.
type DisallowEmptyBlocks struct {
	enabled bool
}

// OptionName returns the configuration key for this rule.
func (r *DisallowEmptyBlocks) OptionName() string { return "disallow-empty-blocks" }

// Configure accepts the literal value true.
func (r *DisallowEmptyBlocks) Configure(value any) error {
	if err := boolSetting(r.OptionName(), value); err != nil {
		return err
	}
	r.enabled = true
	return nil
}

// Check reports `{}` pairs with nothing but whitespace between them on a
// single line. Multi-line empty blocks need a parser and are out of reach
// for a line scan.
func (r *DisallowEmptyBlocks) Check(f *rule.File) []rule.Problem {
	if !r.enabled {
		return nil
	}
	var problems []rule.Problem
	for i, line := range f.Lines {
		for col := 0; col < len(line); col++ {
			if line[col] != '{' {
				continue
			}
			end := col + 1
			for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
				end++
			}
			if end < len(line) && line[end] == '}' {
				problems = append(problems, rule.Problem{
					Rule:    r.OptionName(),
					Path:    f.Path,
					Line:    i + 1,
					Column:  col + 1,
					Message: "empty block",
				})
				col = end
			}
		}
	}
	return problems
}

// DisallowTrailingWhitespace reports whitespace at end of line.
type DisallowTrailingWhitespace struct {
	enabled bool
}

func (r *DisallowTrailingWhitespace) OptionName() string { return "disallow-trailing-whitespace" }

func (r *DisallowTrailingWhitespace) Configure(value any) error {
	if err := boolSetting(r.OptionName(), value); err != nil {
		return err
	}
	r.enabled = true
	return nil
}

func (r *DisallowTrailingWhitespace) Check(f *rule.File) []rule.Problem {
	if !r.enabled {
		return nil
	}
	var problems []rule.Problem
	for i, line := range f.Lines {
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) != len(line) {
			problems = append(problems, rule.Problem{
				Rule:    r.OptionName(),
				Path:    f.Path,
				Line:    i + 1,
				Column:  len(trimmed) + 1,
				Message: "trailing whitespace",
			})
		}
	}
	return problems
}

// DisallowMultipleLineBreaks reports two or more consecutive blank lines.
type DisallowMultipleLineBreaks struct {
	enabled bool
}

func (r *DisallowMultipleLineBreaks) OptionName() string { return "disallow-multiple-line-breaks" }

func (r *DisallowMultipleLineBreaks) Configure(value any) error {
	if err := boolSetting(r.OptionName(), value); err != nil {
		return err
	}
	r.enabled = true
	return nil
}

func (r *DisallowMultipleLineBreaks) Check(f *rule.File) []rule.Problem {
	if !r.enabled {
		return nil
	}
	var problems []rule.Problem
	blanks := 0
	for i, line := range f.Lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks == 2 {
				problems = append(problems, rule.Problem{
					Rule:    r.OptionName(),
					Path:    f.Path,
					Line:    i + 1,
					Message: "multiple consecutive blank lines",
				})
			}
			continue
		}
		blanks = 0
	}
	return problems
}

// DisallowTabs reports tab characters used for indentation or alignment.
type DisallowTabs struct {
	enabled bool
}

func (r *DisallowTabs) OptionName() string { return "disallow-tabs" }

func (r *DisallowTabs) Configure(value any) error {
	if err := boolSetting(r.OptionName(), value); err != nil {
		return err
	}
	r.enabled = true
	return nil
}

func (r *DisallowTabs) Check(f *rule.File) []rule.Problem {
	if !r.enabled {
		return nil
	}
	var problems []rule.Problem
	for i, line := range f.Lines {
		if col := strings.IndexByte(line, '\t'); col >= 0 {
			problems = append(problems, rule.Problem{
				Rule:    r.OptionName(),
				Path:    f.Path,
				Line:    i + 1,
				Column:  col + 1,
				Message: "tab character",
			})
		}
	}
	return problems
}

// MaximumLineLength reports lines longer than the configured limit.
type MaximumLineLength struct {
	limit int
}

func (r *MaximumLineLength) OptionName() string { return "maximum-line-length" }

// Configure accepts a positive integer limit.
func (r *MaximumLineLength) Configure(value any) error {
	limit, err := intSetting(r.OptionName(), value)
	if err != nil {
		return err
	}
	r.limit = limit
	return nil
}

func (r *MaximumLineLength) Check(f *rule.File) []rule.Problem {
	if r.limit <= 0 {
		return nil
	}
	var problems []rule.Problem
	for i, line := range f.Lines {
		if n := len([]rune(line)); n > r.limit {
			problems = append(problems, rule.Problem{
				Rule:    r.OptionName(),
				Path:    f.Path,
				Line:    i + 1,
				Column:  r.limit + 1,
				Message: fmt.Sprintf("line is %d characters, maximum allowed is %d", n, r.limit),
			})
		}
	}
	return problems
}

// RequireLineFeedAtFileEnd reports files not ending with a newline.
type RequireLineFeedAtFileEnd struct {
	enabled bool
}

func (r *RequireLineFeedAtFileEnd) OptionName() string { return "require-line-feed-at-file-end" }

func (r *RequireLineFeedAtFileEnd) Configure(value any) error {
	if err := boolSetting(r.OptionName(), value); err != nil {
		return err
	}
	r.enabled = true
	return nil
}

func (r *RequireLineFeedAtFileEnd) Check(f *rule.File) []rule.Problem {
	if !r.enabled || f.EndsWithNewline {
		return nil
	}
	if len(f.Lines) == 1 && f.Lines[0] == "" {
		// Empty file, nothing to require.
		return nil
	}
	return []rule.Problem{{
		Rule:    r.OptionName(),
		Path:    f.Path,
		Line:    len(f.Lines),
		Message: "missing line feed at end of file",
	}}
}
