package rule

// Rule is a single unit of style checking. The configuration engine owns
// registered rules and calls Configure with the raw settings value found
// under the rule's option name.
type Rule interface {
	// OptionName returns the configuration key this rule answers to.
	// Names are unique within a registry; a later registration under the
	// same name replaces the earlier one.
	OptionName() string

	// Configure applies a settings value to the rule. The shape of the
	// value is defined by the rule itself; Configure rejects values it
	// does not understand.
	Configure(value any) error
}

// Registrar is the narrow engine surface exposed to plugins and rule
// loaders. Both methods silently overwrite existing entries.
type Registrar interface {
	RegisterRule(r Rule)
	RegisterPreset(name string, config map[string]any)
}

// Checker is the optional checking capability. Rules that inspect source
// implement it; configuration-only rules need not.
type Checker interface {
	Check(f *File) []Problem
}

// File is a source file prepared for checking.
type File struct {
	// Path is the file path as given to the checker.
	Path string
	// Lines holds the file content split on newlines. The trailing
	// newline, if any, does not produce an empty final element.
	Lines []string
	// EndsWithNewline records whether the raw content ended in a line feed.
	EndsWithNewline bool
}

// Problem is a single style violation.
type Problem struct {
	// Rule is the option name of the reporting rule.
	Rule string
	// Path is the file the problem was found in.
	Path string
	// Line is the 1-based line number.
	Line int
	// Column is the 1-based column number, 0 when not meaningful.
	Column int
	// Message describes the violation.
	Message string
}

// NewFile builds a File from raw content.
func NewFile(path string, content []byte) *File {
	text := string(content)
	endsWithNewline := len(text) > 0 && text[len(text)-1] == '\n'
	if endsWithNewline {
		text = text[:len(text)-1]
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])

	return &File{
		Path:            path,
		Lines:           lines,
		EndsWithNewline: endsWithNewline,
	}
}
