package classify

import (
	"regexp"
	"strings"
)

// Shape is the rendering shape chosen for a slide's content.
type Shape int

const (
	BulletList Shape = iota // Plain bulleted lines (default)
	Table                   // Two-column key/value table
	CodeBlock               // Literal monospace code listing
)

// String returns a string representation of the shape
func (s Shape) String() string {
	switch s {
	case BulletList:
		return "bullets"
	case Table:
		return "table"
	case CodeBlock:
		return "code"
	default:
		return "unknown"
	}
}

// Row is one key/value pair of a table-shaped slide.
type Row struct {
	Key   string
	Value string
}

// codeSignatures are the per-line patterns that mark a line as code.
var codeSignatures = []*regexp.Regexp{
	regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9-]*(\s[^<>]*)?/?>`),          // markup tags
	regexp.MustCompile(`[{};]`),                                           // braces, semicolons
	regexp.MustCompile(`(?i)^\s*(def|class|import|function)\s+[\w"'({.]`), // keywords
	regexp.MustCompile(`(?i)\bpublic\s+(static\s+)?(class|void)\b`),       // java-ish
	regexp.MustCompile(`=>`),                                              // arrow functions
	regexp.MustCompile(`(?i)\b(console\.log|system\.out\.println|printf?|fmt\.print(ln|f)?)\s*\(`),
}

// IsCodeLine reports whether line matches any code signature.
func IsCodeLine(line string) bool {
	for _, re := range codeSignatures {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// codeThreshold returns the number of code-like lines needed to classify n
// lines as a code block.
func codeThreshold(n int) int {
	if half := n / 2; half > 2 {
		return half
	}
	return 2
}

// Classify returns the rendering shape for lines. It never fails; unknown
// content falls back to BulletList.
func Classify(lines []string) Shape {
	if isCode(lines) {
		return CodeBlock
	}
	if isTable(lines) {
		return Table
	}
	return BulletList
}

func isCode(lines []string) bool {
	matches := 0
	for _, line := range lines {
		if IsCodeLine(line) {
			matches++
		}
	}
	return matches >= codeThreshold(len(lines))
}

func isTable(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines {
		if !strings.Contains(line, ":") {
			return false
		}
	}
	return true
}

// TableRows splits each line on its first colon. Lines without a colon are
// skipped and returned separately so callers can report them.
func TableRows(lines []string) (rows []Row, dropped []string) {
	rows = make([]Row, 0, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			dropped = append(dropped, line)
			continue
		}
		rows = append(rows, Row{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return rows, dropped
}
