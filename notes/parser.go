package notes

import (
	"regexp"
	"strings"
)

// Record is one slide's worth of notes: the header line that opened it and
// the content lines that followed.
type Record struct {
	// RawHeader is the header line verbatim (trimmed), including its label.
	RawHeader string

	// Lines are the non-blank, non-presenter-note content lines in input order.
	Lines []string
}

// headerPattern recognizes slide header lines. The leading class allows
// markdown-style decoration such as "## " or "**" before the label.
var headerPattern = regexp.MustCompile(`(?i)^[^\p{L}\p{N}]*(slide|lecture)\s*\d+\s*(?:[:\-–—].*)?$`)

const presenterNotePrefix = "presenter note"

// IsHeader reports whether line opens a new slide.
func IsHeader(line string) bool {
	return headerPattern.MatchString(strings.TrimSpace(line))
}

// IsPresenterNote reports whether line is authoring metadata that must not
// be rendered.
func IsPresenterNote(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < len(presenterNotePrefix) {
		return false
	}
	return strings.EqualFold(line[:len(presenterNotePrefix)], presenterNotePrefix)
}

// Parse splits raw notes into slide records in input order.
//
// Parse never fails: malformed input degrades to fewer (possibly zero)
// records.
func Parse(raw string) []Record {
	records := make([]Record, 0)

	var (
		header  string
		pending bool
		buffer  []string
	)

	flush := func() {
		if !pending {
			return
		}
		lines := make([]string, len(buffer))
		copy(lines, buffer)
		records = append(records, Record{RawHeader: header, Lines: lines})
	}

	for _, line := range strings.FieldsFunc(raw, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if IsHeader(line) {
			flush()
			header = line
			pending = true
			buffer = buffer[:0]
			continue
		}

		if IsPresenterNote(line) {
			continue
		}

		// Content before the first header has no slide to belong to.
		if pending {
			buffer = append(buffer, line)
		}
	}
	flush()

	return records
}

// isLineBreak reports whether r ends a line. Besides \n and \r this covers
// the vertical tab, form feed, file/group/record separators, NEL and the
// Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
