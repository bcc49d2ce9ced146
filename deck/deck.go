// Package deck assembles a slide deck from parsed notes, a template and
// branding.
//
// Assembly runs in two phases. The reset phase removes every slide the
// template carries while keeping its masters, layouts and theme. The build
// phase adds one intro slide and one content slide per notes record, each
// laid out by the layout package.
package deck

import (
	"errors"
	"fmt"

	"github.com/tsawler/notedeck/classify"
)

// ContentType is the MIME type of a generated deck.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Template layout slots.
const (
	IntroLayout   = 0 // Title-only layout for the intro slide
	ContentLayout = 1 // Title and body layout for content slides
)

// ErrSerialization is returned when the finished deck cannot be written.
var ErrSerialization = errors.New("deck serialization failed")

// WarningKind classifies a Warning.
type WarningKind string

const (
	// WarnDroppedTableRow marks a line left out of a table because it had
	// no colon.
	WarnDroppedTableRow WarningKind = "dropped_table_row"
	// WarnMissingLogo marks a logo that could not be read or decoded; the
	// intro slide falls back to brand text.
	WarnMissingLogo WarningKind = "missing_logo"
)

// Warning is a non-fatal problem found while building a deck.
type Warning struct {
	Kind    WarningKind
	Slide   int // 1-based position in the output deck
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("slide %d: %s: %s", w.Slide, w.Kind, w.Message)
}

// SlideSummary describes one generated content slide.
type SlideSummary struct {
	Number     int // 1-based position in the output deck
	Title      string
	Shape      classify.Shape
	FontSizePt int
	Items      int // Bullet lines, code lines or table rows
	Icon       bool
}

// Summary reports what Assemble built.
type Summary struct {
	RemovedSlides int  // Template slides removed in the reset phase
	IntroLogo     bool // The intro slide shows the logo
	Slides        []SlideSummary
	Warnings      []Warning
}

// SlideCount returns the number of slides in the deck, intro included.
func (s Summary) SlideCount() int {
	return 1 + len(s.Slides)
}
