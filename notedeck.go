// Package notedeck provides a fluent API for turning lecture notes into a
// branded PowerPoint deck built on a user-supplied template.
//
// Basic usage:
//
//	data, warnings, err := notedeck.FromNotes(text).
//	    Template("template.pptx").
//	    Brand("Intro to Systems").
//	    Build(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", notedeck.FormatWarnings(warnings))
//	}
//
// Notes can also be loaded from Markdown, HTML, DOCX or (with the ocr build
// tag) scanned images:
//
//	res, _, err := notedeck.FromFile("lecture.md").
//	    Template("template.pptx").
//	    Colors("1F4E79", "C55A11", "").
//	    Seed(42).
//	    Store(storage.NewLocalStore("out")).
//	    Generate(ctx)
//
// For advanced use cases, the lower-level notes, deck and pptx packages are
// also available.
package notedeck

import (
	"strings"

	"github.com/tsawler/notedeck/deck"
)

// FromNotes starts a Builder from plain notes text.
//
// Example:
//
//	data, _, err := notedeck.FromNotes("Slide 2: Agenda\nGoals").Template("t.pptx").Build(ctx)
func FromNotes(text string) *Builder {
	return &Builder{
		notes:    text,
		hasNotes: true,
		options:  defaultOptions(),
	}
}

// FromFile starts a Builder from a notes file. The format is detected from
// the extension, then the content.
func FromFile(path string) *Builder {
	return &Builder{
		notesPath: path,
		options:   defaultOptions(),
	}
}

// FromData starts a Builder from notes bytes in any supported format. name
// is used for format detection only.
func FromData(name string, data []byte) *Builder {
	return &Builder{
		notesName: name,
		notesData: data,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDeck is like Must for the (value, warnings, error) results of Build and
// Generate. Warnings are discarded.
//
// Example:
//
//	data := notedeck.MustDeck(notedeck.FromNotes(text).Template("t.pptx").Build(ctx))
func MustDeck[T any](val T, _ []deck.Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []deck.Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
