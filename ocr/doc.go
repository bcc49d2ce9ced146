// Package ocr recognizes lecture notes in scanned or photographed pages.
//
// The engine is Tesseract via gosseract and is only compiled in with the
// "ocr" build tag:
//
//	go build -tags ocr ./...
//
// Without the tag every constructor returns ErrOCRNotEnabled. Tesseract must
// be installed on the host. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"
	"strings"
)

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode controls how the engine analyzes the page layout. Values match
// Tesseract's numbering.
type PageSegMode int

const (
	PSMAuto         PageSegMode = 3  // Fully automatic (default)
	PSMSingleColumn PageSegMode = 4  // Single column of variable sizes
	PSMSingleBlock  PageSegMode = 6  // Single uniform block of text
	PSMSparseText   PageSegMode = 11 // Find as much text as possible
)

// Options configures a Client.
type Options struct {
	// Languages are Tesseract language codes. Defaults to English.
	Languages []string
	// PageSegMode defaults to PSMAuto.
	PageSegMode PageSegMode
}

func (o Options) language() string {
	if len(o.Languages) == 0 {
		return "eng"
	}
	return strings.Join(o.Languages, "+")
}

func (o Options) pageSegMode() PageSegMode {
	if o.PageSegMode == 0 {
		return PSMAuto
	}
	return o.PageSegMode
}

// Lines splits recognized text into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
