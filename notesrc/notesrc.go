// Package notesrc turns lecture notes in the supported input formats into the
// plain line-oriented text that notes.Parse consumes.
//
// Each loader flattens its source to one logical line per paragraph, list
// item, heading, table row or code line. Table rows become "cell: cell" so
// that two-column tables survive as key/value lines.
package notesrc

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/notedeck/format"
	"github.com/tsawler/notedeck/ocr"
)

// ErrUnsupported is returned for inputs that are not notes.
var ErrUnsupported = errors.New("unsupported notes format")

// Options configures Load.
type Options struct {
	// OCR configures image recognition. Only used for image inputs.
	OCR ocr.Options
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// LoadFile reads path and converts it with Load.
func LoadFile(path string, opts Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading notes: %w", err)
	}
	return Load(path, data, opts)
}

// Load converts data to notes text. The format is detected from name's
// extension first and from the content otherwise.
func Load(name string, data []byte, opts Options) (string, error) {
	f := format.DetectData(name, data)

	var (
		lines []string
		err   error
	)
	switch f {
	case format.Text:
		var text string
		text, err = decodeText(data)
		lines = strings.Split(text, "\n")
	case format.Markdown:
		lines, err = markdownLines(data)
	case format.HTML:
		lines, err = htmlLines(data)
	case format.DOCX:
		lines, err = docxLines(data)
	case format.Image:
		lines, err = imageLines(data, opts.OCR)
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupported, name, f)
	}
	if err != nil {
		return "", fmt.Errorf("loading %s notes: %w", f, err)
	}

	opts.logger().Debug("loaded notes",
		zap.String("name", name),
		zap.Stringer("format", f),
		zap.Int("lines", len(lines)),
	)
	return strings.Join(lines, "\n"), nil
}
