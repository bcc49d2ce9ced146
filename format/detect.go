// Package format detects the format of notes and template files.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Text indicates plain text notes.
	Text
	// Markdown indicates Markdown notes.
	Markdown
	// HTML indicates an HTML document.
	HTML
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// PPTX indicates a Microsoft PowerPoint (.pptx) presentation or template.
	PPTX
	// Image indicates a raster image (PNG, JPEG, GIF, BMP, TIFF or WebP).
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Text:
		return "Text"
	case Markdown:
		return "Markdown"
	case HTML:
		return "HTML"
	case DOCX:
		return "DOCX"
	case PPTX:
		return "PPTX"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Text:
		return ".txt"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case DOCX:
		return ".docx"
	case PPTX:
		return ".pptx"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text", ".notes":
		return Text
	case ".md", ".markdown":
		return Markdown
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".docx":
		return DOCX
	case ".pptx", ".potx":
		return PPTX
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return Image
	default:
		return Unknown
	}
}

// DetectData uses the filename extension and falls back to the content.
func DetectData(filename string, data []byte) Format {
	if f := Detect(filename); f != Unknown {
		return f
	}
	return DetectFromMagic(data)
}

// DetectFromMagic checks magic bytes to determine format. ZIP archives are
// opened to tell DOCX from PPTX. Valid UTF-8 without a known signature is
// reported as Text.
func DetectFromMagic(data []byte) Format {
	if isZIP(data) {
		f, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return Unknown
		}
		return f
	}
	if isImage(data) {
		return Image
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	if hasUTF16BOM(data) || (len(data) > 0 && utf8.Valid(data)) {
		return Text
	}
	return Unknown
}

func isZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

func isImage(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return true
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return true
	case bytes.HasPrefix(data, []byte("BM")) && len(data) > 14:
		return true
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return true
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return true
	}
	return false
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	head := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(head, "<!DOCTYPE HTML") || strings.HasPrefix(head, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(head, "<?XML") && strings.Contains(head, "<HTML")
}

// DetectFromReader inspects ZIP content to distinguish DOCX from PPTX.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}
	return Unknown, nil
}
