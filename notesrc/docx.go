package notesrc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// docxLines streams word/document.xml and returns one line per paragraph.
// Table rows collapse to "cell: cell".
func docxLines(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, errors.New("missing required file: word/document.xml")
	}
	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	var (
		lines  []string
		para   strings.Builder
		cell   []string
		cells  []string
		inText bool
		depth  int // table nesting
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				depth++
			case "tr":
				cells = cells[:0]
			case "tc":
				cell = cell[:0]
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br", "cr":
				if depth > 0 {
					para.WriteByte(' ')
					continue
				}
				lines = append(lines, para.String())
				para.Reset()
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				depth--
			case "t":
				inText = false
			case "p":
				if depth > 0 {
					if s := strings.TrimSpace(para.String()); s != "" {
						cell = append(cell, s)
					}
				} else {
					lines = append(lines, para.String())
				}
				para.Reset()
			case "tc":
				if s := strings.Join(cell, " "); s != "" {
					cells = append(cells, s)
				}
			case "tr":
				if len(cells) > 0 {
					lines = append(lines, strings.Join(cells, ": "))
				}
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	return lines, nil
}
