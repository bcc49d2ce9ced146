package notesrc

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decodeText decodes UTF-8 or BOM-marked UTF-16 input, strips the BOM,
// normalizes to NFC and converts CRLF and CR line endings to LF.
func decodeText(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", err
	}
	text := norm.NFC.String(string(decoded))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}
