package pptx

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// xmlBuilder writes namespaced OOXML markup. encoding/xml cannot emit the
// fixed "p:"/"a:"/"r:" prefixes PowerPoint expects, so parts are built by
// hand. Attributes are given as alternating name/value pairs.
type xmlBuilder struct {
	buf bytes.Buffer
}

func newXMLBuilder() *xmlBuilder {
	b := &xmlBuilder{}
	b.buf.WriteString(xmlHeader)
	return b
}

func (b *xmlBuilder) start(name string, attrs ...string) {
	b.buf.WriteByte('<')
	b.buf.WriteString(name)
	b.attrs(attrs)
	b.buf.WriteByte('>')
}

func (b *xmlBuilder) empty(name string, attrs ...string) {
	b.buf.WriteByte('<')
	b.buf.WriteString(name)
	b.attrs(attrs)
	b.buf.WriteString("/>")
}

func (b *xmlBuilder) end(name string) {
	b.buf.WriteString("</")
	b.buf.WriteString(name)
	b.buf.WriteByte('>')
}

func (b *xmlBuilder) text(s string) {
	xml.EscapeText(&b.buf, []byte(s))
}

// element writes <name attrs>text</name>.
func (b *xmlBuilder) element(name, text string, attrs ...string) {
	b.start(name, attrs...)
	b.text(text)
	b.end(name)
}

func (b *xmlBuilder) attrs(attrs []string) {
	for i := 0; i+1 < len(attrs); i += 2 {
		b.buf.WriteByte(' ')
		b.buf.WriteString(attrs[i])
		b.buf.WriteString(`="`)
		xml.EscapeText(&b.buf, []byte(attrs[i+1]))
		b.buf.WriteByte('"')
	}
}

func (b *xmlBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func itoa[T ~int | ~int64 | ~uint32](v T) string {
	return strconv.FormatInt(int64(v), 10)
}
