package pptx

import (
	"path"

	"github.com/tsawler/notedeck/model"
)

// slideRels collects the relationships a slide part needs while it is
// being serialized.
type slideRels struct {
	rels []relationshipXML
}

func (r *slideRels) add(relType, target string) string {
	id := "rId" + itoa(len(r.rels)+1)
	r.rels = append(r.rels, relationshipXML{ID: id, Type: relType, Target: target})
	return id
}

func (r *slideRels) marshal() []byte {
	return marshalRelationships(r.rels)
}

func marshalRelationships(rels []relationshipXML) []byte {
	b := newXMLBuilder()
	b.start("Relationships", "xmlns", nsPackageRels)
	for _, rel := range rels {
		attrs := []string{"Id", rel.ID, "Type", rel.Type, "Target", rel.Target}
		if rel.TargetMode != "" {
			attrs = append(attrs, "TargetMode", rel.TargetMode)
		}
		b.empty("Relationship", attrs...)
	}
	b.end("Relationships")
	return b.bytes()
}

func marshalContentTypes(ct *contentTypesXML) []byte {
	b := newXMLBuilder()
	b.start("Types", "xmlns", nsContentTypes)
	for _, d := range ct.Default {
		b.empty("Default", "Extension", d.Extension, "ContentType", d.ContentType)
	}
	for _, o := range ct.Override {
		b.empty("Override", "PartName", o.PartName, "ContentType", o.ContentType)
	}
	b.end("Types")
	return b.bytes()
}

// marshal renders the slide part and its relationships part.
func (s *Slide) marshal() (slide, rels []byte) {
	sr := &slideRels{}
	sr.add(relTypeSlideLayout, relativeTarget(s.part, s.layout.Part))

	b := newXMLBuilder()
	b.start("p:sld", "xmlns:a", nsDrawingML, "xmlns:r", nsRelationships, "xmlns:p", nsPresentationML)
	b.start("p:cSld")
	if s.background != nil {
		b.start("p:bg")
		b.start("p:bgPr")
		writeSolidFill(b, *s.background)
		b.empty("a:effectLst")
		b.end("p:bgPr")
		b.end("p:bg")
	}
	b.start("p:spTree")
	b.start("p:nvGrpSpPr")
	b.empty("p:cNvPr", "id", "1", "name", "")
	b.empty("p:cNvGrpSpPr")
	b.empty("p:nvPr")
	b.end("p:nvGrpSpPr")
	b.start("p:grpSpPr")
	b.start("a:xfrm")
	b.empty("a:off", "x", "0", "y", "0")
	b.empty("a:ext", "cx", "0", "cy", "0")
	b.empty("a:chOff", "x", "0", "y", "0")
	b.empty("a:chExt", "cx", "0", "cy", "0")
	b.end("a:xfrm")
	b.end("p:grpSpPr")
	for _, sh := range s.shapes {
		sh.writeXML(b, sr)
	}
	b.end("p:spTree")
	b.end("p:cSld")
	b.start("p:clrMapOvr")
	b.empty("a:masterClrMapping")
	b.end("p:clrMapOvr")
	b.end("p:sld")

	return b.bytes(), sr.marshal()
}

func writeSolidFill(b *xmlBuilder, c model.RGB) {
	b.start("a:solidFill")
	b.empty("a:srgbClr", "val", c.Hex())
	b.end("a:solidFill")
}

func writeXfrm(b *xmlBuilder, tag string, r model.Rect) {
	b.start(tag)
	b.empty("a:off", "x", itoa(r.X), "y", itoa(r.Y))
	b.empty("a:ext", "cx", itoa(r.Width), "cy", itoa(r.Height))
	b.end(tag)
}

func writeCNvPr(b *xmlBuilder, s shapeBase) {
	b.empty("p:cNvPr", "id", itoa(s.id), "name", s.name)
}

func (p *Placeholder) writeXML(b *xmlBuilder, _ *slideRels) {
	b.start("p:sp")
	b.start("p:nvSpPr")
	writeCNvPr(b, p.shapeBase)
	b.start("p:cNvSpPr")
	b.empty("a:spLocks", "noGrp", "1")
	b.end("p:cNvSpPr")
	b.start("p:nvPr")
	var attrs []string
	if p.Type != "" {
		attrs = append(attrs, "type", p.Type)
	}
	if p.Index != 0 {
		attrs = append(attrs, "idx", itoa(p.Index))
	}
	b.empty("p:ph", attrs...)
	b.end("p:nvPr")
	b.end("p:nvSpPr")
	b.empty("p:spPr")
	b.end("p:sp")
}

func (t *TextBox) writeXML(b *xmlBuilder, _ *slideRels) {
	b.start("p:sp")
	b.start("p:nvSpPr")
	writeCNvPr(b, t.shapeBase)
	b.empty("p:cNvSpPr", "txBox", "1")
	b.empty("p:nvPr")
	b.end("p:nvSpPr")

	b.start("p:spPr")
	writeXfrm(b, "a:xfrm", t.Frame)
	b.start("a:prstGeom", "prst", "rect")
	b.empty("a:avLst")
	b.end("a:prstGeom")
	b.empty("a:noFill")
	b.end("p:spPr")

	wrap := "none"
	if t.WordWrap {
		wrap = "square"
	}
	anchor := t.Anchor
	if anchor == "" {
		anchor = AnchorTop
	}
	b.start("p:txBody")
	b.empty("a:bodyPr", "wrap", wrap, "rtlCol", "0", "anchor", string(anchor))
	b.empty("a:lstStyle")
	writeParagraphs(b, t.Paragraphs)
	b.end("p:txBody")
	b.end("p:sp")
}

func writeParagraphs(b *xmlBuilder, paras []Paragraph) {
	if len(paras) == 0 {
		b.start("a:p")
		b.empty("a:endParaRPr", "lang", "en-US", "dirty", "0")
		b.end("a:p")
		return
	}
	for _, p := range paras {
		b.start("a:p")
		var attrs []string
		if p.Align != AlignDefault {
			attrs = append(attrs, "algn", string(p.Align))
		}
		if p.Level > 0 {
			attrs = append(attrs, "lvl", itoa(p.Level))
		}
		if len(attrs) > 0 {
			b.empty("a:pPr", attrs...)
		}
		for _, r := range p.Runs {
			b.start("a:r")
			writeRunProperties(b, "a:rPr", r.Style)
			b.element("a:t", r.Text)
			b.end("a:r")
		}
		if len(p.Runs) == 0 {
			b.empty("a:endParaRPr", "lang", "en-US", "dirty", "0")
		}
		b.end("a:p")
	}
}

func writeRunProperties(b *xmlBuilder, tag string, st RunStyle) {
	attrs := []string{"lang", "en-US"}
	if st.SizePt > 0 {
		attrs = append(attrs, "sz", itoa(st.SizePt*100))
	}
	if st.Bold {
		attrs = append(attrs, "b", "1")
	}
	attrs = append(attrs, "dirty", "0")
	if st.Color == nil && st.Typeface == "" {
		b.empty(tag, attrs...)
		return
	}
	b.start(tag, attrs...)
	if st.Color != nil {
		writeSolidFill(b, *st.Color)
	}
	if st.Typeface != "" {
		b.empty("a:latin", "typeface", st.Typeface)
	}
	b.end(tag)
}

func (t *Table) writeXML(b *xmlBuilder, _ *slideRels) {
	b.start("p:graphicFrame")
	b.start("p:nvGraphicFramePr")
	writeCNvPr(b, t.shapeBase)
	b.start("p:cNvGraphicFramePr")
	b.empty("a:graphicFrameLocks", "noGrp", "1")
	b.end("p:cNvGraphicFramePr")
	b.empty("p:nvPr")
	b.end("p:nvGraphicFramePr")
	writeXfrm(b, "p:xfrm", t.Frame)

	b.start("a:graphic")
	b.start("a:graphicData", "uri", nsTable)
	b.start("a:tbl")
	b.empty("a:tblPr", "firstRow", "1", "bandRow", "1")
	b.start("a:tblGrid")
	for _, w := range t.Columns {
		b.empty("a:gridCol", "w", itoa(w))
	}
	b.end("a:tblGrid")

	rowHeight := t.Frame.Height / model.EMU(len(t.cells))
	for _, row := range t.cells {
		b.start("a:tr", "h", itoa(rowHeight))
		for _, cell := range row {
			b.start("a:tc")
			b.start("a:txBody")
			b.empty("a:bodyPr")
			b.empty("a:lstStyle")
			b.start("a:p")
			if cell.Text != "" {
				b.start("a:r")
				writeRunProperties(b, "a:rPr", cell.Style)
				b.element("a:t", cell.Text)
				b.end("a:r")
			} else {
				writeRunProperties(b, "a:endParaRPr", cell.Style)
			}
			b.end("a:p")
			b.end("a:txBody")
			b.empty("a:tcPr")
			b.end("a:tc")
		}
		b.end("a:tr")
	}
	b.end("a:tbl")
	b.end("a:graphicData")
	b.end("a:graphic")
	b.end("p:graphicFrame")
}

func (p *Picture) writeXML(b *xmlBuilder, rels *slideRels) {
	rID := rels.add(relTypeImage, "../media/"+path.Base(p.mediaPart))

	b.start("p:pic")
	b.start("p:nvPicPr")
	writeCNvPr(b, p.shapeBase)
	b.start("p:cNvPicPr")
	b.empty("a:picLocks", "noChangeAspect", "1")
	b.end("p:cNvPicPr")
	b.empty("p:nvPr")
	b.end("p:nvPicPr")

	b.start("p:blipFill")
	b.empty("a:blip", "r:embed", rID)
	b.start("a:stretch")
	b.empty("a:fillRect")
	b.end("a:stretch")
	b.end("p:blipFill")

	b.start("p:spPr")
	writeXfrm(b, "a:xfrm", p.Frame)
	b.start("a:prstGeom", "prst", "rect")
	b.empty("a:avLst")
	b.end("a:prstGeom")
	b.end("p:spPr")
	b.end("p:pic")
}
