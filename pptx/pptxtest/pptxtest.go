// Package pptxtest builds small presentation templates for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ThemeMarker is a string embedded in the generated theme part so tests can
// check the theme survived a rewrite.
const ThemeMarker = "Notedeck Test Theme"

// Options controls the generated template.
type Options struct {
	// Slides holds the title of each template slide, in order.
	Slides []string
	// Layouts is the number of slide layouts. Values below 1 mean 2.
	Layouts int
	// Notes adds a notes slide and an embedded picture to every template
	// slide.
	Notes bool
	// Sections puts the template slides into a PowerPoint section list,
	// split into two sections when there is more than one slide.
	Sections bool
}

// Build returns a minimal but well-formed .pptx package.
func Build(opts Options) []byte {
	layouts := opts.Layouts
	if layouts < 1 {
		layouts = 2
	}

	files := map[string]string{}
	var order []string
	add := func(name, content string) {
		order = append(order, name)
		files[name] = content
	}

	var ct strings.Builder
	ct.WriteString(header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>
<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
`)
	for i := 1; i <= layouts; i++ {
		fmt.Fprintf(&ct, `<Override PartName="/ppt/slideLayouts/slideLayout%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`+"\n", i)
	}
	for i := range opts.Slides {
		fmt.Fprintf(&ct, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`+"\n", i+1)
		if opts.Notes {
			fmt.Fprintf(&ct, `<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"/>`+"\n", i+1)
		}
	}
	ct.WriteString(`</Types>`)
	add("[Content_Types].xml", ct.String())

	add("_rels/.rels", header+`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`)
	add("docProps/core.xml", header+`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>Template</dc:title></cp:coreProperties>`)

	// Presentation relationships: master, theme, then slides.
	var presRels, sldIDs strings.Builder
	presRels.WriteString(header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/>
`)
	for i := range opts.Slides {
		fmt.Fprintf(&presRels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`+"\n", i+3, i+1)
		fmt.Fprintf(&sldIDs, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+3)
	}
	presRels.WriteString(`</Relationships>`)
	add("ppt/_rels/presentation.xml.rels", presRels.String())

	sldIDLst := "<p:sldIdLst>" + sldIDs.String() + "</p:sldIdLst>"
	if len(opts.Slides) == 0 {
		sldIDLst = ""
	}
	extLst := ""
	if opts.Sections {
		extLst = sectionList(len(opts.Slides))
	}
	add("ppt/presentation.xml", header+`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" saveSubsetFonts="1">
<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>
`+sldIDLst+`
<p:sldSz cx="9144000" cy="6858000" type="screen4x3"/>
<p:notesSz cx="6858000" cy="9144000"/>
`+extLst+`</p:presentation>`)

	add("ppt/theme/theme1.xml", header+`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="`+ThemeMarker+`"><a:themeElements><a:clrScheme name="Test"><a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1></a:clrScheme><a:fontScheme name="Test"><a:majorFont><a:latin typeface="Georgia"/></a:majorFont><a:minorFont><a:latin typeface="Verdana"/></a:minorFont></a:fontScheme></a:themeElements></a:theme>`)

	var masterRels, layoutIDs strings.Builder
	masterRels.WriteString(header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + "\n")
	for i := 1; i <= layouts; i++ {
		fmt.Fprintf(&masterRels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout%d.xml"/>`+"\n", i, i)
		fmt.Fprintf(&layoutIDs, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483648+i, i)
	}
	fmt.Fprintf(&masterRels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>`+"\n", layouts+1)
	masterRels.WriteString(`</Relationships>`)
	add("ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels.String())
	add("ppt/slideMasters/slideMaster1.xml", header+`<p:sldMaster `+namespaces+`><p:cSld><p:spTree>`+groupProps+`</p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst>`+layoutIDs.String()+`</p:sldLayoutIdLst></p:sldMaster>`)

	for i := 1; i <= layouts; i++ {
		name, typ, shapes := "Title and Content", "obj", placeholder(2, "Title 1", "title", 0)+placeholder(3, "Content Placeholder 2", "", 1)+placeholder(4, "Slide Number Placeholder 3", "sldNum", 12)
		if i == 1 {
			name, typ, shapes = "Title Slide", "title", placeholder(2, "Title 1", "ctrTitle", 0)+placeholder(3, "Subtitle 2", "subTitle", 1)+placeholder(4, "Date Placeholder 3", "dt", 10)
		}
		if i > 2 {
			name, typ, shapes = fmt.Sprintf("Layout %d", i), "blank", ""
		}
		add(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i), header+`<p:sldLayout `+namespaces+` type="`+typ+`" preserve="1"><p:cSld name="`+name+`"><p:spTree>`+groupProps+shapes+`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`)
		add(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i), header+`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`)
	}

	if opts.Notes && len(opts.Slides) > 0 {
		add("ppt/media/image1.png", string(tinyPNG))
	}
	for i, title := range opts.Slides {
		n := i + 1
		rels := `<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`
		extra := ""
		if opts.Notes {
			rels += fmt.Sprintf(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, n)
			rels += `<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.png"/>`
			extra = `<p:pic><p:nvPicPr><p:cNvPr id="3" name="Picture 2"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill><a:blip r:embed="rId3"/></p:blipFill><p:spPr/></p:pic>`
			add(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), header+`<p:notes `+namespaces+`><p:cSld><p:spTree>`+groupProps+`</p:spTree></p:cSld></p:notes>`)
			add(fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), header+`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+fmt.Sprintf(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="../slides/slide%d.xml"/>`, n)+`</Relationships>`)
		}
		add(fmt.Sprintf("ppt/slides/slide%d.xml", n), header+`<p:sld `+namespaces+`><p:cSld><p:spTree>`+groupProps+
			`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="ctrTitle"/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>`+escape(title)+`</a:t></a:r></a:p></p:txBody></p:sp>`+
			extra+`</p:spTree></p:cSld></p:sld>`)
		add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), header+`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+rels+`</Relationships>`)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteFile builds a template and writes it into a test temp directory.
func WriteFile(t testing.TB, opts Options) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.pptx")
	if err := os.WriteFile(path, Build(opts), 0o644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
	return path
}

// PNG returns a 2x1 PNG image.
func PNG() []byte {
	return bytes.Clone(tinyPNG)
}

// ReadParts unzips a package into a map of part name to content.
func ReadParts(t testing.TB, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open package: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", f.Name, err)
		}
		var b bytes.Buffer
		if _, err := b.ReadFrom(rc); err != nil {
			t.Fatalf("Failed to read %s: %v", f.Name, err)
		}
		rc.Close()
		parts[f.Name] = b.String()
	}
	return parts
}

const (
	header     = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	namespaces = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`
)

func placeholder(id int, name, typ string, idx int) string {
	ph := `<p:ph`
	if typ != "" {
		ph += ` type="` + typ + `"`
	}
	if idx != 0 {
		ph += fmt.Sprintf(` idx="%d"`, idx)
	}
	ph += `/>`
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr><p:spPr/></p:sp>`, id, name, ph)
}

// sectionList renders a presentation extLst with a p14 section list. The
// first slide gets its own section and the rest share a second one.
func sectionList(slides int) string {
	var first, rest strings.Builder
	for i := 0; i < slides; i++ {
		entry := fmt.Sprintf(`<p14:sldId id="%d"/>`, 256+i)
		if i == 0 {
			first.WriteString(entry)
		} else {
			rest.WriteString(entry)
		}
	}
	section := func(name, guid, ids string) string {
		if ids == "" {
			return `<p14:section name="` + name + `" id="` + guid + `"><p14:sldIdLst/></p14:section>`
		}
		return `<p14:section name="` + name + `" id="` + guid + `"><p14:sldIdLst>` + ids + `</p14:sldIdLst></p14:section>`
	}
	return `<p:extLst><p:ext uri="{521415D9-36F7-43E2-AB2F-B90AF26B5E84}"><p14:sectionLst xmlns:p14="http://schemas.microsoft.com/office/powerpoint/2010/main">` +
		section("Opening", "{0C3A5B2E-7D1F-4E8A-9B6C-1D2E3F4A5B6C}", first.String()) +
		section("Body", "{8F9E0D1C-2B3A-4C5D-8E7F-6A5B4C3D2E1F}", rest.String()) +
		`</p14:sectionLst></p:ext></p:extLst>`
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// tinyPNG is a 2x1 RGBA PNG, red then blue.
var tinyPNG = func() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	img.Set(1, 0, color.RGBA{B: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}()
