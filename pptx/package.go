package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/notedeck/model"
)

// ErrMalformedTemplate is returned when a template cannot be opened or
// lacks the parts needed to build slides from it.
var ErrMalformedTemplate = errors.New("malformed template")

const (
	contentTypesPart        = "[Content_Types].xml"
	defaultPresentationPart = "ppt/presentation.xml"
)

// Default 4:3 slide size used when presentation.xml has no sldSz.
var (
	defaultSlideWidth  = model.Inches(10)
	defaultSlideHeight = model.Inches(7.5)
)

// Placeholder types PowerPoint does not instantiate on new slides.
var skippedPlaceholders = map[string]bool{"dt": true, "ftr": true, "sldNum": true}

// Layout describes one slide layout of the template's first master.
type Layout struct {
	Index        int    // Position in the master's layout list
	Name         string // e.g. "Title Slide", "Title and Content"
	Type         string // e.g. "title", "obj"
	Part         string // Part name inside the package
	Placeholders []PlaceholderSpec
}

// PlaceholderSpec is a placeholder declared by a layout.
type PlaceholderSpec struct {
	Name  string
	Type  string
	Index uint32
}

// Package is a presentation package held in memory.
type Package struct {
	parts map[string][]byte
	order []string // Original archive order, new parts appended

	contentTypes contentTypesXML
	presPart     string
	presRels     []relationshipXML
	pmlPrefix    string // Namespace prefix for PresentationML in presentation.xml
	relPrefix    string // Namespace prefix for relationships in presentation.xml

	slides      []*Slide
	layouts     []*Layout
	slideWidth  model.EMU
	slideHeight model.EMU
	nextSlideID uint32
}

// Open reads a presentation package from a file.
func Open(filename string) (*Package, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTemplate, err)
	}
	return OpenBytes(data)
}

// OpenReader reads a presentation package from r.
func OpenReader(r io.Reader) (*Package, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTemplate, err)
	}
	return OpenBytes(data)
}

// OpenBytes reads a presentation package from memory.
func OpenBytes(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %w", ErrMalformedTemplate, err)
	}

	p := &Package{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrMalformedTemplate, f.Name, err)
		}
		p.putPart(strings.TrimPrefix(f.Name, "/"), content)
	}

	if err := p.load(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTemplate, err)
	}
	return p, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *Package) load() error {
	if err := p.validate(); err != nil {
		return err
	}

	if err := xml.Unmarshal(p.parts[contentTypesPart], &p.contentTypes); err != nil {
		return fmt.Errorf("parsing content types: %w", err)
	}

	p.presPart = p.findPresentationPart()
	data, ok := p.parts[p.presPart]
	if !ok {
		return fmt.Errorf("missing required file: %s", p.presPart)
	}

	var pres presentationXML
	if err := xml.Unmarshal(data, &pres); err != nil {
		return fmt.Errorf("parsing presentation: %w", err)
	}
	p.pmlPrefix = namespacePrefix(data, nsPresentationML, "p")
	p.relPrefix = namespacePrefix(data, nsRelationships, "r")

	rels, err := p.relationships(p.presPart)
	if err != nil {
		return fmt.Errorf("parsing presentation relationships: %w", err)
	}
	p.presRels = rels

	p.slideWidth, p.slideHeight = defaultSlideWidth, defaultSlideHeight
	if pres.SlideSz != nil && pres.SlideSz.Cx > 0 && pres.SlideSz.Cy > 0 {
		p.slideWidth, p.slideHeight = model.EMU(pres.SlideSz.Cx), model.EMU(pres.SlideSz.Cy)
	}

	if err := p.loadLayouts(&pres); err != nil {
		return err
	}
	p.loadSlides(&pres)
	return nil
}

// validate checks that required package parts exist.
func (p *Package) validate() error {
	if _, ok := p.parts[contentTypesPart]; !ok {
		return fmt.Errorf("missing required file: %s", contentTypesPart)
	}
	return nil
}

// findPresentationPart follows the package's officeDocument relationship.
func (p *Package) findPresentationPart() string {
	rels, err := p.relationships("")
	if err != nil {
		return defaultPresentationPart
	}
	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, "/officeDocument") {
			return resolveTarget("", rel.Target)
		}
	}
	return defaultPresentationPart
}

func (p *Package) loadLayouts(pres *presentationXML) error {
	if pres.SldMasterIdLst == nil || len(pres.SldMasterIdLst.SldMasterId) == 0 {
		return errors.New("presentation has no slide master")
	}
	masterID := pres.SldMasterIdLst.SldMasterId[0]
	masterPart, ok := targetOf(p.presPart, p.presRels, masterID.RID)
	if !ok {
		return fmt.Errorf("slide master %s not found", masterID.RID)
	}
	data, ok := p.parts[masterPart]
	if !ok {
		return fmt.Errorf("missing slide master part: %s", masterPart)
	}

	var master slideMasterXML
	if err := xml.Unmarshal(data, &master); err != nil {
		return fmt.Errorf("parsing slide master: %w", err)
	}
	masterRels, err := p.relationships(masterPart)
	if err != nil {
		return fmt.Errorf("parsing slide master relationships: %w", err)
	}

	if master.SldLayoutIdLst != nil {
		for _, id := range master.SldLayoutIdLst.SldLayoutId {
			part, ok := targetOf(masterPart, masterRels, id.RID)
			if !ok {
				continue
			}
			layoutData, ok := p.parts[part]
			if !ok {
				continue
			}
			var lx slideLayoutXML
			if err := xml.Unmarshal(layoutData, &lx); err != nil {
				return fmt.Errorf("parsing layout %s: %w", part, err)
			}

			layout := &Layout{
				Index: len(p.layouts),
				Name:  lx.CSld.Name,
				Type:  lx.Type,
				Part:  part,
			}
			for _, sp := range lx.CSld.SpTree.Sp {
				ph := sp.NvSpPr.NvPr.Ph
				if ph == nil || skippedPlaceholders[ph.Type] {
					continue
				}
				layout.Placeholders = append(layout.Placeholders, PlaceholderSpec{
					Name:  sp.NvSpPr.CNvPr.Name,
					Type:  ph.Type,
					Index: ph.Idx,
				})
			}
			p.layouts = append(p.layouts, layout)
		}
	}

	if len(p.layouts) == 0 {
		return errors.New("slide master has no layouts")
	}
	return nil
}

func (p *Package) loadSlides(pres *presentationXML) {
	maxID := uint32(255)
	if pres.SlideIdList != nil {
		for _, sid := range pres.SlideIdList.SlideId {
			if sid.ID > maxID {
				maxID = sid.ID
			}
			part, ok := targetOf(p.presPart, p.presRels, sid.RID)
			if !ok {
				continue // Dangling entries are dropped on write
			}
			if _, ok := p.parts[part]; !ok {
				continue
			}
			p.slides = append(p.slides, &Slide{
				id:       sid.ID,
				relID:    sid.RID,
				part:     part,
				template: true,
				title:    p.slideTitle(part),
			})
		}
	}
	p.nextSlideID = maxID + 1
}

// slideTitle extracts the text of a slide's title placeholder.
func (p *Package) slideTitle(part string) string {
	var sx slideXML
	if err := xml.Unmarshal(p.parts[part], &sx); err != nil {
		return ""
	}
	for _, sp := range sx.CSld.SpTree.Sp {
		ph := sp.NvSpPr.NvPr.Ph
		if ph == nil || sp.TxBody == nil || (ph.Type != "title" && ph.Type != "ctrTitle") {
			continue
		}
		var lines []string
		for _, para := range sp.TxBody.P {
			if text := strings.TrimSpace(paragraphText(para)); text != "" {
				lines = append(lines, text)
			}
		}
		return strings.Join(lines, " ")
	}
	return ""
}

func paragraphText(para pXML) string {
	var sb strings.Builder
	for _, r := range para.R {
		sb.WriteString(r.T)
	}
	for _, f := range para.Fld {
		sb.WriteString(f.T)
	}
	return sb.String()
}

// Slides returns the package's slides in presentation order.
func (p *Package) Slides() []*Slide {
	return slices.Clone(p.slides)
}

// SlideCount returns the number of slides.
func (p *Package) SlideCount() int {
	return len(p.slides)
}

// Layouts returns the layouts of the first slide master in order.
func (p *Package) Layouts() []*Layout {
	return slices.Clone(p.layouts)
}

// SlideSize returns the slide width and height.
func (p *Package) SlideSize() (width, height model.EMU) {
	return p.slideWidth, p.slideHeight
}

// PartNames returns the names of all parts currently in the package, sorted.
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.parts))
	for name := range p.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoveSlide deletes the slide at index along with its relationships.
// Parts only that slide referenced, such as its notes, are dropped when the
// package is written.
func (p *Package) RemoveSlide(index int) error {
	if index < 0 || index >= len(p.slides) {
		return fmt.Errorf("slide index %d out of range [0,%d)", index, len(p.slides))
	}
	s := p.slides[index]
	p.slides = slices.Delete(p.slides, index, index+1)
	p.presRels = slices.DeleteFunc(p.presRels, func(r relationshipXML) bool {
		return r.ID == s.relID
	})
	p.deletePart(s.part)
	p.deletePart(relsPathFor(s.part))
	return nil
}

// RemoveAllSlides deletes every slide, keeping masters, layouts and theme.
func (p *Package) RemoveAllSlides() {
	for len(p.slides) > 0 {
		_ = p.RemoveSlide(len(p.slides) - 1)
	}
}

// AddSlide appends a slide built from the layout at layoutIndex. The layout's
// content placeholders are carried onto the slide.
func (p *Package) AddSlide(layoutIndex int) (*Slide, error) {
	if layoutIndex < 0 || layoutIndex >= len(p.layouts) {
		return nil, fmt.Errorf("%w: layout %d not found (template has %d)",
			ErrMalformedTemplate, layoutIndex, len(p.layouts))
	}

	part := p.nextPartName("ppt/slides/slide%d.xml")
	relID := p.nextPresentationRelID()
	p.presRels = append(p.presRels, relationshipXML{
		ID:     relID,
		Type:   relTypeSlide,
		Target: relativeTarget(p.presPart, part),
	})
	p.setOverride(part, contentTypeSlide)
	p.putPart(part, nil) // Reserved until Write renders it

	s := newSlide(p.nextSlideID, relID, part, p.layouts[layoutIndex])
	p.nextSlideID++
	p.slides = append(p.slides, s)
	return s, nil
}

// Bytes returns the serialized package.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes the package as a ZIP archive to w. Parts no longer
// reachable through relationships are left out.
func (p *Package) Write(w io.Writer) error {
	for _, s := range p.slides {
		if s.template {
			continue
		}
		for _, sh := range s.shapes {
			pic, ok := sh.(*Picture)
			if !ok {
				continue
			}
			if pic.mediaPart == "" {
				pic.mediaPart = p.nextPartName("ppt/media/image%d." + pic.Ext)
			}
			p.putPart(pic.mediaPart, pic.Data)
			p.ensureDefault(pic.Ext, mediaContentTypes[pic.Ext])
		}
		slide, rels := s.marshal()
		p.putPart(s.part, slide)
		p.putPart(relsPathFor(s.part), rels)
	}

	pres, err := spliceSlideList(p.parts[p.presPart], p.pmlPrefix, p.renderSlideList())
	if err != nil {
		return err
	}
	ids := make([]uint32, len(p.slides))
	for i, s := range p.slides {
		ids[i] = s.id
	}
	pres = syncSections(pres, ids)
	p.putPart(p.presPart, pres)
	p.putPart(relsPathFor(p.presPart), marshalRelationships(p.presRels))

	reachable := p.reachable()

	ct := contentTypesXML{Default: p.contentTypes.Default}
	for _, o := range p.contentTypes.Override {
		if reachable[strings.TrimPrefix(o.PartName, "/")] {
			ct.Override = append(ct.Override, o)
		}
	}

	zw := zip.NewWriter(w)
	if err := writeZipPart(zw, contentTypesPart, marshalContentTypes(&ct)); err != nil {
		return err
	}
	for _, name := range p.order {
		if name == contentTypesPart || !reachable[name] {
			continue
		}
		data, ok := p.parts[name]
		if !ok {
			continue
		}
		if err := writeZipPart(zw, name, data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

func writeZipPart(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (p *Package) renderSlideList() []byte {
	b := &xmlBuilder{}
	tag := qualify(p.pmlPrefix, "sldIdLst")
	if len(p.slides) == 0 {
		b.empty(tag)
		return b.bytes()
	}
	b.start(tag)
	for _, s := range p.slides {
		b.empty(qualify(p.pmlPrefix, "sldId"), "id", itoa(s.id), qualify(p.relPrefix, "id"), s.relID)
	}
	b.end(tag)
	return b.bytes()
}

// reachable walks relationships from the package root and returns the set
// of parts still in use.
func (p *Package) reachable() map[string]bool {
	seen := map[string]bool{contentTypesPart: true}
	queue := []string{""}
	for len(queue) > 0 {
		src := queue[0]
		queue = queue[1:]

		relsPart := relsPathFor(src)
		if _, ok := p.parts[relsPart]; !ok {
			continue
		}
		seen[relsPart] = true
		rels, err := p.relationships(src)
		if err != nil {
			continue
		}
		for _, rel := range rels {
			if strings.EqualFold(rel.TargetMode, "External") {
				continue
			}
			target := resolveTarget(src, rel.Target)
			if _, ok := p.parts[target]; ok && !seen[target] {
				seen[target] = true
				queue = append(queue, target)
			}
		}
	}
	return seen
}

// relationships parses the relationships part belonging to src. A missing
// relationships part is not an error.
func (p *Package) relationships(src string) ([]relationshipXML, error) {
	data, ok := p.parts[relsPathFor(src)]
	if !ok {
		return nil, nil
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, err
	}
	return rels.Relationship, nil
}

func (p *Package) putPart(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

func (p *Package) deletePart(name string) {
	delete(p.parts, name)
}

// nextPartName returns the first unused part name for a pattern with one %d.
func (p *Package) nextPartName(pattern string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf(pattern, n)
		if _, ok := p.parts[name]; !ok {
			return name
		}
	}
}

func (p *Package) nextPresentationRelID() string {
	maxID := 0
	for _, rel := range p.presRels {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	return "rId" + strconv.Itoa(maxID+1)
}

func (p *Package) setOverride(part, contentType string) {
	name := "/" + part
	for i := range p.contentTypes.Override {
		if p.contentTypes.Override[i].PartName == name {
			p.contentTypes.Override[i].ContentType = contentType
			return
		}
	}
	p.contentTypes.Override = append(p.contentTypes.Override, overrideTypeXML{PartName: name, ContentType: contentType})
}

func (p *Package) ensureDefault(ext, contentType string) {
	for _, d := range p.contentTypes.Default {
		if strings.EqualFold(d.Extension, ext) {
			return
		}
	}
	p.contentTypes.Default = append(p.contentTypes.Default, defaultTypeXML{Extension: ext, ContentType: contentType})
}

func targetOf(src string, rels []relationshipXML, id string) (string, bool) {
	for _, rel := range rels {
		if rel.ID == id {
			return resolveTarget(src, rel.Target), true
		}
	}
	return "", false
}

// relsPathFor returns the relationships part for a part. The empty string
// names the package root.
func relsPathFor(part string) string {
	if part == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves a relationship target against its source part.
func resolveTarget(src, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(src), target)
}

// relativeTarget returns the relationship target that reaches to from from.
func relativeTarget(from, to string) string {
	var fromDirs []string
	if dir := path.Dir(from); dir != "." {
		fromDirs = strings.Split(dir, "/")
	}
	toParts := strings.Split(to, "/")
	i := 0
	for i < len(fromDirs) && i < len(toParts)-1 && fromDirs[i] == toParts[i] {
		i++
	}
	return strings.Repeat("../", len(fromDirs)-i) + strings.Join(toParts[i:], "/")
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// namespacePrefix finds the prefix bound to ns in doc. It returns "" when
// ns is the default namespace and fallback when it is not declared.
func namespacePrefix(doc []byte, ns, fallback string) string {
	re := regexp.MustCompile(`xmlns:(\w+)="` + regexp.QuoteMeta(ns) + `"`)
	if m := re.FindSubmatch(doc); m != nil {
		return string(m[1])
	}
	if bytes.Contains(doc, []byte(`xmlns="`+ns+`"`)) {
		return ""
	}
	return fallback
}

// spliceSlideList replaces the slide id list in presentation.xml, or inserts
// one where the schema expects it. The rest of the document is untouched.
func spliceSlideList(doc []byte, prefix string, list []byte) ([]byte, error) {
	tag := regexp.QuoteMeta(qualify(prefix, "sldIdLst"))
	re := regexp.MustCompile(`(?s)<` + tag + `\b[^>]*?/>|<` + tag + `\b[^>]*>.*?</` + tag + `\s*>`)
	if loc := re.FindIndex(doc); loc != nil {
		return concat(doc[:loc[0]], list, doc[loc[1]:]), nil
	}
	for _, next := range []string{"sldSz", "notesSz"} {
		if i := bytes.Index(doc, []byte("<"+qualify(prefix, next))); i >= 0 {
			return concat(doc[:i], list, doc[i:]), nil
		}
	}
	return nil, fmt.Errorf("%w: presentation has no slide size element", ErrMalformedTemplate)
}

var (
	sectionListPattern  = regexp.MustCompile(`(?s)<(\w+:)?sectionLst\b[^>]*>.*?</(?:\w+:)?sectionLst\s*>`)
	sectionSlidePattern = regexp.MustCompile(`<(?:\w+:)?sldId\s+id="(\d+)"\s*/>`)
	sectionListEnd      = regexp.MustCompile(`<(?:\w+:)?sldIdLst\s*/>|</(?:\w+:)?sldIdLst\s*>`)
)

// syncSections keeps a PowerPoint section list consistent with the slide
// ids in ids: entries for removed slides are pruned and slides no section
// lists are appended to the last section. Documents without sections are
// returned unchanged.
func syncSections(doc []byte, ids []uint32) []byte {
	loc := sectionListPattern.FindSubmatchIndex(doc)
	if loc == nil {
		return doc
	}
	var prefix string
	if loc[2] >= 0 {
		prefix = string(doc[loc[2]:loc[3]])
	}

	present := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	listed := make(map[uint32]bool, len(ids))
	sections := sectionSlidePattern.ReplaceAllFunc(doc[loc[0]:loc[1]], func(m []byte) []byte {
		id, err := strconv.ParseUint(string(sectionSlidePattern.FindSubmatch(m)[1]), 10, 32)
		if err != nil || !present[uint32(id)] || listed[uint32(id)] {
			return nil
		}
		listed[uint32(id)] = true
		return m
	})

	var missing []byte
	for _, id := range ids {
		if !listed[id] {
			missing = append(missing, `<`+prefix+`sldId id="`+itoa(id)+`"/>`...)
		}
	}
	if len(missing) > 0 {
		ends := sectionListEnd.FindAllIndex(sections, -1)
		if len(ends) == 0 {
			return doc
		}
		end := ends[len(ends)-1]
		if bytes.HasSuffix(sections[end[0]:end[1]], []byte("/>")) {
			list := concat([]byte(`<`+prefix+`sldIdLst>`), missing, []byte(`</`+prefix+`sldIdLst>`))
			sections = concat(sections[:end[0]], list, sections[end[1]:])
		} else {
			sections = concat(sections[:end[0]], missing, sections[end[0]:])
		}
	}
	return concat(doc[:loc[0]], sections, doc[loc[1]:])
}

func concat(parts ...[]byte) []byte {
	var n int
	for _, b := range parts {
		n += len(b)
	}
	out := make([]byte, 0, n)
	for _, b := range parts {
		out = append(out, b...)
	}
	return out
}
