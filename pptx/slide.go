package pptx

import (
	"fmt"

	"github.com/tsawler/notedeck/model"
)

// Alignment is a paragraph's horizontal alignment.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "l"
	AlignCenter  Alignment = "ctr"
	AlignRight   Alignment = "r"
)

// Anchor is a text frame's vertical anchoring.
type Anchor string

const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
	AnchorBottom Anchor = "b"
)

// RunStyle holds character formatting. Zero values inherit from the theme.
type RunStyle struct {
	SizePt   int        // Font size in points
	Bold     bool       // Bold weight
	Color    *model.RGB // Solid fill color
	Typeface string     // Latin typeface
}

// Run represents a text run with consistent formatting.
type Run struct {
	Text  string
	Style RunStyle
}

// Paragraph represents a paragraph within a text frame.
type Paragraph struct {
	Runs  []Run
	Align Alignment
	Level int // Indent level (0 = top level)
}

// TextParagraph builds a single-run paragraph.
func TextParagraph(text string, style RunStyle) Paragraph {
	return Paragraph{Runs: []Run{{Text: text, Style: style}}}
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// Shape is an element of a slide's shape tree.
type Shape interface {
	// ID is the shape id, unique within its slide.
	ID() int
	// Name is the display name shown in the selection pane.
	Name() string
	// Bounds is the shape's frame. Placeholders report an empty frame
	// because they inherit their geometry from the layout.
	Bounds() model.Rect

	writeXML(b *xmlBuilder, rels *slideRels)
}

type shapeBase struct {
	id   int
	name string
}

func (s shapeBase) ID() int      { return s.id }
func (s shapeBase) Name() string { return s.name }

// Placeholder is a layout placeholder carried onto a new slide.
type Placeholder struct {
	shapeBase
	Type  string // title, body, ctrTitle, subTitle, dt, ftr, sldNum...
	Index uint32
}

// Bounds returns an empty frame; the layout supplies the geometry.
func (p *Placeholder) Bounds() model.Rect { return model.Rect{} }

// TextBox is a free-standing text shape.
type TextBox struct {
	shapeBase
	Frame      model.Rect
	WordWrap   bool
	Anchor     Anchor
	Paragraphs []Paragraph
}

// Bounds returns the text box frame.
func (t *TextBox) Bounds() model.Rect { return t.Frame }

// AddParagraph appends a paragraph to the text frame.
func (t *TextBox) AddParagraph(p Paragraph) {
	t.Paragraphs = append(t.Paragraphs, p)
}

// TableCell is one cell of a Table.
type TableCell struct {
	Text  string
	Style RunStyle
}

// Table is a DrawingML table inside a graphic frame.
type Table struct {
	shapeBase
	Frame   model.Rect
	Columns []model.EMU // Column widths
	cells   [][]TableCell
}

// Bounds returns the graphic frame.
func (t *Table) Bounds() model.Rect { return t.Frame }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.cells) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.Columns) }

// Cell returns the cell at row r, column c (0-indexed).
func (t *Table) Cell(r, c int) *TableCell {
	return &t.cells[r][c]
}

// Picture is an embedded image.
type Picture struct {
	shapeBase
	Frame model.Rect

	// Data holds the encoded image in a format PowerPoint accepts.
	Data []byte
	// Ext is the media extension: png, jpeg or gif.
	Ext string
	// PixelWidth and PixelHeight are the decoded image dimensions.
	PixelWidth, PixelHeight int

	mediaPart string
}

// Bounds returns the picture frame.
func (p *Picture) Bounds() model.Rect { return p.Frame }

// Slide is one slide of a Package. Slides inherited from the template are
// read-only summaries; slides created with AddSlide can be edited.
type Slide struct {
	id       uint32
	relID    string
	part     string
	layout   *Layout
	template bool
	title    string

	background *model.RGB
	shapes     []Shape
	nextID     int
}

func newSlide(id uint32, relID, part string, layout *Layout) *Slide {
	s := &Slide{
		id:     id,
		relID:  relID,
		part:   part,
		layout: layout,
		nextID: 2, // id 1 is the shape tree itself
	}
	for _, ph := range layout.Placeholders {
		base := s.nextShape("Placeholder")
		if ph.Name != "" {
			base.name = ph.Name
		}
		s.shapes = append(s.shapes, &Placeholder{
			shapeBase: base,
			Type:      ph.Type,
			Index:     ph.Index,
		})
	}
	return s
}

func (s *Slide) nextShape(prefix string) shapeBase {
	id := s.nextID
	s.nextID++
	return shapeBase{id: id, name: fmt.Sprintf("%s %d", prefix, id-1)}
}

// Part returns the slide's part name inside the package.
func (s *Slide) Part() string { return s.part }

// IsTemplate reports whether the slide came from the opened template.
func (s *Slide) IsTemplate() bool { return s.template }

// Title returns the text of a template slide's title placeholder.
func (s *Slide) Title() string { return s.title }

// Layout returns the layout a generated slide was created from, or nil for
// template slides.
func (s *Slide) Layout() *Layout { return s.layout }

// Background returns the solid background color, if one was set.
func (s *Slide) Background() *model.RGB { return s.background }

// Shapes returns the slide's shapes in z-order.
func (s *Slide) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// SetBackground paints the slide with a solid color.
func (s *Slide) SetBackground(c model.RGB) {
	s.background = &c
}

// ClearShapes removes every shape, including placeholders carried over from
// the layout.
func (s *Slide) ClearShapes() {
	s.shapes = nil
}

// AddTextBox adds an empty text box with the given frame.
func (s *Slide) AddTextBox(frame model.Rect) *TextBox {
	tb := &TextBox{
		shapeBase: s.nextShape("TextBox"),
		Frame:     frame,
		WordWrap:  true,
		Anchor:    AnchorTop,
	}
	s.shapes = append(s.shapes, tb)
	return tb
}

// AddTable adds a rows x cols table with equal column widths.
func (s *Slide) AddTable(rows, cols int, frame model.Rect) (*Table, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid table size %dx%d", rows, cols)
	}
	t := &Table{
		shapeBase: s.nextShape("Table"),
		Frame:     frame,
		Columns:   make([]model.EMU, cols),
		cells:     make([][]TableCell, rows),
	}
	width := frame.Width / model.EMU(cols)
	for c := range t.Columns {
		t.Columns[c] = width
	}
	// The last column absorbs the rounding remainder.
	t.Columns[cols-1] = frame.Width - width*model.EMU(cols-1)
	for r := range t.cells {
		t.cells[r] = make([]TableCell, cols)
	}
	s.shapes = append(s.shapes, t)
	return t, nil
}

// AddPicture embeds an image. When frame.Height is zero the height is
// derived from the image's aspect ratio.
func (s *Slide) AddPicture(data []byte, frame model.Rect) (*Picture, error) {
	img, err := probeImage(data)
	if err != nil {
		return nil, err
	}
	if frame.Height == 0 && img.width > 0 {
		frame.Height = model.EMU(int64(frame.Width) * int64(img.height) / int64(img.width))
	}
	p := &Picture{
		shapeBase:   s.nextShape("Picture"),
		Frame:       frame,
		Data:        img.data,
		Ext:         img.ext,
		PixelWidth:  img.width,
		PixelHeight: img.height,
	}
	s.shapes = append(s.shapes, p)
	return p, nil
}
