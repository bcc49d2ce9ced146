// Package preview renders approximate raster images of generated slides.
//
// The renderer understands the shapes the deck assembler produces: a solid
// background, text boxes, two-column tables and pictures. Text is drawn with
// a scaled bitmap font, so line breaks and glyph metrics only approximate
// what PowerPoint will show.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/pptx"
)

// Options configures rendering.
type Options struct {
	// Width is the output width in pixels. Height follows the slide aspect
	// ratio. Default: 960.
	Width int
	// Concurrency bounds RenderDeck's parallelism. Default: GOMAXPROCS.
	Concurrency int
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 960
	}
	return o.Width
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Concurrency
}

// RenderSlide draws s on a canvas for a slide of the given size.
func RenderSlide(s *pptx.Slide, width, height model.EMU, opts Options) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid slide size %dx%d", width, height)
	}
	imgW := opts.width()
	imgH := int(math.Round(float64(imgW) * float64(height) / float64(width)))

	r := &renderer{
		img:   image.NewRGBA(image.Rect(0, 0, imgW, imgH)),
		scale: float64(imgW) / float64(width),
	}

	bg := model.White
	if c := s.Background(); c != nil {
		bg = *c
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(rgba(bg)), image.Point{}, draw.Src)

	for _, shape := range s.Shapes() {
		switch sh := shape.(type) {
		case *pptx.TextBox:
			r.renderTextBox(sh)
		case *pptx.Table:
			r.renderTable(sh)
		case *pptx.Picture:
			r.renderPicture(sh)
		}
	}
	return r.img, nil
}

// RenderDeck renders every slide of pkg concurrently. Images are returned in
// slide order.
func RenderDeck(ctx context.Context, pkg *pptx.Package, opts Options) ([]*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	width, height := pkg.SlideSize()
	slides := pkg.Slides()
	out := make([]*image.RGBA, len(slides))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())
	for i, s := range slides {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := RenderSlide(s, width, height, opts)
			if err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type renderer struct {
	img   *image.RGBA
	scale float64 // pixels per EMU
}

func (r *renderer) px(e model.EMU) int {
	return int(math.Round(float64(e) * r.scale))
}

func (r *renderer) rect(b model.Rect) image.Rectangle {
	x, y := r.px(b.X), r.px(b.Y)
	return image.Rect(x, y, x+r.px(b.Width), y+r.px(b.Height))
}

func (r *renderer) renderPicture(p *pptx.Picture) {
	dst := r.rect(p.Frame)
	src, _, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		r.strokeRect(dst, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		return
	}
	draw.CatmullRom.Scale(r.img, dst, src, src.Bounds(), draw.Over, nil)
}

func (r *renderer) renderTable(t *pptx.Table) {
	if t.RowCount() == 0 || t.ColumnCount() == 0 {
		return
	}
	frame := r.rect(t.Frame)
	rowH := frame.Dy() / t.RowCount()
	border := color.RGBA{R: 128, G: 128, B: 128, A: 255}

	y := frame.Min.Y
	for row := 0; row < t.RowCount(); row++ {
		x := frame.Min.X
		for col := 0; col < t.ColumnCount(); col++ {
			cellRect := image.Rect(x, y, x+r.px(t.Columns[col]), y+rowH)
			r.strokeRect(cellRect, border)

			cell := t.Cell(row, col)
			inner := cellRect.Inset(3)
			clip, ok := r.img.SubImage(cellRect).(*image.RGBA)
			if ok && !inner.Empty() {
				sub := &renderer{img: clip, scale: r.scale}
				lines := []textLine{{text: cell.Text, style: cell.Style}}
				sub.drawLines(inner, lines, false, pptx.AnchorMiddle)
			}
			x = cellRect.Max.X
		}
		y += rowH
	}
}

func (r *renderer) strokeRect(rect image.Rectangle, c color.RGBA) {
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1),
		image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y),
		image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(r.img, e, u, image.Point{}, draw.Src)
	}
}

func rgba(c model.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
