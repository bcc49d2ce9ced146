package preview

import (
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/pptx"
)

const (
	defaultSizePt = 18
	lineSpacing   = 1.2
)

var face = basicfont.Face7x13

type textLine struct {
	text  string
	style pptx.RunStyle
	align pptx.Alignment
}

func (r *renderer) renderTextBox(t *pptx.TextBox) {
	lines := make([]textLine, 0, len(t.Paragraphs))
	for _, p := range t.Paragraphs {
		var style pptx.RunStyle
		if len(p.Runs) > 0 {
			style = p.Runs[0].Style
		}
		lines = append(lines, textLine{text: p.Text(), style: style, align: p.Align})
	}
	r.drawLines(r.rect(t.Frame), lines, t.WordWrap, t.Anchor)
}

// pixelSize converts a font size in points to pixels.
func (r *renderer) pixelSize(pt int) float64 {
	if pt <= 0 {
		pt = defaultSizePt
	}
	return float64(pt) * float64(model.EMUPerPoint) * r.scale
}

func (r *renderer) drawLines(box image.Rectangle, lines []textLine, wrap bool, anchor pptx.Anchor) {
	type placed struct {
		textLine
		factor float64
	}
	var out []placed
	total := 0.0
	for _, l := range lines {
		factor := r.pixelSize(l.style.SizePt) / float64(face.Height)
		parts := []string{l.text}
		if wrap {
			parts = wrapText(l.text, float64(box.Dx())/factor)
		}
		for _, p := range parts {
			out = append(out, placed{textLine{p, l.style, l.align}, factor})
			total += float64(face.Height) * factor * lineSpacing
		}
	}

	y := float64(box.Min.Y)
	switch anchor {
	case pptx.AnchorMiddle:
		y += (float64(box.Dy()) - total) / 2
	case pptx.AnchorBottom:
		y += float64(box.Dy()) - total
	}

	for _, l := range out {
		w := float64(font.MeasureString(face, l.text).Ceil()) * l.factor
		x := float64(box.Min.X)
		switch l.align {
		case pptx.AlignCenter:
			x += (float64(box.Dx()) - w) / 2
		case pptx.AlignRight:
			x += float64(box.Dx()) - w
		}
		r.drawString(int(math.Round(x)), int(math.Round(y)), l.text, l.factor, l.style)
		y += float64(face.Height) * l.factor * lineSpacing
	}
}

// drawString renders text at its native size and scales it onto the canvas
// with its top-left corner at (x, y).
func (r *renderer) drawString(x, y int, text string, factor float64, style pptx.RunStyle) {
	w := font.MeasureString(face, text).Ceil()
	if w == 0 || strings.TrimSpace(text) == "" {
		return
	}
	c := model.Black
	if style.Color != nil {
		c = *style.Color
	}

	tmp := image.NewRGBA(image.Rect(0, 0, w+1, face.Height))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(rgba(c)),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)
	if style.Bold {
		d.Dot = fixed.P(1, face.Ascent)
		d.DrawString(text)
	}

	dst := image.Rect(x, y,
		x+int(math.Round(float64(tmp.Bounds().Dx())*factor)),
		y+int(math.Round(float64(face.Height)*factor)))
	draw.ApproxBiLinear.Scale(r.img, dst, tmp, tmp.Bounds(), draw.Over, nil)
}

// wrapText breaks text into lines no wider than maxWidth native pixels.
// A single word wider than maxWidth gets a line of its own.
func wrapText(text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		candidate := cur + " " + word
		if float64(font.MeasureString(face, candidate).Ceil()) > maxWidth {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}
