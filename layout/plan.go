package layout

import (
	"github.com/tsawler/notedeck/classify"
	"github.com/tsawler/notedeck/model"
)

// Bullet font bounds, in points. Every bullet layout falls inside them.
const (
	MinBulletFontPt = 16
	MaxBulletFontPt = 26

	// bulletMarginPt is subtracted from the per-line share of the box height.
	bulletMarginPt = 4
)

// Fixed font sizes for the other shapes.
const (
	TableFontPt = 22
	CodeFontPt  = 16
	TitleFontPt = 40
	IntroFontPt = 44
)

// CodeTypeface is the monospace face used for code blocks.
const CodeTypeface = "Courier New"

// BulletGlyph prefixes every bullet line.
const BulletGlyph = "•"

// Standard geometry for a 10in x 7.5in slide.
var (
	TitleBox  = model.NewRect(model.Inches(1), model.Inches(0.5), model.Inches(8), model.Inches(1.2))
	BulletBox = model.NewRect(model.Inches(1.2), model.Inches(1.9), model.Inches(7.6), model.Inches(5))
	TableBox  = model.NewRect(model.Inches(1.2), model.Inches(2.2), model.Inches(7.6), model.Inches(4))
	CodeBox   = model.NewRect(model.Inches(0.6), model.Inches(1.8), model.Inches(8.8), model.Inches(5.2))

	// IntroTextBox holds the brand text on the intro slide.
	IntroTextBox = model.NewRect(model.Inches(0.5), model.Inches(2.5), model.Inches(9), model.Inches(2))

	// LogoBox is where the intro logo is placed; its height follows the
	// image's aspect ratio.
	LogoBox = model.NewRect(model.Inches(3), model.Inches(2), model.Inches(4), model.Inches(4))

	// IconBox is the top-right corner slot for an optional shape icon.
	IconBox = model.NewRect(model.Inches(9), model.Inches(0.5), model.Inches(0.6), model.Inches(0.6))
)

// Plan is the computed layout for one slide body.
type Plan struct {
	Shape      classify.Shape
	FontSizePt int
	Box        model.Rect

	// WordWrap is false for code, which renders at literal width.
	WordWrap bool

	// Typeface overrides the theme font when set.
	Typeface string

	// Lines holds the body lines for bullet and code shapes.
	Lines []string

	// Rows holds the key/value rows for table shapes.
	Rows []classify.Row

	// Dropped lists table lines that had no colon and were left out.
	Dropped []string
}

// Compute lays out lines for the given shape. It has no side effects.
func Compute(shape classify.Shape, lines []string) Plan {
	switch shape {
	case classify.Table:
		rows, dropped := classify.TableRows(lines)
		return Plan{
			Shape:      classify.Table,
			FontSizePt: TableFontPt,
			Box:        TableBox,
			WordWrap:   true,
			Rows:       rows,
			Dropped:    dropped,
		}
	case classify.CodeBlock:
		return Plan{
			Shape:      classify.CodeBlock,
			FontSizePt: CodeFontPt,
			Box:        CodeBox,
			Typeface:   CodeTypeface,
			Lines:      lines,
		}
	default:
		return Plan{
			Shape:      classify.BulletList,
			FontSizePt: BulletFontSize(len(lines)),
			Box:        BulletBox,
			WordWrap:   true,
			Lines:      lines,
		}
	}
}

// BulletFontSize returns the font size for n bullet lines in BulletBox:
// the per-line share of the box height minus a margin, clamped to
// [MinBulletFontPt, MaxBulletFontPt].
func BulletFontSize(n int) int {
	return fitFontSize(BulletBox.Height, n)
}

func fitFontSize(boxHeight model.EMU, n int) int {
	if n < 1 {
		n = 1
	}
	size := int(boxHeight.Points())/n - bulletMarginPt
	if size < MinBulletFontPt {
		return MinBulletFontPt
	}
	if size > MaxBulletFontPt {
		return MaxBulletFontPt
	}
	return size
}
