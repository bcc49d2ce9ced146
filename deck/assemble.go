package deck

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/notedeck/assets"
	"github.com/tsawler/notedeck/branding"
	"github.com/tsawler/notedeck/classify"
	"github.com/tsawler/notedeck/layout"
	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/notes"
	"github.com/tsawler/notedeck/pptx"
)

// Icon asset names, keyed by shape.
var iconNames = map[classify.Shape]string{
	classify.BulletList: "bullets.png",
	classify.Table:      "table.png",
	classify.CodeBlock:  "code.png",
}

// Options configures assembly. The zero value is usable.
type Options struct {
	// Assets resolves the branding logo. Without it a logo reference is
	// treated as missing.
	Assets assets.Resolver

	// Icons resolves per-shape icons. Missing icons are omitted silently.
	Icons assets.Resolver

	Logger *zap.Logger
}

type assembler struct {
	pkg    *pptx.Package
	brand  branding.Branding
	opts   Options
	log    *zap.Logger
	bg     model.RGB
	dx     model.EMU // Horizontal offset that centers 10in geometry on wider slides
	height model.EMU

	summary Summary
}

// Assemble rebuilds pkg from records. It removes the template's slides,
// adds the intro slide and then one slide per record, skipping a leading
// "slide 1" record because the intro slide stands in for it.
//
// Assemble only fails on container errors. Lines dropped from tables and
// unreadable logos are reported in the summary's warnings.
func Assemble(ctx context.Context, pkg *pptx.Package, records []notes.Record, b branding.Branding, opts Options) (Summary, error) {
	if n := len(pkg.Layouts()); n <= ContentLayout {
		return Summary{}, fmt.Errorf("%w: template has %d slide layouts, need at least %d",
			pptx.ErrMalformedTemplate, n, ContentLayout+1)
	}

	a := &assembler{
		pkg:   pkg,
		brand: b,
		opts:  opts,
		log:   opts.Logger,
		bg:    b.SlideBackground(),
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	width, height := pkg.SlideSize()
	if extra := width - model.Inches(10); extra > 0 {
		a.dx = extra / 2
	}
	a.height = height

	// Reset phase.
	a.summary.RemovedSlides = pkg.SlideCount()
	pkg.RemoveAllSlides()
	a.log.Debug("removed template slides", zap.Int("count", a.summary.RemovedSlides))

	// Build phase.
	if err := a.intro(ctx); err != nil {
		return Summary{}, err
	}
	for i, rec := range records {
		if i == 0 && notes.IsFirstSlide(rec.RawHeader) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		if err := a.content(ctx, rec); err != nil {
			return Summary{}, err
		}
	}

	a.log.Info("assembled deck",
		zap.Int("slides", a.summary.SlideCount()),
		zap.Int("warnings", len(a.summary.Warnings)))
	return a.summary, nil
}

func (a *assembler) place(r model.Rect) model.Rect {
	r.X += a.dx
	return r
}

func (a *assembler) warn(kind WarningKind, slide int, msg string) {
	w := Warning{Kind: kind, Slide: slide, Message: msg}
	a.summary.Warnings = append(a.summary.Warnings, w)
	a.log.Warn("deck warning", zap.String("kind", string(kind)), zap.Int("slide", slide), zap.String("message", msg))
}

func (a *assembler) intro(ctx context.Context) error {
	slide, err := a.pkg.AddSlide(IntroLayout)
	if err != nil {
		return fmt.Errorf("adding intro slide: %w", err)
	}
	slide.ClearShapes()
	slide.SetBackground(a.bg)

	if a.brand.HasLogo() {
		if err := a.logo(ctx, slide); err != nil {
			a.warn(WarnMissingLogo, 1, err.Error())
		} else {
			a.summary.IntroLogo = true
			return nil
		}
	}

	if a.brand.BrandText == "" {
		return nil
	}
	tb := slide.AddTextBox(a.place(layout.IntroTextBox))
	tb.Anchor = pptx.AnchorMiddle
	primary := a.brand.Primary
	p := pptx.TextParagraph(a.brand.BrandText, pptx.RunStyle{
		SizePt: layout.IntroFontPt,
		Bold:   true,
		Color:  &primary,
	})
	p.Align = pptx.AlignCenter
	tb.AddParagraph(p)
	return nil
}

// logo places the branding logo on the intro slide, keeping its aspect
// ratio and shrinking it if it would run off the bottom of the slide.
func (a *assembler) logo(ctx context.Context, slide *pptx.Slide) error {
	if a.opts.Assets == nil {
		return fmt.Errorf("%w: no asset resolver for logo %s", assets.ErrNotFound, a.brand.Logo)
	}
	data, err := a.opts.Assets.Resolve(ctx, a.brand.Logo)
	if err != nil {
		return err
	}
	frame := a.place(layout.LogoBox).WithHeight(0)
	pic, err := slide.AddPicture(data, frame)
	if err != nil {
		return fmt.Errorf("logo %s: %w", a.brand.Logo, err)
	}

	limit := a.height - frame.Y - model.Inches(0.5)
	if pic.Frame.Height > limit && limit > 0 && pic.PixelHeight > 0 {
		width := model.EMU(int64(limit) * int64(pic.PixelWidth) / int64(pic.PixelHeight))
		pic.Frame = a.place(layout.LogoBox).CenteredIn(width, limit)
	}
	return nil
}

func (a *assembler) content(ctx context.Context, rec notes.Record) error {
	number := a.summary.SlideCount() + 1

	title := notes.NormalizeTitle(rec.RawHeader, a.brand.BrandText)
	lines := rec.Lines
	if title == "" && len(lines) > 0 {
		title, lines = lines[0], lines[1:]
	}

	plan := layout.Compute(classify.Classify(lines), lines)

	slide, err := a.pkg.AddSlide(ContentLayout)
	if err != nil {
		return fmt.Errorf("adding slide %d: %w", number, err)
	}
	slide.ClearShapes()
	slide.SetBackground(a.bg)
	a.title(slide, title)

	items := len(plan.Lines)
	switch plan.Shape {
	case classify.Table:
		items = len(plan.Rows)
		if err := a.table(slide, plan); err != nil {
			return fmt.Errorf("slide %d: %w", number, err)
		}
		for _, line := range plan.Dropped {
			a.warn(WarnDroppedTableRow, number, fmt.Sprintf("line without ':' left out of table: %q", line))
		}
	case classify.CodeBlock:
		a.code(slide, plan)
	default:
		a.bullets(slide, plan)
	}

	icon := a.icon(ctx, slide, plan.Shape)

	a.summary.Slides = append(a.summary.Slides, SlideSummary{
		Number:     number,
		Title:      title,
		Shape:      plan.Shape,
		FontSizePt: plan.FontSizePt,
		Items:      items,
		Icon:       icon,
	})
	a.log.Debug("built slide",
		zap.Int("number", number),
		zap.String("title", title),
		zap.Stringer("shape", plan.Shape),
		zap.Int("font_pt", plan.FontSizePt),
		zap.Int("items", items))
	return nil
}

func (a *assembler) title(slide *pptx.Slide, title string) {
	tb := slide.AddTextBox(a.place(layout.TitleBox))
	primary := a.brand.Primary
	tb.AddParagraph(pptx.TextParagraph(title, pptx.RunStyle{
		SizePt: layout.TitleFontPt,
		Bold:   true,
		Color:  &primary,
	}))
}

func (a *assembler) bullets(slide *pptx.Slide, plan layout.Plan) {
	tb := slide.AddTextBox(a.place(plan.Box))
	tb.WordWrap = plan.WordWrap
	primary := a.brand.Primary
	style := pptx.RunStyle{SizePt: plan.FontSizePt, Color: &primary}
	for _, line := range plan.Lines {
		tb.AddParagraph(pptx.TextParagraph(layout.BulletGlyph+"  "+line, style))
	}
}

func (a *assembler) code(slide *pptx.Slide, plan layout.Plan) {
	tb := slide.AddTextBox(a.place(plan.Box))
	tb.WordWrap = plan.WordWrap
	primary := a.brand.Primary
	style := pptx.RunStyle{SizePt: plan.FontSizePt, Typeface: plan.Typeface, Color: &primary}
	for _, line := range plan.Lines {
		tb.AddParagraph(pptx.TextParagraph(line, style))
	}
}

// table renders key/value rows. Keys use the accent color so the two
// columns read apart. With no rows the table is omitted.
func (a *assembler) table(slide *pptx.Slide, plan layout.Plan) error {
	if len(plan.Rows) == 0 {
		return nil
	}
	tbl, err := slide.AddTable(len(plan.Rows), 2, a.place(plan.Box))
	if err != nil {
		return err
	}
	primary, accent := a.brand.Primary, a.brand.Accent
	for r, row := range plan.Rows {
		key, value := tbl.Cell(r, 0), tbl.Cell(r, 1)
		key.Text = row.Key
		key.Style = pptx.RunStyle{SizePt: plan.FontSizePt, Bold: true, Color: &accent}
		value.Text = row.Value
		value.Style = pptx.RunStyle{SizePt: plan.FontSizePt, Color: &primary}
	}
	return nil
}

// icon decorates the slide with the shape's icon when one resolves.
func (a *assembler) icon(ctx context.Context, slide *pptx.Slide, shape classify.Shape) bool {
	if a.opts.Icons == nil {
		return false
	}
	data, err := a.opts.Icons.Resolve(ctx, iconNames[shape])
	if err != nil {
		a.log.Debug("no icon", zap.Stringer("shape", shape), zap.Error(err))
		return false
	}
	if _, err := slide.AddPicture(data, a.place(layout.IconBox)); err != nil {
		a.log.Debug("unusable icon", zap.Stringer("shape", shape), zap.Error(err))
		return false
	}
	return true
}
