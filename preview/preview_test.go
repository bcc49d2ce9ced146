package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/pptx"
	"github.com/tsawler/notedeck/pptx/pptxtest"
)

func newDeck(t *testing.T, slides int) *pptx.Package {
	t.Helper()
	pkg, err := pptx.OpenBytes(pptxtest.Build(pptxtest.Options{Slides: []string{"Old"}}))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	pkg.RemoveAllSlides()
	for i := 0; i < slides; i++ {
		if _, err := pkg.AddSlide(1); err != nil {
			t.Fatalf("AddSlide failed: %v", err)
		}
	}
	return pkg
}

func regionDiffers(img *image.RGBA, rect image.Rectangle, bg model.RGB) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R != bg.R || c.G != bg.G || c.B != bg.B {
				return true
			}
		}
	}
	return false
}

func TestRenderSlide(t *testing.T) {
	pkg := newDeck(t, 1)
	slide := pkg.Slides()[0]
	bg := model.RGB{R: 240, G: 240, B: 200}
	slide.SetBackground(bg)

	title := slide.AddTextBox(model.NewRect(model.Inches(1), model.Inches(0.5), model.Inches(8), model.Inches(1.2)))
	title.AddParagraph(pptx.TextParagraph("Hello World", pptx.RunStyle{SizePt: 40, Bold: true, Color: &model.Black}))

	pic, err := slide.AddPicture(pptxtest.PNG(), model.NewRect(model.Inches(5), model.Inches(5), model.Inches(2), 0))
	if err != nil {
		t.Fatalf("AddPicture failed: %v", err)
	}

	width, height := pkg.SlideSize()
	img, err := RenderSlide(slide, width, height, Options{Width: 200})
	if err != nil {
		t.Fatalf("RenderSlide failed: %v", err)
	}

	if got := img.Bounds(); got.Dx() != 200 || got.Dy() != 150 {
		t.Fatalf("Expected 200x150 image, got %v", got)
	}
	if c := img.RGBAAt(199, 149); c.R != bg.R || c.G != bg.G || c.B != bg.B {
		t.Errorf("Expected background %v in corner, got %v", bg, c)
	}
	if !regionDiffers(img, image.Rect(20, 10, 180, 34), bg) {
		t.Error("Expected title text to be drawn")
	}

	// Left half of the picture is red, right half blue.
	if pic.Frame.Height != model.Inches(1) {
		t.Fatalf("Unexpected picture height %d", pic.Frame.Height)
	}
	left := img.RGBAAt(103, 115)
	right := img.RGBAAt(136, 115)
	if left.R <= left.B {
		t.Errorf("Expected red pixel on the left, got %v", left)
	}
	if right.B <= right.R {
		t.Errorf("Expected blue pixel on the right, got %v", right)
	}
}

func TestRenderSlide_Table(t *testing.T) {
	pkg := newDeck(t, 1)
	slide := pkg.Slides()[0]
	table, err := slide.AddTable(2, 2, model.NewRect(model.Inches(1), model.Inches(2), model.Inches(8), model.Inches(2)))
	if err != nil {
		t.Fatalf("AddTable failed: %v", err)
	}
	table.Cell(0, 0).Text = "CPU"
	table.Cell(0, 1).Text = "Processor"

	width, height := pkg.SlideSize()
	img, err := RenderSlide(slide, width, height, Options{Width: 400})
	if err != nil {
		t.Fatalf("RenderSlide failed: %v", err)
	}
	// Top border of the table frame.
	if c := img.RGBAAt(100, 80); c.R != 128 {
		t.Errorf("Expected border pixel at (100,80), got %v", c)
	}
}

func TestRenderSlide_InvalidSize(t *testing.T) {
	pkg := newDeck(t, 1)
	if _, err := RenderSlide(pkg.Slides()[0], 0, 100, Options{}); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestRenderDeck(t *testing.T) {
	pkg := newDeck(t, 3)
	images, err := RenderDeck(context.Background(), pkg, Options{Width: 96, Concurrency: 2})
	if err != nil {
		t.Fatalf("RenderDeck failed: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("Expected 3 images, got %d", len(images))
	}
	for i, img := range images {
		if img == nil || img.Bounds().Dx() != 96 {
			t.Errorf("Image %d has unexpected bounds", i)
		}
	}

	data, err := EncodePNG(images[0])
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if decoded.Bounds() != images[0].Bounds() {
		t.Errorf("Decoded bounds %v, want %v", decoded.Bounds(), images[0].Bounds())
	}
}

func TestRenderDeck_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderDeck(ctx, newDeck(t, 2), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestWrapText(t *testing.T) {
	// Face7x13 advances 7 pixels per glyph.
	got := wrapText("alpha beta gamma", 7*11)
	want := []string{"alpha beta", "gamma"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wrapText() = %q, want %q", got, want)
	}

	got = wrapText("supercalifragilistic", 7*5)
	if len(got) != 1 {
		t.Errorf("Expected long word on one line, got %q", got)
	}
}
