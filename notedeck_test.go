package notedeck

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/notedeck/assets"
	"github.com/tsawler/notedeck/deck"
	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/pptx"
	"github.com/tsawler/notedeck/pptx/pptxtest"
	"github.com/tsawler/notedeck/preview"
	"github.com/tsawler/notedeck/storage"
)

const lecture = "Slide 1: Welcome\nSlide 2: Overview\nPoint A\nPoint B\nSlide 3: Data\nkey1: val1\nkey2: val2"

func template() []byte {
	return pptxtest.Build(pptxtest.Options{Slides: []string{"Old", "Older"}})
}

func TestBuild(t *testing.T) {
	data, warnings, err := FromNotes(lecture).
		TemplateBytes(template()).
		Brand("Intro to Systems").
		Seed(7).
		Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %s", FormatWarnings(warnings))
	}

	pkg, err := pptx.OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	if pkg.SlideCount() != 3 {
		t.Errorf("Expected 3 slides, got %d", pkg.SlideCount())
	}
}

func TestBuild_SeedIsDeterministic(t *testing.T) {
	b := FromNotes(lecture).TemplateBytes(template()).Seed(42)
	first := MustDeck(b.Build(context.Background()))
	second := MustDeck(b.Build(context.Background()))
	if string(first) != string(second) {
		t.Error("Expected identical decks for the same seed")
	}
}

func TestBuilder_Immutable(t *testing.T) {
	base := FromNotes(lecture)
	branded := base.Brand("Deck").Colors("112233", "", "")

	if base.options.brand.BrandText != "" {
		t.Error("Brand modified the original builder")
	}
	if base.options.brand.Primary != nil {
		t.Error("Colors modified the original builder")
	}
	if branded.options.brand.Primary == nil || *branded.options.brand.Primary != (model.RGB{R: 0x11, G: 0x22, B: 0x33}) {
		t.Errorf("Unexpected primary color %v", branded.options.brand.Primary)
	}

	seeded := branded.Seed(1)
	again := seeded.Seed(2)
	if *seeded.options.seed != 1 || *again.options.seed != 2 {
		t.Error("Seed is shared between builders")
	}
}

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()

	if _, _, err := FromNotes(lecture).Build(ctx); err == nil {
		t.Error("Expected error without template")
	}

	_, _, err := FromNotes(lecture).Template(filepath.Join(t.TempDir(), "missing.pptx")).Build(ctx)
	if !errors.Is(err, pptx.ErrMalformedTemplate) {
		t.Errorf("Expected ErrMalformedTemplate, got %v", err)
	}

	if _, _, err := FromNotes(lecture).TemplateBytes(template()).Colors("nothex", "", "").Build(ctx); err == nil {
		t.Error("Expected error for invalid color")
	}

	if _, _, err := FromFile(filepath.Join(t.TempDir(), "missing.md")).TemplateBytes(template()).Build(ctx); err == nil {
		t.Error("Expected error for missing notes file")
	}
}

func TestFromData_Markdown(t *testing.T) {
	md := "## Slide 2: Topics\n\n- Alpha\n- Beta\n"
	data, _, err := FromData("lecture.md", []byte(md)).TemplateBytes(template()).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	parts := pptxtest.ReadParts(t, data)
	if !strings.Contains(parts["ppt/slides/slide2.xml"], "•  Alpha") {
		t.Error("Expected bullet slide built from Markdown list")
	}
}

func TestBuild_MissingLogoWarns(t *testing.T) {
	_, warnings, err := FromNotes(lecture).
		TemplateBytes(template()).
		Logo("logo.png").
		Assets(assets.MapResolver{}).
		Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Kind != deck.WarnMissingLogo {
		t.Errorf("Expected one missing logo warning, got %v", warnings)
	}
	if !strings.Contains(FormatWarnings(warnings), "logo.png") {
		t.Errorf("Expected warning to name the logo, got %q", FormatWarnings(warnings))
	}
}

func TestSaveAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks", "lecture.pptx")
	if _, err := FromNotes(lecture).TemplateBytes(template()).SaveAs(context.Background(), path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	if _, err := pptx.Open(path); err != nil {
		t.Errorf("Saved deck does not reopen: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	res, _, err := FromNotes(lecture).
		TemplateBytes(template()).
		Key("out.pptx").
		Store(storage.NewLocalStore(dir)).
		Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Key != "out.pptx" {
		t.Errorf("Expected key out.pptx, got %q", res.Key)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.pptx")); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

// inked reports whether any pixel inside r differs from bg.
func inked(img *image.RGBA, r image.Rectangle, bg color.RGBA) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				return true
			}
		}
	}
	return false
}

func TestPreview(t *testing.T) {
	images, _, err := FromNotes(lecture).
		TemplateBytes(template()).
		Brand("Intro to Systems").
		Colors("C00000", "0000C0", "E0F0FF").
		Preview(context.Background(), preview.Options{Width: 320})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("Expected 3 images, got %d", len(images))
	}

	// 320px across a 10in slide is 32px per inch.
	bg := color.RGBA{R: 0xE0, G: 0xF0, B: 0xFF, A: 0xFF}
	regions := []struct {
		name string
		rect image.Rectangle
	}{
		{"intro brand text", image.Rect(16, 80, 304, 144)},
		{"overview title", image.Rect(32, 16, 288, 54)},
		{"data table", image.Rect(38, 70, 282, 198)},
	}
	for i, img := range images {
		if got := img.RGBAAt(1, 1); got != bg {
			t.Errorf("Slide %d: corner = %v, want background %v", i+1, got, bg)
		}
		if !inked(img, regions[i].rect, bg) {
			t.Errorf("Slide %d: expected %s to be drawn", i+1, regions[i].name)
		}
	}
	if !inked(images[1], image.Rect(38, 60, 282, 220), bg) {
		t.Error("Expected bullet text on the overview slide")
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	Must(0, errors.New("boom"))
}
