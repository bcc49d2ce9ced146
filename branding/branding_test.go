package branding

import (
	"testing"

	"github.com/tsawler/notedeck/model"
)

func TestRandomColorBounds(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 1000; i++ {
		if c := RandomColor(src, ForegroundMin, ForegroundMax); !c.Within(ForegroundMin, ForegroundMax) {
			t.Fatalf("foreground %v out of bounds", c)
		}
		if c := RandomColor(src, BackgroundMin, BackgroundMax); !c.Within(BackgroundMin, BackgroundMax) {
			t.Fatalf("background %v out of bounds", c)
		}
	}
}

func TestNewFillsUnsetColors(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		b := New(Options{BrandText: "Deck"}, NewSource(seed))

		if !b.Primary.Within(ForegroundMin, ForegroundMax) {
			t.Errorf("seed %d: primary %v out of bounds", seed, b.Primary)
		}
		if !b.Accent.Within(ForegroundMin, ForegroundMax) {
			t.Errorf("seed %d: accent %v out of bounds", seed, b.Accent)
		}
		if !b.Background.Within(BackgroundMin, BackgroundMax) {
			t.Errorf("seed %d: background %v out of bounds", seed, b.Background)
		}
	}
}

func TestNewKeepsExplicitColors(t *testing.T) {
	primary := model.RGB{R: 1, G: 2, B: 3}
	background := model.RGB{R: 4, G: 5, B: 6}

	b := New(Options{Primary: &primary, Background: &background}, NewSource(1))

	if b.Primary != primary {
		t.Errorf("Primary = %v, want %v", b.Primary, primary)
	}
	if b.Background != background {
		t.Errorf("Background = %v, want %v", b.Background, background)
	}
	if !b.Accent.Within(ForegroundMin, ForegroundMax) {
		t.Errorf("Accent %v should have been generated", b.Accent)
	}
}

func TestNewIsDeterministicForSeed(t *testing.T) {
	a := New(Options{}, NewSource(99))
	b := New(Options{}, NewSource(99))

	if a != b {
		t.Errorf("same seed produced different branding: %+v vs %+v", a, b)
	}
}

func TestNewNilSource(t *testing.T) {
	b := New(Options{}, nil)
	if !b.Background.Within(BackgroundMin, BackgroundMax) {
		t.Errorf("background %v out of bounds", b.Background)
	}
}

func TestSlideBackground(t *testing.T) {
	if got := (Branding{Background: model.Black}).SlideBackground(); got != model.White {
		t.Errorf("black background should become white, got %v", got)
	}
	grey := model.RGB{R: 230, G: 230, B: 230}
	if got := (Branding{Background: grey}).SlideBackground(); got != grey {
		t.Errorf("SlideBackground() = %v, want %v", got, grey)
	}
}

func TestHasLogo(t *testing.T) {
	if (Branding{}).HasLogo() {
		t.Error("empty logo reference should report false")
	}
	if (Branding{Logo: "  "}).HasLogo() {
		t.Error("blank logo reference should report false")
	}
	if !(Branding{Logo: "logo.png"}).HasLogo() {
		t.Error("expected HasLogo() true")
	}
}
