// Package branding holds the visual parameters applied uniformly across a
// generated deck: logo, brand text and three colors.
//
// Colors left unset by the caller are drawn from an explicit pseudorandom
// source so that tests (and users passing a seed) get reproducible decks:
//
//	b := branding.New(branding.Options{BrandText: "Intro to Systems"}, branding.NewSource(42))
package branding

import (
	"math/rand/v2"
	"strings"

	"github.com/tsawler/notedeck/model"
)

// Bounds for generated colors. Primary and accent stay mid-range so text is
// readable; backgrounds stay light.
const (
	ForegroundMin = 40
	ForegroundMax = 200
	BackgroundMin = 220
	BackgroundMax = 255
)

// NewSource returns a deterministic random source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomColor draws each component uniformly from [lo, hi].
func RandomColor(r *rand.Rand, lo, hi uint8) model.RGB {
	span := int(hi) - int(lo) + 1
	component := func() uint8 {
		return uint8(int(lo) + r.IntN(span))
	}
	return model.RGB{R: component(), G: component(), B: component()}
}

// Options is the raw branding input; every field is optional.
type Options struct {
	// Logo is an opaque reference resolved by an assets.Resolver.
	Logo string

	BrandText string

	Primary    *model.RGB
	Accent     *model.RGB
	Background *model.RGB
}

// Branding is the resolved, read-only branding for one generation request.
// Its colors are always set.
type Branding struct {
	Logo       string
	BrandText  string
	Primary    model.RGB
	Accent     model.RGB
	Background model.RGB
}

// HasLogo reports whether a logo reference was supplied.
func (b Branding) HasLogo() bool {
	return strings.TrimSpace(b.Logo) != ""
}

// New resolves opts, filling unset colors from src. A nil src uses a
// time-seeded source.
func New(opts Options, src *rand.Rand) Branding {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	b := Branding{
		Logo:      strings.TrimSpace(opts.Logo),
		BrandText: strings.TrimSpace(opts.BrandText),
	}

	if opts.Primary != nil {
		b.Primary = *opts.Primary
	} else {
		b.Primary = RandomColor(src, ForegroundMin, ForegroundMax)
	}
	if opts.Accent != nil {
		b.Accent = *opts.Accent
	} else {
		b.Accent = RandomColor(src, ForegroundMin, ForegroundMax)
	}
	if opts.Background != nil {
		b.Background = *opts.Background
	} else {
		b.Background = RandomColor(src, BackgroundMin, BackgroundMax)
	}

	return b
}

// SlideBackground returns the background color to paint. Pure black is
// replaced by white so that black text stays readable.
func (b Branding) SlideBackground() model.RGB {
	if b.Background == model.Black {
		return model.White
	}
	return b.Background
}
