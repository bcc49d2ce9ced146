package notedeck

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tsawler/notedeck/assets"
	"github.com/tsawler/notedeck/branding"
	"github.com/tsawler/notedeck/deck"
	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/notesrc"
	"github.com/tsawler/notedeck/ocr"
	"github.com/tsawler/notedeck/pptx"
	"github.com/tsawler/notedeck/preview"
	"github.com/tsawler/notedeck/storage"
)

// Builder provides a fluent interface for generating a deck.
// Each configuration method returns a new Builder instance, making it
// safe for concurrent use and allowing method chaining.
type Builder struct {
	// Notes source (exactly one is set)
	notes     string
	hasNotes  bool
	notesPath string
	notesName string
	notesData []byte

	// Template source
	templatePath string
	template     []byte

	options BuildOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Builder with a deep copy of options.
func (b *Builder) clone() *Builder {
	n := *b
	n.options = b.options.clone()
	return &n
}

// Template sets the template file.
func (b *Builder) Template(path string) *Builder {
	n := b.clone()
	n.templatePath = path
	n.template = nil
	return n
}

// TemplateBytes sets the template from memory.
func (b *Builder) TemplateBytes(data []byte) *Builder {
	n := b.clone()
	n.template = data
	n.templatePath = ""
	return n
}

// Brand sets the brand text shown on the intro slide when there is no logo.
func (b *Builder) Brand(text string) *Builder {
	n := b.clone()
	n.options.brand.BrandText = text
	return n
}

// Logo sets the logo reference. It is resolved with the Assets resolver,
// or from the filesystem when none is set.
func (b *Builder) Logo(ref string) *Builder {
	n := b.clone()
	n.options.brand.Logo = ref
	return n
}

// Colors sets the primary, accent and background colors as hex strings.
// An empty string leaves that color to the random source.
func (b *Builder) Colors(primary, accent, background string) *Builder {
	n := b.clone()
	for _, c := range []struct {
		hex string
		dst **model.RGB
	}{
		{primary, &n.options.brand.Primary},
		{accent, &n.options.brand.Accent},
		{background, &n.options.brand.Background},
	} {
		if c.hex == "" {
			*c.dst = nil
			continue
		}
		rgb, err := model.ParseHex(c.hex)
		if err != nil {
			if n.err == nil {
				n.err = err
			}
			continue
		}
		*c.dst = &rgb
	}
	return n
}

// Seed makes the generated colors reproducible.
func (b *Builder) Seed(seed uint64) *Builder {
	n := b.clone()
	n.options.seed = &seed
	return n
}

// Assets sets the resolver used for the logo.
func (b *Builder) Assets(r assets.Resolver) *Builder {
	n := b.clone()
	n.options.assets = r
	return n
}

// Icons sets the resolver for per-shape slide icons.
func (b *Builder) Icons(r assets.Resolver) *Builder {
	n := b.clone()
	n.options.icons = r
	return n
}

// OCR configures recognition for image notes.
func (b *Builder) OCR(opts ocr.Options) *Builder {
	n := b.clone()
	n.options.notesrc.OCR = opts
	return n
}

// Store sets where Generate saves the deck. Default: the working directory.
func (b *Builder) Store(s storage.Store) *Builder {
	n := b.clone()
	n.options.store = s
	return n
}

// Key sets the output key used by Generate. Default: a random name.
func (b *Builder) Key(key string) *Builder {
	n := b.clone()
	n.options.key = key
	return n
}

// Logger sets the logger passed down to loading and assembly.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	n := b.clone()
	if l == nil {
		l = zap.NewNop()
	}
	n.options.logger = l
	n.options.notesrc.Logger = l
	return n
}

// Build generates the deck in memory.
func (b *Builder) Build(ctx context.Context) ([]byte, []deck.Warning, error) {
	req, err := b.request()
	if err != nil {
		return nil, nil, err
	}
	data, summary, err := deck.Build(ctx, req, b.deckOptions())
	if err != nil {
		return nil, nil, err
	}
	return data, summary.Warnings, nil
}

// Generate builds the deck and saves it to the configured store.
func (b *Builder) Generate(ctx context.Context) (deck.Result, []deck.Warning, error) {
	req, err := b.request()
	if err != nil {
		return deck.Result{}, nil, err
	}
	store := b.options.store
	if store == nil {
		store = storage.NewLocalStore(".")
	}
	res, err := deck.Generate(ctx, req, store, b.deckOptions())
	if err != nil {
		return deck.Result{}, nil, err
	}
	return res, res.Summary.Warnings, nil
}

// SaveAs builds the deck and atomically writes it to path.
func (b *Builder) SaveAs(ctx context.Context, path string) ([]deck.Warning, error) {
	_, warnings, err := b.Store(storage.NewLocalStore(filepath.Dir(path))).
		Key(filepath.Base(path)).
		Generate(ctx)
	return warnings, err
}

// Preview assembles the deck and renders every slide.
func (b *Builder) Preview(ctx context.Context, opts preview.Options) ([]*image.RGBA, []deck.Warning, error) {
	req, err := b.request()
	if err != nil {
		return nil, nil, err
	}
	pkg, summary, err := deck.Compose(ctx, req, b.deckOptions())
	if err != nil {
		return nil, nil, err
	}
	images, err := preview.RenderDeck(ctx, pkg, opts)
	if err != nil {
		return nil, nil, err
	}
	return images, summary.Warnings, nil
}

func (b *Builder) request() (deck.Request, error) {
	if b.err != nil {
		return deck.Request{}, b.err
	}

	text, err := b.loadNotes()
	if err != nil {
		return deck.Request{}, err
	}

	template := b.template
	if template == nil {
		if b.templatePath == "" {
			return deck.Request{}, errors.New("no template specified")
		}
		template, err = os.ReadFile(b.templatePath)
		if err != nil {
			return deck.Request{}, fmt.Errorf("%w: %w", pptx.ErrMalformedTemplate, err)
		}
	}

	var src *rand.Rand
	if b.options.seed != nil {
		src = branding.NewSource(*b.options.seed)
	}

	return deck.Request{
		Notes:    text,
		Template: template,
		Branding: branding.New(b.options.brand, src),
		Key:      b.options.key,
	}, nil
}

func (b *Builder) loadNotes() (string, error) {
	switch {
	case b.hasNotes:
		return b.notes, nil
	case b.notesPath != "":
		return notesrc.LoadFile(b.notesPath, b.options.notesrc)
	case b.notesData != nil:
		return notesrc.Load(b.notesName, b.notesData, b.options.notesrc)
	default:
		return "", errors.New("no notes specified")
	}
}

func (b *Builder) deckOptions() deck.Options {
	resolver := b.options.assets
	if resolver == nil {
		resolver = assets.DirResolver{}
	}
	return deck.Options{
		Assets: resolver,
		Icons:  b.options.icons,
		Logger: b.options.logger,
	}
}
