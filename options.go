package notedeck

import (
	"go.uber.org/zap"

	"github.com/tsawler/notedeck/assets"
	"github.com/tsawler/notedeck/branding"
	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/notesrc"
	"github.com/tsawler/notedeck/storage"
)

// BuildOptions holds configuration for deck generation.
type BuildOptions struct {
	brand branding.Options
	seed  *uint64 // nil means a time-seeded color source

	assets assets.Resolver
	icons  assets.Resolver
	store  storage.Store
	key    string

	notesrc notesrc.Options
	logger  *zap.Logger
}

// defaultOptions returns the default build options.
func defaultOptions() BuildOptions {
	return BuildOptions{
		logger: zap.NewNop(),
	}
}

// clone creates a deep copy of BuildOptions.
func (o BuildOptions) clone() BuildOptions {
	n := o
	n.brand.Primary = cloneColor(o.brand.Primary)
	n.brand.Accent = cloneColor(o.brand.Accent)
	n.brand.Background = cloneColor(o.brand.Background)
	if o.seed != nil {
		seed := *o.seed
		n.seed = &seed
	}
	if o.notesrc.OCR.Languages != nil {
		n.notesrc.OCR.Languages = append([]string(nil), o.notesrc.OCR.Languages...)
	}
	return n
}

func cloneColor(c *model.RGB) *model.RGB {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
