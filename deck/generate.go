package deck

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/notedeck/branding"
	"github.com/tsawler/notedeck/notes"
	"github.com/tsawler/notedeck/pptx"
	"github.com/tsawler/notedeck/storage"
)

// Request is one generation job.
type Request struct {
	Notes    string
	Template []byte
	Branding branding.Branding

	// Key names the output in the store. When empty a unique key is
	// generated so concurrent requests never share an output.
	Key string
}

// Result is a finished generation.
type Result struct {
	Key      string
	Location string
	Data     []byte
	Summary  Summary
}

// Compose runs parse, classify, lay out and assemble and returns the
// assembled package without serializing it. Its slides keep their shapes
// and backgrounds, which a reopened package does not expose.
func Compose(ctx context.Context, req Request, opts Options) (*pptx.Package, Summary, error) {
	pkg, err := pptx.OpenBytes(req.Template)
	if err != nil {
		return nil, Summary{}, err
	}

	records := notes.Parse(req.Notes)
	summary, err := Assemble(ctx, pkg, records, req.Branding, opts)
	if err != nil {
		return nil, Summary{}, err
	}
	return pkg, summary, nil
}

// Build composes the deck in memory and returns it serialized.
func Build(ctx context.Context, req Request, opts Options) ([]byte, Summary, error) {
	pkg, summary, err := Compose(ctx, req, opts)
	if err != nil {
		return nil, Summary{}, err
	}

	data, err := pkg.Bytes()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return data, summary, nil
}

// Generate builds the deck and saves it to store. Nothing is saved unless
// the whole deck was built.
func Generate(ctx context.Context, req Request, store storage.Store, opts Options) (Result, error) {
	data, summary, err := Build(ctx, req, opts)
	if err != nil {
		return Result{}, err
	}

	key := req.Key
	if key == "" {
		key = uuid.NewString() + ".pptx"
	}
	location, err := store.Save(ctx, key, data, ContentType)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	if opts.Logger != nil {
		opts.Logger.Info("saved deck", zap.String("location", location), zap.Int("bytes", len(data)))
	}
	return Result{Key: key, Location: location, Data: data, Summary: summary}, nil
}
