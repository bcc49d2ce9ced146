//go:build ocr

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Client holds one Tesseract engine. It is not safe for concurrent use.
type Client struct {
	engine *gosseract.Client
}

// New starts an engine for the configured languages. Callers must Close it.
func New(opts Options) (*Client, error) {
	engine := gosseract.NewClient()
	if err := engine.SetLanguage(opts.language()); err != nil {
		engine.Close()
		return nil, fmt.Errorf("ocr: language %q: %w", opts.language(), err)
	}
	if err := engine.SetPageSegMode(gosseract.PageSegMode(opts.pageSegMode())); err != nil {
		engine.Close()
		return nil, fmt.Errorf("ocr: page segmentation mode %d: %w", opts.pageSegMode(), err)
	}
	return &Client{engine: engine}, nil
}

// Close releases the engine. A nil or closed Client is a no-op.
func (c *Client) Close() error {
	if c == nil || c.engine == nil {
		return nil
	}
	err := c.engine.Close()
	c.engine = nil
	return err
}

// Recognize reads the text of an encoded page image and returns its
// non-empty lines in reading order.
func (c *Client) Recognize(page []byte) ([]string, error) {
	if err := c.engine.SetImageFromBytes(page); err != nil {
		return nil, fmt.Errorf("ocr: loading page image: %w", err)
	}
	text, err := c.engine.Text()
	if err != nil {
		return nil, fmt.Errorf("ocr: recognizing page: %w", err)
	}
	return Lines(text), nil
}
