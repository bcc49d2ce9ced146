//go:build !ocr

package ocr

// Client stands in for the Tesseract engine when OCR is compiled out.
type Client struct{}

// New always fails with ErrOCRNotEnabled.
func New(Options) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

func (c *Client) Close() error { return nil }

// Recognize always fails with ErrOCRNotEnabled.
func (c *Client) Recognize([]byte) ([]string, error) {
	return nil, ErrOCRNotEnabled
}
