//go:build ocr

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
)

// blankPage encodes a white page with a single dark bar and no text.
func blankPage(t *testing.T) []byte {
	t.Helper()
	page := image.NewGray(image.Rect(0, 0, 120, 60))
	draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(page, image.Rect(10, 20, 110, 28), image.NewUniform(color.Black), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, page); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newClient(t *testing.T, opts Options) *Client {
	t.Helper()
	client, err := New(opts)
	if err != nil {
		t.Skipf("tesseract unavailable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRecognize(t *testing.T) {
	client := newClient(t, Options{PageSegMode: PSMSingleBlock})

	lines, err := client.Recognize(blankPage(t))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	for _, line := range lines {
		if line == "" {
			t.Errorf("Recognize() returned an empty line in %q", lines)
		}
	}
}

func TestRecognize_BadImage(t *testing.T) {
	client := newClient(t, Options{})
	if _, err := client.Recognize([]byte("not an image")); err == nil {
		t.Error("Recognize() expected an error for undecodable input")
	}
}

func TestCloseTwice(t *testing.T) {
	client, err := New(Options{})
	if err != nil {
		t.Skipf("tesseract unavailable: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
