package pptx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// mediaContentTypes maps the media extensions written by this package to
// their content types.
var mediaContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

type probedImage struct {
	data          []byte
	ext           string
	width, height int
}

// probeImage identifies an image and returns it in a format PowerPoint
// renders everywhere. BMP, TIFF and WebP input is re-encoded as PNG.
func probeImage(data []byte) (probedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return probedImage{}, fmt.Errorf("decoding image: %w", err)
	}
	if _, ok := mediaContentTypes[format]; ok {
		return probedImage{data: data, ext: format, width: cfg.Width, height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return probedImage{}, fmt.Errorf("decoding %s image: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return probedImage{}, fmt.Errorf("re-encoding %s image as png: %w", format, err)
	}
	return probedImage{data: buf.Bytes(), ext: "png", width: cfg.Width, height: cfg.Height}, nil
}
