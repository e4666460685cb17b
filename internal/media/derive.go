package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Derivative bounds. Display keeps a high-fidelity copy for the timeline
// detail view; thumb is the grid cell. Neither ever upscales.
const (
	DisplayMaxWidth = 1200
	DisplayQuality  = 85
	ThumbMaxWidth   = 400
	ThumbQuality    = 75
)

// Derivatives holds both re-encoded copies of one accepted image.
type Derivatives struct {
	Display []byte
	Thumb   []byte
}

// Derive decodes the accepted original once and produces the display and
// thumbnail derivatives. The two encodes share the immutable decoded
// image and run concurrently. Output is deterministic for a given input.
func Derive(ctx context.Context, original []byte) (Derivatives, error) {
	img, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return Derivatives{}, fmt.Errorf("%w: decode original: %v", ErrUnsupportedImage, err)
	}

	var out Derivatives
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := scaleJPEG(img, DisplayMaxWidth, DisplayQuality)
		if err != nil {
			return fmt.Errorf("display derivative: %w", err)
		}
		out.Display = data
		return nil
	})
	g.Go(func() error {
		data, err := scaleJPEG(img, ThumbMaxWidth, ThumbQuality)
		if err != nil {
			return fmt.Errorf("thumb derivative: %w", err)
		}
		out.Thumb = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return Derivatives{}, err
	}
	return out, nil
}

// scaleJPEG re-encodes img as JPEG, scaled down to maxWidth when wider.
// Aspect ratio is preserved and narrower images keep their width.
func scaleJPEG(img image.Image, maxWidth int, quality int) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, scaledHeight(width, height, maxWidth)))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func scaledHeight(width, height, targetWidth int) int {
	h := height * targetWidth / width
	if h < 1 {
		h = 1
	}
	return h
}
