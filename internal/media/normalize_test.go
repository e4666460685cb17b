package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testImage(t *testing.T, width, height int) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeJPEGPassthrough(t *testing.T) {
	t.Parallel()

	original := encodeJPEG(t, testImage(t, 64, 48))

	got, err := Normalize(original)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Fatal("Normalize() re-encoded a JPEG; want byte-identical passthrough")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	first, err := Normalize(encodePNG(t, testImage(t, 64, 48)))
	if err != nil {
		t.Fatalf("first Normalize() error = %v", err)
	}

	second, err := Normalize(first)
	if err != nil {
		t.Fatalf("second Normalize() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("Normalize(Normalize(x)) changed bytes; want idempotent")
	}
}

func TestNormalizePNGBecomesJPEG(t *testing.T) {
	t.Parallel()

	got, err := Normalize(encodePNG(t, testImage(t, 32, 32)))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("decode normalized output: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("format = %q, want jpeg", format)
	}
	if cfg.Width != 32 || cfg.Height != 32 {
		t.Fatalf("dimensions = %dx%d, want 32x32", cfg.Width, cfg.Height)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	t.Parallel()

	cases := map[string][]byte{
		"empty":     nil,
		"text":      []byte("not an image at all"),
		"truncated": encodePNG(t, testImage(t, 16, 16))[:10],
	}

	for name, data := range cases {
		if _, err := Normalize(data); !errors.Is(err, ErrUnsupportedImage) {
			t.Errorf("%s: Normalize() error = %v, want ErrUnsupportedImage", name, err)
		}
	}
}

func TestDecodeInput(t *testing.T) {
	t.Parallel()

	raw := []byte{0x01, 0x02, 0x03, 0xff}
	encoded := base64.StdEncoding.EncodeToString(raw)

	for name, input := range map[string]string{
		"plain base64": encoded,
		"data url":     "data:image/png;base64," + encoded,
	} {
		got, err := DecodeInput(input)
		if err != nil {
			t.Fatalf("%s: DecodeInput() error = %v", name, err)
		}
		if !bytes.Equal(got, raw) {
			t.Fatalf("%s: DecodeInput() = %v, want %v", name, got, raw)
		}
	}
}

func TestDecodeInputRejectsInvalid(t *testing.T) {
	t.Parallel()

	for name, input := range map[string]string{
		"empty":       "",
		"whitespace":  "   ",
		"not base64":  "!!!not-base64!!!",
		"only prefix": "data:image/png;base64,",
	} {
		if _, err := DecodeInput(input); !errors.Is(err, ErrUnsupportedImage) {
			t.Errorf("%s: DecodeInput() error = %v, want ErrUnsupportedImage", name, err)
		}
	}
}
