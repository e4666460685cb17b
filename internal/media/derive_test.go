package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"
)

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode derivative: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestDeriveBoundsWidths(t *testing.T) {
	t.Parallel()

	original := encodeJPEG(t, testImage(t, 2400, 1600))

	derivs, err := Derive(context.Background(), original)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if w, h := decodeSize(t, derivs.Display); w != DisplayMaxWidth || h != 800 {
		t.Errorf("display = %dx%d, want %dx800", w, h, DisplayMaxWidth)
	}
	if w, h := decodeSize(t, derivs.Thumb); w != ThumbMaxWidth || h != 266 {
		t.Errorf("thumb = %dx%d, want %dx266", w, h, ThumbMaxWidth)
	}
}

func TestDeriveNeverUpscales(t *testing.T) {
	t.Parallel()

	original := encodeJPEG(t, testImage(t, 300, 200))

	derivs, err := Derive(context.Background(), original)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if w, h := decodeSize(t, derivs.Display); w != 300 || h != 200 {
		t.Errorf("display = %dx%d, want original 300x200", w, h)
	}
	if w, h := decodeSize(t, derivs.Thumb); w != 300 || h != 200 {
		t.Errorf("thumb = %dx%d, want original 300x200", w, h)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	t.Parallel()

	original := encodeJPEG(t, testImage(t, 800, 600))

	first, err := Derive(context.Background(), original)
	if err != nil {
		t.Fatalf("first Derive() error = %v", err)
	}
	second, err := Derive(context.Background(), original)
	if err != nil {
		t.Fatalf("second Derive() error = %v", err)
	}

	if !bytes.Equal(first.Display, second.Display) {
		t.Error("display derivative differs between runs")
	}
	if !bytes.Equal(first.Thumb, second.Thumb) {
		t.Error("thumb derivative differs between runs")
	}
}

func TestDeriveRejectsUndecodable(t *testing.T) {
	t.Parallel()

	if _, err := Derive(context.Background(), []byte("junk")); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("Derive() error = %v, want ErrUnsupportedImage", err)
	}
}
