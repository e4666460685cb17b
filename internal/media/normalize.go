package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"regexp"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"apexfit/api/internal/media/sniffer"
)

// ErrUnsupportedImage marks input that cannot be decoded as a supported
// raster image: corrupt data, an unknown codec, or an empty payload.
var ErrUnsupportedImage = errors.New("unsupported image")

// normalizeQuality is the canonical JPEG quality for model input.
const normalizeQuality = 85

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// DecodeInput turns the inbound image field into raw bytes. It accepts a
// plain base64 string or a data URL; raw bytes pass through untouched.
func DecodeInput(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrUnsupportedImage
	}
	s = dataURLPrefix.ReplaceAllString(s, "")
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrUnsupportedImage, err)
	}
	if len(data) == 0 {
		return nil, ErrUnsupportedImage
	}
	return data, nil
}

// Normalize guarantees canonical JPEG bytes. Input already encoded as
// JPEG passes through byte-identical; PNG, GIF and WebP are decoded and
// re-encoded at the fixed quality. Anything else fails with
// ErrUnsupportedImage.
func Normalize(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrUnsupportedImage
	}

	result, err := sniffer.DetectHead(head(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if result.Type == sniffer.TypeJPEG {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnsupportedImage, result.Type, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: normalizeQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
