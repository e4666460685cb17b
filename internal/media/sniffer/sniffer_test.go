package sniffer

import (
	"errors"
	"net/http"
	"testing"
)

func TestDetectHead(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		head []byte
		want MediaType
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, TypeJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, TypePNG},
		{"gif87", []byte("GIF87a...."), TypeGIF},
		{"gif89", []byte("GIF89a...."), TypeGIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWEBP},
	}

	for _, tc := range cases {
		got, err := DetectHead(tc.head)
		if err != nil {
			t.Errorf("%s: DetectHead() error = %v", tc.name, err)
			continue
		}
		if got.Type != tc.want {
			t.Errorf("%s: DetectHead() type = %q, want %q", tc.name, got.Type, tc.want)
		}
	}
}

func TestDetectHeadUnknown(t *testing.T) {
	t.Parallel()

	for name, head := range map[string][]byte{
		"empty": nil,
		"text":  []byte("hello world, definitely no image"),
		"bmp":   []byte("BM\x00\x00\x00\x00"),
		"short": {0xff},
	} {
		if _, err := DetectHead(head); !errors.Is(err, ErrUnknownType) {
			t.Errorf("%s: DetectHead() error = %v, want ErrUnknownType", name, err)
		}
	}
}

func TestMimeTypeFromHTTP(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set("Content-Type", "image/png; charset=binary")

	if got, want := MimeTypeFromHTTP(header), "image/png"; got != want {
		t.Fatalf("MimeTypeFromHTTP() = %q, want %q", got, want)
	}

	if got := MimeTypeFromHTTP(http.Header{}); got != "" {
		t.Fatalf("MimeTypeFromHTTP(empty) = %q, want empty", got)
	}
}
