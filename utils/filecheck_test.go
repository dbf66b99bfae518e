package utils

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestValidateImageFile(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		size        int64
		wantErr     string
	}{
		{"jpeg ok", "image/jpeg", 1024, ""},
		{"png ok", "image/png", 1024, ""},
		{"webp ok", "image/webp", 1024, ""},
		{"case insensitive", "IMAGE/JPEG", 1024, ""},
		{"not an image", "text/plain", 1024, "only image files"},
		{"unsupported image", "image/gif", 1024, "unsupported image format"},
		{"too large", "image/jpeg", MaxImageBytes + 1, "10MB limit"},
		{"exactly at limit", "image/jpeg", MaxImageBytes, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImageFile(tc.contentType, tc.size)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidateImageDimensions(t *testing.T) {
	t.Run("large enough", func(t *testing.T) {
		assert.NoError(t, ValidateImageDimensions(pngBytes(t, 150, 150)))
	})

	t.Run("exactly at floor", func(t *testing.T) {
		assert.NoError(t, ValidateImageDimensions(pngBytes(t, 100, 100)))
	})

	t.Run("too small", func(t *testing.T) {
		err := ValidateImageDimensions(pngBytes(t, 50, 150))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too small")
	})

	t.Run("not an image", func(t *testing.T) {
		err := ValidateImageDimensions([]byte("definitely not a picture"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid image")
	})
}
