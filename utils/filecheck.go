package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"

	// Register WebP decoding for the dimension check; image.Decode only
	// knows JPEG/PNG/GIF out of the box.
	_ "golang.org/x/image/webp"
)

const (
	// MaxImageBytes is the upload size ceiling (10 MiB).
	MaxImageBytes = 10 * 1024 * 1024

	// MinImageDimension is the pixel floor for both width and height.
	MinImageDimension = 100
)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateImageFile checks the declared MIME type and byte size of an upload
// before anything is sent to the analyzer. Returns nil when the file passes.
func ValidateImageFile(contentType string, size int64) error {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("only image files can be uploaded")
	}
	if !supportedImageTypes[ct] {
		return fmt.Errorf("unsupported image format %q: only JPEG, PNG and WebP are accepted", contentType)
	}
	if size > MaxImageBytes {
		return fmt.Errorf("file size exceeds the 10MB limit")
	}
	return nil
}

// ValidateImageDimensions decodes the image and enforces the pixel floor.
// A body that does not decode gets its own reason, distinct from undersize.
func ValidateImageDimensions(data []byte) error {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not a valid image file")
	}
	b := img.Bounds()
	if b.Dx() < MinImageDimension || b.Dy() < MinImageDimension {
		return fmt.Errorf("image is too small: minimum %dx%dpx", MinImageDimension, MinImageDimension)
	}
	return nil
}
