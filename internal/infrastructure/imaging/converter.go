// Package imaging converts invoice uploads into formats vision models accept.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"strings"

	"github.com/gen2brain/heic"

	"github.com/itcguard/itc-api/internal/application/ports"
	"github.com/itcguard/itc-api/internal/domain"
)

var _ ports.ImagePreparer = (*Converter)(nil)

const jpegQuality = 90

// passthrough are media types every provider accepts as-is.
var passthrough = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Converter re-encodes iPhone HEIC/HEIF photos and anything else not in
// passthrough as JPEG.
type Converter struct{}

// NewConverter builds the converter.
func NewConverter() *Converter { return &Converter{} }

// Prepare returns the bytes and media type to send to the model.
func (c *Converter) Prepare(data []byte, mediaType string) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("imaging: empty image: %w", domain.ErrInvalidInput)
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "image/jpg" {
		mediaType = "image/jpeg"
	}

	if isHEIC(data, mediaType) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("imaging: decode HEIC: %v: %w", err, domain.ErrInvalidInput)
		}
		return encodeJPEG(img)
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	if passthrough[mediaType] {
		return data, mediaType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: unsupported image %q: %v: %w", mediaType, err, domain.ErrInvalidInput)
	}
	return encodeJPEG(img)
}

func encodeJPEG(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("imaging: encode JPEG: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// isHEIC checks the declared type and the ISO-BMFF ftyp brand.
func isHEIC(data []byte, mediaType string) bool {
	if strings.Contains(mediaType, "heic") || strings.Contains(mediaType, "heif") {
		return true
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}
