package storage

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrInvalidDataURI  = errors.New("invalid data URI")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrImageTooLarge   = errors.New("image too large")
	ErrContentMismatch = errors.New("image content does not match its declared type")
)

// MaxImageBytes bounds decoded image uploads
const MaxImageBytes = 5 << 20

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DataURI is a decoded base64 data URI
type DataURI struct {
	ContentType string
	Data        []byte
}

// IsDataURI reports whether s looks like a data URI
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURI decodes data:<type>;base64,<payload> image URIs
func ParseDataURI(s string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrInvalidDataURI
	}
	contentType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return nil, ErrInvalidDataURI
	}
	contentType = strings.ToLower(contentType)
	if !allowedTypes[contentType] {
		return nil, ErrUnsupportedType
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return nil, ErrImageTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidDataURI
	}
	if len(data) == 0 {
		return nil, ErrInvalidDataURI
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	// the declared type is client input; the bytes decide
	declared := contentType
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	detected := mimetype.Detect(data)
	if !detected.Is(declared) || !allowedTypes[detected.String()] {
		return nil, ErrContentMismatch
	}
	return &DataURI{ContentType: detected.String(), Data: data}, nil
}
