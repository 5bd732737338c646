// Package storage keeps uploaded images and serves them back by key.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Open for unknown keys
var ErrNotFound = errors.New("object not found")

// Object is an opened stored object
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Backend stores objects under a key and returns the public URL for them
type Backend interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Open(ctx context.Context, key string) (*Object, error)
}

// NewKey builds a unique object key under prefix keeping the extension of contentType
func NewKey(prefix, contentType string) string {
	key := uuid.NewString() + extension(contentType)
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, "/") + "/" + key
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

// publicURL joins the media base URL and key
func publicURL(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + key
}
