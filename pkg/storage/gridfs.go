package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFS stores images in a MongoDB GridFS bucket, using the key as file name
type GridFS struct {
	bucket  *gridfs.Bucket
	baseURL string
}

// NewGridFS opens the "images" bucket of db. baseURL is the public prefix the media route is served on.
func NewGridFS(db *mongo.Database, baseURL string) (*GridFS, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFS{bucket: bucket, baseURL: baseURL}, nil
}

func (g *GridFS) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	stream, err := g.bucket.OpenUploadStream(key, opts)
	if err != nil {
		return "", fmt.Errorf("gridfs upload %s: %w", key, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}
	if _, err := stream.Write(data); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("gridfs write %s: %w", key, err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("gridfs close %s: %w", key, err)
	}
	return publicURL(g.baseURL, key), nil
}

func (g *GridFS) Open(ctx context.Context, key string) (*Object, error) {
	var file struct {
		Length   int64  `bson:"length"`
		Metadata bson.M `bson:"metadata"`
	}
	cursor, err := g.bucket.FindContext(ctx, bson.M{"filename": key})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if !cursor.Next(ctx) {
		return nil, ErrNotFound
	}
	if err := cursor.Decode(&file); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := g.bucket.DownloadToStreamByName(key, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	contentType, _ := file.Metadata["contentType"].(string)
	return &Object{Body: nopCloser{&buf}, ContentType: contentType, Size: file.Length}, nil
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }
