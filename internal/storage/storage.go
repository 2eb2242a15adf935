package storage

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Store persists uploaded image blobs under caller-chosen names. The name
// is later joined with the deployment's static mount prefix to form the
// servable URL.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
	List(ctx context.Context) ([]ObjectInfo, error)
}
