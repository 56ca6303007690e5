package records

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every record whose key starts with prefix.
	List(ctx context.Context, prefix string) (map[string][]byte, error)
}
