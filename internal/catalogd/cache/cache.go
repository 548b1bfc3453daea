package cache

import (
	"context"
	"errors"

	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
)

// ProductCache caches the full product list. The list is small and read
// far more often than it changes, so it is cached as one value.
type ProductCache interface {
	Get(ctx context.Context) ([]catalog.Product, error)
	Set(ctx context.Context, products []catalog.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
