package cache

import (
	"context"

	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
)

// Noop satisfies ProductCache when no redis is configured; every read is a
// miss and writes are discarded.
type Noop struct{}

func (Noop) Get(context.Context) ([]catalog.Product, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(context.Context, []catalog.Product) error {
	return nil
}

func (Noop) Invalidate(context.Context) error {
	return nil
}
