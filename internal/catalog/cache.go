package catalog

import (
	"context"
	"errors"
)

type Cache interface {
	GetProducts(ctx context.Context, key string) ([]Product, error)
	SetProducts(ctx context.Context, key string, products []Product) error
	GetProduct(ctx context.Context, id int64) (*Product, error)
	SetProduct(ctx context.Context, product *Product) error
}

var ErrCacheMiss = errors.New("cache miss")
