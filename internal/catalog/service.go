package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"
)

// Fetcher is the slice of Client the service needs.
type Fetcher interface {
	List(ctx context.Context) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	ByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
}

type Service struct {
	fetcher Fetcher
	cache   Cache
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(fetcher Fetcher, cache Cache) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
	}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.cachedList(ctx, "all", s.fetcher.List)
}

func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	return s.cachedList(ctx, "featured", s.fetcher.Featured)
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]Product, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return s.cachedList(ctx, "category:"+category, func(ctx context.Context) ([]Product, error) {
		return s.fetcher.ByCategory(ctx, category)
	})
}

// Search results are not cached; queries are too varied to be worth it.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	return s.fetcher.Search(ctx, query)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	key := fmt.Sprintf("get:%d", id)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		product, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.fetcher.Get(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetProduct(context.Background(), product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}

func (s *Service) cachedList(ctx context.Context, key string, fetch func(context.Context) ([]Product, error)) ([]Product, error) {
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		products, err := s.cache.GetProducts(ctx, key)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		products, errGet := fetch(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetProducts(context.Background(), key, products); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Product), nil
}
