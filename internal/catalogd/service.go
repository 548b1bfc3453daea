package catalogd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
	"github.com/AntonZhuravskiy/web-larek/internal/catalogd/cache"
	"github.com/AntonZhuravskiy/web-larek/internal/checkout"
)

var (
	ErrEmptyOrder         = errors.New("order has no items")
	ErrUnsellableProduct  = errors.New("product is not for sale")
	ErrTotalTooLow        = errors.New("order total is below the item prices")
	ErrInvalidOrderFields = errors.New("order fields are invalid")
)

// Service implements the catalog server's business logic: the product
// listing behind a cache, and order acceptance.
type Service struct {
	repo  RepoInterface
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede on the product list
}

func NewService(repo RepoInterface, productCache cache.ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: productCache,
	}
}

// ListProducts returns the catalog, from cache when possible. Concurrent
// cache misses are collapsed into a single repository read.
func (s *Service) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	v, err, _ := s.sfg.Do(productsFlightKey, func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("cache get error", "error", err) // log cache error but continue
		}

		products, err = s.repo.GetAllProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, products); errSet != nil {
				slog.Warn("cache set error", "error", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]catalog.Product), nil
}

const productsFlightKey = "products"

// GetProduct returns one catalog entry.
func (s *Service) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// PlaceOrder validates the payload against the catalog and persists it.
// Every item id must resolve to a sellable product. Items carry no
// quantity, so the declared total cannot be recomputed exactly; it must at
// least cover one unit of every listed item.
func (s *Service) PlaceOrder(ctx context.Context, payload checkout.OrderPayload) (StoredOrder, error) {
	if len(payload.Items) == 0 {
		return StoredOrder{}, ErrEmptyOrder
	}
	if err := validateOrderFields(payload); err != nil {
		return StoredOrder{}, err
	}

	var sum float64
	for _, id := range payload.Items {
		p, err := s.repo.GetProduct(ctx, id)
		if err != nil {
			return StoredOrder{}, fmt.Errorf("item %s: %w", id, err)
		}
		if !p.Sellable() {
			return StoredOrder{}, fmt.Errorf("item %s: %w", id, ErrUnsellableProduct)
		}
		sum += p.PriceValue()
	}

	if payload.Total < sum-1e-9 {
		return StoredOrder{}, ErrTotalTooLow
	}

	order := StoredOrder{
		ID:        uuid.New().String(),
		Payment:   string(payload.Payment),
		Address:   payload.Address,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Total:     payload.Total,
		Items:     payload.Items,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return StoredOrder{}, fmt.Errorf("save order: %w", err)
	}

	slog.Info("order accepted", "order_id", order.ID, "total", order.Total, "items", len(order.Items))
	return order, nil
}

func validateOrderFields(payload checkout.OrderPayload) error {
	if _, ok := checkout.ParsePaymentMethod(string(payload.Payment)); !ok {
		return fmt.Errorf("%w: payment", ErrInvalidOrderFields)
	}
	if payload.Address == "" {
		return fmt.Errorf("%w: address", ErrInvalidOrderFields)
	}
	if payload.Email == "" {
		return fmt.Errorf("%w: email", ErrInvalidOrderFields)
	}
	if payload.Phone == "" {
		return fmt.Errorf("%w: phone", ErrInvalidOrderFields)
	}
	return nil
}
