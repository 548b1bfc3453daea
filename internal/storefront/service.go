package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AntonZhuravskiy/web-larek/internal/cart"
	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
	"github.com/AntonZhuravskiy/web-larek/internal/checkout"
	"github.com/AntonZhuravskiy/web-larek/internal/client"
)

var (
	// ErrUnknownProduct means the id does not resolve against the loaded
	// catalog.
	ErrUnknownProduct = errors.New("unknown product id")
	// ErrSubmissionFailed wraps an order-sink failure so callers can tell a
	// transport problem apart from a validation one.
	ErrSubmissionFailed = errors.New("order submission failed")
)

// Service orchestrates the storefront session: one catalog store, one cart
// ledger and one checkout session, wired to the remote catalog source and
// order sink. All instances are explicit; nothing here is a package-level
// singleton.
type Service struct {
	catalog *catalog.Store
	cart    *cart.Ledger
	session *checkout.Session
	source  client.CatalogSource
	sink    client.OrderSink
}

func NewService(store *catalog.Store, ledger *cart.Ledger, session *checkout.Session, source client.CatalogSource, sink client.OrderSink) *Service {
	return &Service{
		catalog: store,
		cart:    ledger,
		session: session,
		source:  source,
		sink:    sink,
	}
}

// LoadCatalog fetches the product list once and replaces the store's
// contents. Fetch failures surface to the caller; there is no retry.
func (s *Service) LoadCatalog(ctx context.Context) error {
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.catalog.Replace(products)
	slog.Info("catalog loaded", "products", len(products))
	return nil
}

// Products returns the catalog in listing order.
func (s *Service) Products() []catalog.Product {
	return s.catalog.All()
}

// Product looks up a single catalog entry.
func (s *Service) Product(id string) (catalog.Product, error) {
	p, ok := s.catalog.ByID(id)
	if !ok {
		return catalog.Product{}, ErrUnknownProduct
	}
	return p, nil
}

// AddToCart resolves the id against the catalog and feeds the product to
// the ledger. Priceless products are silently rejected by the ledger's add
// policy; the returned snapshot shows the actual effect either way.
func (s *Service) AddToCart(id string) (cart.Snapshot, error) {
	p, ok := s.catalog.ByID(id)
	if !ok {
		return cart.Snapshot{}, ErrUnknownProduct
	}
	s.cart.Add(p)
	return s.cart.Snapshot(), nil
}

// RemoveFromCart drops the whole line for the id.
func (s *Service) RemoveFromCart(id string) cart.Snapshot {
	s.cart.Remove(id)
	return s.cart.Snapshot()
}

// ClearCart empties the cart.
func (s *Service) ClearCart() cart.Snapshot {
	s.cart.Clear()
	return s.cart.Snapshot()
}

// Cart returns the current snapshot.
func (s *Service) Cart() cart.Snapshot {
	return s.cart.Snapshot()
}

// Session exposes the checkout session for field edits and validation
// queries.
func (s *Service) Session() *checkout.Session {
	return s.session
}

// Submit assembles the order from the current checkout fields and cart
// snapshot and performs a single submission attempt.
//
// On success the cart is cleared and the checkout session reset before the
// result is returned, so no caller can observe one without the other. On
// sink failure neither is touched and the user can resubmit as-is; the
// error is wrapped in ErrSubmissionFailed to keep it distinguishable from
// the validation errors BuildOrder returns.
func (s *Service) Submit(ctx context.Context) (client.OrderResult, error) {
	payload, err := s.session.BuildOrder(s.cart.Snapshot())
	if err != nil {
		return client.OrderResult{}, err
	}

	result, err := s.sink.SubmitOrder(ctx, payload)
	if err != nil {
		slog.Error("order submission failed", "error", err)
		return client.OrderResult{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	s.cart.Clear()
	s.session.Reset()
	slog.Info("order submitted", "order_id", result.ID, "total", result.Total)
	return result, nil
}
