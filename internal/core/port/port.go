package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Inbound ports, implemented by the core service.

type ProductsFetcher interface {
	// FetchProducts never fails: on any backend error it yields
	// an empty sequence and reports through the diagnostic log.
	FetchProducts(context.Context, domain.FilterSpec) []domain.Product
}

type BrandsLister interface {
	ListBrands(context.Context) []domain.Brand
}

type CartManager interface {
	AddToCart(ctx context.Context, sid domain.SessionID, productID string) bool
	CartItems(ctx context.Context, sid domain.SessionID) []domain.CartItem
	SetCartQuantity(ctx context.Context, sid domain.SessionID, itemID string, quantity int) bool
	RemoveCartItem(ctx context.Context, sid domain.SessionID, itemID string) bool
	CartCount(ctx context.Context, sid domain.SessionID) int
}

// Outbound ports, implemented by adapters.

type CatalogStorage interface {
	FetchProducts(context.Context, domain.FilterSpec) ([]domain.Product, error)
	ListBrands(context.Context) ([]domain.Brand, error)
}

type CartStorage interface {
	AddItem(ctx context.Context, sid domain.SessionID, productID string) (itemID string, err error)
	ListItems(ctx context.Context, sid domain.SessionID) ([]domain.CartItem, error)
	SetQuantity(ctx context.Context, sid domain.SessionID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, sid domain.SessionID, itemID string) error
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
}
