package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsFetcher = (*Service)(nil)
var _ port.BrandsLister = (*Service)(nil)
var _ port.CartManager = (*Service)(nil)

const defaultOpTimeout = 5 * time.Second

// Service is the recovery boundary: catalog failures become empty
// results, cart failures become a false success flag. The underlying
// error always goes to the diagnostic log, never to the caller.
type Service struct {
	catalog   port.CatalogStorage
	cart      port.CartStorage
	events    port.CartEventsProducer
	opTimeout time.Duration
}

func New(
	catalog port.CatalogStorage,
	cart port.CartStorage,
	events port.CartEventsProducer,
) Service {
	return Service{catalog, cart, events, defaultOpTimeout}
}

func (s Service) FetchProducts(
	ctx context.Context, f domain.FilterSpec,
) []domain.Product {
	const op = "Service.FetchProducts"
	log := slog.With("op", op)

	if err := f.Validate(); err != nil {
		log.Warn("rejected filter", "err", err)
		return []domain.Product{}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ps, err := s.catalog.FetchProducts(ctx, f)
	if err != nil {
		log.Error("failed to fetch products", "err", err)
		return []domain.Product{}
	}
	return ps
}

func (s Service) ListBrands(ctx context.Context) []domain.Brand {
	const op = "Service.ListBrands"
	log := slog.With("op", op)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bs, err := s.catalog.ListBrands(ctx)
	if err != nil {
		log.Error("failed to list brands", "err", err)
		return []domain.Brand{}
	}
	return bs
}

func (s Service) AddToCart(
	ctx context.Context, sid domain.SessionID, productID string,
) bool {
	const op = "Service.AddToCart"
	log := slog.With("op", op)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	itemID, err := s.cart.AddItem(ctx, sid, productID)
	if err != nil {
		log.Error("failed to add item", "err", err)
		return false
	}

	s.produceEvent(ctx, domain.CartEvent{
		SessionID: sid,
		ItemID:    itemID,
		ProductID: productID,
		Action:    domain.CartActionAdd,
		Quantity:  1,
	})
	return true
}

func (s Service) CartItems(
	ctx context.Context, sid domain.SessionID,
) []domain.CartItem {
	const op = "Service.CartItems"
	log := slog.With("op", op)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.cart.ListItems(ctx, sid)
	if err != nil {
		log.Error("failed to list items", "err", err)
		return []domain.CartItem{}
	}
	return items
}

// SetCartQuantity delegates to removal when quantity drops to zero
// or below. That is the defined behavior, not an error.
func (s Service) SetCartQuantity(
	ctx context.Context, sid domain.SessionID, itemID string, quantity int,
) bool {
	const op = "Service.SetCartQuantity"
	log := slog.With("op", op)

	if quantity <= 0 {
		return s.RemoveCartItem(ctx, sid, itemID)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.cart.SetQuantity(ctx, sid, itemID, quantity); err != nil {
		log.Error("failed to set quantity", "err", err)
		return false
	}

	s.produceEvent(ctx, domain.CartEvent{
		SessionID: sid,
		ItemID:    itemID,
		Action:    domain.CartActionSetQuantity,
		Quantity:  quantity,
	})
	return true
}

// RemoveCartItem is idempotent: removing an absent item succeeds.
func (s Service) RemoveCartItem(
	ctx context.Context, sid domain.SessionID, itemID string,
) bool {
	const op = "Service.RemoveCartItem"
	log := slog.With("op", op)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.cart.RemoveItem(ctx, sid, itemID); err != nil {
		log.Error("failed to remove item", "err", err)
		return false
	}

	s.produceEvent(ctx, domain.CartEvent{
		SessionID: sid,
		ItemID:    itemID,
		Action:    domain.CartActionRemove,
	})
	return true
}

// CartCount is derived, not stored: the sum of quantities across
// the session's line items.
func (s Service) CartCount(
	ctx context.Context, sid domain.SessionID,
) int {
	var count int
	for _, item := range s.CartItems(ctx, sid) {
		count += item.Quantity
	}
	return count
}

// produceEvent is best-effort: the activity stream never affects
// the success of a cart mutation.
func (s Service) produceEvent(ctx context.Context, evt domain.CartEvent) {
	const op = "Service.produceEvent"
	log := slog.With("op", op)

	if s.events == nil {
		return
	}

	evt.OccurredAt = time.Now()
	if err := s.events.ProduceCartEvent(ctx, evt); err != nil {
		log.Error("failed to produce cart event", "err", err)
	}
}

func (s Service) withTimeout(
	ctx context.Context,
) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}
