package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products []domain.Product
	brands   []domain.Brand
	err      error
	lastSpec domain.FilterSpec
}

func (f *fakeCatalog) FetchProducts(
	_ context.Context, spec domain.FilterSpec,
) ([]domain.Product, error) {
	f.lastSpec = spec
	return f.products, f.err
}

func (f *fakeCatalog) ListBrands(context.Context) ([]domain.Brand, error) {
	return f.brands, f.err
}

// fakeCartStorage mirrors the repository contract: upsert with
// increment, session scoping, idempotent removal.
type fakeCartStorage struct {
	items map[string]*domain.CartItem
	err   error
}

func newFakeCartStorage() *fakeCartStorage {
	return &fakeCartStorage{items: make(map[string]*domain.CartItem)}
}

func (f *fakeCartStorage) AddItem(
	_ context.Context, sid domain.SessionID, productID string,
) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, item := range f.items {
		if item.SessionID == sid && item.ProductID == productID {
			item.Quantity++
			return item.ID, nil
		}
	}
	id := uuid.NewString()
	f.items[id] = &domain.CartItem{
		ID: id, SessionID: sid, ProductID: productID, Quantity: 1,
	}
	return id, nil
}

func (f *fakeCartStorage) ListItems(
	_ context.Context, sid domain.SessionID,
) ([]domain.CartItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var items []domain.CartItem
	for _, item := range f.items {
		if item.SessionID == sid {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (f *fakeCartStorage) SetQuantity(
	ctx context.Context, sid domain.SessionID, itemID string, quantity int,
) error {
	if f.err != nil {
		return f.err
	}
	if quantity <= 0 {
		return f.RemoveItem(ctx, sid, itemID)
	}
	if item, ok := f.items[itemID]; ok && item.SessionID == sid {
		item.Quantity = quantity
	}
	return nil
}

func (f *fakeCartStorage) RemoveItem(
	_ context.Context, sid domain.SessionID, itemID string,
) error {
	if f.err != nil {
		return f.err
	}
	if item, ok := f.items[itemID]; ok && item.SessionID == sid {
		delete(f.items, itemID)
	}
	return nil
}

type fakeEventsProducer struct {
	events []domain.CartEvent
	err    error
}

func (f *fakeEventsProducer) ProduceCartEvent(
	_ context.Context, evt domain.CartEvent,
) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestFetchProducts(t *testing.T) {
	t.Run("PassesFilterThrough", func(t *testing.T) {
		catalog := &fakeCatalog{products: []domain.Product{{ID: "p1"}}}
		s := service.New(catalog, newFakeCartStorage(), nil)

		f := domain.FilterSpec{Brands: []string{"Apple"}, Search: "pro"}
		ps := s.FetchProducts(t.Context(), f)

		require.Len(t, ps, 1)
		assert.Equal(t, f.Brands, catalog.lastSpec.Brands)
		assert.Equal(t, f.Search, catalog.lastSpec.Search)
	})

	t.Run("BackendFailureYieldsEmpty", func(t *testing.T) {
		catalog := &fakeCatalog{err: errors.New("connection refused")}
		s := service.New(catalog, newFakeCartStorage(), nil)

		ps := s.FetchProducts(t.Context(), domain.FilterSpec{})

		require.NotNil(t, ps)
		assert.Empty(t, ps)
	})

	t.Run("InvertedPriceRangeYieldsEmpty", func(t *testing.T) {
		catalog := &fakeCatalog{products: []domain.Product{{ID: "p1"}}}
		s := service.New(catalog, newFakeCartStorage(), nil)

		f := domain.FilterSpec{
			MinPrice: int64Ptr(200),
			MaxPrice: int64Ptr(100),
		}
		ps := s.FetchProducts(t.Context(), f)

		assert.Empty(t, ps)
	})
}

func TestListBrands(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		catalog := &fakeCatalog{brands: []domain.Brand{{ID: "b1", Name: "Apple"}}}
		s := service.New(catalog, newFakeCartStorage(), nil)

		bs := s.ListBrands(t.Context())
		require.Len(t, bs, 1)
		assert.Equal(t, "Apple", bs[0].Name)
	})

	t.Run("BackendFailureYieldsEmpty", func(t *testing.T) {
		catalog := &fakeCatalog{err: errors.New("connection refused")}
		s := service.New(catalog, newFakeCartStorage(), nil)

		bs := s.ListBrands(t.Context())
		require.NotNil(t, bs)
		assert.Empty(t, bs)
	})
}

func TestAddToCart(t *testing.T) {
	const sid = domain.SessionID("session-1")

	t.Run("RepeatAddsMergeIntoOneLine", func(t *testing.T) {
		cart := newFakeCartStorage()
		s := service.New(&fakeCatalog{}, cart, nil)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))
		require.True(t, s.AddToCart(t.Context(), sid, "p1"))

		items := s.CartItems(t.Context(), sid)
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].ProductID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("FailureIsFalseNotPanic", func(t *testing.T) {
		cart := newFakeCartStorage()
		cart.err = errors.New("connection refused")
		s := service.New(&fakeCatalog{}, cart, nil)

		assert.False(t, s.AddToCart(t.Context(), sid, "p1"))
	})

	t.Run("ProducesAddEvent", func(t *testing.T) {
		cart := newFakeCartStorage()
		events := &fakeEventsProducer{}
		s := service.New(&fakeCatalog{}, cart, events)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))

		require.Len(t, events.events, 1)
		evt := events.events[0]
		assert.Equal(t, domain.CartActionAdd, evt.Action)
		assert.Equal(t, "p1", evt.ProductID)
		assert.Equal(t, sid, evt.SessionID)
		assert.False(t, evt.OccurredAt.IsZero())
	})

	t.Run("ProducerFailureDoesNotAffectResult", func(t *testing.T) {
		cart := newFakeCartStorage()
		events := &fakeEventsProducer{err: errors.New("broker down")}
		s := service.New(&fakeCatalog{}, cart, events)

		assert.True(t, s.AddToCart(t.Context(), sid, "p1"))
	})
}

func TestSetCartQuantity(t *testing.T) {
	const sid = domain.SessionID("session-1")

	t.Run("SetsQuantity", func(t *testing.T) {
		cart := newFakeCartStorage()
		s := service.New(&fakeCatalog{}, cart, nil)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))
		itemID := s.CartItems(t.Context(), sid)[0].ID

		require.True(t, s.SetCartQuantity(t.Context(), sid, itemID, 5))

		items := s.CartItems(t.Context(), sid)
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("ZeroQuantityRemoves", func(t *testing.T) {
		cart := newFakeCartStorage()
		events := &fakeEventsProducer{}
		s := service.New(&fakeCatalog{}, cart, events)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))
		itemID := s.CartItems(t.Context(), sid)[0].ID

		require.True(t, s.SetCartQuantity(t.Context(), sid, itemID, 0))

		assert.Empty(t, s.CartItems(t.Context(), sid))
		last := events.events[len(events.events)-1]
		assert.Equal(t, domain.CartActionRemove, last.Action)
	})

	t.Run("NegativeQuantityRemoves", func(t *testing.T) {
		cart := newFakeCartStorage()
		s := service.New(&fakeCatalog{}, cart, nil)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))
		itemID := s.CartItems(t.Context(), sid)[0].ID

		require.True(t, s.SetCartQuantity(t.Context(), sid, itemID, -3))
		assert.Empty(t, s.CartItems(t.Context(), sid))
	})
}

func TestRemoveCartItem(t *testing.T) {
	const sid = domain.SessionID("session-1")

	t.Run("RemovesLine", func(t *testing.T) {
		cart := newFakeCartStorage()
		s := service.New(&fakeCatalog{}, cart, nil)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))
		itemID := s.CartItems(t.Context(), sid)[0].ID

		require.True(t, s.RemoveCartItem(t.Context(), sid, itemID))
		assert.Empty(t, s.CartItems(t.Context(), sid))
	})

	t.Run("AbsentIDIsSuccess", func(t *testing.T) {
		cart := newFakeCartStorage()
		s := service.New(&fakeCatalog{}, cart, nil)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))

		assert.True(t, s.RemoveCartItem(t.Context(), sid, "no-such-id"))
		assert.Len(t, s.CartItems(t.Context(), sid), 1)
	})
}

func TestCartCount(t *testing.T) {
	const sid = domain.SessionID("session-1")

	t.Run("SumOfQuantities", func(t *testing.T) {
		cart := newFakeCartStorage()
		s := service.New(&fakeCatalog{}, cart, nil)

		require.True(t, s.AddToCart(t.Context(), sid, "p1"))
		require.True(t, s.AddToCart(t.Context(), sid, "p1"))
		require.True(t, s.AddToCart(t.Context(), sid, "p2"))

		var sum int
		for _, item := range s.CartItems(t.Context(), sid) {
			sum += item.Quantity
		}
		assert.Equal(t, sum, s.CartCount(t.Context(), sid))
		assert.Equal(t, 3, s.CartCount(t.Context(), sid))
	})

	t.Run("BackendFailureYieldsZero", func(t *testing.T) {
		cart := newFakeCartStorage()
		cart.err = errors.New("connection refused")
		s := service.New(&fakeCatalog{}, cart, nil)

		assert.Zero(t, s.CartCount(t.Context(), sid))
	})
}

func TestSessionIsolation(t *testing.T) {
	const (
		alice = domain.SessionID("session-alice")
		bob   = domain.SessionID("session-bob")
	)

	cart := newFakeCartStorage()
	s := service.New(&fakeCatalog{}, cart, nil)

	require.True(t, s.AddToCart(t.Context(), alice, "p1"))
	require.True(t, s.AddToCart(t.Context(), bob, "p2"))

	aliceItems := s.CartItems(t.Context(), alice)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, "p1", aliceItems[0].ProductID)

	bobItems := s.CartItems(t.Context(), bob)
	require.Len(t, bobItems, 1)
	assert.Equal(t, "p2", bobItems[0].ProductID)

	// one session cannot mutate another's line item
	require.True(t, s.RemoveCartItem(t.Context(), bob, aliceItems[0].ID))
	assert.Len(t, s.CartItems(t.Context(), alice), 1)
}
