package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartStorage = (*CartRepository)(nil)

type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

// AddItem is an atomic upsert-with-increment: the first add for a
// (session, product) pair creates the line item with quantity 1,
// every repeat add increments it. The uniqueness constraint keeps
// one row per product even under concurrent adds.
func (r CartRepository) AddItem(
	ctx context.Context, sid domain.SessionID, productID string,
) (string, error) {
	const op = "CartRepository.AddItem"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cart_items (id, session_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (session_id, product_id) DO UPDATE SET
			quantity = cart_items.quantity + 1,
			updated_at = now()
		RETURNING id;`

	var itemID string
	err := r.sqldb.QueryRowContext(
		ctx, query, uuid.NewString(), string(sid), productID,
	).Scan(&itemID)
	if err != nil {
		return "", fmt.Errorf("%s: failed to upsert: %w", op, err)
	}
	return itemID, nil
}

// ListItems returns the session's line items with the embedded
// product, newest activity first.
func (r CartRepository) ListItems(
	ctx context.Context, sid domain.SessionID,
) ([]domain.CartItem, error) {
	const op = "CartRepository.ListItems"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ci.id, ci.session_id, ci.product_id, ci.quantity, ci.updated_at,` +
		productColumns + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		LEFT JOIN brands b ON b.id = p.brand_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ci.session_id = $1
		ORDER BY ci.updated_at DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query, string(sid))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			item domain.CartItem
			row  productRow
		)
		dest := []any{
			&item.ID, &item.SessionID, &item.ProductID,
			&item.Quantity, &item.UpdatedAt,
		}
		dest = append(dest, row.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		item.Product = row.value()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// SetQuantity delegates to removal for quantities of zero or below.
// Updating an absent item is not an error.
func (r CartRepository) SetQuantity(
	ctx context.Context, sid domain.SessionID, itemID string, quantity int,
) error {
	const op = "CartRepository.SetQuantity"

	if quantity <= 0 {
		return r.RemoveItem(ctx, sid, itemID)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE cart_items SET quantity = $1, updated_at = now()
		WHERE id = $2 AND session_id = $3;`

	_, err := r.sqldb.ExecContext(ctx, query, quantity, itemID, string(sid))
	if err != nil {
		return fmt.Errorf("%s: failed to update: %w", op, err)
	}
	return nil
}

// RemoveItem deletes unconditionally and is idempotent: an absent
// id is not an error.
func (r CartRepository) RemoveItem(
	ctx context.Context, sid domain.SessionID, itemID string,
) error {
	const op = "CartRepository.RemoveItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM cart_items WHERE id = $1 AND session_id = $2;`

	_, err := r.sqldb.ExecContext(ctx, query, itemID, string(sid))
	if err != nil {
		return fmt.Errorf("%s: failed to delete: %w", op, err)
	}
	return nil
}
