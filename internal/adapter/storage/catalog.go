package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogStorage = (*CatalogRepository)(nil)

type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

// FetchProducts applies the filter as an accumulating sequence of
// optional refinements over the base "all products, newest first"
// query. Brand names are resolved to identifiers first; a failed
// resolution constrains to the empty set, which yields zero rows
// rather than an error.
func (r CatalogRepository) FetchProducts(
	ctx context.Context, f domain.FilterSpec,
) ([]domain.Product, error) {
	const op = "CatalogRepository.FetchProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var brandIDs []string
	if len(f.Brands) > 0 {
		brandIDs = r.resolveBrandIDs(ctx, f.Brands)
	}

	query, args := buildProductsQuery(f, brandIDs)

	rows, err := r.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r CatalogRepository) ListBrands(
	ctx context.Context,
) ([]domain.Brand, error) {
	const op = "CatalogRepository.ListBrands"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, name FROM brands ORDER BY name ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	var bs []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		bs = append(bs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bs, nil
}

// resolveBrandIDs maps human-readable brand names to identifiers.
// A lookup failure is a resolution miss, not an error: the returned
// empty set makes the brand predicate match nothing.
func (r CatalogRepository) resolveBrandIDs(
	ctx context.Context, names []string,
) []string {
	const op = "CatalogRepository.resolveBrandIDs"
	log := slog.With("op", op)

	query := `SELECT id FROM brands WHERE name = ANY($1);`

	rows, err := r.sqldb.QueryContext(ctx, query, names)
	if err != nil {
		log.Error("failed to resolve brand names", "err", err)
		return []string{}
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan brand id", "err", err)
			return []string{}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to resolve brand names", "err", err)
		return []string{}
	}
	return ids
}

const productColumns = `
	p.id, p.name, p.price, p.original_price, p.discount_percentage,
	p.rating, p.review_count, p.color, p.screen_size,
	p.brand_id, b.name, p.category_id, c.name,
	p.is_official_store, p.created_at`

// buildProductsQuery composes the catalog query text and args.
// All active predicates apply conjunctively. brandIDs is consulted
// only when the filter carries brand names; an empty non-nil set
// still constrains, so an unresolved name yields zero products.
func buildProductsQuery(
	f domain.FilterSpec, brandIDs []string,
) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT`)
	b.WriteString(productColumns)
	b.WriteString(`
	FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	LEFT JOIN categories c ON c.id = p.category_id`)

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Brands) > 0 {
		conds = append(conds, "p.brand_id = ANY("+arg(brandIDs)+")")
	}
	if len(f.Colors) > 0 {
		conds = append(conds, "p.color = ANY("+arg(f.Colors)+")")
	}
	if f.PriceRangeActive() {
		conds = append(conds,
			"p.price BETWEEN "+arg(*f.MinPrice)+" AND "+arg(*f.MaxPrice))
	}
	if f.DiscountOnly {
		conds = append(conds, "p.discount_percentage > 0")
	}
	if f.MinDiscount > 0 {
		conds = append(conds, "p.discount_percentage >= "+arg(f.MinDiscount))
	}
	if f.MinRating > 0 {
		conds = append(conds, "p.rating >= "+arg(f.MinRating))
	}
	if len(f.ScreenSizes) > 0 {
		conds = append(conds, "p.screen_size = ANY("+arg(f.ScreenSizes)+")")
	}
	if f.Search != "" {
		conds = append(conds, "p.name ILIKE "+arg("%"+f.Search+"%"))
	}

	if len(conds) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString("\n\tORDER BY p.created_at DESC;")

	return b.String(), args
}

// A productRow buffers nullable catalog columns between Scan and
// the domain value.
type productRow struct {
	p             domain.Product
	originalPrice sql.NullInt64
	discount      sql.NullInt64
	rating        sql.NullFloat64
	reviewCount   sql.NullInt64
	color         sql.NullString
	screenSize    sql.NullFloat64
	brandName     sql.NullString
	categoryName  sql.NullString
}

func (r *productRow) dest() []any {
	return []any{
		&r.p.ID, &r.p.Name, &r.p.Price, &r.originalPrice, &r.discount,
		&r.rating, &r.reviewCount, &r.color, &r.screenSize,
		&r.p.BrandID, &r.brandName, &r.p.CategoryID, &r.categoryName,
		&r.p.OfficialStore, &r.p.CreatedAt,
	}
}

func (r *productRow) value() domain.Product {
	p := r.p
	p.OriginalPrice = r.originalPrice.Int64
	p.DiscountPercentage = int(r.discount.Int64)
	p.Rating = r.rating.Float64
	p.ReviewCount = int(r.reviewCount.Int64)
	p.Color = r.color.String
	p.ScreenSize = r.screenSize.Float64
	p.Brand = r.brandName.String
	p.Category = r.categoryName.String
	return p
}

func scanProduct(rows *sql.Rows) (domain.Product, error) {
	var row productRow
	if err := rows.Scan(row.dest()...); err != nil {
		return domain.Product{}, err
	}
	return row.value(), nil
}
