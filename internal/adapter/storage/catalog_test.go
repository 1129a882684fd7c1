package storage

import (
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildProductsQuery(t *testing.T) {
	t.Run("NoConstraints", func(t *testing.T) {
		query, args := buildProductsQuery(domain.FilterSpec{}, nil)

		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY p.created_at DESC")
		assert.Empty(t, args)
	})

	t.Run("AllPredicatesConjunctive", func(t *testing.T) {
		f := domain.FilterSpec{
			Brands:       []string{"Apple"},
			Colors:       []string{"Black", "Blue"},
			MinPrice:     int64Ptr(100),
			MaxPrice:     int64Ptr(200),
			DiscountOnly: true,
			MinDiscount:  10,
			MinRating:    4,
			ScreenSizes:  []float64{6.1},
			Search:       "pro",
		}

		query, args := buildProductsQuery(f, []string{"b1"})

		require.Contains(t, query, "WHERE")
		// seven conjunction separators plus the BETWEEN bound
		assert.Equal(t, 8, strings.Count(query, " AND "))
		assert.Contains(t, query, "p.brand_id = ANY($1)")
		assert.Contains(t, query, "p.color = ANY($2)")
		assert.Contains(t, query, "p.price BETWEEN $3 AND $4")
		assert.Contains(t, query, "p.discount_percentage > 0")
		assert.Contains(t, query, "p.discount_percentage >= $5")
		assert.Contains(t, query, "p.rating >= $6")
		assert.Contains(t, query, "p.screen_size = ANY($7)")
		assert.Contains(t, query, "p.name ILIKE $8")

		require.Len(t, args, 8)
		assert.Equal(t, []string{"b1"}, args[0])
		assert.Equal(t, []string{"Black", "Blue"}, args[1])
		assert.EqualValues(t, 100, args[2])
		assert.EqualValues(t, 200, args[3])
		assert.Equal(t, 10, args[4])
		assert.EqualValues(t, 4, args[5])
		assert.Equal(t, []float64{6.1}, args[6])
		assert.Equal(t, "%pro%", args[7])
	})

	t.Run("SingleBoundAppliesNoPriceConstraint", func(t *testing.T) {
		minOnly := domain.FilterSpec{MinPrice: int64Ptr(100)}
		query, args := buildProductsQuery(minOnly, nil)
		assert.NotContains(t, query, "BETWEEN")
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)

		maxOnly := domain.FilterSpec{MaxPrice: int64Ptr(200)}
		query, args = buildProductsQuery(maxOnly, nil)
		assert.NotContains(t, query, "BETWEEN")
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("DiscountPredicatesAreIndependent", func(t *testing.T) {
		onlyFlag := domain.FilterSpec{DiscountOnly: true}
		query, _ := buildProductsQuery(onlyFlag, nil)
		assert.Contains(t, query, "p.discount_percentage > 0")
		assert.NotContains(t, query, "p.discount_percentage >=")

		onlyMin := domain.FilterSpec{MinDiscount: 15}
		query, args := buildProductsQuery(onlyMin, nil)
		assert.NotContains(t, query, "p.discount_percentage > 0")
		assert.Contains(t, query, "p.discount_percentage >= $1")
		assert.Equal(t, []any{15}, args)
	})

	t.Run("UnresolvedBrandNamesStillConstrain", func(t *testing.T) {
		f := domain.FilterSpec{Brands: []string{"NoSuchBrand"}}

		query, args := buildProductsQuery(f, []string{})

		assert.Contains(t, query, "p.brand_id = ANY($1)")
		require.Len(t, args, 1)
		assert.Empty(t, args[0])
	})

	t.Run("BrandAndPriceRange", func(t *testing.T) {
		f := domain.FilterSpec{
			Brands:   []string{"Apple"},
			MinPrice: int64Ptr(200000),
			MaxPrice: int64Ptr(5000000),
		}

		query, args := buildProductsQuery(f, []string{"apple-id"})

		assert.Contains(t, query, "p.brand_id = ANY($1)")
		assert.Contains(t, query, "p.price BETWEEN $2 AND $3")
		require.Len(t, args, 3)
		assert.Equal(t, []string{"apple-id"}, args[0])
	})

	t.Run("SearchIsUnanchoredSubstring", func(t *testing.T) {
		f := domain.FilterSpec{Search: "Galaxy"}

		query, args := buildProductsQuery(f, nil)

		assert.Contains(t, query, "p.name ILIKE $1")
		assert.Equal(t, []any{"%Galaxy%"}, args)
	})
}
