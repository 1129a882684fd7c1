package domain

import "errors"

var ErrPriceRange = errors.New("min price is greater than max price")

type (
	// A FilterSpec is an immutable set of optional catalog
	// constraints. Zero values mean "no constraint on this
	// dimension": empty slices, empty search string, zero
	// MinDiscount and MinRating. The price range applies only
	// when both bounds are present.
	FilterSpec struct {
		Brands       []string
		Colors       []string
		MinPrice     *int64
		MaxPrice     *int64
		DiscountOnly bool
		MinDiscount  int
		MinRating    float64
		ScreenSizes  []float64
		Search       string
	}

	// PriceBounds replaces both price bounds at once. A nil bound
	// clears it.
	PriceBounds struct {
		Min *int64
		Max *int64
	}

	// A FilterPatch describes a filter state transition. Nil fields
	// leave the corresponding dimension untouched.
	FilterPatch struct {
		Brands       *[]string
		Colors       *[]string
		Price        *PriceBounds
		DiscountOnly *bool
		MinDiscount  *int
		MinRating    *float64
		ScreenSizes  *[]float64
		Search       *string
	}
)

// Merge returns a new FilterSpec with the patch applied.
// The receiver is never mutated, slices are copied.
func (f FilterSpec) Merge(p FilterPatch) FilterSpec {
	next := f
	next.Brands = cloneSlice(f.Brands)
	next.Colors = cloneSlice(f.Colors)
	next.ScreenSizes = cloneSlice(f.ScreenSizes)

	if p.Brands != nil {
		next.Brands = cloneSlice(*p.Brands)
	}
	if p.Colors != nil {
		next.Colors = cloneSlice(*p.Colors)
	}
	if p.Price != nil {
		next.MinPrice = clonePtr(p.Price.Min)
		next.MaxPrice = clonePtr(p.Price.Max)
	}
	if p.DiscountOnly != nil {
		next.DiscountOnly = *p.DiscountOnly
	}
	if p.MinDiscount != nil {
		next.MinDiscount = *p.MinDiscount
	}
	if p.MinRating != nil {
		next.MinRating = *p.MinRating
	}
	if p.ScreenSizes != nil {
		next.ScreenSizes = cloneSlice(*p.ScreenSizes)
	}
	if p.Search != nil {
		next.Search = *p.Search
	}
	return next
}

// Validate reports ErrPriceRange when both bounds are present
// and inverted.
func (f FilterSpec) Validate() error {
	if f.PriceRangeActive() && *f.MinPrice > *f.MaxPrice {
		return ErrPriceRange
	}
	return nil
}

// PriceRangeActive reports whether both bounds are present.
// A single bound applies no price constraint at all.
func (f FilterSpec) PriceRangeActive() bool {
	return f.MinPrice != nil && f.MaxPrice != nil
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
