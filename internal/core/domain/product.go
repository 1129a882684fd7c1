package domain

import "time"

type (
	// A Product is owned by the catalog store and is read-only
	// from this service's perspective. Brand and Category carry
	// the denormalized names for display.
	Product struct {
		ID                 string
		Name               string
		Price              int64
		OriginalPrice      int64
		DiscountPercentage int
		Rating             float64
		ReviewCount        int
		Color              string
		ScreenSize         float64
		BrandID            string
		Brand              string
		CategoryID         string
		Category           string
		OfficialStore      bool
		CreatedAt          time.Time
	}

	Brand struct {
		ID   string
		Name string
	}
)
