package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	Product struct {
		ID                 string    `json:"id"`
		Name               string    `json:"name"`
		Price              int64     `json:"price"`
		OriginalPrice      int64     `json:"original_price,omitempty"`
		DiscountPercentage int       `json:"discount_percentage,omitempty"`
		Rating             float64   `json:"rating,omitempty"`
		ReviewCount        int       `json:"review_count,omitempty"`
		Color              string    `json:"color,omitempty"`
		ScreenSize         float64   `json:"screen_size,omitempty"`
		Brand              string    `json:"brand"`
		Category           string    `json:"category"`
		OfficialStore      bool      `json:"is_official_store"`
		CreatedAt          time.Time `json:"created_at"`
	}

	Brand struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	CartItem struct {
		ID        string    `json:"id"`
		ProductID string    `json:"product_id"`
		Quantity  int       `json:"quantity"`
		UpdatedAt time.Time `json:"updated_at"`
		Product   Product   `json:"product"`
	}
)

type (
	ProductsResponse struct {
		Products []Product `json:"products"`
		Count    int       `json:"count"`
	}

	CartItemsResponse struct {
		Items []CartItem `json:"items"`
	}

	CartCountResponse struct {
		Count int `json:"count"`
	}

	OKResponse struct {
		OK bool `json:"ok"`
	}

	AddToCartRequest struct {
		ProductID string `json:"product_id"`
	}

	SetQuantityRequest struct {
		Quantity int `json:"quantity"`
	}
)

func toProductView(p domain.Product) Product {
	return Product{
		ID:                 p.ID,
		Name:               p.Name,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		Color:              p.Color,
		ScreenSize:         p.ScreenSize,
		Brand:              p.Brand,
		Category:           p.Category,
		OfficialStore:      p.OfficialStore,
		CreatedAt:          p.CreatedAt,
	}
}

func toProductViews(ps []domain.Product) []Product {
	views := make([]Product, 0, len(ps))
	for _, p := range ps {
		views = append(views, toProductView(p))
	}
	return views
}

func toBrandViews(bs []domain.Brand) []Brand {
	views := make([]Brand, 0, len(bs))
	for _, b := range bs {
		views = append(views, Brand{ID: b.ID, Name: b.Name})
	}
	return views
}

func toCartItemViews(items []domain.CartItem) []CartItem {
	views := make([]CartItem, 0, len(items))
	for _, item := range items {
		views = append(views, CartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UpdatedAt: item.UpdatedAt,
			Product:   toProductView(item.Product),
		})
	}
	return views
}
