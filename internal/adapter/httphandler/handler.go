package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET /v1/products?brand=&color=&min_price=&max_price=&discount_only=&min_discount=&min_rating=&screen_size=&search= (200 OK)
// GET /v1/brands (200 OK)

type CatalogHandler struct {
	fetcher port.ProductsFetcher
	brands  port.BrandsLister
}

func RegisterCatalog(
	mux *http.ServeMux,
	fetcher port.ProductsFetcher,
	brands port.BrandsLister,
) {
	h := CatalogHandler{fetcher, brands}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/brands", h.GetBrands)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"

	f := parseFilter(r.URL.Query())
	ps := h.fetcher.FetchProducts(r.Context(), f)
	writeJSON(w, op, ProductsResponse{
		Products: toProductViews(ps),
		Count:    len(ps),
	})
}

func (h CatalogHandler) GetBrands(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetBrands"

	bs := h.brands.ListBrands(r.Context())
	writeJSON(w, op, toBrandViews(bs))
}

// parseFilter funnels every query parameter through the single
// filter state transition. Unparsable values count as absent.
func parseFilter(q url.Values) domain.FilterSpec {
	var p domain.FilterPatch

	if vs, ok := q["brand"]; ok {
		p.Brands = &vs
	}
	if vs, ok := q["color"]; ok {
		p.Colors = &vs
	}

	minPrice := parseInt64(q.Get("min_price"))
	maxPrice := parseInt64(q.Get("max_price"))
	if minPrice != nil || maxPrice != nil {
		p.Price = &domain.PriceBounds{Min: minPrice, Max: maxPrice}
	}

	if v, err := strconv.ParseBool(q.Get("discount_only")); err == nil {
		p.DiscountOnly = &v
	}
	if v, err := strconv.Atoi(q.Get("min_discount")); err == nil {
		p.MinDiscount = &v
	}
	if v, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil {
		p.MinRating = &v
	}

	if vs, ok := q["screen_size"]; ok {
		sizes := make([]float64, 0, len(vs))
		for _, s := range vs {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				sizes = append(sizes, v)
			}
		}
		p.ScreenSizes = &sizes
	}

	if search := q.Get("search"); search != "" {
		p.Search = &search
	}

	return domain.FilterSpec{}.Merge(p)
}

func parseInt64(s string) *int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// POST /v1/cart/items JSON {"product_id": string} (200 OK, 400 Bad request, 503 Service unavailable)
// GET /v1/cart/items (200 OK)
// PUT /v1/cart/items/{id} JSON {"quantity": int} (200 OK, 400, 503)
// DELETE /v1/cart/items/{id} (200 OK, 503)
// GET /v1/cart/count (200 OK)

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(mux *http.ServeMux, cart port.CartManager) {
	h := CartHandler{cart}
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("GET /v1/cart/items", h.GetItems)
	mux.HandleFunc("PUT /v1/cart/items/{id}", h.PutItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("GET /v1/cart/count", h.GetCount)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	sid := sessionFromContext(r.Context())
	ok := h.cart.AddToCart(r.Context(), sid, req.ProductID)
	writeOK(w, op, ok)
}

func (h CartHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetItems"

	sid := sessionFromContext(r.Context())
	items := h.cart.CartItems(r.Context(), sid)
	writeJSON(w, op, CartItemsResponse{Items: toCartItemViews(items)})
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	log := slog.With("op", op)

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	sid := sessionFromContext(r.Context())
	ok := h.cart.SetCartQuantity(
		r.Context(), sid, r.PathValue("id"), req.Quantity,
	)
	writeOK(w, op, ok)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"

	sid := sessionFromContext(r.Context())
	ok := h.cart.RemoveCartItem(r.Context(), sid, r.PathValue("id"))
	writeOK(w, op, ok)
}

func (h CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCount"

	sid := sessionFromContext(r.Context())
	count := h.cart.CartCount(r.Context(), sid)
	writeJSON(w, op, CartCountResponse{Count: count})
}

func writeOK(w http.ResponseWriter, op string, ok bool) {
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	writeJSONStatus(w, op, status, OKResponse{OK: ok})
}

func writeJSON(w http.ResponseWriter, op string, v any) {
	writeJSONStatus(w, op, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, op string, status int, v any) {
	log := slog.With("op", op)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
