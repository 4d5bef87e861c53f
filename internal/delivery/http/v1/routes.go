package v1

import (
	"net/http"

	"aurex-storefront/pkg/utils"
)

type Handlers struct {
	Catalog  *CatalogHandler
	Search   *SearchHandler
	Cart     *CartHandler
	Coupon   *CouponHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
	Wishlist *WishlistHandler
	Config   *ConfigHandler
	Sitemap  *SitemapHandler
}

// RegisterRoutes mounts the storefront API on mux. Routes that read or change
// per-browser state are wrapped in profile.
func RegisterRoutes(mux *http.ServeMux, h Handlers, profile func(http.Handler) http.Handler) {
	withProfile := func(fn http.HandlerFunc) http.Handler {
		return profile(fn)
	}

	// Config (Public)
	mux.HandleFunc("GET /api/v1/config/enums", h.Config.GetEnums)

	// Catalog (Public)
	mux.HandleFunc("GET /sitemap.xml", h.Sitemap.ServeHTTP)
	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/product/{id}", h.Catalog.GetProductByID)
	mux.HandleFunc("GET /api/v1/products/{slug}", h.Catalog.GetProductDetails)
	mux.HandleFunc("GET /api/v1/search", h.Search.Search)
	mux.HandleFunc("GET /api/v1/coupons", h.Coupon.ListCoupons)

	// Cart
	mux.Handle("GET /api/v1/cart", withProfile(h.Cart.GetCart))
	mux.Handle("POST /api/v1/cart", withProfile(h.Cart.AddToCart))
	mux.Handle("PUT /api/v1/cart", withProfile(h.Cart.UpdateCart))
	mux.Handle("DELETE /api/v1/cart", withProfile(h.Cart.ClearCart))
	mux.Handle("DELETE /api/v1/cart/{productId}", withProfile(h.Cart.RemoveFromCart))
	mux.Handle("GET /api/v1/cart/events", withProfile(h.Cart.Events))
	mux.Handle("POST /api/v1/cart/coupon", withProfile(h.Coupon.ApplyCoupon))
	mux.Handle("DELETE /api/v1/cart/coupon", withProfile(h.Coupon.RemoveCoupon))

	// Checkout & Orders
	mux.Handle("POST /api/v1/checkout", withProfile(h.Checkout.Checkout))
	mux.Handle("GET /api/v1/checkout/status", withProfile(h.Checkout.Status))
	mux.Handle("GET /api/v1/orders", withProfile(h.Order.GetMyOrders))
	mux.Handle("GET /api/v1/orders/{id}", withProfile(h.Order.GetOrder))

	// Wishlist
	mux.Handle("GET /api/v1/wishlist", withProfile(h.Wishlist.GetMyWishlist))
	mux.Handle("POST /api/v1/wishlist", withProfile(h.Wishlist.AddToWishlist))
	mux.Handle("POST /api/v1/wishlist/toggle", withProfile(h.Wishlist.ToggleWishlist))
	mux.Handle("DELETE /api/v1/wishlist/{productId}", withProfile(h.Wishlist.RemoveFromWishlist))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers
}
