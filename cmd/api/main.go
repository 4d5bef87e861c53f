package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"aurex-storefront/config"
	"aurex-storefront/internal/delivery/http/middleware"
	v1 "aurex-storefront/internal/delivery/http/v1"
	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/infrastructure/cache"
	"aurex-storefront/internal/repository/catalog"
	"aurex-storefront/internal/repository/kv"
	"aurex-storefront/internal/repository/store"
	"aurex-storefront/internal/usecase"
	"aurex-storefront/pkg/clock"
	"aurex-storefront/pkg/logger"
	"aurex-storefront/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Storage
	kvStore, err := kv.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
	}

	// Initialize Repositories
	productRepo, err := catalog.NewProductRepository(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load product catalog")
	}
	couponRepo, err := catalog.NewCouponRepository(cfg.CouponFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load coupon book")
	}
	cartRepo := store.NewCartStore(kvStore)
	wishlistRepo := store.NewWishlistStore(kvStore)
	orderRepo := store.NewOrderStore(kvStore)

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	pricing := domain.PricingPolicy{
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		TaxRate:               cfg.TaxRate,
	}

	// --- Modules Initialization ---

	// Cart Module
	cartRegistry := usecase.NewCartRegistry(cartRepo)
	cartUC := usecase.NewCartUsecase(cartRegistry, productRepo, cfg.MaxCartQuantity)
	couponUC := usecase.NewCouponUsecase(couponRepo, cartRegistry, memCache, cfg.CacheProductTTL)

	// Checkout & Orders
	gateway := usecase.NewSimulatedGateway(cfg.PaymentDelay, cfg.PaymentFailureRate)
	checkoutUC := usecase.NewCheckoutUsecase(cartRegistry, orderRepo, gateway, pricing, clock.NewRealClock())
	orderUC := usecase.NewOrderUsecase(orderRepo)

	// Catalog, Search, Sitemap
	catalogUC := usecase.NewCatalogUsecase(productRepo, memCache, cfg.CacheProductTTL)
	searchUC := usecase.NewSearchUsecase(catalogUC, 5*time.Second)
	sitemapUC := usecase.NewSitemapUsecase(productRepo, cfg.FrontendURL, memCache, cfg.CacheSitemapTTL)

	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)

	// Set up Router
	mux := http.NewServeMux()
	tokens := utils.NewProfileTokens(cfg.ProfileSecret, cfg.ProfileTokenExpiry)
	v1.RegisterRoutes(mux, v1.Handlers{
		Catalog:  v1.NewCatalogHandler(catalogUC),
		Search:   v1.NewSearchHandler(searchUC),
		Cart:     v1.NewCartHandler(cartUC),
		Coupon:   v1.NewCouponHandler(couponUC),
		Checkout: v1.NewCheckoutHandler(checkoutUC),
		Order:    v1.NewOrderHandler(orderUC),
		Wishlist: v1.NewWishlistHandler(wishlistUC),
		Config:   v1.NewConfigHandler(memCache, pricing),
		Sitemap:  v1.NewSitemapHandler(sitemapUC),
	}, middleware.NewProfileMiddleware(tokens, cfg.IsProduction()))

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := withGzip(mux)
	handler = rateLimiter.Middleware()(handler)
	handler = middleware.RequestLogger(handler)
	handler = middleware.NewCORSMiddleware(cfg)(handler)

	srv := newServer(addr, handler)

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("aurex-storefront", "1.0.0", cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Persist every cart before the store goes away
	if err := cartRegistry.Shutdown(cartFlushTimeout); err != nil {
		log.Error().Err(err).Msg("Some carts were not persisted")
	}
	if err := kvStore.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close store")
	}

	logger.ServiceStop("aurex-storefront")
}

const cartFlushTimeout = 15 * time.Second

// newServer derives every request context from a base context that is
// cancelled when Shutdown starts, so open cart event streams end instead of
// holding the server open until the deadline.
func newServer(addr string, handler http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}

// withGzip compresses everything except the event stream, which must reach
// the client as soon as it is written.
func withGzip(next http.Handler) http.Handler {
	compressed := gziphandler.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/events") {
			next.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
}
