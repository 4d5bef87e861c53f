package v1

import (
	"net/http"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/cache"
	"aurex-storefront/pkg/utils"
)

type ConfigHandler struct {
	cache   cache.CacheService
	pricing domain.PricingPolicy
}

func NewConfigHandler(cache cache.CacheService, pricing domain.PricingPolicy) *ConfigHandler {
	return &ConfigHandler{cache: cache, pricing: pricing}
}

type filterOptions struct {
	Genders     []string            `json:"genders"`
	Straps      []string            `json:"straps"`
	Types       []string            `json:"types"`
	PriceRanges []domain.PriceRange `json:"priceRanges"`
}

// GET /api/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	response, _ := cache.GetOrLoad(h.cache, "system:config:enums", time.Hour, func() (map[string]interface{}, error) {
		return map[string]interface{}{
			"paymentMethods": domain.PaymentMethods,
			"sortOptions":    domain.SortOptions,
			"filters": filterOptions{
				Genders:     domain.Genders,
				Straps:      domain.Straps,
				Types:       domain.WatchTypes,
				PriceRanges: domain.PriceRanges,
			},
			"pricing": h.pricing,
		}, nil
	})

	w.Header().Set("Cache-Control", "public, max-age=3600")
	utils.WriteJSON(w, http.StatusOK, response)
}
