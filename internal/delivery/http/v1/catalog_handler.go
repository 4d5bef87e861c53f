package v1

import (
	"net/http"
	"strconv"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/usecase"
	"aurex-storefront/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

// ListProducts accepts the collection page parameters: category, gender,
// strap, type, price, inStock, rating and sort.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := domain.ProductQuery{
		Category: query.Get("category"),
		Gender:   query.Get("gender"),
		Strap:    query.Get("strap"),
		Type:     query.Get("type"),
		PriceID:  query.Get("price"),
		InStock:  utils.ParseBool(query.Get("inStock")),
		Sort:     query.Get("sort"),
	}
	if v := query.Get("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "rating must be a number")
			return
		}
		q.MinRating = &rating
	}

	products, err := h.catalogUC.ListProducts(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":  products,
		"total": len(products),
	})
}

func (h *CatalogHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		utils.WriteError(w, http.StatusBadRequest, "Slug required")
		return
	}

	product, err := h.catalogUC.GetProductDetails(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	product, err := h.catalogUC.GetProductByID(r.Context(), domain.ProductID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}
