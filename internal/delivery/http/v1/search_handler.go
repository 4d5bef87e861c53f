package v1

import (
	"net/http"
	"strings"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/utils"
)

type SearchHandler struct {
	searchUC domain.SearchUsecase
}

func NewSearchHandler(searchUC domain.SearchUsecase) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
	}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if strings.TrimSpace(query) == "" {
		utils.WriteJSON(w, http.StatusOK, domain.Response{
			Success: true,
			Data:    []domain.Product{},
			Meta:    &domain.Pagination{Page: page, Limit: limit},
		})
		return
	}

	products, pagination, err := h.searchUC.Search(r.Context(), query, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    products,
		Meta:    &pagination,
	})
}
