package v1

import (
	"net/http"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/usecase"
	"aurex-storefront/pkg/utils"
)

type WishlistHandler struct {
	usecase *usecase.WishlistUsecase
}

func NewWishlistHandler(usecase *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{usecase: usecase}
}

func (h *WishlistHandler) GetMyWishlist(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	wishlist, err := h.usecase.GetMyWishlist(r.Context(), pid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, wishlist)
}

type WishlistRequest struct {
	ProductID domain.ProductID `json:"productId"`
}

func decodeWishlistReq(w http.ResponseWriter, r *http.Request) (WishlistRequest, bool) {
	var req WishlistRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return req, false
	}
	return req, true
}

func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	req, ok := decodeWishlistReq(w, r)
	if !ok {
		return
	}
	wishlist, err := h.usecase.AddToWishlist(r.Context(), pid, req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, wishlist)
}

func (h *WishlistHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	req, ok := decodeWishlistReq(w, r)
	if !ok {
		return
	}
	wishlist, inList, err := h.usecase.Toggle(r.Context(), pid, req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"inWishlist": inList,
		"items":      wishlist.Items,
	})
}

func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	wishlist, err := h.usecase.RemoveFromWishlist(r.Context(), pid, domain.ProductID(productID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, wishlist)
}
