package v1

import (
	"net/http"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/usecase"
	"aurex-storefront/pkg/utils"

	"github.com/cockroachdb/errors"
)

type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: uc}
}

type checkoutReq struct {
	PaymentMethod string `json:"paymentMethod"`
}

// Checkout answers 201 with the order on success. A declined payment answers
// 402 with the failure result so the client can show the reason.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	var req checkoutReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	res, err := h.checkoutUC.Checkout(r.Context(), pid, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentFailed) {
			utils.WriteJSON(w, http.StatusPaymentRequired, res)
			return
		}
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.checkoutUC.Status(pid))
}
