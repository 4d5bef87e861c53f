package v1

import (
	"fmt"
	"net/http"
	"time"

	"aurex-storefront/internal/domain"
	"aurex-storefront/internal/usecase"
	"aurex-storefront/pkg/logger"
	"aurex-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

const eventsHeartbeat = 25 * time.Second

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	view, err := h.cartUC.GetCart(r.Context(), pid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

type cartItemReq struct {
	ProductID domain.ProductID `json:"productId"`
	Quantity  int              `json:"quantity"`
}

func decodeCartItem(w http.ResponseWriter, r *http.Request) (cartItemReq, bool) {
	var req cartItemReq
	if err := utils.DecodeJSON(r, &req); err != nil || req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return req, false
	}
	return req, true
}

// AddToCart defaults to a quantity of one, like the product card's add button.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	req, ok := decodeCartItem(w, r)
	if !ok {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	view, err := h.cartUC.AddItem(r.Context(), pid, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	req, ok := decodeCartItem(w, r)
	if !ok {
		return
	}
	view, err := h.cartUC.UpdateQuantity(r.Context(), pid, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	view, err := h.cartUC.RemoveItem(r.Context(), pid, domain.ProductID(productID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	view, err := h.cartUC.ClearCart(r.Context(), pid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

// Events streams the cart as server-sent events: the current view first, then
// one event per change. A slow reader only ever sees the newest view.
func (h *CartHandler) Events(w http.ResponseWriter, r *http.Request) {
	pid, ok := profileID(w, r)
	if !ok {
		return
	}
	engine, err := h.cartUC.Engine(r.Context(), pid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updates := make(chan domain.CartView, 1)
	unsubscribe := engine.Subscribe(func(v domain.CartView) {
		for {
			select {
			case updates <- v:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	defer unsubscribe()

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	log := logger.WithContext(r.Context())
	send := func(v domain.CartView) bool {
		data, err := json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode cart event")
			return false
		}
		if _, err := fmt.Fprintf(w, "id: %d\nevent: cart\ndata: %s\n\n", v.Version, data); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	current := engine.View()
	last := current.Version
	if !send(current) {
		return
	}

	heartbeat := time.NewTicker(eventsHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case v := <-updates:
			if v.Version <= last {
				continue
			}
			last = v.Version
			if !send(v) {
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil || rc.Flush() != nil {
				return
			}
		}
	}
}
