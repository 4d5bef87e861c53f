package v1

import (
	"context"
	"net/http"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/logger"
	"aurex-storefront/pkg/utils"

	"github.com/cockroachdb/errors"
)

// statusFor maps sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsAny(err, domain.ErrProductNotFound, domain.ErrOrderNotFound, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.IsAny(err,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidPaymentMethod,
		domain.ErrEmptyCart,
		domain.ErrInvalidCoupon,
		domain.ErrCouponInactive,
		domain.ErrCouponMinSpend,
		domain.ErrUnknownCouponType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError reports err to the client. Server-side failures are logged and
// answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Request failed")
		utils.WriteError(w, status, http.StatusText(status))
		return
	}
	utils.WriteError(w, status, err.Error())
}

// profileID returns the profile resolved by the profile middleware.
func profileID(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, ok := domain.ProfileFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return p.ID, true
}
