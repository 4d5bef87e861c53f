package middleware

import (
	"net/http"

	"aurex-storefront/internal/domain"
	"aurex-storefront/pkg/logger"
	"aurex-storefront/pkg/utils"
)

// ProfileTokenHeader carries a freshly minted profile token back to the client.
const ProfileTokenHeader = "X-Profile-Token"

// NewProfileMiddleware resolves the browser profile of a request. A request
// without a valid token is given a new profile rather than rejected; the
// storefront has no accounts, only per-browser state.
func NewProfileMiddleware(tokens *utils.ProfileTokens, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID := ""
			if token := utils.ExtractToken(r); token != "" {
				id, err := tokens.Validate(token)
				if err != nil {
					logger.WithContext(r.Context()).Debug().Err(err).Msg("Discarding profile token")
				} else {
					profileID = id
				}
			}

			if profileID == "" {
				profileID = utils.GenerateUUID()
				token, err := tokens.Generate(profileID)
				if err != nil {
					logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to issue profile token")
					utils.WriteError(w, http.StatusInternalServerError, "could not start a session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     utils.ProfileCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(tokens.Expiry().Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(ProfileTokenHeader, token)
			}

			if info := infoFromContext(r.Context()); info != nil {
				info.profileID = profileID
			}

			ctx := domain.ContextWithProfile(r.Context(), &domain.Profile{ID: profileID})
			if l := logger.WithContext(ctx); l != nil {
				pl := logger.WithProfileID(*l, profileID)
				ctx = logger.NewContext(ctx, &pl)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
