package domain

import "context"

type ContextKey string

const ProfileContextKey ContextKey = "profile"

// Profile is an anonymous browser profile. Each profile owns one cart, one
// wishlist and one order history.
type Profile struct {
	ID string `json:"id"`
}

func ProfileFromContext(ctx context.Context) (*Profile, bool) {
	p, ok := ctx.Value(ProfileContextKey).(*Profile)
	return p, ok && p != nil
}

func ContextWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, ProfileContextKey, p)
}
