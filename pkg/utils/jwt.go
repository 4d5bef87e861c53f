package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ProfileCookie = "aurex_profile"

var ErrInvalidToken = errors.New("invalid profile token")

// ProfileTokens signs and verifies the opaque token that identifies a browser
// profile. It carries no identity beyond the profile id.
type ProfileTokens struct {
	secret []byte
	expiry time.Duration
}

func NewProfileTokens(secret string, expiry time.Duration) *ProfileTokens {
	return &ProfileTokens{secret: []byte(secret), expiry: expiry}
}

func (p *ProfileTokens) Expiry() time.Duration {
	return p.expiry
}

func (p *ProfileTokens) Generate(profileID string) (string, error) {
	if len(p.secret) == 0 {
		return "", errors.New("profile secret not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   profileID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
	})
	return token.SignedString(p.secret)
}

// Validate returns the profile id carried by tokenString.
func (p *ProfileTokens) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "parse profile token"), ErrInvalidToken)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.Mark(errors.Wrap(err, "profile id"), ErrInvalidToken)
	}
	return claims.Subject, nil
}

func GenerateUUID() string {
	return uuid.NewString()
}

// ExtractToken reads the profile token from the Authorization header, falling
// back to the profile cookie.
func ExtractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	if cookie, err := r.Cookie(ProfileCookie); err == nil {
		return cookie.Value
	}
	return ""
}
