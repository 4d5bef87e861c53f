package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileTokens_RoundTrip(t *testing.T) {
	tokens := NewProfileTokens("secret", time.Hour)
	id := GenerateUUID()

	tok, err := tokens.Generate(id)
	require.NoError(t, err)

	got, err := tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestProfileTokens_Rejects(t *testing.T) {
	tokens := NewProfileTokens("secret", time.Hour)
	tok, err := tokens.Generate(GenerateUUID())
	require.NoError(t, err)

	_, err = NewProfileTokens("other", time.Hour).Validate(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	expired, err := NewProfileTokens("secret", -time.Minute).Generate(GenerateUUID())
	require.NoError(t, err)
	_, err = tokens.Validate(expired)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	notUUID, err := tokens.Generate("admin")
	require.NoError(t, err)
	_, err = tokens.Validate(notUUID)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = tokens.Validate("garbage")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = NewProfileTokens("", time.Hour).Generate(GenerateUUID())
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", ExtractToken(r))

	r.AddCookie(&http.Cookie{Name: ProfileCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", ExtractToken(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", ExtractToken(r))
}

func TestSlugs(t *testing.T) {
	assert.Equal(t, "mens-chrono-watch", GenerateSlug("Men's Chrono Watch!"))
	assert.Equal(t, "aurex-trail-ana-digi", NameSlug("Aurex  Trail Ana-Digi"))
	assert.Equal(t, "best-seller", TagSlug("Best Seller"))
	assert.Equal(t, "", NameSlug("!!"))
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 7, ParseInt("7", 1))
	assert.Equal(t, 1, ParseInt("x", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.True(t, ParseBool("TRUE"))
	assert.True(t, ParseBool("1"))
	assert.False(t, ParseBool("no"))
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":2}`))
	require.NoError(t, DecodeJSON(r, &body))
	assert.Equal(t, 2, body.Quantity)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":2,"price":1}`))
	assert.Error(t, DecodeJSON(r, &body))
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusBadRequest, "nope")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())
}
