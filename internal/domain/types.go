package domain

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// --- Shared Custom Types ---

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductID identifies a product. Catalog feeds carry ids either as strings
// or as integers; both decode into the same string form.
type ProductID string

func (id ProductID) String() string {
	return string(id)
}

// UnmarshalJSON accepts "w1" as well as 42.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

// EffectivePrice is the unit price a shopper pays: the discounted price when
// one is set, else the list price. A zero list price stands in for "unknown".
func EffectivePrice(price decimal.Decimal, discountPrice decimal.NullDecimal) decimal.Decimal {
	if discountPrice.Valid {
		return discountPrice.Decimal
	}
	return price
}

// Pagination
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// Response wraps paginated results.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    *Pagination `json:"meta,omitempty"`
}
