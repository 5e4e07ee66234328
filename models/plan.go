package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Plan is a fixed (duration, price) pairing. Plans are server-authoritative:
// a client never supplies a price.
type Plan struct {
	ID       string          `json:"id"`
	Duration int             `json:"duration"`
	Price    decimal.Decimal `json:"price"`
	Free     bool            `json:"free,omitempty"`
}

// MarshalJSON renders Price with exactly two decimal places.
func (p Plan) MarshalJSON() ([]byte, error) {
	type alias Plan
	return json.Marshal(struct {
		alias
		Price string `json:"price"`
	}{alias(p), p.Price.StringFixed(2)})
}

// PlanFree is the identifier of the non-purchasable one-day plan.
const PlanFree = "free"
