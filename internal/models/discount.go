package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFlatOff    DiscountType = "FLAT_OFF"
	DiscountTypeBuyNGetN   DiscountType = "BUY_N_GET_N"
)

// DiscountParameters is a closed tagged union over the three supported
// discount shapes, stored as jsonb. Exactly the fields of the variant
// named by Type are meaningful.
type DiscountParameters struct {
	Type DiscountType `json:"type"`

	// PERCENTAGE
	Percentage *float64 `json:"percentage,omitempty"`

	// FLAT_OFF
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`

	// BUY_N_GET_N
	BuyQuantity *int `json:"buyQuantity,omitempty"`
	GetQuantity *int `json:"getQuantity,omitempty"`
}

// Validate checks the variant's fields and normalizes the currency code.
func (p *DiscountParameters) Validate() error {
	switch p.Type {
	case DiscountTypePercentage:
		if p.Percentage == nil {
			return fmt.Errorf("percentage discount requires a percentage")
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return fmt.Errorf("percentage must be between 0 and 100, got %v", *p.Percentage)
		}
	case DiscountTypeFlatOff:
		if p.Amount == nil || *p.Amount <= 0 {
			return fmt.Errorf("flat-off discount requires a positive amount")
		}
		p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
		if len(p.Currency) != 3 {
			return fmt.Errorf("currency must be a 3-letter code, got %q", p.Currency)
		}
	case DiscountTypeBuyNGetN:
		if p.BuyQuantity == nil || *p.BuyQuantity <= 0 {
			return fmt.Errorf("buy-n-get-n discount requires a positive buy quantity")
		}
		if p.GetQuantity == nil || *p.GetQuantity <= 0 {
			return fmt.Errorf("buy-n-get-n discount requires a positive get quantity")
		}
	default:
		return fmt.Errorf("unknown discount type %q", p.Type)
	}

	return nil
}

// AmountFor computes the discounted amount for a set of seat prices.
// Percentage takes its share of the subtotal, flat-off is capped at the
// subtotal, and buy-N-get-N makes the cheapest N seats of every full
// bundle free.
func (p DiscountParameters) AmountFor(seatPrices []float64) float64 {
	var subtotal float64
	for _, price := range seatPrices {
		subtotal += price
	}

	switch p.Type {
	case DiscountTypePercentage:
		if p.Percentage == nil {
			return 0
		}
		return subtotal * *p.Percentage / 100

	case DiscountTypeFlatOff:
		if p.Amount == nil {
			return 0
		}
		if *p.Amount > subtotal {
			return subtotal
		}
		return *p.Amount

	case DiscountTypeBuyNGetN:
		if p.BuyQuantity == nil || p.GetQuantity == nil {
			return 0
		}
		bundle := *p.BuyQuantity + *p.GetQuantity
		if bundle <= 0 || len(seatPrices) < bundle {
			return 0
		}

		sorted := make([]float64, len(seatPrices))
		copy(sorted, seatPrices)
		sort.Float64s(sorted)

		free := (len(sorted) / bundle) * *p.GetQuantity
		var amount float64
		for i := 0; i < free && i < len(sorted); i++ {
			amount += sorted[i]
		}
		return amount
	}

	return 0
}

// Discount is scoped to one event; its code is unique per event. Usage
// fields are mutated only by the ledger update, monotonically.
type Discount struct {
	bun.BaseModel `bun:"table:discounts,alias:d"`

	ID              string             `bun:"id,pk" json:"id"`
	EventID         string             `bun:"event_id,notnull" json:"event_id"`
	Code            string             `bun:"code,notnull" json:"code"`
	Parameters      DiscountParameters `bun:"parameters,type:jsonb" json:"parameters"`
	MaxUsage        *int               `bun:"max_usage" json:"max_usage,omitempty"`
	CurrentUsage    int                `bun:"current_usage,notnull,default:0" json:"current_usage"`
	ActiveFrom      *time.Time         `bun:"active_from" json:"active_from,omitempty"`
	ExpiresAt       *time.Time         `bun:"expires_at" json:"expires_at,omitempty"`
	Active          bool               `bun:"is_active,notnull" json:"is_active"`
	Public          bool               `bun:"is_public,notnull" json:"is_public"`
	DiscountedTotal *float64           `bun:"discounted_total" json:"discounted_total,omitempty"`

	ApplicableTierIDs    []string `bun:"applicable_tier_ids,array" json:"applicable_tier_ids,omitempty"`
	ApplicableSessionIDs []string `bun:"applicable_session_ids,array" json:"applicable_session_ids,omitempty"`
}

// IsWithinWindow reports whether now falls inside the optional
// active-from / expires-at window.
func (d *Discount) IsWithinWindow(now time.Time) bool {
	if d.ActiveFrom != nil && now.Before(*d.ActiveFrom) {
		return false
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return false
	}
	return true
}

// UsageExhausted reports whether the usage limit has been reached.
// Discounts without a max usage never exhaust.
func (d *Discount) UsageExhausted() bool {
	return d.MaxUsage != nil && d.CurrentUsage >= *d.MaxUsage
}
