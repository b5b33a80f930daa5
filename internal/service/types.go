package service

// TierDetails is the resolved pricing category of a validated seat.
type TierDetails struct {
	ID    string
	Name  string
	Price float64
	Color string
}

// SeatDetails is returned by seat validation for each requested seat.
type SeatDetails struct {
	SeatID string
	Label  string
	Tier   TierDetails
}

// PreOrderInput is the order candidate checked by the pre-order gate
// before order creation proceeds elsewhere.
type PreOrderInput struct {
	EventID        string
	OrganizationID string
	SessionID      string
	DiscountID     string
	SeatIDs        []string
}

// ApplyUsageInput drives one ledger update. DiscountCode and Amount are
// optional; a non-positive amount still counts the usage.
type ApplyUsageInput struct {
	DiscountID   string
	DiscountCode string
	Amount       float64
}
