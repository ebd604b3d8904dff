package domain

import "time"

type ExtensionStatus string

const (
	ExtensionStatusPending  ExtensionStatus = "PENDING"
	ExtensionStatusApproved ExtensionStatus = "APPROVED"
	ExtensionStatusRejected ExtensionStatus = "REJECTED"
)

type PriceSource string

const (
	PriceSourceAuto   PriceSource = "AUTO"
	PriceSourceManual PriceSource = "MANUAL"
)

// Extension is a request to lengthen a rental. Once APPROVED or REJECTED it
// is terminal; approval mutates the owning rental exactly once.
type Extension struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	RentalID    int64           `json:"rental_id"`
	Hours       float64         `json:"extension_hours"`
	Price       float64         `json:"extension_price"`
	Status      ExtensionStatus `json:"status"`
	PriceSource PriceSource     `json:"price_source"`
	TierApplied string          `json:"tier_applied,omitempty"`
	RequestedBy int64           `json:"requested_by"`
	ApprovedBy  *int64          `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
	CreatedOn   time.Time       `json:"created_on"`
}

// ExtensionRequest carries everything needed to create an extension.
// AutoApprove is an authorization decision supplied by the caller; the
// engine never derives roles itself.
type ExtensionRequest struct {
	RentalID    int64
	Hours       float64
	ManualPrice *float64
	RequestedBy int64
	AutoApprove bool
}

// BreakdownLine is one stepped segment of an extension quote.
type BreakdownLine struct {
	Hours    float64 `json:"hours"`
	Rate     float64 `json:"rate"`
	Subtotal float64 `json:"subtotal"`
	Tier     string  `json:"tier,omitempty"`
}

// ExtensionQuote is the structured result of calculateExtensionPrice. When
// no rate is resolvable the quote comes back with RequiresManualEntry set
// instead of an error, so callers can degrade to manual price entry.
type ExtensionQuote struct {
	RentalID            int64           `json:"rental_id"`
	Hours               float64         `json:"hours"`
	BaseRate            float64         `json:"base_rate"`
	RateSource          string          `json:"rate_source"`
	TotalPrice          float64         `json:"total_price"`
	Breakdown           []BreakdownLine `json:"tier_breakdown"`
	NewEndDate          time.Time       `json:"new_end_date"`
	TotalSavings        float64         `json:"total_savings"`
	RequiresManualEntry bool            `json:"requires_manual_entry"`
	ErrorCode           string          `json:"error_code,omitempty"`
}
