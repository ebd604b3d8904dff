package pricing

import (
	"fmt"
	"math"

	"rentwheels-backend/internal/domain"
)

// Quote is a stepped price computation: one line per tier segment touched,
// plus the rounded total.
type Quote struct {
	Lines []domain.BreakdownLine
	Total float64
}

// ComputeSteppedPrice walks the ordered tiers and prices extensionHours of
// additional duration starting at elapsedHours of cumulative rental
// duration. Each tier contributes the intersection of its window with the
// requested range, priced at the tier's effective rate. Hours past the last
// tier are priced at the last tier's rate, or the base rate when no tiers
// are configured; hours are never silently dropped.
//
// The hour components of the returned lines always sum to extensionHours
// exactly. Accumulation is unrounded; the total is rounded once at the end.
func ComputeSteppedPrice(baseRate, elapsedHours, extensionHours float64, tiers []domain.PricingTier) (*Quote, error) {
	if extensionHours <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	cursor := elapsedHours
	remaining := extensionHours

	// Hours past the last tier window fall back to the last tier's rate,
	// even when the elapsed duration already lies beyond every window and
	// no tier intersects the walk. Base rate only when no tiers exist.
	fallbackRate := baseRate
	if len(tiers) > 0 {
		fallbackRate = tierRate(baseRate, tiers[len(tiers)-1])
	}

	var lines []domain.BreakdownLine
	var total float64

	for _, tier := range tiers {
		if remaining <= 0 {
			break
		}
		upper := math.Inf(1)
		if tier.MaxHours != nil {
			upper = *tier.MaxHours
		}
		lo := math.Max(cursor, tier.MinHours)
		hi := math.Min(upper, cursor+remaining)
		if hi <= lo {
			continue
		}

		hours := hi - lo
		rate := tierRate(baseRate, tier)
		lines = append(lines, domain.BreakdownLine{
			Hours:    hours,
			Rate:     rate,
			Subtotal: hours * rate,
			Tier:     tierLabel(tier),
		})
		total += hours * rate
		cursor += hours
		remaining -= hours
	}

	if remaining > 0 {
		lines = append(lines, domain.BreakdownLine{
			Hours:    remaining,
			Rate:     fallbackRate,
			Subtotal: remaining * fallbackRate,
		})
		total += remaining * fallbackRate
	}

	return &Quote{Lines: lines, Total: RoundCurrency(total)}, nil
}

// tierRate is the effective hourly rate a tier charges: the base rate
// discounted by the tier's percentage, or the tier's fixed replacement rate.
func tierRate(baseRate float64, tier domain.PricingTier) float64 {
	if tier.Method == domain.CalculationMethodFixed {
		return tier.PriceAmount
	}
	return baseRate * (1 - tier.DiscountPercent/100)
}

func tierLabel(tier domain.PricingTier) string {
	if tier.MaxHours == nil {
		return fmt.Sprintf("%gh+", tier.MinHours)
	}
	return fmt.Sprintf("%g-%gh", tier.MinHours, *tier.MaxHours)
}
