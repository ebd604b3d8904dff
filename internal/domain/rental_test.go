package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeRemaining(t *testing.T) {
	t.Run("Remaining derives from the four source fields", func(t *testing.T) {
		r := Rental{
			TotalAmount:         300,
			OverageCharge:       375,
			TotalExtensionPrice: 125, // two approved extensions, 50 + 75
			DepositAmount:       200,
		}
		r.RecomputeRemaining()
		assert.Equal(t, 600.0, r.RemainingAmount)
	})

	t.Run("Remaining never goes below zero", func(t *testing.T) {
		r := Rental{TotalAmount: 100, DepositAmount: 500}
		r.RecomputeRemaining()
		assert.Equal(t, 0.0, r.RemainingAmount)
	})

	t.Run("Order of extension application does not matter", func(t *testing.T) {
		a := Rental{TotalAmount: 300, OverageCharge: 375, DepositAmount: 200}
		a.TotalExtensionPrice += 50
		a.RecomputeRemaining()
		a.TotalExtensionPrice += 75
		a.RecomputeRemaining()

		b := Rental{TotalAmount: 300, OverageCharge: 375, DepositAmount: 200}
		b.TotalExtensionPrice += 75
		b.RecomputeRemaining()
		b.TotalExtensionPrice += 50
		b.RecomputeRemaining()

		assert.Equal(t, a.RemainingAmount, b.RemainingAmount)
		assert.Equal(t, 600.0, a.RemainingAmount)
	})
}

func TestBookedHours(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := Rental{StartDate: start, EndDate: start.Add(26 * time.Hour)}
	assert.Equal(t, 26.0, r.BookedHours())
}
