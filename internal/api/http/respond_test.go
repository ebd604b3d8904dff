package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"rentwheels-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWriteDomainError(t *testing.T) {
	t.Run("Data inconsistency carries both values", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeDomainError(rec, &domain.DataInconsistencyError{
			Field:    "odometer_in_km",
			Stored:   12000,
			Computed: 11000,
		})

		assert.Equal(t, 422, rec.Code)
		var resp errorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "DATA_INCONSISTENCY", resp.Code)
		assert.NotNil(t, resp.Stored)
		assert.Equal(t, 12000.0, *resp.Stored)
		assert.NotNil(t, resp.Computed)
		assert.Equal(t, 11000.0, *resp.Computed)
	})

	t.Run("No base price degrades to manual entry", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeDomainError(rec, domain.ErrNoBasePrice)

		assert.Equal(t, 422, rec.Code)
		var resp errorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.ErrorCodeNoBasePriceConfigured, resp.Code)
		assert.True(t, resp.RequiresManualEntry)
	})

	t.Run("Already approved conflicts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeDomainError(rec, domain.ErrAlreadyApproved)
		assert.Equal(t, 409, rec.Code)
	})
}
