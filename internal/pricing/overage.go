package pricing

// DefaultOverageTolerance is how far a stored overage charge may drift from
// its recomputed value before the pair is flagged as inconsistent.
const DefaultOverageTolerance = 0.01

// ComputeOverage returns the charge for distance driven beyond a package's
// included kilometer allowance. Never negative.
func ComputeOverage(totalKmDriven, includedKm, extraKmRate float64) float64 {
	extraKm := totalKmDriven - includedKm
	if extraKm <= 0 {
		return 0
	}
	return RoundCurrency(extraKm * extraKmRate)
}

// OverageAudit compares a previously stored overage charge against the
// freshly recomputed one. Both values are kept so the caller can surface the
// divergence instead of silently overwriting either side.
type OverageAudit struct {
	Stored     float64
	Computed   float64
	Consistent bool
}

// AuditOverage flags stored-vs-computed divergence beyond tolerance. The
// computed value is what new output should use; the stored one stays in the
// audit for reporting.
func AuditOverage(stored, computed, tolerance float64) OverageAudit {
	diff := stored - computed
	if diff < 0 {
		diff = -diff
	}
	return OverageAudit{
		Stored:     stored,
		Computed:   computed,
		Consistent: diff <= tolerance,
	}
}
