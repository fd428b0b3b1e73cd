package validation

import (
	"testing"

	"claimsreview-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBillLineItemSum(t *testing.T) {
	t.Run("mismatch without inferring direction", func(t *testing.T) {
		// A bill whose line items sum to less than its stated total. The
		// finding reports the gap but never claims it as an overcharge;
		// a discrepancy alone does not say who owes whom.
		ix := makeIndex(makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"total_charges": 678.0,
			"line_items": lines(
				map[string]any{"cpt_code": "99213", "amount": 150.0},
				map[string]any{"cpt_code": "80053", "amount": 45.0},
			),
		}))

		results := checkBillLineItemSum(ix)
		require.Len(t, results, 1)
		res := results[0]
		assert.Equal(t, models.StatusMismatch, res.Status)
		assert.Equal(t, models.SeverityMedium, res.Severity)
		assert.Nil(t, res.PotentialOvercharge)
		assert.Contains(t, res.Detail, "$483.00 discrepancy")
		require.NotNil(t, res.Expected)
		assert.Equal(t, 678.0, *res.Expected)
		require.NotNil(t, res.Actual)
		assert.Equal(t, 195.0, *res.Actual)
	})

	t.Run("consistent bill passes", func(t *testing.T) {
		ix := makeIndex(makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"total_charges": 195.0,
			"line_items": lines(
				map[string]any{"cpt_code": "99213", "amount": 150.0},
				map[string]any{"cpt_code": "80053", "amount": 45.0},
			),
		}))

		results := checkBillLineItemSum(ix)
		require.Len(t, results, 1)
		assert.Equal(t, models.StatusPass, results[0].Status)
	})

	t.Run("missing total abstains", func(t *testing.T) {
		ix := makeIndex(makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"total_charges": nil,
			"line_items":    lines(map[string]any{"cpt_code": "99213", "amount": 150.0}),
		}))
		assert.Empty(t, checkBillLineItemSum(ix))
	})
}

func TestCheckEOBBilledSum(t *testing.T) {
	t.Run("total above line sum is an overcharge", func(t *testing.T) {
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"total_billed": 500.0,
			"line_items": lines(
				map[string]any{"cpt_code": "99213", "billed_amount": 150.0},
				map[string]any{"cpt_code": "80053", "billed_amount": 45.0},
			),
		}))

		results := checkEOBBilledSum(ix)
		require.Len(t, results, 1)
		require.NotNil(t, results[0].PotentialOvercharge)
		assert.Equal(t, 305.0, *results[0].PotentialOvercharge)
	})

	t.Run("total below line sum carries no overcharge", func(t *testing.T) {
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"total_billed": 100.0,
			"line_items":   lines(map[string]any{"cpt_code": "99213", "billed_amount": 150.0}),
		}))

		results := checkEOBBilledSum(ix)
		require.Len(t, results, 1)
		assert.Equal(t, models.StatusMismatch, results[0].Status)
		assert.Nil(t, results[0].PotentialOvercharge)
	})

	t.Run("tolerance absorbs sub-cent drift", func(t *testing.T) {
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"total_billed": 195.005,
			"line_items": lines(
				map[string]any{"cpt_code": "99213", "billed_amount": 150.0},
				map[string]any{"cpt_code": "80053", "billed_amount": 45.0},
			),
		}))

		results := checkEOBBilledSum(ix)
		require.Len(t, results, 1)
		assert.Equal(t, models.StatusPass, results[0].Status)
	})
}

func TestCheckEOBPatientResponsibilityBreakdown(t *testing.T) {
	t.Run("stated responsibility above breakdown is an overcharge", func(t *testing.T) {
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"total_patient_responsibility": 200.0,
			"total_deductible":             100.0,
			"total_copay":                  25.0,
			"total_coinsurance":            0.0,
		}))

		results := checkEOBPatientResponsibilityBreakdown(ix)
		require.Len(t, results, 1)
		require.NotNil(t, results[0].PotentialOvercharge)
		assert.Equal(t, 75.0, *results[0].PotentialOvercharge)
	})

	t.Run("zero breakdown abstains", func(t *testing.T) {
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"total_patient_responsibility": 200.0,
		}))
		assert.Empty(t, checkEOBPatientResponsibilityBreakdown(ix))
	})
}

func TestCheckBillBalanceDueMath(t *testing.T) {
	t.Run("inflated balance due", func(t *testing.T) {
		ix := makeIndex(makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"total_charges":         1000.0,
			"insurance_adjustments": 200.0,
			"insurance_payments":    500.0,
			"patient_payments":      0.0,
			"balance_due":           450.0,
		}))

		results := checkBillBalanceDueMath(ix)
		require.Len(t, results, 1)
		assert.Equal(t, models.StatusMismatch, results[0].Status)
		require.NotNil(t, results[0].PotentialOvercharge)
		assert.Equal(t, 150.0, *results[0].PotentialOvercharge)
	})

	t.Run("consistent balance passes", func(t *testing.T) {
		ix := makeIndex(makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"total_charges":         1000.0,
			"insurance_adjustments": 200.0,
			"insurance_payments":    500.0,
			"patient_payments":      100.0,
			"balance_due":           200.0,
		}))

		results := checkBillBalanceDueMath(ix)
		require.Len(t, results, 1)
		assert.Equal(t, models.StatusPass, results[0].Status)
	})
}

func TestCheckEOBBalanceIdentity(t *testing.T) {
	t.Run("patient asked for more than billed minus paid", func(t *testing.T) {
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"total_billed":                 1000.0,
			"total_insurance_paid":         700.0,
			"total_patient_responsibility": 400.0,
		}))

		results := checkEOBBalanceIdentity(ix)
		require.Len(t, results, 1)
		require.NotNil(t, results[0].PotentialOvercharge)
		assert.Equal(t, 100.0, *results[0].PotentialOvercharge)
	})

	t.Run("contractual adjustment shortfall stays silent", func(t *testing.T) {
		// Patient owing less than billed minus paid is the normal effect
		// of network discounts, not an error.
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"total_billed":                 1000.0,
			"total_insurance_paid":         700.0,
			"total_patient_responsibility": 100.0,
		}))
		assert.Empty(t, checkEOBBalanceIdentity(ix))
	})
}

func TestCheckLineAllowedExceedsBilled(t *testing.T) {
	ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
		"line_items": lines(
			map[string]any{"cpt_code": "99213", "billed_amount": 100.0, "allowed_amount": 140.0},
			map[string]any{"cpt_code": "80053", "billed_amount": 45.0, "allowed_amount": 40.0},
		),
	}))

	results := checkLineAllowedExceedsBilled(ix)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Detail, "99213")
	assert.Nil(t, results[0].PotentialOvercharge)
}
