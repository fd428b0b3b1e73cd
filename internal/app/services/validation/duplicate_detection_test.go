package validation

import (
	"testing"

	"claimsreview-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDuplicateCrossProvider(t *testing.T) {
	t.Run("same code and date from two providers", func(t *testing.T) {
		billA := makeDoc("bill-a", models.DocumentTypeMedicalBill, map[string]any{
			"provider": provider("City Medical Center"),
			"line_items": lines(
				map[string]any{"cpt_code": "80053", "amount": 45.0, "service_date": "2026-02-01"},
			),
		})
		billB := makeDoc("bill-b", models.DocumentTypeMedicalBill, map[string]any{
			"provider": provider("Lakeside Clinic"),
			"line_items": lines(
				map[string]any{"cpt_code": "80053", "amount": 45.0, "service_date": "2026-02-01"},
			),
		})
		ix := makeIndex(billA, billB)

		results := checkDuplicateCrossProvider(ix)
		require.Len(t, results, 1)
		res := results[0]
		assert.Equal(t, models.StatusFlagged, res.Status)
		assert.Equal(t, models.SeverityMedium, res.Severity)
		require.NotNil(t, res.PotentialOvercharge)
		// Only the spend beyond the largest single line is suspect.
		assert.Equal(t, 45.0, *res.PotentialOvercharge)
		assert.ElementsMatch(t, []string{"bill-a", "bill-b"}, res.AffectedDocIDs)
		assert.Equal(t, "dup|80053|2026-02-01", res.OverchargeKey)
	})

	t.Run("eob plus its own bill is not a duplicate", func(t *testing.T) {
		eob := makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"provider": provider("City Medical Center"),
			"line_items": lines(
				map[string]any{"cpt_code": "80053", "billed_amount": 45.0, "service_date": "2026-02-01"},
			),
		})
		bill := makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"provider": provider("City Medical Center"),
			"line_items": lines(
				map[string]any{"cpt_code": "80053", "amount": 45.0, "service_date": "2026-02-01"},
			),
		})
		ix := makeIndex(eob, bill)
		assert.Empty(t, checkDuplicateCrossProvider(ix))
	})

	t.Run("different dates do not group", func(t *testing.T) {
		billA := makeDoc("bill-a", models.DocumentTypeMedicalBill, map[string]any{
			"provider": provider("City Medical Center"),
			"line_items": lines(
				map[string]any{"cpt_code": "80053", "amount": 45.0, "service_date": "2026-02-01"},
			),
		})
		billB := makeDoc("bill-b", models.DocumentTypeMedicalBill, map[string]any{
			"provider": provider("Lakeside Clinic"),
			"line_items": lines(
				map[string]any{"cpt_code": "80053", "amount": 45.0, "service_date": "2026-02-02"},
			),
		})
		ix := makeIndex(billA, billB)
		assert.Empty(t, checkDuplicateCrossProvider(ix))
	})
}

func TestCheckDuplicateSameProvider(t *testing.T) {
	t.Run("two same-day entries are plausible", func(t *testing.T) {
		bill := makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"provider": provider("City Medical Center"),
			"line_items": lines(
				map[string]any{"cpt_code": "85025", "amount": 30.0, "service_date": "2026-02-01"},
				map[string]any{"cpt_code": "85025", "amount": 30.0, "service_date": "2026-02-01"},
			),
		})
		ix := makeIndex(bill)
		assert.Empty(t, checkDuplicateSameProvider(ix))
	})

	t.Run("three same-day entries flag the spend beyond two", func(t *testing.T) {
		bill := makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"provider": provider("City Medical Center"),
			"line_items": lines(
				map[string]any{"cpt_code": "85025", "amount": 30.0, "service_date": "2026-02-01"},
				map[string]any{"cpt_code": "85025", "amount": 30.0, "service_date": "2026-02-01"},
				map[string]any{"cpt_code": "85025", "amount": 30.0, "service_date": "2026-02-01"},
				map[string]any{"cpt_code": "85025", "amount": 30.0, "service_date": "2026-02-01"},
			),
		})
		ix := makeIndex(bill)

		results := checkDuplicateSameProvider(ix)
		require.Len(t, results, 1)
		res := results[0]
		assert.Equal(t, models.SeverityMedium, res.Severity)
		require.NotNil(t, res.PotentialOvercharge)
		assert.Equal(t, 60.0, *res.PotentialOvercharge)
		assert.Contains(t, res.Detail, "4 times")
	})
}
