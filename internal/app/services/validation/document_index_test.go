package validation

import (
	"testing"

	"claimsreview-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenLineItems(t *testing.T) {
	t.Run("eob lines carry allowed amount and denial reason", func(t *testing.T) {
		ix := makeIndex(makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"provider": provider("City Medical Center"),
			"line_items": lines(
				map[string]any{
					"cpt_code":       "99213",
					"billed_amount":  150.0,
					"allowed_amount": 90.0,
					"service_date":   "2026-02-01",
					"denial_reason":  "not medically necessary",
				},
			),
		}))

		items := ix.LineItems()
		require.Len(t, items, 1)
		assert.Equal(t, "99213", items[0].BillingCode)
		assert.Equal(t, "City Medical Center", items[0].Provider)
		require.NotNil(t, items[0].AllowedAmount)
		assert.Equal(t, 90.0, *items[0].AllowedAmount)
		assert.Equal(t, "not medically necessary", items[0].DenialReason)
	})

	t.Run("ub04 revenue lines use hcpcs code and facility name", func(t *testing.T) {
		ix := makeIndex(makeDoc("ub-1", models.DocumentTypeUB04, map[string]any{
			"facility_name": "General Hospital",
			"revenue_lines": lines(
				map[string]any{"hcpcs_code": "80053", "total_charges": 45.0, "service_date": "2026-02-01"},
			),
		}))

		items := ix.LineItems()
		require.Len(t, items, 1)
		assert.Equal(t, "80053", items[0].BillingCode)
		assert.Equal(t, "General Hospital", items[0].Provider)
	})

	t.Run("lab report lines carry no amounts", func(t *testing.T) {
		ix := makeIndex(makeDoc("lab-1", models.DocumentTypeLabReport, map[string]any{
			"performing_lab":  provider("Quest Diagnostics"),
			"collection_date": "2026-02-01",
			"test_results": lines(
				map[string]any{"cpt_code": "80053", "test_name": "Metabolic panel"},
			),
		}))

		items := ix.LineItems()
		require.Len(t, items, 1)
		assert.Equal(t, "Quest Diagnostics", items[0].Provider)
		assert.Nil(t, items[0].BilledAmount)
		require.NotNil(t, items[0].ServiceDate)
	})

	t.Run("unknown documents contribute no lines", func(t *testing.T) {
		ix := makeIndex(makeDoc("x-1", models.DocumentTypeUnknown, map[string]any{
			"line_items": lines(map[string]any{"cpt_code": "99213"}),
		}))
		assert.Empty(t, ix.LineItems())
	})
}

func TestFindCounterpart(t *testing.T) {
	eob := makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
		"provider":              provider("  City Medical Center "),
		"date_of_service_start": "2026-02-01",
	})

	t.Run("matches same provider within date skew", func(t *testing.T) {
		bill := makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"provider":              provider("city medical center"),
			"date_of_service_start": "2026-02-03",
		})
		ix := makeIndex(eob, bill)
		got := ix.FindCounterpart(ix.ByType(models.DocumentTypeEOB)[0])
		require.NotNil(t, got)
		assert.Equal(t, "bill-1", got.Envelope.DocID)
	})

	t.Run("rejects different provider even on same date", func(t *testing.T) {
		bill := makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"provider":              provider("City Med Ctr"),
			"date_of_service_start": "2026-02-01",
		})
		ix := makeIndex(eob, bill)
		assert.Nil(t, ix.FindCounterpart(ix.ByType(models.DocumentTypeEOB)[0]))
	})

	t.Run("rejects dates beyond the skew window", func(t *testing.T) {
		bill := makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"provider":              provider("City Medical Center"),
			"date_of_service_start": "2026-02-10",
		})
		ix := makeIndex(eob, bill)
		assert.Nil(t, ix.FindCounterpart(ix.ByType(models.DocumentTypeEOB)[0]))
	})

	t.Run("missing bill date is compatible", func(t *testing.T) {
		bill := makeDoc("bill-1", models.DocumentTypeItemizedStatement, map[string]any{
			"provider": provider("City Medical Center"),
		})
		ix := makeIndex(eob, bill)
		got := ix.FindCounterpart(ix.ByType(models.DocumentTypeEOB)[0])
		require.NotNil(t, got)
		assert.Equal(t, "bill-1", got.Envelope.DocID)
	})

	t.Run("tie breaks to earliest date then doc id", func(t *testing.T) {
		later := makeDoc("bill-b", models.DocumentTypeMedicalBill, map[string]any{
			"provider":              provider("City Medical Center"),
			"date_of_service_start": "2026-02-02",
		})
		earlier := makeDoc("bill-a", models.DocumentTypeMedicalBill, map[string]any{
			"provider":              provider("City Medical Center"),
			"date_of_service_start": "2026-02-01",
		})
		ix := makeIndex(eob, later, earlier)
		got := ix.FindCounterpart(ix.ByType(models.DocumentTypeEOB)[0])
		require.NotNil(t, got)
		assert.Equal(t, "bill-a", got.Envelope.DocID)
	})
}
