package validation

import (
	"testing"

	"claimsreview-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestConsolidatePatient(t *testing.T) {
	docs := []models.ProcessedDocument{
		makeDoc("eob-1", models.DocumentTypeEOB, map[string]any{
			"patient": map[string]any{
				"first_name": "Jane",
				"last_name":  "Doe",
				"member_id":  "",
			},
		}),
		makeDoc("bill-1", models.DocumentTypeMedicalBill, map[string]any{
			"patient": map[string]any{
				"first_name":    "J.",
				"member_id":     "M-123",
				"date_of_birth": "1980-04-02",
			},
		}),
	}

	patient := ConsolidatePatient(docs)
	// First non-empty value wins per field, in document order.
	assert.Equal(t, "Jane", patient.FirstName)
	assert.Equal(t, "Doe", patient.LastName)
	assert.Equal(t, "M-123", patient.MemberID)
	assert.Equal(t, "1980-04-02", patient.DateOfBirth)
	assert.Empty(t, patient.GroupNumber)
}
