package validation

import (
	"claimsreview-service/internal/app/models"
)

// ConsolidatePatient merges patient demographics across the packet's
// documents. The first non-empty value wins per field, in document order, so
// consolidation is deterministic.
func ConsolidatePatient(docs []models.ProcessedDocument) models.PatientInfo {
	var patient models.PatientInfo
	for i := range docs {
		pd := asMap(docs[i].ExtractedData["patient"])
		if pd == nil {
			continue
		}
		if patient.FirstName == "" {
			patient.FirstName = asString(pd["first_name"])
		}
		if patient.LastName == "" {
			patient.LastName = asString(pd["last_name"])
		}
		if patient.DateOfBirth == "" {
			patient.DateOfBirth = asString(pd["date_of_birth"])
		}
		if patient.MemberID == "" {
			patient.MemberID = asString(pd["member_id"])
		}
		if patient.GroupNumber == "" {
			patient.GroupNumber = asString(pd["group_number"])
		}
		if patient.Address == "" {
			patient.Address = asString(pd["address"])
		}
	}
	return patient
}
