package validation

import (
	"strconv"

	"claimsreview-service/internal/app/models"
)

// Aggregator derives the FinancialSummary from the document index and the
// merged findings. Each document contributes at most once per total no
// matter how many checks touched it.

// BuildFinancialSummary computes the packet's money totals and the
// de-duplicated potential savings.
func BuildFinancialSummary(ix *DocumentIndex, results []models.ValidationResult) models.FinancialSummary {
	var (
		totalBilled, totalAllowed, totalPaid  float64
		eobPatientResp, billPatientResp       float64
		sawBilled, sawAllowed, sawPaid        bool
		sawEOBPatient, sawBillPatient         bool
	)

	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		if v := asAmount(data["total_billed"]); v != nil {
			totalBilled += *v
			sawBilled = true
		}
		if v := asAmount(data["total_allowed"]); v != nil {
			totalAllowed += *v
			sawAllowed = true
		}
		if v := asAmount(data["total_insurance_paid"]); v != nil {
			totalPaid += *v
			sawPaid = true
		}
		if v := asAmount(data["total_patient_responsibility"]); v != nil {
			eobPatientResp += *v
			sawEOBPatient = true
		}
	}
	for _, bill := range billDocuments(ix) {
		if v := billBalance(bill.ExtractedData); v != nil {
			billPatientResp += *v
			sawBillPatient = true
		}
	}

	summary := models.FinancialSummary{
		PotentialSavings: PotentialSavings(results),
		FlaggedIssues:    countFlaggedIssues(results),
	}
	if sawBilled {
		summary.TotalBilled = ptr(round2(totalBilled))
	}
	if sawAllowed {
		summary.TotalAllowed = ptr(round2(totalAllowed))
	}
	if sawPaid {
		summary.TotalInsurancePaid = ptr(round2(totalPaid))
	}
	if sawEOBPatient {
		summary.TotalPatientResponsibilityPerEOB = ptr(round2(eobPatientResp))
	}
	if sawBillPatient {
		summary.TotalPatientResponsibilityPerBill = ptr(round2(billPatientResp))
	}
	if sawEOBPatient && sawBillPatient {
		summary.DiscrepancyAmount = round2(max(0, billPatientResp-eobPatientResp))
	}
	return summary
}

// PotentialSavings sums the packet's recoverable dollars without double
// counting. Findings sharing an overcharge key describe the same underlying
// discrepancy, so each key contributes its maximum estimate, never the sum.
// A finding without a key gets a synthetic one and is never merged.
func PotentialSavings(results []models.ValidationResult) float64 {
	maxByKey := make(map[string]float64)
	for i, res := range results {
		if res.PotentialOvercharge == nil {
			continue
		}
		key := res.OverchargeKey
		if key == "" {
			key = "solo|" + res.CheckName + "|" + strconv.Itoa(i)
		}
		if *res.PotentialOvercharge > maxByKey[key] {
			maxByKey[key] = *res.PotentialOvercharge
		}
	}
	var total float64
	for _, v := range maxByKey {
		total += v
	}
	return round2(total)
}

func countFlaggedIssues(results []models.ValidationResult) int {
	count := 0
	for _, res := range results {
		if res.Status != models.StatusPass {
			count++
		}
	}
	return count
}
