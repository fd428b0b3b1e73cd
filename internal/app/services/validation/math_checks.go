package validation

import (
	"fmt"

	"claimsreview-service/internal/app/models"
)

// Math checks verify the internal arithmetic of a single document. Each rule
// abstains when an operand is missing: absence of data is not evidence of an
// error. A rule that has all operands and finds them consistent emits PASS so
// a clean packet is distinguishable from an unverifiable one.

func checkEOBBilledSum(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		total := asAmount(data["total_billed"])
		items := asList(data["line_items"])
		if total == nil || len(items) == 0 {
			continue
		}
		lineSum := sumLineField(items, "billed_amount")
		docID := eob.Envelope.DocID
		if amountsEqual(lineSum, *total) {
			results = append(results, models.ValidationResult{
				CheckName:      "eob_billed_sum",
				Status:         models.StatusPass,
				Severity:       models.SeverityInfo,
				Detail:         fmt.Sprintf("EOB %s: line item billed amounts sum to $%.2f, matching total_billed", docID, lineSum),
				AffectedDocIDs: []string{docID},
			})
			continue
		}
		res := models.ValidationResult{
			CheckName:      "eob_billed_sum",
			Status:         models.StatusMismatch,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("EOB %s: line item billed amounts sum to $%.2f but total_billed is $%.2f", docID, lineSum, *total),
			Expected:       total,
			Actual:         ptr(lineSum),
			AffectedDocIDs: []string{docID},
			Recommendation: "Review the EOB for calculation errors",
		}
		if *total > lineSum {
			res.PotentialOvercharge = ptr(round2(*total - lineSum))
		}
		results = append(results, res)
	}
	return results
}

func checkEOBPaidSum(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		total := asAmount(data["total_insurance_paid"])
		items := asList(data["line_items"])
		if total == nil || len(items) == 0 {
			continue
		}
		lineSum := sumLineField(items, "insurance_paid")
		if amountsEqual(lineSum, *total) {
			continue
		}
		docID := eob.Envelope.DocID
		results = append(results, models.ValidationResult{
			CheckName:      "eob_paid_sum",
			Status:         models.StatusMismatch,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("EOB %s: line item insurance_paid sum $%.2f does not match total $%.2f", docID, lineSum, *total),
			Expected:       total,
			Actual:         ptr(lineSum),
			AffectedDocIDs: []string{docID},
			Recommendation: "Contact insurance to verify payment amounts",
		})
	}
	return results
}

func checkEOBPatientResponsibilityBreakdown(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		totalPatient := asAmount(data["total_patient_responsibility"])
		if totalPatient == nil {
			continue
		}
		deductible := amountOr(data["total_deductible"], 0)
		copay := amountOr(data["total_copay"], 0)
		coinsurance := amountOr(data["total_coinsurance"], 0)
		breakdown := deductible + copay + coinsurance
		if breakdown <= 0 {
			continue
		}
		docID := eob.Envelope.DocID
		if amountsEqual(breakdown, *totalPatient) {
			results = append(results, models.ValidationResult{
				CheckName:      "eob_patient_responsibility_breakdown",
				Status:         models.StatusPass,
				Severity:       models.SeverityInfo,
				Detail:         fmt.Sprintf("EOB %s: deductible, copay and coinsurance add up to the stated patient responsibility of $%.2f", docID, *totalPatient),
				AffectedDocIDs: []string{docID},
			})
			continue
		}
		res := models.ValidationResult{
			CheckName:      "eob_patient_responsibility_breakdown",
			Status:         models.StatusMismatch,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("EOB %s: deductible ($%.2f) + copay ($%.2f) + coinsurance ($%.2f) = $%.2f, but total patient responsibility is $%.2f", docID, deductible, copay, coinsurance, breakdown, *totalPatient),
			Expected:       ptr(breakdown),
			Actual:         totalPatient,
			AffectedDocIDs: []string{docID},
			Recommendation: "Verify patient responsibility calculation with insurance",
		}
		if *totalPatient > breakdown {
			res.PotentialOvercharge = ptr(round2(*totalPatient - breakdown))
		}
		results = append(results, res)
	}
	return results
}

func checkBillLineItemSum(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, bill := range ix.ByType(models.DocumentTypeMedicalBill) {
		data := bill.ExtractedData
		total := asAmount(data["total_charges"])
		items := asList(data["line_items"])
		if total == nil || len(items) == 0 {
			continue
		}
		lineSum := sumLineField(items, "amount")
		docID := bill.Envelope.DocID
		if amountsEqual(lineSum, *total) {
			results = append(results, models.ValidationResult{
				CheckName:      "bill_line_item_sum",
				Status:         models.StatusPass,
				Severity:       models.SeverityInfo,
				Detail:         fmt.Sprintf("Bill %s: line items sum to $%.2f, matching total_charges", docID, lineSum),
				AffectedDocIDs: []string{docID},
			})
			continue
		}
		diff := *total - lineSum
		if diff < 0 {
			diff = -diff
		}
		results = append(results, models.ValidationResult{
			CheckName:      "bill_line_item_sum",
			Status:         models.StatusMismatch,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("Bill %s: line items sum to $%.2f but total_charges is $%.2f, a $%.2f discrepancy", docID, lineSum, *total, diff),
			Expected:       total,
			Actual:         ptr(lineSum),
			AffectedDocIDs: []string{docID},
			Recommendation: "Request itemized bill from provider to verify charges",
		})
	}
	return results
}

func checkBillBalanceDueMath(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, bill := range ix.ByType(models.DocumentTypeMedicalBill) {
		data := bill.ExtractedData
		balanceDue := asAmount(data["balance_due"])
		totalCharges := asAmount(data["total_charges"])
		if balanceDue == nil || totalCharges == nil {
			continue
		}
		adjustments := amountOr(data["insurance_adjustments"], 0)
		insPayments := amountOr(data["insurance_payments"], 0)
		patientPayments := amountOr(data["patient_payments"], 0)
		expected := *totalCharges - adjustments - insPayments - patientPayments
		docID := bill.Envelope.DocID
		if amountsEqual(expected, *balanceDue) {
			results = append(results, models.ValidationResult{
				CheckName:      "bill_balance_due_math",
				Status:         models.StatusPass,
				Severity:       models.SeverityInfo,
				Detail:         fmt.Sprintf("Bill %s: balance_due of $%.2f is consistent with charges, adjustments and payments", docID, *balanceDue),
				AffectedDocIDs: []string{docID},
			})
			continue
		}
		res := models.ValidationResult{
			CheckName:      "bill_balance_due_math",
			Status:         models.StatusMismatch,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("Bill %s: expected balance $%.2f (charges $%.2f - adjustments $%.2f - insurance paid $%.2f - patient paid $%.2f), but balance_due shows $%.2f", docID, expected, *totalCharges, adjustments, insPayments, patientPayments, *balanceDue),
			Expected:       ptr(expected),
			Actual:         balanceDue,
			AffectedDocIDs: []string{docID},
			Recommendation: "Contact billing department to clarify balance calculation",
		}
		if *balanceDue > expected {
			res.PotentialOvercharge = ptr(round2(*balanceDue - expected))
		}
		results = append(results, res)
	}
	return results
}

// checkEOBBalanceIdentity verifies total_billed - total_insurance_paid
// against the stated patient responsibility at the EOB level. Contractual
// adjustments show up as a shortfall here, so the rule only fires when the
// patient is asked for more than the identity supports.
func checkEOBBalanceIdentity(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		billed := asAmount(data["total_billed"])
		paid := asAmount(data["total_insurance_paid"])
		patient := asAmount(data["total_patient_responsibility"])
		if billed == nil || paid == nil || patient == nil {
			continue
		}
		expected := *billed - *paid
		if *patient <= expected+AmountTolerance {
			continue
		}
		docID := eob.Envelope.DocID
		results = append(results, models.ValidationResult{
			CheckName:           "eob_balance_identity",
			Status:              models.StatusMismatch,
			Severity:            models.SeverityMedium,
			Detail:              fmt.Sprintf("EOB %s: patient responsibility $%.2f exceeds billed $%.2f minus insurance paid $%.2f", docID, *patient, *billed, *paid),
			Expected:            ptr(expected),
			Actual:              patient,
			PotentialOvercharge: ptr(round2(*patient - expected)),
			AffectedDocIDs:      []string{docID},
			Recommendation:      "Ask insurance to explain how patient responsibility was derived",
		})
	}
	return results
}

// checkLineAllowedExceedsBilled flags EOB lines where the allowed amount is
// higher than the billed amount, which an insurer should never produce.
func checkLineAllowedExceedsBilled(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, line := range ix.LineItems() {
		if line.Doc.Envelope.ClassifiedType != models.DocumentTypeEOB {
			continue
		}
		if line.BilledAmount == nil || line.AllowedAmount == nil {
			continue
		}
		if *line.AllowedAmount <= *line.BilledAmount+AmountTolerance {
			continue
		}
		results = append(results, models.ValidationResult{
			CheckName:      "line_allowed_exceeds_billed",
			Status:         models.StatusMismatch,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("EOB %s: CPT %s allowed amount $%.2f exceeds billed amount $%.2f", line.Doc.Envelope.DocID, line.BillingCode, *line.AllowedAmount, *line.BilledAmount),
			Expected:       line.BilledAmount,
			Actual:         line.AllowedAmount,
			AffectedDocIDs: []string{line.Doc.Envelope.DocID},
			Recommendation: "Confirm the allowed amount with insurance; it should never exceed the billed charge",
		})
	}
	return results
}

// sumLineField sums a numeric field across line items, skipping entries the
// coercion rejects.
func sumLineField(items []map[string]any, field string) float64 {
	var sum float64
	for _, item := range items {
		if v := asAmount(item[field]); v != nil {
			sum += *v
		}
	}
	return sum
}
