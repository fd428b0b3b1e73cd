package validation

import (
	"fmt"
	"strings"
	"time"

	"claimsreview-service/internal/app/models"
)

// Billing reconciliation compares the insurer's story (EOB) against the
// provider's story (MEDICAL_BILL or ITEMIZED_STATEMENT) for the same care,
// matched through DocumentIndex.FindCounterpart.

// overchargeKey builds the grouping key the aggregator de-duplicates savings
// by: document id, billing code (may be empty) and service date.
func overchargeKey(docID, code string, date *time.Time) string {
	dateStr := ""
	if date != nil {
		dateStr = date.Format("2006-01-02")
	}
	return strings.Join([]string{docID, code, dateStr}, "|")
}

// billDocuments returns every document that plays the provider-bill role.
func billDocuments(ix *DocumentIndex) []*models.ProcessedDocument {
	var bills []*models.ProcessedDocument
	bills = append(bills, ix.ByType(models.DocumentTypeMedicalBill)...)
	bills = append(bills, ix.ByType(models.DocumentTypeItemizedStatement)...)
	return bills
}

// billBalance digs the amount the provider says the patient owes.
func billBalance(data map[string]any) *float64 {
	if v := asAmount(data["balance_due"]); v != nil {
		return v
	}
	return asAmount(data["total_charges"])
}

func checkMissingBills(ix *DocumentIndex) []models.ValidationResult {
	if len(ix.ByType(models.DocumentTypeEOB)) == 0 || len(billDocuments(ix)) > 0 {
		return nil
	}
	return []models.ValidationResult{{
		CheckName:      "missing_bills",
		Status:         models.StatusFlagged,
		Severity:       models.SeverityLow,
		Detail:         "Found EOB(s) but no provider bills. Cannot fully reconcile without bills.",
		Recommendation: "Obtain bills from providers to verify amounts owed",
	}}
}

func checkMissingEOBs(ix *DocumentIndex) []models.ValidationResult {
	if len(billDocuments(ix)) == 0 || len(ix.ByType(models.DocumentTypeEOB)) > 0 {
		return nil
	}
	return []models.ValidationResult{{
		CheckName:      "missing_eobs",
		Status:         models.StatusFlagged,
		Severity:       models.SeverityMedium,
		Detail:         "Found provider bill(s) but no EOB. Cannot verify insurance processing.",
		Recommendation: "Request EOB from insurance before paying bills",
	}}
}

func checkEOBVsBillAmount(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		bill := ix.FindCounterpart(eob)
		if bill == nil {
			continue
		}
		eobPatient := asAmount(eob.ExtractedData["total_patient_responsibility"])
		balance := billBalance(bill.ExtractedData)
		if eobPatient == nil || balance == nil {
			continue
		}
		provider := providerName(bill.ExtractedData)
		if provider == "" {
			provider = "provider"
		}
		docIDs := []string{eob.Envelope.DocID, bill.Envelope.DocID}
		serviceDate := firstDate(bill.ExtractedData, "date_of_service_start", "date_of_service_end", "statement_date")

		switch {
		case amountsEqual(*balance, *eobPatient):
			results = append(results, models.ValidationResult{
				CheckName:      "eob_vs_bill_amount",
				Status:         models.StatusPass,
				Severity:       models.SeverityInfo,
				Detail:         fmt.Sprintf("Bill from %s matches the EOB patient responsibility of $%.2f", provider, *eobPatient),
				AffectedDocIDs: docIDs,
			})
		case *balance > *eobPatient:
			results = append(results, models.ValidationResult{
				CheckName:           "eob_vs_bill_amount",
				Status:              models.StatusMismatch,
				Severity:            models.SeverityHigh,
				Detail:              fmt.Sprintf("Bill from %s shows balance of $%.2f but EOB says patient responsibility is $%.2f", provider, *balance, *eobPatient),
				Expected:            eobPatient,
				Actual:              balance,
				PotentialOvercharge: ptr(round2(*balance - *eobPatient)),
				AffectedDocIDs:      docIDs,
				Recommendation:      fmt.Sprintf("Contact %s to request adjustment to match EOB amount", provider),
				OverchargeKey:       overchargeKey(bill.Envelope.DocID, "", serviceDate),
			})
		default:
			results = append(results, models.ValidationResult{
				CheckName:      "eob_vs_bill_amount",
				Status:         models.StatusMismatch,
				Severity:       models.SeverityLow,
				Detail:         fmt.Sprintf("Bill from %s shows balance of $%.2f, below the EOB patient responsibility of $%.2f", provider, *balance, *eobPatient),
				Expected:       eobPatient,
				Actual:         balance,
				AffectedDocIDs: docIDs,
				Recommendation: "Verify with insurance if additional payment is expected",
			})
		}
	}
	return results
}

func checkLineItemOverAllowed(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		bill := ix.FindCounterpart(eob)
		if bill == nil {
			continue
		}

		// Allowed amount per billing code from the EOB side.
		allowedByCode := make(map[string]float64)
		for _, item := range asList(eob.ExtractedData["line_items"]) {
			code := asString(item["cpt_code"])
			allowed := asAmount(item["allowed_amount"])
			if code != "" && allowed != nil {
				allowedByCode[code] = *allowed
			}
		}
		if len(allowedByCode) == 0 {
			continue
		}

		for _, line := range ix.LineItems() {
			if line.Doc != bill || line.BilledAmount == nil {
				continue
			}
			allowed, ok := allowedByCode[line.BillingCode]
			if !ok || *line.BilledAmount <= allowed+AmountTolerance {
				continue
			}
			results = append(results, models.ValidationResult{
				CheckName:           "line_item_over_allowed",
				Status:              models.StatusMismatch,
				Severity:            models.SeverityMedium,
				Detail:              fmt.Sprintf("Bill charges $%.2f for CPT %s but EOB allowed amount is only $%.2f", *line.BilledAmount, line.BillingCode, allowed),
				Expected:            ptr(allowed),
				Actual:              line.BilledAmount,
				PotentialOvercharge: ptr(round2(*line.BilledAmount - allowed)),
				AffectedDocIDs:      []string{eob.Envelope.DocID, bill.Envelope.DocID},
				Recommendation:      fmt.Sprintf("Request provider adjust CPT %s charge to insurance allowed amount", line.BillingCode),
				OverchargeKey:       overchargeKey(bill.Envelope.DocID, line.BillingCode, line.ServiceDate),
			})
		}
	}
	return results
}

func checkUnmatchedEOBs(ix *DocumentIndex) []models.ValidationResult {
	if len(billDocuments(ix)) == 0 {
		// missing_bills covers the packet-level absence.
		return nil
	}
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		if ix.FindCounterpart(eob) != nil {
			continue
		}
		provider := providerName(eob.ExtractedData)
		if provider == "" {
			provider = "Unknown"
		}
		results = append(results, models.ValidationResult{
			CheckName:      "unmatched_eob",
			Status:         models.StatusFlagged,
			Severity:       models.SeverityLow,
			Detail:         fmt.Sprintf("EOB from %s could not be matched to any provider bill", provider),
			AffectedDocIDs: []string{eob.Envelope.DocID},
			Recommendation: "Obtain corresponding bill from provider",
		})
	}
	return results
}

func checkUnmatchedBills(ix *DocumentIndex) []models.ValidationResult {
	eobs := ix.ByType(models.DocumentTypeEOB)
	if len(eobs) == 0 {
		// missing_eobs covers the packet-level absence.
		return nil
	}
	matched := make(map[string]bool)
	for _, eob := range eobs {
		if bill := ix.FindCounterpart(eob); bill != nil {
			matched[bill.Envelope.DocID] = true
		}
	}
	var results []models.ValidationResult
	for _, bill := range billDocuments(ix) {
		if matched[bill.Envelope.DocID] {
			continue
		}
		provider := providerName(bill.ExtractedData)
		if provider == "" {
			provider = "Unknown"
		}
		results = append(results, models.ValidationResult{
			CheckName:      "unmatched_bill",
			Status:         models.StatusFlagged,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("Bill from %s could not be matched to any EOB", provider),
			AffectedDocIDs: []string{bill.Envelope.DocID},
			Recommendation: "Request EOB from insurance for this service before paying",
		})
	}
	return results
}
