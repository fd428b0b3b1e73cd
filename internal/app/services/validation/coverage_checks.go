package validation

import (
	"fmt"
	"strings"
	"time"

	"claimsreview-service/internal/app/models"
)

// Appeal deadlines inside this window get urgent wording in the finding.
const AppealUrgencyWindowDays = 14

// deniedKey groups every finding that describes the same denied claim's
// dollars, so a whole-claim denial and its per-line echoes count once.
func deniedKey(docID string) string {
	return "denied|" + docID
}

func isDeniedStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "denied") || strings.Contains(s, "deny")
}

// checkClaimDenied reports fully denied EOB claims, with appeal deadline
// arithmetic anchored to the index's processing date.
func checkClaimDenied(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		if !isDeniedStatus(asString(data["claim_status"])) {
			continue
		}
		docID := eob.Envelope.DocID
		provider := providerName(data)
		if provider == "" {
			provider = "provider"
		}
		totalBilled := asAmount(data["total_billed"])

		detail := fmt.Sprintf("Claim from %s was DENIED", provider)
		if totalBilled != nil {
			detail += fmt.Sprintf(" ($%.2f)", *totalBilled)
		}
		if deadline := asDate(data["appeal_deadline"]); deadline != nil {
			daysRemaining := int(deadline.Sub(ix.ProcessingDate()).Hours() / 24)
			detail += fmt.Sprintf(". Appeal deadline: %s (%d days remaining)", deadline.Format("2006-01-02"), daysRemaining)
			if daysRemaining < 0 {
				detail += " - deadline has EXPIRED"
			} else if daysRemaining <= AppealUrgencyWindowDays {
				detail += fmt.Sprintf(" - URGENT, less than %d days remaining", AppealUrgencyWindowDays)
			}
		}

		res := models.ValidationResult{
			CheckName:      "claim_denied",
			Status:         models.StatusFlagged,
			Severity:       models.SeverityHigh,
			Detail:         detail,
			AffectedDocIDs: []string{docID},
			Recommendation: "File an appeal immediately with insurance. Contact provider about claim denial.",
			OverchargeKey:  deniedKey(docID),
		}
		if totalBilled != nil && *totalBilled > 0 {
			res.PotentialOvercharge = ptr(round2(*totalBilled))
		}
		results = append(results, res)
	}
	return results
}

// checkLineItemDenied reports individual EOB lines carrying a denial reason.
// Its savings share the denied-claim key so a whole-claim denial is never
// counted twice.
func checkLineItemDenied(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, line := range ix.LineItems() {
		if line.Doc.Envelope.ClassifiedType != models.DocumentTypeEOB || line.DenialReason == "" {
			continue
		}
		docID := line.Doc.Envelope.DocID
		detail := fmt.Sprintf("Service %s", line.BillingCode)
		if line.Description != "" {
			detail += fmt.Sprintf(" (%s)", line.Description)
		}
		detail += fmt.Sprintf(" was denied: %s", line.DenialReason)
		if line.BilledAmount != nil {
			detail += fmt.Sprintf(". Billed amount: $%.2f", *line.BilledAmount)
		}

		res := models.ValidationResult{
			CheckName:      "line_item_denied",
			Status:         models.StatusFlagged,
			Severity:       models.SeverityHigh,
			Detail:         detail,
			AffectedDocIDs: []string{docID},
			Recommendation: fmt.Sprintf("Review denial reason for %s. Consider appeal if service was medically necessary.", line.BillingCode),
			OverchargeKey:  deniedKey(docID),
		}
		if line.BilledAmount != nil && *line.BilledAmount > 0 {
			res.PotentialOvercharge = ptr(round2(*line.BilledAmount))
		}
		results = append(results, res)
	}
	return results
}

// checkZeroAllowedAmount reports EOB lines the insurer allowed nothing for
// while the provider billed a positive amount. Lines with an explicit denial
// reason are left to line_item_denied, and fully denied claims are left to
// claim_denied.
func checkZeroAllowedAmount(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		if isDeniedStatus(asString(data["claim_status"])) {
			continue
		}
		docID := eob.Envelope.DocID
		for _, item := range asList(data["line_items"]) {
			if asString(item["denial_reason"]) != "" {
				continue
			}
			allowed := asAmount(item["allowed_amount"])
			billed := asAmount(item["billed_amount"])
			insPaid := asAmount(item["insurance_paid"])
			if allowed == nil || *allowed != 0 || billed == nil || *billed <= 0 {
				continue
			}
			if insPaid != nil && *insPaid != 0 {
				continue
			}
			code := asString(item["cpt_code"])
			if code == "" {
				code = "Unknown"
			}
			detail := fmt.Sprintf("Insurance allowed $0 for %s", code)
			if desc := asString(item["description"]); desc != "" {
				detail += fmt.Sprintf(" (%s)", desc)
			}
			detail += fmt.Sprintf(" but provider billed $%.2f", *billed)

			results = append(results, models.ValidationResult{
				CheckName:           "zero_allowed_amount",
				Status:              models.StatusFlagged,
				Severity:            models.SeverityMedium,
				Detail:              detail,
				PotentialOvercharge: ptr(round2(*billed)),
				AffectedDocIDs:      []string{docID},
				Recommendation:      fmt.Sprintf("Contact insurance to understand why %s was not covered. May need prior authorization or may not be a covered benefit.", code),
				OverchargeKey:       overchargeKey(docID, code, asDate(item["service_date"])),
			})
		}
	}
	return results
}

// checkPriorAuthIssue reports denied authorizations, and approved ones whose
// expiration predates the service dates an EOB shows for the authorized
// codes.
func checkPriorAuthIssue(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, auth := range ix.ByType(models.DocumentTypePriorAuth) {
		data := auth.ExtractedData
		docID := auth.Envelope.DocID
		status := strings.ToLower(asString(data["auth_status"]))

		if isDeniedStatus(status) {
			detail := "Prior authorization was DENIED"
			if reason := asString(data["denial_reason"]); reason != "" {
				detail += ": " + reason
			}
			results = append(results, models.ValidationResult{
				CheckName:      "prior_auth_issue",
				Status:         models.StatusFlagged,
				Severity:       models.SeverityHigh,
				Detail:         detail,
				AffectedDocIDs: []string{docID},
				Recommendation: "Appeal the authorization denial or ask the provider to resubmit with supporting documentation",
			})
			continue
		}

		expiration := asDate(data["expiration_date"])
		if expiration == nil {
			continue
		}
		for _, code := range authorizedCodes(data) {
			for _, line := range ix.LineItems() {
				if line.Doc.Envelope.ClassifiedType != models.DocumentTypeEOB || line.BillingCode != code {
					continue
				}
				if line.ServiceDate == nil || !line.ServiceDate.After(*expiration) {
					continue
				}
				results = append(results, models.ValidationResult{
					CheckName:      "prior_auth_issue",
					Status:         models.StatusFlagged,
					Severity:       models.SeverityHigh,
					Detail:         fmt.Sprintf("Prior authorization for CPT %s expired %s, before the service date %s", code, expiration.Format("2006-01-02"), line.ServiceDate.Format("2006-01-02")),
					AffectedDocIDs: []string{docID, line.Doc.Envelope.DocID},
					Recommendation: "Verify the service was rendered within the authorization window; request a retroactive authorization if not",
				})
			}
		}
	}
	return results
}

// checkAppealDecisionOutcome surfaces appeal rulings. Overturned denials
// share the original denied claim's savings key when the EOB is resolvable
// by claim number, so the recovered amount is not double counted.
func checkAppealDecisionOutcome(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, appeal := range ix.ByType(models.DocumentTypeAppealDecision) {
		data := appeal.ExtractedData
		docID := appeal.Envelope.DocID
		decision := strings.ToLower(asString(data["decision"]))
		if decision == "" {
			continue
		}

		switch {
		case strings.Contains(decision, "overturn"):
			severity := models.SeverityMedium
			detail := "Appeal decision: denial was OVERTURNED"
			if strings.Contains(decision, "partial") {
				detail = "Appeal decision: denial was PARTIALLY OVERTURNED"
			}
			if approved := asAmount(data["approved_amount"]); approved != nil {
				detail += fmt.Sprintf(". Approved amount: $%.2f", *approved)
			}
			res := models.ValidationResult{
				CheckName:      "appeal_decision_outcome",
				Status:         models.StatusFlagged,
				Severity:       severity,
				Detail:         detail,
				AffectedDocIDs: []string{docID},
				Recommendation: "Confirm the insurer reprocesses the claim and the provider issues a corrected bill",
			}
			if original := findOriginalDeniedEOB(ix, asString(data["original_claim_number"])); original != nil {
				res.AffectedDocIDs = append(res.AffectedDocIDs, original.Envelope.DocID)
				res.OverchargeKey = deniedKey(original.Envelope.DocID)
				if billed := asAmount(original.ExtractedData["total_billed"]); billed != nil && *billed > 0 {
					res.PotentialOvercharge = ptr(round2(*billed))
				}
			}
			results = append(results, res)
		case strings.Contains(decision, "upheld"):
			detail := "Appeal decision: denial was UPHELD"
			if next := asString(data["next_appeal_level"]); next != "" {
				detail += fmt.Sprintf(". Next appeal level: %s", next)
			}
			results = append(results, models.ValidationResult{
				CheckName:      "appeal_decision_outcome",
				Status:         models.StatusFlagged,
				Severity:       models.SeverityInfo,
				Detail:         detail,
				AffectedDocIDs: []string{docID},
				Recommendation: "Consider escalating to the next appeal level or an external review",
			})
		}
	}
	return results
}

// checkAuthApprovedClaimDenied finds the contradiction where the insurer
// pre-approved a service and then denied the claim for it. This is the
// strongest deterministic signal of insurer error in the packet.
func checkAuthApprovedClaimDenied(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, auth := range ix.ByType(models.DocumentTypePriorAuth) {
		data := auth.ExtractedData
		status := strings.ToLower(asString(data["auth_status"]))
		if !strings.Contains(status, "approved") {
			continue
		}
		effective := asDate(data["effective_date"])
		expiration := asDate(data["expiration_date"])

		for _, code := range authorizedCodes(data) {
			for _, eob := range ix.ByType(models.DocumentTypeEOB) {
				claimDenied := isDeniedStatus(asString(eob.ExtractedData["claim_status"]))
				for _, item := range asList(eob.ExtractedData["line_items"]) {
					if asString(item["cpt_code"]) != code {
						continue
					}
					lineDenied := asString(item["denial_reason"]) != ""
					if !claimDenied && !lineDenied {
						continue
					}
					serviceDate := asDate(item["service_date"])
					if !withinWindow(serviceDate, effective, expiration) {
						continue
					}
					dateStr := "an unknown date"
					if serviceDate != nil {
						dateStr = serviceDate.Format("2006-01-02")
					}
					results = append(results, models.ValidationResult{
						CheckName:      "auth_approved_claim_denied",
						Status:         models.StatusFlagged,
						Severity:       models.SeverityHigh,
						Detail:         fmt.Sprintf("Insurance approved prior authorization for CPT %s but then denied the claim for the same service on %s", code, dateStr),
						AffectedDocIDs: []string{auth.Envelope.DocID, eob.Envelope.DocID},
						Recommendation: "Appeal immediately citing the approved prior authorization number; the denial contradicts the insurer's own approval",
						OverchargeKey:  deniedKey(eob.Envelope.DocID),
					})
				}
			}
		}
	}
	return results
}

// authorizedCodes pulls the CPT codes a PRIOR_AUTH covers.
func authorizedCodes(data map[string]any) []string {
	var codes []string
	for _, svc := range asList(data["authorized_services"]) {
		if code := asString(svc["cpt_code"]); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// withinWindow reports whether a service date falls inside the authorization
// window. Missing bounds do not constrain; a missing service date passes.
func withinWindow(serviceDate, effective, expiration *time.Time) bool {
	if serviceDate == nil {
		return true
	}
	if effective != nil && serviceDate.Before(*effective) {
		return false
	}
	if expiration != nil && serviceDate.After(*expiration) {
		return false
	}
	return true
}

// findOriginalDeniedEOB locates the denied EOB an overturned appeal refers
// to. Matches on claim number first; if the appeal carries none, a lone
// denied EOB in the packet is treated as the original.
func findOriginalDeniedEOB(ix *DocumentIndex, claimNumber string) *models.ProcessedDocument {
	var denied []*models.ProcessedDocument
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		if !isDeniedStatus(asString(eob.ExtractedData["claim_status"])) {
			continue
		}
		if claimNumber != "" && asString(eob.ExtractedData["claim_number"]) == claimNumber {
			return eob
		}
		denied = append(denied, eob)
	}
	if claimNumber == "" && len(denied) == 1 {
		return denied[0]
	}
	return nil
}

// checkPatientFullCost flags EOBs where insurance paid nothing and the
// patient owes the entire billed amount without the claim being denied.
func checkPatientFullCost(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, eob := range ix.ByType(models.DocumentTypeEOB) {
		data := eob.ExtractedData
		insPaid := asAmount(data["total_insurance_paid"])
		patient := asAmount(data["total_patient_responsibility"])
		billed := asAmount(data["total_billed"])
		if insPaid == nil || *insPaid != 0 || billed == nil || *billed <= 0 {
			continue
		}
		if patient == nil || !amountsEqual(*patient, *billed) {
			continue
		}
		docID := eob.Envelope.DocID
		provider := providerName(data)
		if provider == "" {
			provider = "provider"
		}
		results = append(results, models.ValidationResult{
			CheckName:           "patient_full_cost",
			Status:              models.StatusFlagged,
			Severity:            models.SeverityHigh,
			Detail:              fmt.Sprintf("Patient responsible for full billed amount ($%.2f) from %s. Insurance paid $0.", *billed, provider),
			PotentialOvercharge: ptr(round2(*billed)),
			AffectedDocIDs:      []string{docID},
			Recommendation:      "Verify claim was submitted correctly. Check if provider is out-of-network or if deductible applies.",
			OverchargeKey:       deniedKey(docID),
		})
	}
	return results
}
