package validation

import (
	"claimsreview-service/internal/app/models"
)

// Check is one validation rule. Evaluate must be pure: same index in, same
// results out, no I/O, no shared state. A rule that cannot run because its
// operands are missing returns nothing.
type Check interface {
	Name() string
	Evaluate(ix *DocumentIndex) []models.ValidationResult
}

// checkFunc adapts a plain function into a Check.
type checkFunc struct {
	name string
	fn   func(ix *DocumentIndex) []models.ValidationResult
}

func (c checkFunc) Name() string { return c.name }

func (c checkFunc) Evaluate(ix *DocumentIndex) []models.ValidationResult {
	return c.fn(ix)
}

// Category is an ordered set of checks that run as a unit. Categories are
// independent of each other and may be evaluated concurrently.
type Category struct {
	Name   string
	Checks []Check
}

// Evaluate runs the category's checks in order and stamps each result with
// the category name.
func (c Category) Evaluate(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, check := range c.Checks {
		for _, res := range check.Evaluate(ix) {
			res.Category = c.Name
			results = append(results, res)
		}
	}
	return results
}

// Category name constants; these appear verbatim in serialized results.
const (
	CategoryMath                  = "math"
	CategoryBillingReconciliation = "billing_reconciliation"
	CategoryDuplicateDetection    = "duplicate_detection"
	CategoryCoverage              = "coverage"
)

// Categories returns the full check registry in evaluation order. The
// registry is rebuilt per call so callers can never mutate a shared copy.
func Categories() []Category {
	return []Category{
		{
			Name: CategoryMath,
			Checks: []Check{
				checkFunc{"eob_billed_sum", checkEOBBilledSum},
				checkFunc{"eob_paid_sum", checkEOBPaidSum},
				checkFunc{"eob_patient_responsibility_breakdown", checkEOBPatientResponsibilityBreakdown},
				checkFunc{"bill_line_item_sum", checkBillLineItemSum},
				checkFunc{"bill_balance_due_math", checkBillBalanceDueMath},
				checkFunc{"eob_balance_identity", checkEOBBalanceIdentity},
				checkFunc{"line_allowed_exceeds_billed", checkLineAllowedExceedsBilled},
			},
		},
		{
			Name: CategoryBillingReconciliation,
			Checks: []Check{
				checkFunc{"missing_bills", checkMissingBills},
				checkFunc{"missing_eobs", checkMissingEOBs},
				checkFunc{"eob_vs_bill_amount", checkEOBVsBillAmount},
				checkFunc{"line_item_over_allowed", checkLineItemOverAllowed},
				checkFunc{"unmatched_eob", checkUnmatchedEOBs},
				checkFunc{"unmatched_bill", checkUnmatchedBills},
			},
		},
		{
			Name: CategoryDuplicateDetection,
			Checks: []Check{
				checkFunc{"duplicate_cpt_cross_provider", checkDuplicateCrossProvider},
				checkFunc{"duplicate_cpt_same_provider", checkDuplicateSameProvider},
			},
		},
		{
			Name: CategoryCoverage,
			Checks: []Check{
				checkFunc{"claim_denied", checkClaimDenied},
				checkFunc{"line_item_denied", checkLineItemDenied},
				checkFunc{"zero_allowed_amount", checkZeroAllowedAmount},
				checkFunc{"patient_full_cost", checkPatientFullCost},
				checkFunc{"prior_auth_issue", checkPriorAuthIssue},
				checkFunc{"appeal_decision_outcome", checkAppealDecisionOutcome},
				checkFunc{"auth_approved_claim_denied", checkAuthApprovedClaimDenied},
			},
		},
	}
}
