package models

// FinancialSummary aggregates the packet's money story. Totals are nil when
// no document supplied the underlying figure, which is distinct from zero.
// Every field is derived by the aggregator; nothing here is set directly.
type FinancialSummary struct {
	TotalBilled                       *float64 `json:"total_billed"`
	TotalAllowed                      *float64 `json:"total_allowed"`
	TotalInsurancePaid                *float64 `json:"total_insurance_paid"`
	TotalPatientResponsibilityPerEOB  *float64 `json:"total_patient_responsibility_per_eob"`
	TotalPatientResponsibilityPerBill *float64 `json:"total_patient_responsibility_per_bills"`
	DiscrepancyAmount                 float64  `json:"discrepancy_amount"`
	PotentialSavings                  float64  `json:"potential_savings"`
	FlaggedIssues                     int      `json:"flagged_issues"`
}

// ClaimsPacketOutput is the full result of reviewing one packet. Given the
// same documents and processing date it is byte-for-byte reproducible.
// SummaryNarrative is filled by the downstream summarizer, never here.
type ClaimsPacketOutput struct {
	PacketID           string              `json:"packet_id"`
	ProcessingDate     string              `json:"processing_date"`
	Patient            PatientInfo         `json:"patient"`
	Documents          []ProcessedDocument `json:"documents"`
	ValidationResults  []ValidationResult  `json:"validation_results"`
	FinancialSummary   FinancialSummary    `json:"financial_summary"`
	RecommendedActions []string            `json:"recommended_actions"`
	SummaryNarrative   *string             `json:"summary_narrative"`
}
