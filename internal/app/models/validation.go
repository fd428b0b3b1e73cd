package models

// Severity grades how much attention a finding deserves.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
	SeverityInfo   Severity = "INFO"
)

// Rank orders severities for sorting; lower sorts first. Unrecognized
// severities land after INFO.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 3
	default:
		return 4
	}
}

// Status is the outcome of a single check evaluation.
type Status string

const (
	StatusPass        Status = "PASS"
	StatusMismatch    Status = "MISMATCH"
	StatusMissingData Status = "MISSING_DATA"
	StatusFlagged     Status = "FLAGGED"
)

// ValidationResult is one finding emitted by a check. PotentialOvercharge is
// set only when the finding represents money the patient may recover; it is
// nil for informational findings. OverchargeKey groups findings that describe
// the same underlying dollars so the aggregator can de-duplicate savings; it
// never appears in serialized output.
type ValidationResult struct {
	CheckName            string   `json:"check_name"`
	Category             string   `json:"category"`
	Status               Status   `json:"status"`
	Severity             Severity `json:"severity"`
	Detail               string   `json:"detail"`
	Expected             *float64 `json:"expected,omitempty"`
	Actual               *float64 `json:"actual,omitempty"`
	PotentialOvercharge  *float64 `json:"potential_overcharge,omitempty"`
	AffectedDocIDs       []string `json:"affected_doc_ids,omitempty"`
	Recommendation       string   `json:"recommendation,omitempty"`
	OverchargeKey        string   `json:"-"`
}
