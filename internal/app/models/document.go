package models

// DocumentType classifies a document inside an insurance claims packet.
// The extraction stage assigns exactly one type per document; UNKNOWN is the
// catch-all and never participates in type-specific checks.
type DocumentType string

const (
	DocumentTypeEOB               DocumentType = "EOB"
	DocumentTypeCMS1500           DocumentType = "CMS-1500"
	DocumentTypeUB04              DocumentType = "UB-04"
	DocumentTypeMedicalBill       DocumentType = "MEDICAL_BILL"
	DocumentTypePharmacyReceipt   DocumentType = "PHARMACY_RECEIPT"
	DocumentTypeLabReport         DocumentType = "LAB_REPORT"
	DocumentTypeDentalClaim       DocumentType = "DENTAL_CLAIM"
	DocumentTypePriorAuth         DocumentType = "PRIOR_AUTH"
	DocumentTypeAppealDecision    DocumentType = "APPEAL_DECISION"
	DocumentTypeItemizedStatement DocumentType = "ITEMIZED_STATEMENT"
	DocumentTypeUnknown           DocumentType = "UNKNOWN"
)

// AllDocumentTypes lists every known type tag, UNKNOWN last.
var AllDocumentTypes = []DocumentType{
	DocumentTypeEOB,
	DocumentTypeCMS1500,
	DocumentTypeUB04,
	DocumentTypeMedicalBill,
	DocumentTypePharmacyReceipt,
	DocumentTypeLabReport,
	DocumentTypeDentalClaim,
	DocumentTypePriorAuth,
	DocumentTypeAppealDecision,
	DocumentTypeItemizedStatement,
	DocumentTypeUnknown,
}

// ParseDocumentType maps a raw tag to a DocumentType, falling back to UNKNOWN.
func ParseDocumentType(raw string) DocumentType {
	for _, dt := range AllDocumentTypes {
		if string(dt) == raw {
			return dt
		}
	}
	return DocumentTypeUnknown
}

// DocumentEnvelope carries the identity and provenance of one input file as
// produced by the extraction stage. It is immutable once created.
type DocumentEnvelope struct {
	DocID                    string             `json:"doc_id"`
	FileID                   string             `json:"file_id,omitempty"`
	Filename                 string             `json:"filename"`
	ClassifiedType           DocumentType       `json:"classified_type"`
	ClassificationConfidence float64            `json:"classification_confidence"`
	FieldConfidence          map[string]float64 `json:"field_confidence,omitempty"`
	ExtractionWarnings       []string           `json:"extraction_warnings,omitempty"`
}

// ProcessedDocument is one document after extraction: envelope plus the raw
// extracted field mapping. Values may be null, numeric, string, date, or
// nested line-item lists; checks must tolerate missing keys and null values.
type ProcessedDocument struct {
	Envelope      DocumentEnvelope `json:"envelope"`
	ExtractedData map[string]any   `json:"extracted_data"`
	SchemaUsed    DocumentType     `json:"schema_used"`
}

// PatientInfo holds demographic and membership fields consolidated across the
// packet's documents. Every field is optional.
type PatientInfo struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	MemberID    string `json:"member_id,omitempty"`
	GroupNumber string `json:"group_number,omitempty"`
	Address     string `json:"address,omitempty"`
}
