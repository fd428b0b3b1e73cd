package requests

// ReviewPacket is the POST body for a packet review. The extraction stage
// upstream produces the documents; this service only validates shape, never
// re-extracts.
type ReviewPacket struct {
	PacketID       string           `json:"packet_id" validate:"required,min=1,max=128"`
	ProcessingDate string           `json:"processing_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Documents      []PacketDocument `json:"documents" validate:"max=50,dive"`
}

// PacketDocument mirrors one ProcessedDocument from the extraction stage.
// ExtractedData stays opaque here; each check reads only the fields it needs.
type PacketDocument struct {
	DocID                    string             `json:"doc_id" validate:"required,min=1,max=128"`
	FileID                   string             `json:"file_id,omitempty"`
	Filename                 string             `json:"filename"`
	ClassifiedType           string             `json:"classified_type" validate:"required,document_type"`
	ClassificationConfidence float64            `json:"classification_confidence" validate:"gte=0,lte=1"`
	FieldConfidence          map[string]float64 `json:"field_confidence,omitempty"`
	ExtractionWarnings       []string           `json:"extraction_warnings,omitempty"`
	ExtractedData            map[string]any     `json:"extracted_data"`
	SchemaUsed               string             `json:"schema_used,omitempty"`
}
