package validation

import (
	"time"

	"claimsreview-service/internal/app/models"
)

// Shared builders for check tests. Extracted data is shaped the way the
// JSON decoder delivers it: float64 numbers, []any lists, map[string]any
// objects.

func makeDoc(docID string, docType models.DocumentType, data map[string]any) models.ProcessedDocument {
	return models.ProcessedDocument{
		Envelope: models.DocumentEnvelope{
			DocID:                    docID,
			Filename:                 docID + ".pdf",
			ClassifiedType:           docType,
			ClassificationConfidence: 0.95,
		},
		ExtractedData: data,
		SchemaUsed:    docType,
	}
}

func makeIndex(docs ...models.ProcessedDocument) *DocumentIndex {
	return NewDocumentIndex(docs, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
}

func provider(name string) map[string]any {
	return map[string]any{"name": name}
}

func lines(items ...map[string]any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func resultsByCheck(results []models.ValidationResult, checkName string) []models.ValidationResult {
	var out []models.ValidationResult
	for _, res := range results {
		if res.CheckName == checkName {
			out = append(out, res)
		}
	}
	return out
}
