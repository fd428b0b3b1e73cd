// Package schemas validates extracted document payloads against the
// type-specific JSON Schemas the extraction stage promises to honor.
// Violations become warnings on the review, never failures: a malformed
// field degrades to a missing one downstream.
package schemas

import (
	"embed"
	"fmt"

	"claimsreview-service/internal/app/models"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed files/*.schema.json
var schemaFiles embed.FS

var schemaFileByType = map[models.DocumentType]string{
	models.DocumentTypeEOB:               "eob.schema.json",
	models.DocumentTypeCMS1500:           "cms1500.schema.json",
	models.DocumentTypeUB04:              "ub04.schema.json",
	models.DocumentTypeMedicalBill:       "medical_bill.schema.json",
	models.DocumentTypePharmacyReceipt:   "pharmacy_receipt.schema.json",
	models.DocumentTypeLabReport:         "lab_report.schema.json",
	models.DocumentTypeDentalClaim:       "dental_claim.schema.json",
	models.DocumentTypePriorAuth:         "prior_auth.schema.json",
	models.DocumentTypeAppealDecision:    "appeal_decision.schema.json",
	models.DocumentTypeItemizedStatement: "itemized_statement.schema.json",
}

var compiled map[models.DocumentType]*jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()

	common, err := schemaFiles.Open("files/common.schema.json")
	if err != nil {
		panic(fmt.Sprintf("schemas: open common schema: %v", err))
	}
	if err := compiler.AddResource("common.schema.json", common); err != nil {
		panic(fmt.Sprintf("schemas: add common schema: %v", err))
	}

	compiled = make(map[models.DocumentType]*jsonschema.Schema, len(schemaFileByType))
	for docType, filename := range schemaFileByType {
		f, err := schemaFiles.Open("files/" + filename)
		if err != nil {
			panic(fmt.Sprintf("schemas: open %s: %v", filename, err))
		}
		if err := compiler.AddResource(filename, f); err != nil {
			panic(fmt.Sprintf("schemas: add %s: %v", filename, err))
		}
		schema, err := compiler.Compile(filename)
		if err != nil {
			panic(fmt.Sprintf("schemas: compile %s: %v", filename, err))
		}
		compiled[docType] = schema
	}
}

// SchemaID returns the schema identifier recorded on a processed document.
func SchemaID(docType models.DocumentType) string {
	if filename, ok := schemaFileByType[docType]; ok {
		return filename
	}
	return ""
}

// ValidateDocument checks one document's extracted data against the schema
// for its classified type. The returned warning is empty when the data
// conforms or when the type has no schema (UNKNOWN).
func ValidateDocument(docType models.DocumentType, docID string, extractedData map[string]any) string {
	schema, ok := compiled[docType]
	if !ok || extractedData == nil {
		return ""
	}
	if err := schema.Validate(normalize(extractedData)); err != nil {
		return fmt.Sprintf("document %s does not conform to %s: %v", docID, schemaFileByType[docType], err)
	}
	return ""
}

// normalize converts typed maps into the plain any-tree the validator walks.
func normalize(data map[string]any) any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
