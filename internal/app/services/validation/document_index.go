package validation

import (
	"sort"
	"strings"
	"time"

	"claimsreview-service/internal/app/models"
)

// Counterpart matching tolerances. These are policy, not physics: billing
// dates routinely lag service dates by a few days, and provider names come
// from OCR of different letterheads.
const (
	CounterpartDateSkewDays = 3
)

// LineItem is one normalized service line flattened out of a document's
// nested line-item array. Amount pointers are nil when the source line did
// not carry the figure.
type LineItem struct {
	Doc           *models.ProcessedDocument
	BillingCode   string
	ServiceDate   *time.Time
	Provider      string
	Description   string
	BilledAmount  *float64
	AllowedAmount *float64
	DenialReason  string
}

// DocumentIndex precomputes the lookups every check needs so rules never
// re-scan or re-filter the packet. Built once per run, read-only afterwards.
type DocumentIndex struct {
	processingDate time.Time
	docs           []models.ProcessedDocument
	byType         map[models.DocumentType][]*models.ProcessedDocument
	lines          []LineItem
}

// NewDocumentIndex builds the index over a packet's documents. processingDate
// anchors all "today" math (appeal deadlines) so a run is reproducible.
func NewDocumentIndex(docs []models.ProcessedDocument, processingDate time.Time) *DocumentIndex {
	ix := &DocumentIndex{
		processingDate: processingDate.Truncate(24 * time.Hour),
		docs:           docs,
		byType:         make(map[models.DocumentType][]*models.ProcessedDocument),
	}
	for i := range ix.docs {
		doc := &ix.docs[i]
		ix.byType[doc.Envelope.ClassifiedType] = append(ix.byType[doc.Envelope.ClassifiedType], doc)
		ix.lines = append(ix.lines, flattenLineItems(doc)...)
	}
	return ix
}

// ProcessingDate is the date all deadline arithmetic is computed against.
func (ix *DocumentIndex) ProcessingDate() time.Time {
	return ix.processingDate
}

// Documents returns the packet's documents in input order.
func (ix *DocumentIndex) Documents() []models.ProcessedDocument {
	return ix.docs
}

// ByType returns the documents of one type in input order.
func (ix *DocumentIndex) ByType(t models.DocumentType) []*models.ProcessedDocument {
	return ix.byType[t]
}

// LineItems returns every normalized service line across the packet, in
// document order then line order.
func (ix *DocumentIndex) LineItems() []LineItem {
	return ix.lines
}

// FindCounterpart locates the provider bill (MEDICAL_BILL, falling back to
// ITEMIZED_STATEMENT) that covers the same care as an EOB: same provider name
// after trimming and case folding, and service dates within the skew window.
// Ties resolve to the earliest service date, then lowest document id.
func (ix *DocumentIndex) FindCounterpart(eob *models.ProcessedDocument) *models.ProcessedDocument {
	eobProvider := normalizeProviderName(providerName(eob.ExtractedData))
	if eobProvider == "" {
		return nil
	}
	eobDate := firstDate(eob.ExtractedData, "date_of_service_start", "date_of_service_end")

	var candidates []*models.ProcessedDocument
	candidates = append(candidates, ix.byType[models.DocumentTypeMedicalBill]...)
	candidates = append(candidates, ix.byType[models.DocumentTypeItemizedStatement]...)

	var matches []*models.ProcessedDocument
	for _, bill := range candidates {
		billProvider := normalizeProviderName(providerName(bill.ExtractedData))
		if billProvider == "" || billProvider != eobProvider {
			continue
		}
		billDate := firstDate(bill.ExtractedData, "date_of_service_start", "date_of_service_end", "statement_date")
		if !datesWithinSkew(eobDate, billDate) {
			continue
		}
		matches = append(matches, bill)
	}
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		di := firstDate(matches[i].ExtractedData, "date_of_service_start", "date_of_service_end", "statement_date")
		dj := firstDate(matches[j].ExtractedData, "date_of_service_start", "date_of_service_end", "statement_date")
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return matches[i].Envelope.DocID < matches[j].Envelope.DocID
	})
	return matches[0]
}

// datesWithinSkew reports whether two service dates fall inside the skew
// window. A missing date on either side is treated as compatible; the
// provider match alone then decides.
func datesWithinSkew(a, b *time.Time) bool {
	if a == nil || b == nil {
		return true
	}
	diff := a.Sub(*b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= CounterpartDateSkewDays*24*time.Hour
}

func normalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// providerName digs the provider display name out of extracted data, trying
// the nested provider object first then the flat fallbacks some schemas use.
func providerName(data map[string]any) string {
	if p := asMap(data["provider"]); p != nil {
		if name := asString(p["name"]); name != "" {
			return name
		}
	}
	if p := asMap(data["billing_provider"]); p != nil {
		if name := asString(p["name"]); name != "" {
			return name
		}
	}
	if name := asString(data["facility_name"]); name != "" {
		return name
	}
	return ""
}

// firstDate returns the first parseable date among the named fields.
func firstDate(data map[string]any, fields ...string) *time.Time {
	for _, f := range fields {
		if d := asDate(data[f]); d != nil {
			return d
		}
	}
	return nil
}

// flattenLineItems normalizes the nested line arrays of each document type.
// Types without line arrays, and UNKNOWN documents, contribute nothing.
func flattenLineItems(doc *models.ProcessedDocument) []LineItem {
	data := doc.ExtractedData
	provider := providerName(data)
	var out []LineItem

	appendLine := func(code string, date *time.Time, desc string, billed, allowed *float64, denial string) {
		if code == "" {
			return
		}
		out = append(out, LineItem{
			Doc:           doc,
			BillingCode:   code,
			ServiceDate:   date,
			Provider:      provider,
			Description:   desc,
			BilledAmount:  billed,
			AllowedAmount: allowed,
			DenialReason:  denial,
		})
	}

	switch doc.Envelope.ClassifiedType {
	case models.DocumentTypeEOB:
		for _, item := range asList(data["line_items"]) {
			appendLine(
				asString(item["cpt_code"]),
				asDate(item["service_date"]),
				asString(item["description"]),
				asAmount(item["billed_amount"]),
				asAmount(item["allowed_amount"]),
				asString(item["denial_reason"]),
			)
		}
	case models.DocumentTypeMedicalBill:
		for _, item := range asList(data["line_items"]) {
			appendLine(
				asString(item["cpt_code"]),
				asDate(item["service_date"]),
				asString(item["description"]),
				asAmount(item["amount"]),
				nil,
				"",
			)
		}
	case models.DocumentTypeCMS1500:
		for _, item := range asList(data["service_lines"]) {
			appendLine(
				asString(item["cpt_code"]),
				asDate(item["date_of_service_from"]),
				"",
				asAmount(item["charges"]),
				nil,
				"",
			)
		}
	case models.DocumentTypeUB04:
		for _, item := range asList(data["revenue_lines"]) {
			appendLine(
				asString(item["hcpcs_code"]),
				asDate(item["service_date"]),
				asString(item["description"]),
				asAmount(item["total_charges"]),
				nil,
				"",
			)
		}
	case models.DocumentTypeLabReport:
		labProvider := ""
		if lab := asMap(data["performing_lab"]); lab != nil {
			labProvider = asString(lab["name"])
		}
		if labProvider == "" {
			if ord := asMap(data["ordering_provider"]); ord != nil {
				labProvider = asString(ord["name"])
			}
		}
		collected := asDate(data["collection_date"])
		for _, item := range asList(data["test_results"]) {
			code := asString(item["cpt_code"])
			if code == "" {
				continue
			}
			out = append(out, LineItem{
				Doc:         doc,
				BillingCode: code,
				ServiceDate: collected,
				Provider:    labProvider,
				Description: asString(item["test_name"]),
			})
		}
	case models.DocumentTypeDentalClaim:
		billing := provider
		if bp := asMap(data["billing_provider"]); bp != nil {
			if name := asString(bp["name"]); name != "" {
				billing = name
			}
		}
		for _, item := range asList(data["service_lines"]) {
			code := asString(item["cdt_code"])
			if code == "" {
				continue
			}
			out = append(out, LineItem{
				Doc:          doc,
				BillingCode:  code,
				ServiceDate:  asDate(item["service_date"]),
				Provider:     billing,
				Description:  asString(item["description"]),
				BilledAmount: asAmount(item["fee"]),
			})
		}
	case models.DocumentTypeItemizedStatement:
		for _, item := range asList(data["charges"]) {
			appendLine(
				asString(item["cpt_code"]),
				asDate(item["service_date"]),
				asString(item["description"]),
				asAmount(item["amount"]),
				nil,
				"",
			)
		}
	}
	return out
}
