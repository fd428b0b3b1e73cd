package validation

import (
	"fmt"
	"sort"
	"strings"

	"claimsreview-service/internal/app/models"
)

// Duplicate detection groups every service line in the packet by
// (billing_code, service_date) with exact-string code equality and exact-date
// equality. The same care appearing on an EOB and its bill produces two lines
// from one provider, which neither rule treats as suspicious.

type dupGroup struct {
	code    string
	dateStr string
	lines   []LineItem
}

// duplicateGroups returns groups with at least two occurrences, ordered by
// code then date for deterministic output.
func duplicateGroups(ix *DocumentIndex) []dupGroup {
	byKey := make(map[string]*dupGroup)
	for _, line := range ix.LineItems() {
		if line.BillingCode == "" {
			continue
		}
		dateStr := "unknown date"
		if line.ServiceDate != nil {
			dateStr = line.ServiceDate.Format("2006-01-02")
		}
		key := line.BillingCode + "|" + dateStr
		g, ok := byKey[key]
		if !ok {
			g = &dupGroup{code: line.BillingCode, dateStr: dateStr}
			byKey[key] = g
		}
		g.lines = append(g.lines, line)
	}

	var groups []dupGroup
	for _, g := range byKey {
		if len(g.lines) >= 2 {
			groups = append(groups, *g)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].code != groups[j].code {
			return groups[i].code < groups[j].code
		}
		return groups[i].dateStr < groups[j].dateStr
	})
	return groups
}

func lineProvider(line LineItem) string {
	if line.Provider == "" {
		return "Unknown"
	}
	return line.Provider
}

func groupDocIDs(lines []LineItem) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, line := range lines {
		id := line.Doc.Envelope.DocID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// checkDuplicateCrossProvider fires when one billing code on one date shows
// up from two or more distinct providers across distinct documents. The
// largest-dollar line is presumed legitimate; everything else in the group is
// the suspected duplicate spend.
func checkDuplicateCrossProvider(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, g := range duplicateGroups(ix) {
		providers := make(map[string]bool)
		var providerOrder []string
		for _, line := range g.lines {
			p := lineProvider(line)
			if !providers[p] {
				providers[p] = true
				providerOrder = append(providerOrder, p)
			}
		}
		docIDs := groupDocIDs(g.lines)
		if len(providerOrder) < 2 || len(docIDs) < 2 {
			continue
		}

		var total, largest float64
		for _, line := range g.lines {
			if line.BilledAmount == nil {
				continue
			}
			total += *line.BilledAmount
			if *line.BilledAmount > largest {
				largest = *line.BilledAmount
			}
		}

		providerList := strings.Join(providerOrder[:min(3, len(providerOrder))], ", ")
		if len(providerOrder) > 3 {
			providerList += fmt.Sprintf(" and %d more", len(providerOrder)-3)
		}

		res := models.ValidationResult{
			CheckName:      "duplicate_cpt_cross_provider",
			Status:         models.StatusFlagged,
			Severity:       models.SeverityMedium,
			Detail:         fmt.Sprintf("CPT %s on %s appears from multiple providers: %s. Total charged: $%.2f", g.code, g.dateStr, providerList, total),
			AffectedDocIDs: docIDs,
			Recommendation: fmt.Sprintf("Verify if CPT %s was legitimately performed by multiple providers or if this is duplicate billing", g.code),
			OverchargeKey:  "dup|" + g.code + "|" + g.dateStr,
		}
		if total > largest {
			res.PotentialOvercharge = ptr(round2(total - largest))
		}
		results = append(results, res)
	}
	return results
}

// checkDuplicateSameProvider fires when one provider bills the same code
// three or more times on one date. Two same-code entries on one date are
// plausible (repeat tests); three or more is suspicious, and everything past
// the first two occurrences is the suspected duplicate spend.
func checkDuplicateSameProvider(ix *DocumentIndex) []models.ValidationResult {
	var results []models.ValidationResult
	for _, g := range duplicateGroups(ix) {
		byProvider := make(map[string][]LineItem)
		var providerOrder []string
		for _, line := range g.lines {
			p := lineProvider(line)
			if _, ok := byProvider[p]; !ok {
				providerOrder = append(providerOrder, p)
			}
			byProvider[p] = append(byProvider[p], line)
		}

		for _, provider := range providerOrder {
			occurrences := byProvider[provider]
			if len(occurrences) < 3 {
				continue
			}
			var beyondFirstTwo float64
			for i, line := range occurrences {
				if i < 2 || line.BilledAmount == nil {
					continue
				}
				beyondFirstTwo += *line.BilledAmount
			}
			res := models.ValidationResult{
				CheckName:      "duplicate_cpt_same_provider",
				Status:         models.StatusFlagged,
				Severity:       models.SeverityMedium,
				Detail:         fmt.Sprintf("CPT %s on %s appears %d times from %s. More than two same-day entries suggests duplicate billing.", g.code, g.dateStr, len(occurrences), provider),
				AffectedDocIDs: groupDocIDs(occurrences),
				Recommendation: "Verify units billed match services received",
				OverchargeKey:  "dup|" + g.code + "|" + g.dateStr,
			}
			if beyondFirstTwo > 0 {
				res.PotentialOvercharge = ptr(round2(beyondFirstTwo))
			}
			results = append(results, res)
		}
	}
	return results
}
