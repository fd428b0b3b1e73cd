package validation

import (
	"sort"
	"sync"

	"claimsreview-service/internal/app/models"
)

// Orchestrator runs every check category over a packet and merges the
// findings into the canonical order. Categories never read each other's
// output, so they evaluate concurrently; only the merge waits.
type Orchestrator struct {
	categories []Category
}

// NewOrchestrator builds an orchestrator over the default check registry.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{categories: Categories()}
}

// Evaluate runs all categories against the index and returns the merged,
// sorted findings. The result is identical across runs for the same index.
func (o *Orchestrator) Evaluate(ix *DocumentIndex) []models.ValidationResult {
	perCategory := make([][]models.ValidationResult, len(o.categories))

	var wg sync.WaitGroup
	for i, cat := range o.categories {
		wg.Add(1)
		go func(i int, cat Category) {
			defer wg.Done()
			perCategory[i] = cat.Evaluate(ix)
		}(i, cat)
	}
	wg.Wait()

	var merged []models.ValidationResult
	for _, results := range perCategory {
		merged = append(merged, results...)
	}
	SortResults(merged)
	return merged
}

// SortResults orders findings by severity (HIGH first), then potential
// overcharge descending, then check name, then detail. Downstream consumers
// rely on this order without re-sorting.
func SortResults(results []models.ValidationResult) {
	overcharge := func(r models.ValidationResult) float64 {
		if r.PotentialOvercharge == nil {
			return 0
		}
		return *r.PotentialOvercharge
	}
	sort.SliceStable(results, func(i, j int) bool {
		if ri, rj := results[i].Severity.Rank(), results[j].Severity.Rank(); ri != rj {
			return ri < rj
		}
		if oi, oj := overcharge(results[i]), overcharge(results[j]); oi != oj {
			return oi > oj
		}
		if results[i].CheckName != results[j].CheckName {
			return results[i].CheckName < results[j].CheckName
		}
		return results[i].Detail < results[j].Detail
	})
}
