package validation

import (
	"fmt"
	"strings"
	"testing"

	"claimsreview-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActionList(t *testing.T) {
	t.Run("severity decides the prefix", func(t *testing.T) {
		results := []models.ValidationResult{
			{Severity: models.SeverityHigh, Recommendation: "File an appeal immediately"},
			{Severity: models.SeverityMedium, Recommendation: "Verify units billed"},
			{Severity: models.SeverityLow, Recommendation: "Obtain bills from providers"},
			{Severity: models.SeverityInfo, Recommendation: "Nothing to do"},
		}

		actions := BuildActionList(results)
		require.Len(t, actions, 2)
		assert.Equal(t, "URGENT: File an appeal immediately", actions[0])
		assert.Equal(t, "INVESTIGATE: Verify units billed", actions[1])
	})

	t.Run("duplicate recommendations collapse", func(t *testing.T) {
		results := []models.ValidationResult{
			{Severity: models.SeverityHigh, Recommendation: "File an appeal immediately"},
			{Severity: models.SeverityHigh, Recommendation: "File an appeal immediately"},
		}
		assert.Len(t, BuildActionList(results), 1)
	})

	t.Run("list caps at the limit", func(t *testing.T) {
		var results []models.ValidationResult
		for i := 0; i < MaxRecommendedActions+5; i++ {
			results = append(results, models.ValidationResult{
				Severity:       models.SeverityHigh,
				Recommendation: fmt.Sprintf("Action %02d", i),
			})
		}

		actions := BuildActionList(results)
		assert.Len(t, actions, MaxRecommendedActions)
		for _, a := range actions {
			assert.True(t, strings.HasPrefix(a, "URGENT: "))
		}
	})

	t.Run("findings without recommendations are skipped", func(t *testing.T) {
		results := []models.ValidationResult{
			{Severity: models.SeverityHigh},
		}
		assert.Empty(t, BuildActionList(results))
	})
}
