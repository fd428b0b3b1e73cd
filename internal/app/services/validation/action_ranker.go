package validation

import (
	"claimsreview-service/internal/app/models"
)

// MaxRecommendedActions caps the action list; findings are already in
// priority order, so the cap drops only the least urgent ones.
const MaxRecommendedActions = 10

// BuildActionList turns the top findings into a prioritized list of plain
// actions. Only findings of MEDIUM severity or above with a recommendation
// qualify; HIGH findings are prefixed to mark urgency. The input must
// already be in the canonical result order.
func BuildActionList(results []models.ValidationResult) []string {
	actions := make([]string, 0, MaxRecommendedActions)
	seen := make(map[string]bool)
	for _, res := range results {
		if res.Recommendation == "" {
			continue
		}
		var action string
		switch res.Severity {
		case models.SeverityHigh:
			action = "URGENT: " + res.Recommendation
		case models.SeverityMedium:
			action = "INVESTIGATE: " + res.Recommendation
		default:
			continue
		}
		if seen[action] {
			continue
		}
		seen[action] = true
		actions = append(actions, action)
		if len(actions) == MaxRecommendedActions {
			break
		}
	}
	return actions
}
