package responses

import (
	"claimsreview-service/internal/app/models"
)

// PacketReview is the data payload of a successful review call. It carries
// the full engine output plus any input-boundary schema warnings.
type PacketReview struct {
	models.ClaimsPacketOutput
	SchemaWarnings []string `json:"schema_warnings,omitempty"`
}
