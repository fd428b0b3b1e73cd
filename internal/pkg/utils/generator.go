package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateExportFileName builds the attachment name for a packet export.
func GenerateExportFileName(packetID string) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("claims_review_%s_%s.xlsx", packetID, timestamp)
}
