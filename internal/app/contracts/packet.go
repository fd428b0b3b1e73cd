package contracts

import (
	"context"

	"claimsreview-service/internal/app/models"
	"claimsreview-service/internal/pkg/dto/requests"
	"claimsreview-service/internal/pkg/dto/responses"
)

// PacketUsecase runs the validation engine over one claims packet.
type PacketUsecase interface {
	ReviewPacket(ctx context.Context, request *requests.ReviewPacket) (*responses.PacketReview, error)
}

// ExportService renders a finished review as a spreadsheet for download.
type ExportService interface {
	BuildWorkbook(ctx context.Context, output *models.ClaimsPacketOutput) ([]byte, error)
}

// SummaryPublisher hands a finished review to the narrative summarizer. A
// nil publisher (queue disabled) is valid; publishing is best effort and
// never blocks the review response.
type SummaryPublisher interface {
	PublishReviewCompleted(ctx context.Context, output *models.ClaimsPacketOutput) error
}
