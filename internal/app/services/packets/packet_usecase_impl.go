package packets

import (
	"context"
	"sync"
	"time"

	"claimsreview-service/internal/app/contracts"
	"claimsreview-service/internal/app/models"
	"claimsreview-service/internal/app/services/validation"
	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/dto/requests"
	"claimsreview-service/internal/pkg/dto/responses"
	"claimsreview-service/internal/pkg/schemas"

	"go.uber.org/zap"
)

type packetUsecase struct {
	Orchestrator     *validation.Orchestrator
	SummaryPublisher contracts.SummaryPublisher
	Log              *zap.Logger
}

var (
	packetUsecaseInstance contracts.PacketUsecase
	oncePacketUsecase     sync.Once
)

// NewPacketUsecase builds the review usecase. summaryPublisher may be nil
// when the queue is disabled; the review still completes.
func NewPacketUsecase(
	summaryPublisher contracts.SummaryPublisher,
	logger *zap.Logger,
) contracts.PacketUsecase {
	oncePacketUsecase.Do(func() {
		packetUsecaseInstance = &packetUsecase{
			Orchestrator:     validation.NewOrchestrator(),
			SummaryPublisher: summaryPublisher,
			Log:              logger,
		}
	})
	return packetUsecaseInstance
}

func (uc *packetUsecase) ReviewPacket(ctx context.Context, request *requests.ReviewPacket) (*responses.PacketReview, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("packetUsecase.ReviewPacket called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPacketIDKey, request.PacketID),
		zap.Int(constvars.LoggingDocumentCountKey, len(request.Documents)),
	)

	processingDate := uc.resolveProcessingDate(request.ProcessingDate)
	docs, schemaWarnings := uc.buildDocuments(request.Documents)

	ix := validation.NewDocumentIndex(docs, processingDate)
	results := uc.Orchestrator.Evaluate(ix)

	output := &models.ClaimsPacketOutput{
		PacketID:           request.PacketID,
		ProcessingDate:     processingDate.Format("2006-01-02"),
		Patient:            validation.ConsolidatePatient(docs),
		Documents:          docs,
		ValidationResults:  results,
		FinancialSummary:   validation.BuildFinancialSummary(ix, results),
		RecommendedActions: validation.BuildActionList(results),
	}

	uc.publishForSummary(ctx, requestID, output)

	uc.Log.Info("packetUsecase.ReviewPacket finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPacketIDKey, output.PacketID),
		zap.Int(constvars.LoggingResultCountKey, len(results)),
	)
	return &responses.PacketReview{
		ClaimsPacketOutput: *output,
		SchemaWarnings:     schemaWarnings,
	}, nil
}

// resolveProcessingDate anchors every deadline computation in the review to
// one instant. An unparseable or absent date falls back to today in UTC.
func (uc *packetUsecase) resolveProcessingDate(raw string) time.Time {
	if raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t.UTC()
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// buildDocuments converts the request payload into engine documents and
// collects schema warnings. Warnings never fail the review; the checks
// tolerate missing or malformed fields on their own.
func (uc *packetUsecase) buildDocuments(in []requests.PacketDocument) ([]models.ProcessedDocument, []string) {
	docs := make([]models.ProcessedDocument, 0, len(in))
	var warnings []string
	for _, d := range in {
		docType := models.ParseDocumentType(d.ClassifiedType)
		schemaUsed := docType
		if d.SchemaUsed != "" {
			schemaUsed = models.ParseDocumentType(d.SchemaUsed)
		}
		if w := schemas.ValidateDocument(schemaUsed, d.DocID, d.ExtractedData); w != "" {
			warnings = append(warnings, w)
		}
		docs = append(docs, models.ProcessedDocument{
			Envelope: models.DocumentEnvelope{
				DocID:                    d.DocID,
				FileID:                   d.FileID,
				Filename:                 d.Filename,
				ClassifiedType:           docType,
				ClassificationConfidence: d.ClassificationConfidence,
				FieldConfidence:          d.FieldConfidence,
				ExtractionWarnings:       d.ExtractionWarnings,
			},
			ExtractedData: d.ExtractedData,
			SchemaUsed:    schemaUsed,
		})
	}
	return docs, warnings
}

// publishForSummary hands the output to the narrative summarizer. Failures
// are logged and swallowed; the review response never depends on the queue.
func (uc *packetUsecase) publishForSummary(ctx context.Context, requestID string, output *models.ClaimsPacketOutput) {
	if uc.SummaryPublisher == nil {
		return
	}
	if err := uc.SummaryPublisher.PublishReviewCompleted(ctx, output); err != nil {
		uc.Log.Warn("packetUsecase.ReviewPacket summary publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPacketIDKey, output.PacketID),
			zap.Error(err),
		)
	}
}
