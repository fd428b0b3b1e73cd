package packets

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"claimsreview-service/internal/app/services/export"
	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestController() *PacketController {
	logger := zap.NewNop()
	usecase := NewPacketUsecase(nil, logger)
	exportService := export.NewExportService(logger)
	return NewPacketController(logger, usecase, exportService)
}

const consistentPacket = `{
	"packet_id": "pkt-001",
	"processing_date": "2026-03-10",
	"documents": [
		{
			"doc_id": "eob-1",
			"filename": "eob.pdf",
			"classified_type": "EOB",
			"classification_confidence": 0.97,
			"extracted_data": {
				"provider": {"name": "City Medical Center"},
				"date_of_service_start": "2026-02-01",
				"claim_status": "processed",
				"total_billed": 195.0,
				"total_insurance_paid": 150.0,
				"total_patient_responsibility": 45.0,
				"total_copay": 45.0,
				"patient": {"first_name": "Jane", "last_name": "Doe"},
				"line_items": [
					{"cpt_code": "99213", "billed_amount": 150.0, "allowed_amount": 110.0, "insurance_paid": 110.0, "service_date": "2026-02-01"},
					{"cpt_code": "80053", "billed_amount": 45.0, "allowed_amount": 40.0, "insurance_paid": 40.0, "service_date": "2026-02-01"}
				]
			}
		},
		{
			"doc_id": "bill-1",
			"filename": "bill.pdf",
			"classified_type": "MEDICAL_BILL",
			"classification_confidence": 0.94,
			"extracted_data": {
				"provider": {"name": "City Medical Center"},
				"date_of_service_start": "2026-02-01",
				"balance_due": 45.0
			}
		}
	]
}`

func TestReviewPacket(t *testing.T) {
	ctrl := newTestController()

	t.Run("consistent packet reviews clean", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/packets/review", strings.NewReader(consistentPacket))
		rr := httptest.NewRecorder()

		ctrl.ReviewPacket(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var envelope struct {
			Success bool                   `json:"success"`
			Message string                 `json:"message"`
			Data    responses.PacketReview `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)

		out := envelope.Data
		assert.Equal(t, "pkt-001", out.PacketID)
		assert.Equal(t, "2026-03-10", out.ProcessingDate)
		assert.Equal(t, "Jane", out.Patient.FirstName)
		assert.Len(t, out.Documents, 2)

		require.NotEmpty(t, out.ValidationResults)
		for _, res := range out.ValidationResults {
			assert.Equal(t, "PASS", string(res.Status), "check %s: %s", res.CheckName, res.Detail)
		}
		assert.Equal(t, 0, out.FinancialSummary.FlaggedIssues)
		assert.Equal(t, 0.0, out.FinancialSummary.PotentialSavings)
		assert.Empty(t, out.RecommendedActions)
		assert.Nil(t, out.SummaryNarrative)
		assert.Empty(t, out.SchemaWarnings)
	})

	t.Run("empty document list is a valid review", func(t *testing.T) {
		body := `{"packet_id": "pkt-empty", "documents": []}`
		req := httptest.NewRequest("POST", "/api/v1/packets/review", strings.NewReader(body))
		rr := httptest.NewRecorder()

		ctrl.ReviewPacket(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var envelope struct {
			Data responses.PacketReview `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.Empty(t, envelope.Data.ValidationResults)
		assert.Nil(t, envelope.Data.FinancialSummary.TotalBilled)
		assert.Equal(t, 0, envelope.Data.FinancialSummary.FlaggedIssues)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/packets/review", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()

		ctrl.ReviewPacket(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing packet id fails validation", func(t *testing.T) {
		body := `{"documents": []}`
		req := httptest.NewRequest("POST", "/api/v1/packets/review", strings.NewReader(body))
		rr := httptest.NewRecorder()

		ctrl.ReviewPacket(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown document type fails validation", func(t *testing.T) {
		body := `{"packet_id": "pkt-002", "documents": [{"doc_id": "d1", "classified_type": "RECEIPT_OF_SOME_KIND", "extracted_data": {}}]}`
		req := httptest.NewRequest("POST", "/api/v1/packets/review", strings.NewReader(body))
		rr := httptest.NewRecorder()

		ctrl.ReviewPacket(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("schema warnings surface without failing the review", func(t *testing.T) {
		body := `{
			"packet_id": "pkt-003",
			"documents": [
				{"doc_id": "eob-9", "classified_type": "EOB", "classification_confidence": 0.9,
				 "extracted_data": {"total_billed": "twelve hundred"}}
			]
		}`
		req := httptest.NewRequest("POST", "/api/v1/packets/review", strings.NewReader(body))
		rr := httptest.NewRecorder()

		ctrl.ReviewPacket(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var envelope struct {
			Data responses.PacketReview `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		require.Len(t, envelope.Data.SchemaWarnings, 1)
		assert.Contains(t, envelope.Data.SchemaWarnings[0], "eob-9")
	})
}

func TestExportPacket(t *testing.T) {
	ctrl := newTestController()

	t.Run("returns an xlsx attachment", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/packets/review/export", strings.NewReader(consistentPacket))
		rr := httptest.NewRecorder()

		ctrl.ExportPacket(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.MIMEApplicationXLSX, rr.Header().Get(constvars.HeaderContentType))
		assert.Contains(t, rr.Header().Get(constvars.HeaderContentDisposition), "attachment")
		assert.Contains(t, rr.Header().Get(constvars.HeaderContentDisposition), "pkt-001")
		// XLSX files are zip archives; check the magic bytes.
		require.True(t, rr.Body.Len() > 4)
		assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/packets/review/export", strings.NewReader(""))
		rr := httptest.NewRecorder()

		ctrl.ExportPacket(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
