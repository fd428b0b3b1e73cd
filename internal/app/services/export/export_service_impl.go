package export

import (
	"context"
	"strings"
	"sync"

	"claimsreview-service/internal/app/contracts"
	"claimsreview-service/internal/app/models"
	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/exceptions"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type exportService struct {
	Log *zap.Logger
}

var (
	exportServiceInstance contracts.ExportService
	onceNewExportService  sync.Once
)

func NewExportService(logger *zap.Logger) contracts.ExportService {
	onceNewExportService.Do(func() {
		exportServiceInstance = &exportService{Log: logger}
	})
	return exportServiceInstance
}

const (
	sheetFindings = "Findings"
	sheetSummary  = "Financial Summary"
)

// BuildWorkbook renders a finished review into a two-sheet XLSX workbook:
// one row per validation result plus a key-value financial summary sheet.
func (svc *exportService) BuildWorkbook(ctx context.Context, output *models.ClaimsPacketOutput) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	svc.Log.Info("ExportService.BuildWorkbook called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPacketIDKey, output.PacketID),
	)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetFindings); err != nil {
		return nil, exceptions.ErrExportBuildWorkbook(err)
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, exceptions.ErrExportBuildWorkbook(err)
	}

	if err := svc.writeFindings(f, output); err != nil {
		return nil, exceptions.ErrExportBuildWorkbook(err)
	}
	if err := svc.writeSummary(f, output); err != nil {
		return nil, exceptions.ErrExportBuildWorkbook(err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, exceptions.ErrExportWriteWorkbook(err)
	}

	svc.Log.Info("ExportService.BuildWorkbook succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(output.ValidationResults)),
	)
	return buf.Bytes(), nil
}

func (svc *exportService) writeFindings(f *excelize.File, output *models.ClaimsPacketOutput) error {
	headers := []string{
		"Check",
		"Category",
		"Status",
		"Severity",
		"Detail",
		"Expected",
		"Actual",
		"Potential Overcharge",
		"Affected Documents",
		"Recommendation",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetFindings, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, res := range output.ValidationResults {
		row := rowIdx + 2
		write := func(col int, v any) error {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			return f.SetCellValue(sheetFindings, cell, v)
		}

		values := []any{
			res.CheckName,
			res.Category,
			string(res.Status),
			string(res.Severity),
			res.Detail,
			amountCell(res.Expected),
			amountCell(res.Actual),
			amountCell(res.PotentialOvercharge),
			strings.Join(res.AffectedDocIDs, ", "),
			res.Recommendation,
		}
		for col, v := range values {
			if err := write(col+1, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheetFindings, "A", "B", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetFindings, "E", "E", 70); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetFindings, "I", "J", 40); err != nil {
		return err
	}
	return nil
}

func (svc *exportService) writeSummary(f *excelize.File, output *models.ClaimsPacketOutput) error {
	fs := output.FinancialSummary
	rows := []struct {
		label string
		value any
	}{
		{"Packet ID", output.PacketID},
		{"Processing Date", output.ProcessingDate},
		{"Patient Name", strings.TrimSpace(output.Patient.FirstName + " " + output.Patient.LastName)},
		{"Total Billed", amountCell(fs.TotalBilled)},
		{"Total Allowed", amountCell(fs.TotalAllowed)},
		{"Total Insurance Paid", amountCell(fs.TotalInsurancePaid)},
		{"Patient Responsibility (per EOB)", amountCell(fs.TotalPatientResponsibilityPerEOB)},
		{"Patient Responsibility (per bills)", amountCell(fs.TotalPatientResponsibilityPerBill)},
		{"Discrepancy Amount", fs.DiscrepancyAmount},
		{"Potential Savings", fs.PotentialSavings},
		{"Flagged Issues", fs.FlaggedIssues},
	}
	for i, r := range rows {
		labelCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, labelCell, r.label); err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, valueCell, r.value); err != nil {
			return err
		}
	}

	actionsStart := len(rows) + 2
	titleCell, err := excelize.CoordinatesToCellName(1, actionsStart)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetSummary, titleCell, "Recommended Actions"); err != nil {
		return err
	}
	for i, action := range output.RecommendedActions {
		cell, err := excelize.CoordinatesToCellName(1, actionsStart+1+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, cell, action); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetSummary, "A", "B", 36)
}

func amountCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
