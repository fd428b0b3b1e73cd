package packets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"claimsreview-service/internal/app/contracts"
	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/dto/requests"
	"claimsreview-service/internal/pkg/exceptions"
	"claimsreview-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PacketController struct {
	Log           *zap.Logger
	PacketUsecase contracts.PacketUsecase
	ExportService contracts.ExportService
}

func NewPacketController(logger *zap.Logger, packetUsecase contracts.PacketUsecase, exportService contracts.ExportService) *PacketController {
	return &PacketController{
		Log:           logger,
		PacketUsecase: packetUsecase,
		ExportService: exportService,
	}
}

func (ctrl *PacketController) ReviewPacket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	request, err := ctrl.parseRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PacketUsecase.ReviewPacket(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReviewPacketSuccessMessage, result)
}

func (ctrl *PacketController) ExportPacket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	request, err := ctrl.parseRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PacketUsecase.ReviewPacket(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	workbook, err := ctrl.ExportService.BuildWorkbook(ctx, &result.ClaimsPacketOutput)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	filename := utils.GenerateExportFileName(result.PacketID)
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationXLSX)
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(constvars.StatusOK)
	if _, err := w.Write(workbook); err != nil {
		ctrl.Log.Error("PacketController.ExportPacket write failed", zap.Error(err))
	}
}

func (ctrl *PacketController) parseRequest(r *http.Request) (*requests.ReviewPacket, error) {
	request := new(requests.ReviewPacket)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return request, nil
}
