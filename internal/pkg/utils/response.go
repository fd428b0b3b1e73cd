package utils

import (
	"errors"
	"net/http"

	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/dto/responses"
	"claimsreview-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication
	devMessage := ""

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		devMessage = customErr.DevMessage
		for _, location := range customErr.Locations {
			log.Error(customErr.DevMessage,
				zap.String("file", location.File),
				zap.Int("line", location.Line),
				zap.String("function_name", location.FunctionName),
			)
		}
	} else {
		log.Error(err.Error())
	}

	response := struct {
		StatusCode int    `json:"status_code"`
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		DevMessage string `json:"dev_message,omitempty"`
	}{
		StatusCode: code,
		Success:    false,
		Message:    clientMessage,
	}
	if GetEnvString("APP_ENV", constvars.EnvironmentDevelopment) != constvars.EnvironmentProduction {
		response.DevMessage = devMessage
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
