package constvars

// Messages shown to API clients. Kept apart from dev messages so internal
// detail never leaks into a response body.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientTooManyRequests               = "Too many requests, please slow down"
	ErrClientPacketTooLarge                = "The packet exceeds the maximum number of documents"
)

// Messages for logs only.
const (
	ErrDevCannotParseJSON         = "Failed to parse JSON request body"
	ErrDevCannotMarshalJSON       = "Failed to marshal JSON"
	ErrDevValidationFailed        = "Request validation failed"
	ErrDevServerDeadlineExceeded  = "Server deadline exceeded"
	ErrDevInvalidInput            = "Invalid input"
	ErrDevRedisGetData            = "Failed to get data from Redis"
	ErrDevRedisSetData            = "Failed to set data in Redis"
	ErrDevRedisIncrementValue     = "Failed to increment value in Redis"
	ErrDevRedisDeleteData         = "Failed to delete data from Redis"
	ErrDevRabbitMQPublishMessage  = "Failed to publish message to queue %s"
	ErrDevExportBuildWorkbook     = "Failed to build export workbook"
	ErrDevExportWriteWorkbook     = "Failed to write export workbook"
)

// CustomValidationErrorMessages maps validator tags to client wording.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "should be at least %s in length or value",
	"max":      "should be at most %s in length or value",
	"oneof":    "should be one of: %s",
	"gte":      "should be greater than or equal to %s",
	"lte":      "should be less than or equal to %s",
	"document_type": "must be a recognized document type",
}

// TagsWithParams marks validator tags whose message embeds the tag param.
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gte":   true,
	"lte":   true,
}
