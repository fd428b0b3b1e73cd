package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingPacketIDKey      = "packet_id"
	LoggingDocumentCountKey = "document_count"
	LoggingResultCountKey   = "result_count"
	LoggingCheckCategoryKey = "check_category"
	LoggingDurationKey      = "duration"
	LoggingMethodKey        = "method"
	LoggingPathKey          = "path"
	LoggingStatusCodeKey    = "status_code"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingQueueNameKey     = "queue_name"
	LoggingErrorKey         = "error"
)

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY contextKey = "requestID"
)
