package constvars

const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMETextPlain              = "text/plain"
	MIMEApplicationJSON        = "application/json"
	MIMEApplicationOctetStream = "application/octet-stream"
	MIMEApplicationXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusOK       = 200
	StatusCreated  = 201
	StatusAccepted = 202

	StatusBadRequest           = 400
	StatusUnauthorized         = 401
	StatusForbidden            = 403
	StatusNotFound             = 404
	StatusMethodNotAllowed     = 405
	StatusRequestTimeout       = 408
	StatusUnprocessableEntity  = 422
	StatusTooManyRequests      = 429
	StatusRequestEntityTooLarge = 413

	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization      = "Authorization"
	HeaderContentType        = "Content-Type"
	HeaderContentLength      = "Content-Length"
	HeaderContentDisposition = "Content-Disposition"
	HeaderAccept             = "Accept"
	HeaderXRequestID         = "X-Request-ID"
	HeaderXAPIKey            = "x-api-key"
	HeaderRetryAfter         = "Retry-After"
)
