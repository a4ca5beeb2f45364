package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldAuctionID       = "auction-id"
	FieldConnectedRealm  = "connected-realm"
	FieldDealIndex       = "deal-index"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldItemID          = "item-id"
	FieldPetID           = "pet-id"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldSearchKey       = "search-key"
	FieldStack           = "stack"
	FieldStatus          = "status"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
