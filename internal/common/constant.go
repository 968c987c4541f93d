package common

const (
	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the access token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// RetryHeader marks a request that has already been retried once after a
	// token refresh. A 401 on a marked request must not trigger another refresh.
	RetryHeader = "X-Retry"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"
)
