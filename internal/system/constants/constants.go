package constants

const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	CorrelationIDHeaderName = "X-Correlation-ID"
	UserIDHeaderName        = "X-User-ID"
	OrgIDHeaderName         = "X-Organization-ID"
	UserRoleHeaderName      = "X-User-Role"
	ContentTypeJSON         = "application/json"
	DefaultPageSize         = 30
	MaxPageSize             = 100

	APIBasePath = "/api/v1"

	// Context keys set by middleware
	ContextKeyActor         = "actor"
	ContextKeyCorrelationID = "correlation_id"
)
