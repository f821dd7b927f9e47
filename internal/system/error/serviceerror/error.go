package serviceerror

type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Error            string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
}

var (
	InternalServerError = ServiceError{
		Type:             ServerErrorType,
		Code:             "DPE-5000",
		Error:            "internal_server_error",
		ErrorDescription: "An unexpected error occurred",
	}

	DatabaseError = ServiceError{
		Type:             ServerErrorType,
		Code:             "DPE-5001",
		Error:            "database_error",
		ErrorDescription: "A database error occurred",
	}

	NotificationError = ServiceError{
		Type:             ServerErrorType,
		Code:             "DPE-5020",
		Error:            "notification_error",
		ErrorDescription: "Failed to dispatch notification",
	}

	InvalidRequestError = ServiceError{
		Type:             ClientErrorType,
		Code:             "DPE-4000",
		Error:            "invalid_request",
		ErrorDescription: "The request is invalid",
	}

	ValidationError = ServiceError{
		Type:             ClientErrorType,
		Code:             "DPE-4001",
		Error:            "validation_error",
		ErrorDescription: "Validation failed",
	}

	ForbiddenError = ServiceError{
		Type:             ClientErrorType,
		Code:             "DPE-4003",
		Error:            "forbidden",
		ErrorDescription: "The caller is not permitted to perform this action",
	}

	ResourceNotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             "DPE-4004",
		Error:            "resource_not_found",
		ErrorDescription: "Resource not found",
	}

	ConflictError = ServiceError{
		Type:             ClientErrorType,
		Code:             "DPE-4009",
		Error:            "conflict",
		ErrorDescription: "Request conflicts with current state",
	}

	NoChangeError = ServiceError{
		Type:             ClientErrorType,
		Code:             "DPE-4010",
		Error:            "no_change",
		ErrorDescription: "The request contains no changes to apply",
	}
)

func CustomServiceError(baseError ServiceError, description string) *ServiceError {
	return &ServiceError{
		Type:             baseError.Type,
		Code:             baseError.Code,
		Error:            baseError.Error,
		ErrorDescription: description,
	}
}
