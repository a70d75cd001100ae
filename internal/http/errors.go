package http

import (
	"fmt"

	"rx-analytics/internal/shared/svcerrors"
)

// HTTP request errors
const (
	codeInvalidQueryParameter = "HTTP_1000"
	codeInvalidRequestBody    = "HTTP_1001"
)

func errInvalidQueryParameter(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParameter, fmt.Sprintf("invalid query parameter %q", name), cause)
}

func errInvalidRequestBody(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRequestBody, "invalid request body", cause)
}
