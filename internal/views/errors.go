package views

import (
	"fmt"

	"rx-analytics/internal/shared/svcerrors"
)

// ViewService errors
const (
	codeValidationFailed   = "VIEW_1000"
	codeLiveNotSupported   = "VIEW_1001"
	codeHintNotSupported   = "VIEW_1002"
	codeViewNotFound       = "VIEW_2000"
	codeInvalidTransition  = "VIEW_3000"
	codeInternalLiveFailed = "VIEW_9000"
)

func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errLiveNotSupported(report string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeLiveNotSupported, fmt.Sprintf("report %q has no live mode", report), cause)
}

func errHintNotSupported(report string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeHintNotSupported, fmt.Sprintf("report %q does not accept an on-break hint", report), nil)
}

func errViewNotFound(id string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeViewNotFound, fmt.Sprintf("view %q not found", id), nil)
}

func errInvalidTransition(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeInvalidTransition, "view cannot change in its current state", cause)
}

func errInternalLiveFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLiveFailed, fmt.Errorf("liveSchedulerFailed: %w", cause))
}
