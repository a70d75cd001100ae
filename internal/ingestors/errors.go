package ingestors

import (
	"fmt"

	"rx-analytics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed       = "ING_1000"
	codeEventsAlreadyProcessed = "ING_1001"

	codeInternalEventLedgerFailed   = "ING_9000"
	codeInternalEventProducerFailed = "ING_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errEventsAlreadyProcessed returns an error when every event of a batch was ingested before.
func errEventsAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeEventsAlreadyProcessed, "events already processed", cause)
}

func errInternalEventLedgerFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventLedgerFailed, fmt.Errorf("eventLedgerFailed: %w", cause))
}

func errInternalEventProducerFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventProducerFailed, fmt.Errorf("eventProducerFailed: %w", cause))
}
