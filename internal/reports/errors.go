package reports

import (
	"fmt"

	"rx-analytics/internal/shared/svcerrors"
)

// ReportService errors
const (
	codeInvalidDate        = "RPT_1000"
	codeUnknownFilterField = "RPT_1001"
	codeInvalidFilterValue = "RPT_1002"
	codeInvalidPageSize    = "RPT_1003"
	codeDuplicateEvent     = "RPT_1004"
	codeInvalidEvent       = "RPT_1005"
	codeInvalidExportName  = "RPT_1006"

	codeReportNotFound = "RPT_2000"
	codeExportNotFound = "RPT_2001"

	codeInternalAggregationFailed = "RPT_9000"
	codeInternalExportFailed      = "RPT_9001"
	codeInternalEventStoreFailed  = "RPT_9002"
)

func errInvalidDate(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidDate, "invalid date range: expected YYYY-MM-DD", cause)
}

func errUnknownFilterField(field string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnknownFilterField, fmt.Sprintf("unknown filter field %q", field), cause)
}

func errInvalidFilterValue(field string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidFilterValue, fmt.Sprintf("invalid value for filter %q", field), cause)
}

func errInvalidPageSize(maxPageSize int, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidPageSize, fmt.Sprintf("page size must be between 1 and %d", maxPageSize), cause)
}

func errDuplicateEvent(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeDuplicateEvent, "event already ingested", cause)
}

func errInvalidEvent(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidEvent, "event rejected by report", cause)
}

func errInvalidExportName(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidExportName, "invalid export file name", cause)
}

func errReportNotFound(report string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("report %q not found", report), nil)
}

func errExportNotFound(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeExportNotFound, "export not found", cause)
}

func errInternalAggregationFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregationFailed, fmt.Errorf("aggregationFailed: %w", cause))
}

func errInternalExportFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalExportFailed, fmt.Errorf("exportFailed: %w", cause))
}

func errInternalEventStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventStoreFailed, fmt.Errorf("eventStoreFailed: %w", cause))
}
