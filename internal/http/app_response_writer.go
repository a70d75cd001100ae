package http

import (
	"net/http"

	"rx-analytics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter records the outcome of a request for the outer middleware: the status and
// size come from the wrapped writer, the service error from the error adapter.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

// StatusOrOK is the written status, or 200 when the handler never wrote a header.
func (w *appResponseWriter) StatusOrOK() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// InternalError returns the service error when the request failed on the server side.
func (w *appResponseWriter) InternalError() *svcerrors.ServiceError {
	if w.svcError != nil && w.svcError.HttpStatusCode >= http.StatusInternalServerError {
		return w.svcError
	}
	return nil
}

// outcome reads the status, response size and error code off w, which is expected to be the
// appResponseWriter installed by mwAppResponseWriter.
func outcome(w http.ResponseWriter) (status int, bytesWritten int, errorCode string) {
	appWriter, ok := w.(*appResponseWriter)
	if !ok {
		return http.StatusOK, 0, ""
	}
	return appWriter.StatusOrOK(), appWriter.BytesWritten(), appWriter.ErrorCode()
}
