package http

import (
	"net/http"

	"rx-analytics/internal/ingestors"
	"rx-analytics/internal/reports"
	"rx-analytics/internal/shared/loggers"
	"rx-analytics/internal/shared/metrics"
	"rx-analytics/internal/views"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(ingestionService ingestors.IngestionService, reportService reports.Service, viewService views.Service, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestEventsHandler := NewIngestEventsHandler(ingestionService)
	reportHandlers := newReportHandlers(reportService)
	viewHandlers := newViewHandlers(viewService)

	// Routes
	router.Post("/events", errorHandlingAdapter(ingestEventsHandler))

	router.Route("/reports", func(r chi.Router) {
		r.Get("/", errorHandlingAdapter(AppHttpHandlerFunc(reportHandlers.Catalog)))
		r.Get("/{report}", errorHandlingAdapter(AppHttpHandlerFunc(reportHandlers.Query)))
		r.Get("/{report}/options/{field}", errorHandlingAdapter(AppHttpHandlerFunc(reportHandlers.Options)))
		r.Get("/{report}/export", errorHandlingAdapter(AppHttpHandlerFunc(reportHandlers.Export)))
		r.Post("/{report}/exports", errorHandlingAdapter(AppHttpHandlerFunc(reportHandlers.SaveExport)))
		r.Get("/{report}/exports", errorHandlingAdapter(AppHttpHandlerFunc(reportHandlers.ListExports)))
		r.Get("/{report}/exports/{file}", errorHandlingAdapter(AppHttpHandlerFunc(reportHandlers.DownloadExport)))
	})

	router.Route("/views", func(r chi.Router) {
		r.Post("/", errorHandlingAdapter(AppHttpHandlerFunc(viewHandlers.Create)))
		r.Get("/{id}", errorHandlingAdapter(AppHttpHandlerFunc(viewHandlers.Get)))
		r.Patch("/{id}", errorHandlingAdapter(AppHttpHandlerFunc(viewHandlers.Update)))
		r.Delete("/{id}", errorHandlingAdapter(AppHttpHandlerFunc(viewHandlers.Close)))
	})

	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
