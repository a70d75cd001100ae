package http

import (
	"fmt"
	"io"
	"net/http"

	"rx-analytics/internal/reports"
	"rx-analytics/internal/shared/loggers"
)

// reportHandlers serves the report catalog, queries and exports.
type reportHandlers struct {
	reportService reports.Service
}

func newReportHandlers(reportService reports.Service) *reportHandlers {
	return &reportHandlers{reportService: reportService}
}

// Catalog processes GET /reports requests.
func (h *reportHandlers) Catalog(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, h.reportService.Catalog())
	return nil
}

// Query processes GET /reports/{report} requests.
func (h *reportHandlers) Query(w http.ResponseWriter, r *http.Request) error {
	req, err := parseQueryRequest(r)
	if err != nil {
		return err
	}
	result, err := h.reportService.Query(r.Context(), urlParam(r, urlParamReport), req)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, result)
	return nil
}

// Options processes GET /reports/{report}/options/{field} requests.
func (h *reportHandlers) Options(w http.ResponseWriter, r *http.Request) error {
	req, err := parseQueryRequest(r)
	if err != nil {
		return err
	}
	options, err := h.reportService.Options(r.Context(), urlParam(r, urlParamReport), urlParam(r, urlParamField), req.Filters)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, options)
	return nil
}

// Export processes GET /reports/{report}/export requests, streaming the CSV.
func (h *reportHandlers) Export(w http.ResponseWriter, r *http.Request) error {
	req, err := parseQueryRequest(r)
	if err != nil {
		return err
	}
	report := urlParam(r, urlParamReport)

	w.Header().Set(headerContentType, contentTypeCSV)
	w.Header().Set(headerContentDisposition, fmt.Sprintf("attachment; filename=%q", report+".csv"))
	return h.reportService.Export(r.Context(), report, req, w)
}

// SaveExport processes POST /reports/{report}/exports requests.
func (h *reportHandlers) SaveExport(w http.ResponseWriter, r *http.Request) error {
	req, err := parseQueryRequest(r)
	if err != nil {
		return err
	}
	saved, err := h.reportService.SaveExport(r.Context(), urlParam(r, urlParamReport), req)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, saved)
	return nil
}

// ListExports processes GET /reports/{report}/exports requests.
func (h *reportHandlers) ListExports(w http.ResponseWriter, r *http.Request) error {
	saved, err := h.reportService.ListExports(r.Context(), urlParam(r, urlParamReport))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, saved)
	return nil
}

// DownloadExport processes GET /reports/{report}/exports/{file} requests.
func (h *reportHandlers) DownloadExport(w http.ResponseWriter, r *http.Request) error {
	file := urlParam(r, urlParamFile)
	rc, err := h.reportService.OpenExport(r.Context(), urlParam(r, urlParamReport), file)
	if err != nil {
		return err
	}
	defer rc.Close()

	w.Header().Set(headerContentType, contentTypeCSV)
	w.Header().Set(headerContentDisposition, fmt.Sprintf("attachment; filename=%q", file))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		loggers.Ctx(r.Context()).Warn().Err(err).Str("file", file).Msg("failed to stream export")
	}
	return nil
}
