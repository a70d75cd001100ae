package http

import (
	"net/http"
	"strconv"
	"strings"

	"rx-analytics/internal/reports"

	"github.com/go-chi/chi/v5"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// AppHttpHandlerFunc adapts a function to AppHttpHandler.
type AppHttpHandlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f AppHttpHandlerFunc) Handle(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// Query parameters with a fixed meaning. Every other parameter is a filter on the field it names.
const (
	paramFrom     = "from"
	paramTo       = "to"
	paramPage     = "page"
	paramPageSize = "page_size"
	paramLive     = "live"
)

const (
	urlParamReport = "report"
	urlParamField  = "field"
	urlParamFile   = "file"
	urlParamViewID = "id"
)

// parseQueryRequest reads a report query from the URL query string.
func parseQueryRequest(r *http.Request) (reports.QueryRequest, error) {
	values := r.URL.Query()
	req := reports.QueryRequest{
		From:    strings.TrimSpace(values.Get(paramFrom)),
		To:      strings.TrimSpace(values.Get(paramTo)),
		Filters: make(map[string]string),
	}

	var err error
	if req.Page, err = intParam(values.Get(paramPage), paramPage); err != nil {
		return req, err
	}
	if req.PageSize, err = intParam(values.Get(paramPageSize), paramPageSize); err != nil {
		return req, err
	}
	if raw := strings.TrimSpace(values.Get(paramLive)); raw != "" {
		if req.Live, err = strconv.ParseBool(raw); err != nil {
			return req, errInvalidQueryParameter(paramLive, err)
		}
	}

	for name := range values {
		switch name {
		case paramFrom, paramTo, paramPage, paramPageSize, paramLive:
			continue
		}
		req.Filters[name] = values.Get(name)
	}
	return req, nil
}

func intParam(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidQueryParameter(name, err)
	}
	return n, nil
}

func urlParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}
