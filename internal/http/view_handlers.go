package http

import (
	"io"
	"net/http"

	"rx-analytics/internal/views"

	"github.com/goccy/go-json"
)

const maxViewBodyBytes = 64 * 1024

// viewHandlers serves consumer views.
type viewHandlers struct {
	viewService views.Service
}

func newViewHandlers(viewService views.Service) *viewHandlers {
	return &viewHandlers{viewService: viewService}
}

// Create processes POST /views requests.
func (h *viewHandlers) Create(w http.ResponseWriter, r *http.Request) error {
	var req views.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	snapshot, err := h.viewService.Create(r.Context(), req)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, snapshot)
	return nil
}

// Get processes GET /views/{id} requests.
func (h *viewHandlers) Get(w http.ResponseWriter, r *http.Request) error {
	snapshot, err := h.viewService.Get(r.Context(), urlParam(r, urlParamViewID))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, snapshot)
	return nil
}

// Update processes PATCH /views/{id} requests.
func (h *viewHandlers) Update(w http.ResponseWriter, r *http.Request) error {
	var req views.UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	snapshot, err := h.viewService.Update(r.Context(), urlParam(r, urlParamViewID), req)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, snapshot)
	return nil
}

// Close processes DELETE /views/{id} requests.
func (h *viewHandlers) Close(w http.ResponseWriter, r *http.Request) error {
	view, err := h.viewService.Close(r.Context(), urlParam(r, urlParamViewID))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, view)
	return nil
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errInvalidRequestBody(nil)
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxViewBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errInvalidRequestBody(err)
	}
	return nil
}
