package server

import (
	"encoding/json"
	"net/http"

	"wavefm/core/apperr"
	"wavefm/core/paging"
	"wavefm/logger"
)

// apiResponse is the uniform wire envelope. Pagination fields appear only
// on paginated operations.
type apiResponse struct {
	StatusCode  int         `json:"statusCode"`
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	Total       *int64      `json:"total,omitempty"`
	Limit       *int        `json:"limit,omitempty"`
	TotalPages  *int        `json:"totalPages,omitempty"`
	CurrentPage *int        `json:"currentPage,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// respondJSON writes a non-paginated envelope.
func respondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, apiResponse{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// respondPage writes a paginated envelope.
func respondPage[T any](w http.ResponseWriter, status int, message string, page paging.Page[T]) {
	writeJSON(w, status, apiResponse{
		StatusCode:  status,
		Message:     message,
		Data:        page.Data,
		Total:       &page.Total,
		Limit:       &page.Limit,
		TotalPages:  &page.TotalPages,
		CurrentPage: &page.CurrentPage,
	})
}

// respondError maps an error kind to a transport status and writes the
// envelope with a null data field. Internal failures are logged and hidden
// behind a generic message.
func respondError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := statusFromKind(kind)
	message := apperr.MessageOf(err)

	if kind == apperr.Internal {
		logger.Error("Internal error", logger.ErrorField(err))
		message = "Something went wrong"
	}

	writeJSON(w, status, apiResponse{
		StatusCode: status,
		Message:    message,
		Data:       nil,
	})
}

func statusFromKind(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidArgument:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
