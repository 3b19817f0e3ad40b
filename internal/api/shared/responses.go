package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response body for every endpoint. Status is
// "success" or "error"; Data carries the payload; the pagination fields are
// present only on list responses.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int        `json:"total,omitempty"`
	Page    *int        `json:"page,omitempty"`
	Pages   *int        `json:"pages,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope wrapping the given payload.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	RespondWithJSON(w, r, status, Envelope{Status: "success", Data: data})
}

// RespondWithMessage writes a success envelope carrying only a message.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, Envelope{Status: "success", Message: message})
}

// RespondWithList writes a success envelope for a paginated collection. Total
// is the size of the filtered set before pagination and pages is the total
// page count for the requested page size.
func RespondWithList(w http.ResponseWriter, r *http.Request, data interface{}, total, page, pages int) {
	RespondWithJSON(w, r, http.StatusOK, Envelope{
		Status: "success",
		Data:   data,
		Total:  &total,
		Page:   &page,
		Pages:  &pages,
	})
}

// RespondWithError writes an error envelope with the given status code and
// message, stamping the trace ID from the request context when present.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{
		Status:  "error",
		Message: message,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a sanitized error envelope and logs the
// underlying error server-side. The raw error never reaches the client.
// Server errors log at ERROR; client errors log at DEBUG.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Envelope{
		Status:  "error",
		Message: userMessage,
		TraceID: traceID,
	})
}
