package server

import (
	"encoding/json"
	"errors"
	"net/http"

	serrors "github.com/matzehuels/stackchart/pkg/errors"
)

// errBodyTooLarge is returned when a request body exceeds MaxBodyBytes.
var errBodyTooLarge = errors.New("request body too large")

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, errBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if serrors.IsValidation(err) {
		return http.StatusBadRequest
	}
	switch serrors.GetCode(err) {
	case serrors.ErrCodeNotFound, serrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case serrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case serrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(serrors.GetCode(err))
	switch {
	case errors.Is(err, errBodyTooLarge):
		code = "BODY_TOO_LARGE"
	case code == "":
		code = string(serrors.ErrCodeInternal)
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   serrors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
