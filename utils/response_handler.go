package utils

import (
	"crm/schemas"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SendResponse writes the {message, data} envelope. A non-zero
// internalErrorCode replaces the message with the generic internal error text.
func SendResponse(w http.ResponseWriter, statusCode int, message string, data any, internalErrorCode int) {
	if internalErrorCode != 0 {
		message = SendInternalError(internalErrorCode)
		data = nil
	}

	if message == "" && data == nil {
		w.WriteHeader(statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(schemas.ApiResponse{Message: message, Data: data}); err != nil {
		log.Warn().Err(err).Int("status", statusCode).Msg("failed to encode response")
	}
}
