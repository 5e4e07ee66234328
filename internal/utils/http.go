package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// encodeFailureBody is sent when a response value cannot be encoded. It
// matches the shape of every other error body of the API.
const encodeFailureBody = `{"error":"Internal Server Error","code":"internal_error"}`

// WriteJSON encodes data and writes it with the given status and an
// application/json content type. The value is encoded before anything is
// written, so an encoding failure still produces a clean 500 JSON error and
// the wrapped encoding error is returned.
//
//	WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailureBody))
		return 0, fmt.Errorf("error encoding response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
