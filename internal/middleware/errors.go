package middleware

import (
	"encoding/json"
	"net/http"
)

// Messages written by middleware in the {"error": message} envelope.
const (
	MsgInternalError       = "Internal server error"
	MsgContentTypeJSON     = "Content-Type must be application/json"
	MsgRequestBodyTooLarge = "Request body too large"
)

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
