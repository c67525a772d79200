// Package httpjson centraliza las respuestas JSON de la API.
package httpjson

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON serializa payload con el status dado.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError responde {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// WriteSuccess responde {"success": true, key: payload}. Con key vacía
// solo va el flag.
func WriteSuccess(w http.ResponseWriter, status int, key string, payload any) {
	body := map[string]any{"success": true}
	if key != "" {
		body[key] = payload
	}
	WriteJSON(w, status, body)
}
