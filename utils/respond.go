package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Meta carries pagination info on list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func NewMeta(page, limit int, total int64) *Meta {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, APIResponse{Success: true, Message: message, Data: data})
}

func WriteSuccessMeta(w http.ResponseWriter, status int, data interface{}, message string, meta *Meta) {
	writeJSON(w, status, APIResponse{Success: true, Message: message, Data: data, Meta: meta})
}

func WriteError(w http.ResponseWriter, status int, message string, errs ...string) {
	writeJSON(w, status, APIResponse{Success: false, Message: message, Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
