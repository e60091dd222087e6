package handler

import (
	"net/http"

	"github.com/iho/clearledger/internal/adapter/http/dto"
)

// Enums lists the cities and payment methods the API accepts.
func Enums(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, dto.Enums())
}
