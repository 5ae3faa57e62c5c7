package handler

import (
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/api/response"
)

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
