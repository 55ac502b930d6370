package handler

import (
	"fmt"
	"net/http"

	"prescription-ai-service/pkg/response"

	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type messageBody struct {
	Message string `json:"message"`
}

func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, messageBody{Message: "API is running!"})
}

// TestDB verifies store connectivity by asking the server which database
// the session is bound to.
func (h *HealthHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	var name string
	if err := h.db.WithContext(r.Context()).Raw("SELECT DATABASE()").Scan(&name).Error; err != nil {
		response.InternalServerError(w, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, messageBody{
		Message: fmt.Sprintf("Connected to database: %s", name),
	})
}
