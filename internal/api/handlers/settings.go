package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/facerec/internal/models"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/pkg/dto"
)

type SettingsHandler struct {
	settings *storage.SettingsStore
}

func NewSettingsHandler(settings *storage.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update replaces the stored settings wholesale and returns the result.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.Settings{
		WebhookURL:     req.WebhookURL,
		WebhookEnabled: req.WebhookEnabled,
		Tolerance:      req.Tolerance,
	}
	if err := h.settings.Save(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.settings.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}
