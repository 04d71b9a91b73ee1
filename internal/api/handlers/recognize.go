package handlers

import (
	"context"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/your-org/facerec/internal/notify"
	"github.com/your-org/facerec/internal/recognition"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/pkg/dto"
)

type RecognizeHandler struct {
	service  *recognition.Service
	settings *storage.SettingsStore
	webhook  *notify.Webhook
}

func NewRecognizeHandler(service *recognition.Service, settings *storage.SettingsStore, webhook *notify.Webhook) *RecognizeHandler {
	return &RecognizeHandler{service: service, settings: settings, webhook: webhook}
}

// Recognize accepts a multipart image upload, runs the recognition
// pipeline and returns the simplified result. The webhook fires
// asynchronously when at least one enrolled person was recognized;
// its outcome never affects this response.
func (h *RecognizeHandler) Recognize(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read image failed"})
		return
	}

	result, err := h.service.Process(imageData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	nameSet := map[string]struct{}{}
	for _, face := range result.Faces {
		if face.KnownPerson && face.NamePerson != "" {
			nameSet[face.NamePerson] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		if settings, err := h.settings.Load(); err == nil &&
			settings.WebhookEnabled && settings.WebhookURL != "" {
			go h.webhook.Notify(context.Background(), settings.WebhookURL, names)
		}
	}

	c.JSON(http.StatusOK, dto.RecognizeResponse{
		KnownPerson: len(names) > 0,
		NamePersons: names,
		EventID:     result.EventID,
	})
}
