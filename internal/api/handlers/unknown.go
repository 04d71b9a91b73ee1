package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/facerec/internal/recognition"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/internal/vision"
	"github.com/your-org/facerec/pkg/dto"
)

type UnknownHandler struct {
	service *recognition.Service
	unknown *storage.UnknownStore
}

func NewUnknownHandler(service *recognition.Service, unknown *storage.UnknownStore) *UnknownHandler {
	return &UnknownHandler{service: service, unknown: unknown}
}

func (h *UnknownHandler) List(c *gin.Context) {
	faces, err := h.unknown.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.UnknownFaceResponse, 0, len(faces))
	for _, f := range faces {
		r := dto.UnknownFaceResponse{
			ID:        f.ID,
			Timestamp: f.Timestamp.Format(time.RFC3339),
			ImageURL:  "/api/unknown-faces/" + f.ID + "/image",
		}
		if f.HasFaceImage {
			r.FaceURL = "/api/unknown-faces/" + f.ID + "/face"
		}
		resp = append(resp, r)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UnknownHandler) GetImage(c *gin.Context) {
	path, err := h.unknown.ImagePath(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "face not found"})
		return
	}
	c.File(path)
}

// GetFace serves the cropped face image, falling back to the full image
// when no crop was extracted.
func (h *UnknownHandler) GetFace(c *gin.Context) {
	id := c.Param("id")
	if path, err := h.unknown.FacePath(id); err == nil {
		c.File(path)
		return
	}
	path, err := h.unknown.ImagePath(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "face not found"})
		return
	}
	c.File(path)
}

// Name promotes an unknown face into the known-face store.
func (h *UnknownHandler) Name(c *gin.Context) {
	var req dto.NameFaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.service.NameUnknownFace(c.Param("id"), name); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "face not found"})
		case errors.Is(err, vision.ErrNoFaceDetected):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no face found in image"})
		case errors.Is(err, storage.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "face named successfully", "name": name})
}

func (h *UnknownHandler) Delete(c *gin.Context) {
	if err := h.unknown.Delete(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "face not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "face deleted successfully"})
}
