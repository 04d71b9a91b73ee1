package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/your-org/facerec/internal/recognition"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/internal/vision"
	"github.com/your-org/facerec/pkg/dto"
)

type KnownHandler struct {
	service *recognition.Service
	known   *storage.KnownStore
}

func NewKnownHandler(service *recognition.Service, known *storage.KnownStore) *KnownHandler {
	return &KnownHandler{service: service, known: known}
}

func (h *KnownHandler) List(c *gin.Context) {
	people, err := h.known.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.KnownFaceResponse, 0, len(people))
	for _, p := range people {
		resp = append(resp, dto.KnownFaceResponse{Name: p.Name, ImageCount: p.ImageCount})
	}
	c.JSON(http.StatusOK, resp)
}

// Create enrolls a new face for a person from a multipart upload with a
// "name" form field and an "image" file.
func (h *KnownHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

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

	if err := h.service.Enroll(name, imageData); err != nil {
		switch {
		case errors.Is(err, vision.ErrNoFaceDetected):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no face found in image"})
		case errors.Is(err, storage.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "face added successfully", "name": name})
}

func (h *KnownHandler) Delete(c *gin.Context) {
	if err := h.known.Delete(c.Param("name")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "person deleted successfully"})
}

func (h *KnownHandler) ListImages(c *gin.Context) {
	name := c.Param("name")
	images, err := h.known.ListImages(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.KnownFaceImage, 0, len(images))
	for _, filename := range images {
		resp = append(resp, dto.KnownFaceImage{
			Filename: filename,
			URL:      "/api/known-faces/" + name + "/image/" + filename,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// GetImage serves one enrollment image. The store rejects filenames that
// would resolve outside the person's directory.
func (h *KnownHandler) GetImage(c *gin.Context) {
	path, err := h.known.ImagePath(c.Param("name"), c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	c.File(path)
}

func (h *KnownHandler) DeleteImage(c *gin.Context) {
	err := h.known.DeleteImage(c.Param("name"), c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "face image deleted successfully"})
}
