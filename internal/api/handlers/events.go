package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/facerec/internal/models"
	"github.com/your-org/facerec/internal/recognition"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/internal/vision"
	"github.com/your-org/facerec/pkg/dto"
)

type EventHandler struct {
	service *recognition.Service
	events  *storage.EventStore
}

func NewEventHandler(service *recognition.Service, events *storage.EventStore) *EventHandler {
	return &EventHandler{service: service, events: events}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, toEventResponse(ev))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recognition event not found"})
		return
	}
	c.JSON(http.StatusOK, toEventResponse(*event))
}

func (h *EventHandler) Original(c *gin.Context) {
	path, err := h.events.OriginalPath(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	c.File(path)
}

func (h *EventHandler) Face(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid face index"})
		return
	}
	path, err := h.events.FacePath(c.Param("id"), index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "face image not found"})
		return
	}
	c.File(path)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recognition event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recognition event deleted successfully"})
}

// Promote enrolls a face crop from a past event as a known person.
func (h *EventHandler) Promote(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid face index"})
		return
	}

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

	if err := h.service.PromoteEventFace(c.Param("id"), index, name); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "face image not found in recognition event"})
		case errors.Is(err, vision.ErrNoFaceDetected):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no face found in image"})
		case errors.Is(err, storage.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "face added to known person '" + name + "' successfully"})
}

func toEventResponse(ev models.Event) dto.EventResponse {
	faces := make([]dto.EventFaceResponse, 0, len(ev.Faces))
	for _, f := range ev.Faces {
		face := dto.EventFaceResponse{
			FaceIndex:   f.FaceIndex,
			KnownPerson: f.KnownPerson,
			NamePerson:  f.NamePerson,
			Distance:    f.Distance,
			Location: dto.Location{
				Top:    f.Location.Top,
				Right:  f.Location.Right,
				Bottom: f.Location.Bottom,
				Left:   f.Location.Left,
			},
			FaceImage: f.FaceImage,
		}
		if f.FaceImage != "" {
			face.FaceImageURL = "/api/recognition-history/" + ev.EventID + "/face/" + strconv.Itoa(f.FaceIndex)
		}
		faces = append(faces, face)
	}

	return dto.EventResponse{
		EventID:          ev.EventID,
		Timestamp:        ev.Timestamp.Format(time.RFC3339),
		TotalFaces:       ev.TotalFaces,
		Faces:            faces,
		OriginalImageURL: "/api/recognition-history/" + ev.EventID + "/original",
	}
}
