package vision

import (
	"errors"

	"github.com/your-org/facerec/internal/models"
)

// ErrNoFaceDetected is returned when an operation requires at least one
// face and the image contains none.
var ErrNoFaceDetected = errors.New("no face detected")

// Detection is one face found in an image: its location in the original
// image's pixel coordinates and the embedding extracted from it.
type Detection struct {
	Box        models.BoundingBox
	Confidence float32
	Embedding  []float32
}

// Detector finds all faces in raw image bytes and produces one embedding
// per face, in detection order. An empty result means the image decoded
// fine but contains no faces; unreadable image bytes are an error.
type Detector interface {
	Detect(imageData []byte) ([]Detection, error)
}
