package models

// BoundingBox locates a face in the original image's pixel coordinate space.
type BoundingBox struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() int { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() int { return b.Bottom - b.Top }

// FaceResult is the matching outcome for one detected face within an event.
// Distance is nil when no identities were enrolled at match time; when
// KnownPerson is false it may still carry the closest distance found
// outside tolerance.
type FaceResult struct {
	FaceIndex   int         `json:"face_index"`
	KnownPerson bool        `json:"known_person"`
	NamePerson  string      `json:"name_person"`
	Distance    *float64    `json:"distance,omitempty"`
	Location    BoundingBox `json:"location"`
	FaceImage   string      `json:"face_image"`
}
