package dto

// Location is a face bounding box in the original image's pixel
// coordinates.
type Location struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// RecognizeResponse is the simplified result of POST /api/recognize:
// whether any enrolled person was seen and the deduplicated, sorted names.
type RecognizeResponse struct {
	KnownPerson bool     `json:"known_person"`
	NamePersons []string `json:"name_persons"`
	EventID     string   `json:"event_id,omitempty"`
}

type KnownFaceResponse struct {
	Name       string `json:"name"`
	ImageCount int    `json:"image_count"`
}

type KnownFaceImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type UnknownFaceResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	ImageURL  string `json:"image_url"`
	FaceURL   string `json:"face_url,omitempty"`
}

type EventFaceResponse struct {
	FaceIndex    int      `json:"face_index"`
	KnownPerson  bool     `json:"known_person"`
	NamePerson   string   `json:"name_person"`
	Distance     *float64 `json:"distance,omitempty"`
	Location     Location `json:"location"`
	FaceImage    string   `json:"face_image,omitempty"`
	FaceImageURL string   `json:"face_image_url,omitempty"`
}

type EventResponse struct {
	EventID          string              `json:"event_id"`
	Timestamp        string              `json:"timestamp"`
	TotalFaces       int                 `json:"total_faces"`
	Faces            []EventFaceResponse `json:"faces"`
	OriginalImageURL string              `json:"original_image_url"`
}

type NameFaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type SettingsRequest struct {
	WebhookURL     string  `json:"webhook_url"`
	WebhookEnabled bool    `json:"webhook_enabled"`
	Tolerance      float64 `json:"tolerance"`
}
