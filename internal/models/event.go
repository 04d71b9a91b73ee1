package models

import "time"

// Event is one durable record of a recognition request: the submitted
// image, every detected face crop, and the per-face matching results.
// Immutable once written except for whole-event deletion.
type Event struct {
	EventID    string       `json:"event_id"`
	Timestamp  time.Time    `json:"timestamp"`
	TotalFaces int          `json:"total_faces"`
	Faces      []FaceResult `json:"faces"`
}
