package models

import "time"

// KnownPerson summarises one enrolled identity.
type KnownPerson struct {
	Name       string `json:"name"`
	ImageCount int    `json:"image_count"`
}

// UnknownFace is a detected face that did not match any enrolled identity,
// retained for later triage. The cropped face image is best-effort.
type UnknownFace struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	ImagePath    string    `json:"image_path"`
	HasFaceImage bool      `json:"has_face_image"`
}

// Settings is the process-wide runtime configuration, persisted as a single
// record and replaced wholesale on update.
type Settings struct {
	WebhookURL     string  `json:"webhook_url"`
	WebhookEnabled bool    `json:"webhook_enabled"`
	Tolerance      float64 `json:"tolerance"`
}
