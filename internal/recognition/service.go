package recognition

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/your-org/facerec/internal/models"
	"github.com/your-org/facerec/internal/observability"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/internal/vision"
)

// Service orchestrates recognition: detect faces, match each against the
// enrolled set, persist the attempt as an event and every unmatched face
// as an unknown-face record. It also owns the curation paths that enroll
// faces into the known-face store.
type Service struct {
	detector vision.Detector
	known    *storage.KnownStore
	unknown  *storage.UnknownStore
	events   *storage.EventStore
	settings *storage.SettingsStore
	cache    *Cache
}

func NewService(
	detector vision.Detector,
	known *storage.KnownStore,
	unknown *storage.UnknownStore,
	events *storage.EventStore,
	settings *storage.SettingsStore,
) *Service {
	return &Service{
		detector: detector,
		known:    known,
		unknown:  unknown,
		events:   events,
		settings: settings,
		cache:    NewCache(known),
	}
}

// Result is the outcome of one recognition call. Warnings carry
// best-effort failures (a crop that could not be extracted, an unknown
// face that could not be saved) that did not fail the call.
type Result struct {
	Faces      []models.FaceResult
	TotalFaces int
	EventID    string
	Warnings   []string
}

// Process runs recognition on one image. The attempt is always durably
// recorded: a zero-face image still produces an event. Detector failure
// aborts before any write; an event write failure is fatal; unknown-face
// writes are best-effort.
func (s *Service) Process(imageData []byte) (*Result, error) {
	observability.Recognitions.Inc()

	start := time.Now()
	detections, err := s.detector.Detect(imageData)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}
	observability.InferenceDuration.WithLabelValues("detect").Observe(time.Since(start).Seconds())
	observability.FacesDetected.Add(float64(len(detections)))

	slog.Info("detected faces", "count", len(detections))

	settings, err := s.settings.Load()
	if err != nil {
		slog.Warn("load settings, using defaults", "error", err)
	}

	snap, err := s.cache.Snapshot()
	if err != nil {
		return nil, err
	}

	var warnings []string
	artifacts := make([]storage.FaceArtifact, 0, len(detections))

	type unmatchedFace struct {
		index int
		crop  []byte
	}
	var unmatched []unmatchedFace

	if len(detections) > 0 {
		img, err := vision.DecodeImage(imageData)
		if err != nil {
			return nil, err
		}

		matchStart := time.Now()
		for i, det := range detections {
			m := snap.Match(det.Embedding, settings.Tolerance)
			if m.Matched {
				observability.FacesMatched.Inc()
			}
			slog.Info("matched face",
				"index", i, "known", m.Matched, "name", m.Name)

			var cropData []byte
			if crop := vision.CropFace(img, det.Box); crop != nil {
				cropData = vision.EncodeJPEG(crop, 95)
			} else {
				warnings = append(warnings, fmt.Sprintf("face %d: empty crop region", i))
			}

			artifacts = append(artifacts, storage.FaceArtifact{
				Result: models.FaceResult{
					FaceIndex:   i,
					KnownPerson: m.Matched,
					NamePerson:  m.Name,
					Distance:    m.Distance,
					Location:    det.Box,
				},
				Crop: cropData,
			})

			if !m.Matched {
				unmatched = append(unmatched, unmatchedFace{index: i, crop: cropData})
			}
		}
		observability.InferenceDuration.WithLabelValues("match").Observe(time.Since(matchStart).Seconds())
	}

	event, err := s.events.Save(imageData, artifacts)
	if err != nil {
		return nil, fmt.Errorf("save recognition event: %w", err)
	}
	slog.Info("saved recognition event", "event_id", event.EventID, "total_faces", event.TotalFaces)

	// One unknown-face record per unmatched detection, each independently
	// deletable without affecting the others or the event.
	for _, u := range unmatched {
		face, err := s.unknown.Save(imageData, u.crop)
		if err != nil {
			slog.Warn("save unknown face", "event_id", event.EventID, "face_index", u.index, "error", err)
			warnings = append(warnings, fmt.Sprintf("face %d: unknown face not saved: %v", u.index, err))
			continue
		}
		observability.UnknownFacesSaved.Inc()
		slog.Info("saved unknown face", "face_id", face.ID, "event_id", event.EventID)
	}

	return &Result{
		Faces:      event.Faces,
		TotalFaces: event.TotalFaces,
		EventID:    event.EventID,
		Warnings:   warnings,
	}, nil
}

// Enroll adds one reference face for the named identity. When the image
// contains several faces only the first detection is used. Returns
// vision.ErrNoFaceDetected when the image has no face; nothing is written
// in that case. The store's generation bump invalidates the snapshot
// cache.
func (s *Service) Enroll(name string, imageData []byte) error {
	detections, err := s.detector.Detect(imageData)
	if err != nil {
		return fmt.Errorf("detect face: %w", err)
	}
	if len(detections) == 0 {
		return vision.ErrNoFaceDetected
	}

	if _, err := s.known.SaveFace(name, imageData, detections[0].Embedding); err != nil {
		return fmt.Errorf("save known face: %w", err)
	}
	return nil
}

// NameUnknownFace promotes an unknown face into the known-face store under
// the given name, preferring its cropped face image over the full image.
// On enrollment success the unknown record is deleted best-effort: a
// failed deletion leaves an orphaned record but does not fail the call.
func (s *Service) NameUnknownFace(id, name string) error {
	imageData, err := s.unknown.BestImage(id)
	if err != nil {
		return err
	}

	if err := s.Enroll(name, imageData); err != nil {
		return err
	}

	if err := s.unknown.Delete(id); err != nil {
		slog.Warn("delete unknown face after enrollment", "id", id, "name", name, "error", err)
	}
	return nil
}

// PromoteEventFace enrolls a face crop from a past recognition event under
// the given name. The event itself is left untouched.
func (s *Service) PromoteEventFace(eventID string, faceIndex int, name string) error {
	imageData, err := s.events.FaceImage(eventID, faceIndex)
	if err != nil {
		return err
	}
	return s.Enroll(name, imageData)
}
