package vision

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/your-org/facerec/internal/config"
	"github.com/your-org/facerec/internal/models"
)

// ONNXDetector is the production Detector: RetinaFace for face boxes and
// ArcFace for embeddings, both via ONNX Runtime. The caller must have
// initialised the ONNX Runtime environment before constructing it.
type ONNXDetector struct {
	boxes *boxDetector
	emb   *embedder
}

// NewONNXDetector loads the detection and embedding models from cfg.ModelsDir.
func NewONNXDetector(cfg config.VisionConfig) (*ONNXDetector, error) {
	detPath := filepath.Join(cfg.ModelsDir, "det_10g.onnx")
	embPath := filepath.Join(cfg.ModelsDir, "w600k_r50.onnx")

	slog.Info("loading detection model", "path", detPath)
	boxes, err := newBoxDetector(detPath, float32(cfg.DetectionThreshold))
	if err != nil {
		return nil, fmt.Errorf("load detector: %w", err)
	}

	slog.Info("loading embedding model", "path", embPath)
	emb, err := newEmbedder(embPath)
	if err != nil {
		boxes.close()
		return nil, fmt.Errorf("load embedder: %w", err)
	}

	return &ONNXDetector{boxes: boxes, emb: emb}, nil
}

// Detect finds all faces in the image and extracts an embedding for each.
// Results are in detection order (descending confidence after NMS).
func (d *ONNXDetector) Detect(imageData []byte) ([]Detection, error) {
	img, err := DecodeImage(imageData)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	origW := bounds.Dx()
	origH := bounds.Dy()

	detInput := preprocessForDetection(img, d.boxes.inputW, d.boxes.inputH)
	raw, err := d.boxes.detect(detInput, origW, origH)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	detections := make([]Detection, 0, len(raw))
	for _, r := range raw {
		box := models.BoundingBox{
			Top:    int(r.bbox[1]),
			Right:  int(r.bbox[2]),
			Bottom: int(r.bbox[3]),
			Left:   int(r.bbox[0]),
		}

		crop := CropFace(img, padBox(box, 0.1, bounds))
		if crop == nil {
			continue
		}

		embInput := preprocessForEmbedding(crop, d.emb.inputW, d.emb.inputH)
		embedding, err := d.emb.extract(embInput)
		if err != nil {
			slog.Warn("embed face", "error", err, "box", fmt.Sprintf("%+v", box))
			continue
		}

		detections = append(detections, Detection{
			Box:        box,
			Confidence: r.confidence,
			Embedding:  embedding,
		})
	}

	return detections, nil
}

// Close releases all ONNX sessions.
func (d *ONNXDetector) Close() {
	if d.boxes != nil {
		d.boxes.close()
	}
	if d.emb != nil {
		d.emb.close()
	}
}
