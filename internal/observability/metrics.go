package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Recognitions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "facerec",
		Name:      "recognitions_total",
		Help:      "Total number of recognition requests processed",
	})

	FacesDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "facerec",
		Name:      "faces_detected_total",
		Help:      "Total number of faces detected across all recognitions",
	})

	FacesMatched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "facerec",
		Name:      "faces_matched_total",
		Help:      "Total number of faces matched to an enrolled identity",
	})

	UnknownFacesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "facerec",
		Name:      "unknown_faces_saved_total",
		Help:      "Total number of unmatched faces persisted for triage",
	})

	SnapshotReloads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "facerec",
		Name:      "snapshot_reloads_total",
		Help:      "Total number of embedding snapshot reloads after invalidation",
	})

	InferenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "facerec",
		Name:      "inference_duration_seconds",
		Help:      "Duration of recognition stages",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"stage"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "facerec",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
