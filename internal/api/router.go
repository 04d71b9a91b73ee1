package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/facerec/internal/api/handlers"
	"github.com/your-org/facerec/internal/auth"
	"github.com/your-org/facerec/internal/notify"
	"github.com/your-org/facerec/internal/recognition"
	"github.com/your-org/facerec/internal/storage"
)

type RouterConfig struct {
	APIKey   string
	BasePath string
	Service  *recognition.Service
	Known    *storage.KnownStore
	Unknown  *storage.UnknownStore
	Events   *storage.EventStore
	Settings *storage.SettingsStore
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.BasePath)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// Recognition
	recognizeH := handlers.NewRecognizeHandler(cfg.Service, cfg.Settings, notify.NewWebhook())
	api.POST("/recognize", recognizeH.Recognize)

	// Known faces
	knownH := handlers.NewKnownHandler(cfg.Service, cfg.Known)
	api.GET("/known-faces", knownH.List)
	api.POST("/known-faces", knownH.Create)
	api.DELETE("/known-faces/:name", knownH.Delete)
	api.GET("/known-faces/:name/images", knownH.ListImages)
	api.GET("/known-faces/:name/image/:filename", knownH.GetImage)
	api.DELETE("/known-faces/:name/image/:filename", knownH.DeleteImage)

	// Unknown faces
	unknownH := handlers.NewUnknownHandler(cfg.Service, cfg.Unknown)
	api.GET("/unknown-faces", unknownH.List)
	api.GET("/unknown-faces/:id/image", unknownH.GetImage)
	api.GET("/unknown-faces/:id/face", unknownH.GetFace)
	api.POST("/unknown-faces/:id/name", unknownH.Name)
	api.DELETE("/unknown-faces/:id", unknownH.Delete)

	// Recognition history
	eventH := handlers.NewEventHandler(cfg.Service, cfg.Events)
	api.GET("/recognition-history", eventH.List)
	api.GET("/recognition-history/:id", eventH.Get)
	api.GET("/recognition-history/:id/original", eventH.Original)
	api.GET("/recognition-history/:id/face/:index", eventH.Face)
	api.DELETE("/recognition-history/:id", eventH.Delete)
	api.POST("/recognition-history/:id/face/:index/add-to-known", eventH.Promote)

	// Settings
	settingsH := handlers.NewSettingsHandler(cfg.Settings)
	api.GET("/settings", settingsH.Get)
	api.POST("/settings", settingsH.Update)

	return r
}
