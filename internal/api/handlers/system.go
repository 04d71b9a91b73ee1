package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	basePath string
}

func NewSystemHandler(basePath string) *SystemHandler {
	return &SystemHandler{basePath: basePath}
}

func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz verifies the storage namespaces are present.
func (h *SystemHandler) Readyz(c *gin.Context) {
	checks := map[string]string{}
	healthy := true

	for _, dir := range []string{"known", "unknown", "recognitions"} {
		if _, err := os.Stat(filepath.Join(h.basePath, dir)); err != nil {
			checks[dir] = err.Error()
			healthy = false
		} else {
			checks[dir] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": map[bool]string{true: "ready", false: "not ready"}[healthy],
		"checks": checks,
	})
}
