package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/colorkit/coloring-book-api/internal/api/response"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/llm"
	"github.com/colorkit/coloring-book-api/internal/repository/postgres"
	"github.com/colorkit/coloring-book-api/internal/repository/redis"
)

var startTime = time.Now()

// HealthCheck reports process liveness with uptime and memory usage
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	response.OK(w, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(startTime).Round(time.Second).String(),
		"memory": map[string]any{
			"allocMB":      mem.Alloc / 1024 / 1024,
			"totalAllocMB": mem.TotalAlloc / 1024 / 1024,
			"sysMB":        mem.Sys / 1024 / 1024,
			"numGC":        mem.NumGC,
		},
	})
}

// ReadyCheck reports readiness of the backing stores
func ReadyCheck(db *postgres.DB, redisClient *redis.Client, gallery domain.GalleryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		ready := true

		if err := db.Ping(r.Context()); err != nil {
			checks["postgres"] = err.Error()
			ready = false
		} else {
			checks["postgres"] = "ok"
		}

		if err := redisClient.Ping(r.Context()); err != nil {
			checks["redis"] = err.Error()
			ready = false
		} else {
			checks["redis"] = "ok"
		}

		if err := gallery.Ping(r.Context()); err != nil {
			checks["gallery"] = err.Error()
			ready = false
		} else {
			checks["gallery"] = "ok"
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not ready"
		}

		response.JSON(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}

// ListProviders returns the configured chat providers and their models
func ListProviders(router *llm.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"providers": router.GetProvidersInfo(),
		})
	}
}
