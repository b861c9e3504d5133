package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/config"
)

const statusInterval = 7 * time.Second

// SystemHandler streams process and queue health to admins via SSE.
type SystemHandler struct {
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

func NewSystemHandler(rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type systemStatus struct {
	Timestamp int64  `json:"timestamp"`
	Uptime    string `json:"uptime"`

	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	HeapSys    uint64 `json:"heapSys"`
	NumGC      uint32 `json:"numGc"`
	GoVersion  string `json:"goVersion"`
	NumCPU     int    `json:"numCpu"`

	// -1 when Redis is unreachable.
	QueueNotifications int64 `json:"queueNotifications"`
}

// SystemStatusSSE godoc
// GET /api/v1/admin/system/status
func (h *SystemHandler) SystemStatusSSE(c *gin.Context) {
	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	h.log.Info().Msg("Admin connected to system status SSE")

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	h.writeStatus(c)
	for {
		select {
		case <-reqCtx.Done():
			h.log.Info().Msg("Admin disconnected from system status SSE")
			return
		case <-ticker.C:
			h.writeStatus(c)
		}
	}
}

func (h *SystemHandler) writeStatus(c *gin.Context) {
	data, err := json.Marshal(h.collect(c.Request.Context()))
	if err != nil {
		return
	}
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(data)
	c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}

func (h *SystemHandler) collect(ctx context.Context) systemStatus {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	s := systemStatus{
		Timestamp:  time.Now().Unix(),
		Uptime:     formatDuration(time.Since(h.startTime)),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		NumGC:      ms.NumGC,
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
	}

	qctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	n, err := h.rdb.LLen(qctx, config.WorkerKey.PersistNotificationsQueue).Result()
	if err != nil {
		n = -1
	}
	s.QueueNotifications = n
	return s
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
