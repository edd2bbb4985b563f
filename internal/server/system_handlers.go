package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandlers serves health and host-level info endpoints.
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
}

// NewSystemHandlers creates the system handlers
func NewSystemHandlers(log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		startupTime: time.Now(),
	}
}

// HandleHealth returns a liveness response.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startupTime).Seconds()),
	})
}

// HandleSystemInfo returns host CPU and memory usage alongside process
// runtime details.
func (h *SystemHandlers) HandleSystemInfo(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"go_version":     runtime.Version(),
		"goroutines":     runtime.NumGoroutine(),
		"uptime_seconds": int(time.Since(h.startupTime).Seconds()),
	}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		info["cpu_percent"] = percentages[0]
	} else if err != nil {
		h.log.Debug().Err(err).Msg("Failed to read CPU usage")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info["memory_percent"] = vm.UsedPercent
		info["memory_total"] = vm.Total
		info["memory_used"] = vm.Used
	} else {
		h.log.Debug().Err(err).Msg("Failed to read memory usage")
	}

	h.writeJSON(w, http.StatusOK, info)
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
