package config

import (
	"os"
	"strconv"
	"strings"
)

// GetAllSettings returns a map of the dynamic settings currently loaded in
// memory, for the settings endpoint.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":           Global.App.Version,
		"app_debug":             Global.App.Debug,
		"content_api_mode":      Global.Upstream.Mode,
		"notify_base_delay_ms":  Global.Notifier.BaseDelayMs,
		"notify_jitter_ms":      Global.Notifier.JitterRangeMs,
		"notify_bulk_delay_ms":  Global.Notifier.BulkSendDelayMs,
		"calendar_timezone":     Global.Calendar.Timezone,
		"worker_pool_size":      Global.WorkerPool.Size,
		"worker_pool_queue":     Global.WorkerPool.QueueSize,
		"valkey_enabled":        Global.Database.ValkeyEnabled,
	}
}

// Helpers
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		vLower := strings.ToLower(v)
		return vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
	}
	return fallback
}
