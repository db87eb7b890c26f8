package handler

import (
	"fmt"
	"net/http"

	"github.com/releaf/releaf/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "releaf_memos_created_total %d\n", snap.MemosCreated)
	writeMetric(w, "releaf_memos_updated_total %d\n", snap.MemosUpdated)
	writeMetric(w, "releaf_memos_deleted_total %d\n", snap.MemosDeleted)

	writeMetric(w, "releaf_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "releaf_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "releaf_users_deleted_total %d\n", snap.UsersDeleted)

	writeMetric(w, "releaf_auth_cache_hits_total %d\n", snap.AuthCacheHits)
	writeMetric(w, "releaf_auth_cache_misses_total %d\n", snap.AuthCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
