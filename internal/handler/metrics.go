package handler

import (
	"fmt"
	"net/http"

	"github.com/penshort/userlinks/internal/metrics"
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

	writeMetric(w, "userlinks_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "userlinks_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "userlinks_users_deleted_total %d\n", snap.UsersDeleted)
	writeMetric(w, "userlinks_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "userlinks_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "userlinks_urls_shortened_total %d\n", snap.URLsShortened)
	writeMetric(w, "userlinks_redirects_total{status=\"found\"} %d\n", snap.Redirects)
	writeMetric(w, "userlinks_redirects_total{status=\"not_found\"} %d\n", snap.RedirectMisses)
	writeMetric(w, "userlinks_redirect_duration_seconds_count %d\n", snap.RedirectDurationCount)
	writeMetric(w, "userlinks_redirect_duration_seconds_sum %.6f\n", float64(snap.RedirectDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
