// Package metrics exposes Prometheus counters for the asset ledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AttachmentCounter       *prometheus.CounterVec
	LicenseRejectionCounter prometheus.Counter
	RetirementCounter       *prometheus.CounterVec
	RetireRequestCounter    *prometheus.CounterVec
	ApprovalCounter         *prometheus.CounterVec
	AssetNumberCounter      *prometheus.CounterVec
	EventPublishErrorCount  *prometheus.CounterVec
)

func init() {
	AttachmentCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_attachments_total",
			Help: "Attach, detach and void operations by target kind",
		},
		[]string{"kind", "action"},
	)

	LicenseRejectionCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assetdesk_license_rejections_total",
			Help: "Software attachments refused because the license pool was full",
		},
	)

	RetirementCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_retirements_total",
			Help: "Assets moved to the retired state",
		},
		[]string{"class", "mode"}, // mode is force/flow/cascade
	)

	RetireRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_retire_requests_total",
			Help: "Flow-gated retirement requests submitted",
		},
		[]string{"class"},
	)

	ApprovalCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_approvals_resolved_total",
			Help: "Approval forms resolved by outcome",
		},
		[]string{"outcome"},
	)

	AssetNumberCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_asset_numbers_issued_total",
			Help: "Asset numbers issued by class and source",
		},
		[]string{"class", "source"}, // source is auto/manual
	)

	EventPublishErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_event_publish_errors_total",
			Help: "Asset events that could not be published",
		},
		[]string{"type"},
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
