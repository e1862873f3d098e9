// Package metrics exposes Prometheus collectors for reconciliation runs.
//
// talink is a batch job, so metrics are written to a file for the node_exporter textfile collector
// instead of being served over HTTP. Each [Collector] owns its registry:
//
//   - talink_items_total{outcome} : items recorded per outcome
//   - talink_playlists_total : playlist documents processed
//   - talink_last_run_timestamp_seconds : finish time of the last run
//   - talink_last_run_duration_seconds : duration of the last run
//   - talink_last_run_success : 1 when the last run ended without a fatal error
package metrics
