/*
Package metrics provides Prometheus instrumentation for vesinspect.

All metrics are registered on the default registry at package init and are
updated by the client and mapper packages:

	┌──────────────── METRICS ────────────────────────────────────┐
	│                                                               │
	│  pkg/client                                                   │
	│    vesinspect_api_requests_total{status}                      │
	│    vesinspect_api_request_duration_seconds                    │
	│                                                               │
	│  pkg/mapper                                                   │
	│    vesinspect_mapping_diagnostics_total{kind,code}            │
	│    vesinspect_mapping_failures_total{kind}                    │
	└───────────────────────────────────────────────────────────────┘

The status label of vesinspect_api_requests_total is the HTTP status code,
or "error" when the request failed before a response arrived.

Timer wraps time.Since for histogram observations:

	timer := metrics.NewTimer()
	resp, err := httpClient.Do(req)
	timer.ObserveDuration(metrics.APIRequestDuration)

The vesinspect CLI is short-lived and does not serve metrics itself.
Processes that import the library, such as a long-running test harness,
mount Handler to expose the counters above for scraping:

	mux.Handle("/metrics", metrics.Handler())
*/
package metrics
