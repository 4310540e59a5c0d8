// Package metrics records build observability data.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so callers never nil-check; PrometheusRecorder is activated by
// the dev server, which exposes it on /metrics:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	svc := build.NewService(renderer, assets, build.WithRecorder(recorder))
package metrics
