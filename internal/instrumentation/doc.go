// Package instrumentation provides OpenTelemetry metrics and tracing for
// webteam-hubot.
//
// The Provider owns the meter and tracer providers and the exporter
// lifecycle. Metrics are exported through Prometheus by default (scraped
// from the dedicated metrics listener), with OTLP and stdout exporters
// available for collector-based setups and local debugging.
//
// The Metrics recorder covers the three things worth watching in this bot:
// incoming webhook requests, slash-command outcomes, and Sheets API calls.
// A zero-value Metrics is a safe no-op, so instrumentation can be disabled
// without nil checks at call sites.
package instrumentation
