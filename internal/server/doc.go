// Package server provides the webhook HTTP server for webteam-hubot.
//
// # Key Components
//
// Server handles the Mattermost slash-command webhooks:
//   - POST /hubot/meet: generate a Google Meet link for a participant list
//   - POST /hubot/explain: look up a term in the team glossary spreadsheet
//
// Each webhook validates its shared-secret token (constant-time compare)
// before any backend work happens; a mismatch is rejected with 401. Responses
// follow the Mattermost slash-command JSON contract: /meet posts in-channel,
// /explain answers ephemerally.
//
// HealthChecker provides /healthz and /readyz endpoints for Kubernetes
// probes, and MetricsServer serves Prometheus metrics on a dedicated port so
// operational data never shares a listener with webhook traffic.
package server
