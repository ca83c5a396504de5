package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrCommand   = "command"
	attrOperation = "operation"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder.
type Metrics struct {
	// HTTP webhook metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Slash-command metrics
	commandInvocationsTotal metric.Int64Counter
	commandDuration         metric.Float64Histogram

	// Sheets API metrics
	sheetsOperationsTotal   metric.Int64Counter
	sheetsOperationDuration metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of webhook HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Webhook HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.commandInvocationsTotal, err = meter.Int64Counter(
		"command_invocations_total",
		metric.WithDescription("Total number of slash-command invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create command_invocations_total counter: %w", err)
	}

	m.commandDuration, err = meter.Float64Histogram(
		"command_duration_seconds",
		metric.WithDescription("Slash-command execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create command_duration_seconds histogram: %w", err)
	}

	m.sheetsOperationsTotal, err = meter.Int64Counter(
		"sheets_api_operations_total",
		metric.WithDescription("Total number of Google Sheets API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets_api_operations_total counter: %w", err)
	}

	m.sheetsOperationDuration, err = meter.Float64Histogram(
		"sheets_api_operation_duration_seconds",
		metric.WithDescription("Google Sheets API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets_api_operation_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records a webhook request with method, path, status code,
// and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCommand records a slash-command invocation.
//
// Parameters:
//   - command: slash-command name ("meet" or "explain")
//   - status: result status ("success" or "error")
//   - duration: time taken to produce the response
func (m *Metrics) RecordCommand(ctx context.Context, command, status string, duration time.Duration) {
	if m.commandInvocationsTotal == nil || m.commandDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCommand, command),
		attribute.String(attrStatus, status),
	}

	m.commandInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.commandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordSheetsOperation records a Google Sheets API operation.
//
// Parameters:
//   - operation: operation type (e.g. "load_sheet")
//   - status: result status ("success" or "error")
//   - duration: time taken for the operation
func (m *Metrics) RecordSheetsOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.sheetsOperationsTotal == nil || m.sheetsOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.sheetsOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.sheetsOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
