// Package observability wires OpenTelemetry tracing and metrics for apikit
// clients.
//
// InitTracer and InitMeter install OTLP/HTTP exporters as the global
// providers. Without them the global no-op providers are used, so spans and
// instruments created by package apiclient cost next to nothing. Component
// wraps both for programs that run a component.Registry.
package observability
