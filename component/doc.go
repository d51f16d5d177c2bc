// Package component defines the lifecycle contract shared by the long-lived
// parts of an apikit program, such as API clients and telemetry exporters.
//
// A Registry starts components in registration order, stops them in
// reverse, and collects their health.
package component
