// Package metrics provides run metrics for the Enunciate task.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing. PrometheusRecorder registers collectors on a
// registry; since a task run is a short-lived process, the CLI writes the
// registry to a node-exporter textfile (WriteTextfile) instead of serving it.
package metrics
