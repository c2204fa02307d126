// Package metric provides Prometheus metrics for redislight.
//
// The registry is private to the process (no default registerer and no
// HTTP listener). Metrics cover evaluated commands, keyspace size and
// lazy expiry, and are exported with WriteTextfile in the text format
// read by node_exporter's textfile collector.
package metric
