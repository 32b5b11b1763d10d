package store

import "github.com/VictoriaMetrics/metrics"

// Operation counters, shared across all store handles in the process.
// Exposed through the default metrics set; embedding applications that
// serve metrics pick them up automatically.
var (
	metricSets       = metrics.NewCounter(`cornichon_ops_total{op="set"}`)
	metricGets       = metrics.NewCounter(`cornichon_ops_total{op="get"}`)
	metricRemoves    = metrics.NewCounter(`cornichon_ops_total{op="remove"}`)
	metricListOps    = metrics.NewCounter(`cornichon_ops_total{op="list"}`)
	metricDumps      = metrics.NewCounter(`cornichon_dumps_total{result="ok"}`)
	metricDumpErrors = metrics.NewCounter(`cornichon_dumps_total{result="error"}`)
)
