package repository

import "time"

// QueryObserver receives the duration of every database statement, keyed by
// a short query label. MetricsService feeds these into the
// db_query_duration_seconds histogram.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

func observeQuery(o QueryObserver, label string, start time.Time) {
	if o != nil {
		o.ObserveDBQuery(label, time.Since(start))
	}
}
