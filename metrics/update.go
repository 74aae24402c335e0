package metrics

import "sync/atomic"

// SyncMetrics — счётчики одного прогона синхронизации каталога.
type SyncMetrics struct {
	RawCount          atomic.Int32
	FormattedCount    atomic.Int32
	UnmappedCountries atomic.Int32
	UnknownServices   atomic.Int32
	DroppedByPrice    atomic.Int32
	SkippedServices   atomic.Int32
	FailedInserts     atomic.Int32
	PublishedCount    atomic.Int32
}
