package topic

// Config is an interface rather than a concrete struct so tests can supply
// a fixed fake without standing up viper.
type Config interface {
	// CheckTopicExists gates the topic-existence check; when false,
	// subscriptions to unknown topics silently open an empty live-only
	// stream.
	CheckTopicExists() bool

	// MaxPageSize bounds a single historical page.
	MaxPageSize() int

	// ListenerBufferSize is the per-subscription bounded queue capacity
	// the live listener buffers into before a backpressure overflow fires.
	ListenerBufferSize() int

	// MetricsEnabled gates metric emission and the periodic status
	// reporter.
	MetricsEnabled() bool

	// StorageRetryAttempts bounds the historical retriever's transient
	// retry budget.
	StorageRetryAttempts() int
}
