package publisher

// Publisher represents a service for publishing price records
type Publisher interface {
	// Publish publishes a record to the vendor's stream
	Publish(vendor string, record []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
