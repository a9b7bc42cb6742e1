package mqtt

// FakePublisher records published messages for test assertions.
type FakePublisher struct {
	// Readings contains all field readings that were published.
	Readings []Reading

	// ReadingPayloads contains the JSON payloads for readings.
	ReadingPayloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// ReadingError, if set, is returned by PublishReading.
	ReadingError error

	// SystemError, if set, is returned by PublishSystem.
	SystemError error

	// Closed tracks whether Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishReading records the reading.
func (f *FakePublisher) PublishReading(r Reading) error {
	if f.ReadingError != nil {
		return f.ReadingError
	}

	f.Readings = append(f.Readings, r)

	payload, err := FormatReadingPayload(r)
	if err != nil {
		return err
	}
	f.ReadingPayloads = append(f.ReadingPayloads, payload)

	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.SystemError != nil {
		return f.SystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded messages.
func (f *FakePublisher) Reset() {
	f.Readings = nil
	f.ReadingPayloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.ReadingError = nil
	f.SystemError = nil
	f.Closed = false
	f.Connected = false
}
