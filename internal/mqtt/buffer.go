package mqtt

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// msgQueue is a bounded FIFO holding messages while the broker is
// unreachable. When full it drops the oldest entry. Not safe for concurrent
// use — caller must synchronize.
type msgQueue struct {
	buf     []bufferedMsg
	tail    int // oldest entry
	count   int
	dropped int // messages discarded since the last drain
}

func newMsgQueue(capacity int) *msgQueue {
	return &msgQueue{buf: make([]bufferedMsg, capacity)}
}

func (q *msgQueue) enqueue(msg bufferedMsg) {
	if q.count == len(q.buf) {
		// Full: overwrite the oldest entry and move the tail past it.
		q.buf[q.tail] = msg
		q.tail = (q.tail + 1) % len(q.buf)
		q.dropped++
		return
	}
	q.buf[(q.tail+q.count)%len(q.buf)] = msg
	q.count++
}

// drain returns the queued messages oldest-first along with the number of
// messages dropped to overflow, and empties the queue.
func (q *msgQueue) drain() ([]bufferedMsg, int) {
	if q.count == 0 {
		dropped := q.dropped
		q.dropped = 0
		return nil, dropped
	}

	out := make([]bufferedMsg, q.count)
	for i := range out {
		out[i] = q.buf[(q.tail+i)%len(q.buf)]
	}
	q.tail = 0
	q.count = 0
	dropped := q.dropped
	q.dropped = 0
	return out, dropped
}

func (q *msgQueue) len() int {
	return q.count
}
