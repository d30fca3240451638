package mqtt

import "log"

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ringBuffer holds messages published while the broker is unreachable.
// When full, the oldest message is overwritten. Not safe for concurrent use.
type ringBuffer struct {
	buf     []bufferedMsg
	head    int // next write position
	count   int
	dropped int // messages overwritten since last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{buf: make([]bufferedMsg, capacity)}
}

func (r *ringBuffer) push(msg bufferedMsg) {
	if r.count == len(r.buf) {
		if r.dropped == 0 {
			log.Printf("mqtt: buffer full (%d messages), dropping oldest", len(r.buf))
		}
		r.dropped++
	} else {
		r.count++
	}
	r.buf[r.head] = msg
	r.head = (r.head + 1) % len(r.buf)
}

// drainAll returns buffered messages oldest first, plus how many were
// dropped to make room for them, and empties the buffer.
func (r *ringBuffer) drainAll() ([]bufferedMsg, int) {
	dropped := r.dropped
	r.dropped = 0
	if r.count == 0 {
		return nil, dropped
	}

	out := make([]bufferedMsg, 0, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	for i := 0; i < r.count; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	r.count = 0
	r.head = 0
	return out, dropped
}

func (r *ringBuffer) len() int {
	return r.count
}
