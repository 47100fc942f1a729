package mqtt

import "log"

// bufferedMsg is a serialized message held until the broker is reachable.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox holds messages published while the broker is unreachable.
// When full, the oldest QoS 0 message (a mode change) is dropped so that
// lifecycle events survive; only when every queued message is QoS 1 is the
// oldest of those dropped.
// Not safe for concurrent use; caller must synchronize.
type outbox struct {
	msgs     []bufferedMsg
	capacity int
	dropped  int // since the last drain
}

func newOutbox(capacity int) *outbox {
	if capacity < 1 {
		capacity = 1
	}
	return &outbox{
		msgs:     make([]bufferedMsg, 0, capacity),
		capacity: capacity,
	}
}

// add queues msg, evicting one message if the outbox is full.
func (o *outbox) add(msg bufferedMsg) {
	if len(o.msgs) == o.capacity {
		victim := 0
		for i, m := range o.msgs {
			if m.qos == 0 {
				victim = i
				break
			}
		}
		o.msgs = append(o.msgs[:victim], o.msgs[victim+1:]...)
		o.dropped++
		if o.dropped == 1 {
			log.Printf("mqtt: offline buffer full (%d messages), dropping", o.capacity)
		}
	}
	o.msgs = append(o.msgs, msg)
}

// drain returns the queued messages oldest first and how many were dropped,
// leaving the outbox empty.
func (o *outbox) drain() ([]bufferedMsg, int) {
	if len(o.msgs) == 0 {
		dropped := o.dropped
		o.dropped = 0
		return nil, dropped
	}
	msgs := make([]bufferedMsg, len(o.msgs))
	copy(msgs, o.msgs)
	dropped := o.dropped

	o.msgs = o.msgs[:0]
	o.dropped = 0
	return msgs, dropped
}

func (o *outbox) len() int {
	return len(o.msgs)
}
