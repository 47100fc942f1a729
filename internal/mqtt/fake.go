package mqtt

import (
	"github.com/sweeney/countdown-timer/internal/logic"
)

// Sent is a message as it would have gone out on the wire.
type Sent struct {
	Topic    string
	Payload  []byte
	Retained bool
}

// FakePublisher records what would be published, for tests.
type FakePublisher struct {
	Transitions  []logic.Transition
	SystemEvents []SystemEvent
	Sent         []Sent

	// Returned by Publish and PublishSystem when set. Nothing is recorded.
	PublishError       error
	PublishSystemError error

	Closed    bool
	Connected bool
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) Publish(tr logic.Transition) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(tr)
	if err != nil {
		return err
	}
	f.Transitions = append(f.Transitions, tr)
	f.Sent = append(f.Sent, Sent{Topic: Topic, Payload: payload})
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.Sent = append(f.Sent, Sent{Topic: TopicSystem, Payload: payload, Retained: event.Retained})
	return nil
}

// Payloads returns the payloads sent to topic, oldest first.
func (f *FakePublisher) Payloads(topic string) [][]byte {
	var out [][]byte
	for _, s := range f.Sent {
		if s.Topic == topic {
			out = append(out, s.Payload)
		}
	}
	return out
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Discard is a Publisher that drops everything. Used when telemetry is off.
type Discard struct{}

func (Discard) Publish(logic.Transition) error { return nil }
func (Discard) PublishSystem(SystemEvent) error { return nil }
func (Discard) Close() error { return nil }
