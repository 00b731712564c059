package recommend

import "sync/atomic"

// EventKind names a notification on the side channel. The values match the
// wire names the transport layer subscribes to.
type EventKind string

const (
	// EventGenerated is emitted once per produced recommendation.
	EventGenerated EventKind = "recommendation:generated"

	// EventBatch is emitted once per evaluation that produced at least one
	// recommendation, carrying the full list.
	EventBatch EventKind = "recommendation:batch"
)

// Event is one notification sent to a Notifier.
type Event struct {
	Kind EventKind

	// Recommendation is set for EventGenerated.
	Recommendation *Recommendation

	// Batch is set for EventBatch.
	Batch []Recommendation
}

// Notifier receives recommendation notifications. It is a side channel, not
// part of the evaluation result; implementations must tolerate concurrent
// calls, since independent incidents may be evaluated in parallel.
type Notifier interface {
	Notify(Event)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Event) {}

// FuncNotifier adapts a function to the Notifier interface.
type FuncNotifier func(Event)

// Notify implements Notifier.
func (f FuncNotifier) Notify(ev Event) { f(ev) }

// ChannelNotifier forwards notifications to a bounded channel without ever
// blocking evaluation. When the consumer falls behind, events are dropped and
// counted rather than stalling race control.
type ChannelNotifier struct {
	events  chan Event
	dropped atomic.Int64
}

// NewChannelNotifier creates a channel notifier with the given buffer size.
func NewChannelNotifier(bufferSize int) *ChannelNotifier {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &ChannelNotifier{events: make(chan Event, bufferSize)}
}

// Notify implements Notifier. It never blocks.
func (n *ChannelNotifier) Notify(ev Event) {
	select {
	case n.events <- ev:
	default:
		n.dropped.Add(1)
	}
}

// Events returns the receive side of the notification channel.
func (n *ChannelNotifier) Events() <-chan Event {
	return n.events
}

// Dropped returns how many events were dropped because the buffer was full.
func (n *ChannelNotifier) Dropped() int64 {
	return n.dropped.Load()
}

// Close closes the notification channel. Do not call Notify afterwards.
func (n *ChannelNotifier) Close() {
	close(n.events)
}
