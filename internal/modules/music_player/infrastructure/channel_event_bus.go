package infrastructure

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sglre6355/tunebot/internal/modules/music_player/application/ports"
	"github.com/sglre6355/tunebot/internal/modules/music_player/domain"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Compile-time checks that ChannelEventBus implements ports interfaces.
var (
	_ ports.EventPublisher  = (*ChannelEventBus)(nil)
	_ ports.EventSubscriber = (*ChannelEventBus)(nil)
)

// ChannelEventBus provides a channel-based event bus for async event handling.
// It implements both EventPublisher and EventSubscriber interfaces.
type ChannelEventBus struct {
	// Channels for event delivery
	trackStarted  chan domain.TrackStartedEvent
	trackEnqueued chan domain.TrackEnqueuedEvent
	trackEnded    chan domain.TrackEndedEvent

	// Handler slices for callback-based subscription
	trackStartedHandlers  []func(context.Context, domain.TrackStartedEvent)
	trackEnqueuedHandlers []func(context.Context, domain.TrackEnqueuedEvent)
	trackEndedHandlers    []func(context.Context, domain.TrackEndedEvent)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	mu     sync.RWMutex
}

// NewChannelEventBus creates a new ChannelEventBus with the given buffer size.
func NewChannelEventBus(bufferSize int) *ChannelEventBus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	bus := &ChannelEventBus{
		trackStarted:  make(chan domain.TrackStartedEvent, bufferSize),
		trackEnqueued: make(chan domain.TrackEnqueuedEvent, bufferSize),
		trackEnded:    make(chan domain.TrackEndedEvent, bufferSize),
		ctx:           ctx,
		cancel:        cancel,
	}

	// Start dispatcher goroutines
	bus.wg.Add(3)
	go dispatch(bus, bus.trackStarted, func() []func(context.Context, domain.TrackStartedEvent) {
		return bus.trackStartedHandlers
	})
	go dispatch(bus, bus.trackEnqueued, func() []func(context.Context, domain.TrackEnqueuedEvent) {
		return bus.trackEnqueuedHandlers
	})
	go dispatch(bus, bus.trackEnded, func() []func(context.Context, domain.TrackEndedEvent) {
		return bus.trackEndedHandlers
	})

	return bus
}

// dispatch delivers events from ch to the handlers returned by handlers until the bus closes.
// Events of one type are delivered in publish order.
func dispatch[E any](
	b *ChannelEventBus,
	ch <-chan E,
	handlers func() []func(context.Context, E),
) {
	defer b.wg.Done()
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			b.mu.RLock()
			hs := handlers()
			b.mu.RUnlock()
			for _, handler := range hs {
				handler(b.ctx, event)
			}
		}
	}
}

// publish sends event on ch without blocking.
// If the channel buffer is full, the event is dropped with a warning.
func publish[E any](b *ChannelEventBus, ch chan<- E, event E, eventType string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", eventType)
		return
	}

	select {
	case ch <- event:
		slog.Debug("published event", "type", eventType)
	default:
		slog.Warn("event buffer full, dropping event", "type", eventType)
	}
}

// --- EventPublisher interface ---

// PublishTrackStarted publishes a TrackStartedEvent.
func (b *ChannelEventBus) PublishTrackStarted(event domain.TrackStartedEvent) {
	publish(b, b.trackStarted, event, "TrackStarted")
}

// PublishTrackEnqueued publishes a TrackEnqueuedEvent.
func (b *ChannelEventBus) PublishTrackEnqueued(event domain.TrackEnqueuedEvent) {
	publish(b, b.trackEnqueued, event, "TrackEnqueued")
}

// PublishTrackEnded publishes a TrackEndedEvent.
func (b *ChannelEventBus) PublishTrackEnded(event domain.TrackEndedEvent) {
	publish(b, b.trackEnded, event, "TrackEnded")
}

// --- EventSubscriber interface ---

// OnTrackStarted registers a handler for TrackStartedEvent.
func (b *ChannelEventBus) OnTrackStarted(handler func(context.Context, domain.TrackStartedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackStartedHandlers = append(b.trackStartedHandlers, handler)
}

// OnTrackEnqueued registers a handler for TrackEnqueuedEvent.
func (b *ChannelEventBus) OnTrackEnqueued(
	handler func(context.Context, domain.TrackEnqueuedEvent),
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackEnqueuedHandlers = append(b.trackEnqueuedHandlers, handler)
}

// OnTrackEnded registers a handler for TrackEndedEvent.
func (b *ChannelEventBus) OnTrackEnded(handler func(context.Context, domain.TrackEndedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackEndedHandlers = append(b.trackEndedHandlers, handler)
}

// Close closes all event channels and stops dispatchers.
// After calling Close, publishing will no longer send events.
func (b *ChannelEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	// Cancel context to stop dispatchers
	b.cancel()

	// Close channels to unblock any pending reads
	close(b.trackStarted)
	close(b.trackEnqueued)
	close(b.trackEnded)

	// Wait for dispatchers to finish
	b.wg.Wait()

	slog.Debug("channel event bus closed")
}
