package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

var _ ports.EventPublisher = (*Dispatcher)(nil)

// Recorder receives delivery counters.
type Recorder interface {
	EventPublished(kind domain.EventKind)
	EventFailed(kind domain.EventKind)
	EventDropped(kind domain.EventKind)
}

type nopRecorder struct{}

func (nopRecorder) EventPublished(domain.EventKind) {}
func (nopRecorder) EventFailed(domain.EventKind)    {}
func (nopRecorder) EventDropped(domain.EventKind)   {}

// Dispatcher routes transaction events to a fixed set of workers using
// consistent hashing on the tracking ID, so events for one transaction are
// delivered to the sink in the order they were enqueued.
type Dispatcher struct {
	workers []chan domain.TransactionEvent
	sink    ports.EventSink
	metrics Recorder
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. rec may be nil.
func NewDispatcher(numWorkers int, sink ports.EventSink, rec Recorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	d := &Dispatcher{
		workers: make([]chan domain.TransactionEvent, numWorkers),
		sink:    sink,
		metrics: rec,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TransactionEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled
// or after Close has drained their queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands the event to the worker that owns its tracking ID. It never
// blocks the caller: when that worker's buffer is full the event is dropped
// and counted.
func (d *Dispatcher) Enqueue(event domain.TransactionEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.metrics.EventDropped(event.Kind)
		return
	}

	select {
	case d.workers[d.shardIndex(event.TrackingID)] <- event:
	default:
		d.metrics.EventDropped(event.Kind)
		d.log.Warn().
			Str("tracking_id", event.TrackingID).
			Str("kind", string(event.Kind)).
			Msg("event queue full, dropping event")
	}
}

// Close stops accepting events and waits for workers to flush what is queued.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a tracking ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TransactionEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Publish(ctx, event); err != nil {
				d.metrics.EventFailed(event.Kind)
				d.log.Error().Err(err).
					Str("tracking_id", event.TrackingID).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("event publish failed")
				continue
			}
			d.metrics.EventPublished(event.Kind)
		}
	}
}
