package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/api/metrics"
	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var _ ports.ActivityPublisher = (*Dispatcher)(nil)

// Dispatcher routes activity events to a fixed set of workers using
// consistent hashing on the event key, guaranteeing per-job and per-user
// ordering in the sink.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	sink    ports.ActivitySink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.ActivitySink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and stop
// when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands event to the worker owning its key. It never blocks: when
// that worker's queue is full the event is dropped and counted.
func (d *Dispatcher) Publish(event domain.ActivityEvent) {
	idx := d.shardIndex(event.Key)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().Str("kind", string(event.Kind)).Str("key", event.Key).Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx), id, ch)
			return
		case event := <-ch:
			d.record(ctx, id, event)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	for {
		select {
		case event := <-ch:
			d.record(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, event domain.ActivityEvent) {
	kind := string(event.Kind)
	start := time.Now()
	err := d.sink.Record(ctx, event)
	metrics.ActivityRecordDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(d.workers[id])))

	if err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues(kind).Inc()
		d.log.Error().Err(err).
			Str("kind", kind).
			Str("key", event.Key).
			Int("worker_id", id).
			Msg("activity recording failed")
		return
	}
	metrics.ActivityRecordedTotal.WithLabelValues(kind).Inc()
}
