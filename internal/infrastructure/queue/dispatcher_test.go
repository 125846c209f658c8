package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/skilllink/marketplace/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingSink keeps every event in arrival order.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	failOn domain.ActivityKind
}

func (s *recordingSink) Record(_ context.Context, e domain.ActivityEvent) error {
	if s.failOn != "" && e.Kind == s.failOn {
		return errors.New("sink unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) byKey(key string) []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ActivityEvent
	for _, e := range s.events {
		if e.Key == key {
			out = append(out, e)
		}
	}
	return out
}

func (s *recordingSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingSink{}, zerolog.Nop())
	for _, key := range []string{"job-1", "job-2", "user-42", ""} {
		first := d.shardIndex(key)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(key); got != first {
				t.Fatalf("shardIndex(%q) changed from %d to %d", key, first, got)
			}
		}
		if first < 0 || first >= 8 {
			t.Fatalf("shardIndex(%q) = %d, out of range", key, first)
		}
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingSink{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_PreservesPerKeyOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	const perKey = 50
	for i := 0; i < perKey; i++ {
		for _, key := range []string{"job-a", "job-b", "job-c"} {
			d.Publish(domain.ActivityEvent{
				Kind:  domain.ActivityBidSubmitted,
				Key:   key,
				BidID: fmt.Sprintf("%s-%03d", key, i),
			})
		}
	}

	cancel()
	d.Wait()

	for _, key := range []string{"job-a", "job-b", "job-c"} {
		got := sink.byKey(key)
		if len(got) != perKey {
			t.Fatalf("key %s: expected %d events, got %d", key, perKey, len(got))
		}
		for i, e := range got {
			if want := fmt.Sprintf("%s-%03d", key, i); e.BidID != want {
				t.Fatalf("key %s: event %d is %s, want %s", key, i, e.BidID, want)
			}
		}
	}
}

func TestDispatcher_DrainsQueueOnShutdown(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(2, sink, zerolog.Nop())

	// Enqueue before the workers exist so everything is still buffered at cancel.
	for i := 0; i < 20; i++ {
		d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobPosted, Key: fmt.Sprintf("job-%d", i)})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := sink.len(); got != 20 {
		t.Fatalf("expected 20 recorded events, got %d", got)
	}
}

func TestDispatcher_PublishDropsWhenFull(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(1, sink, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+10; i++ {
			d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobPosted, Key: "job-1"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected a full queue of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &recordingSink{failOn: domain.ActivityJobDeleted}
	d := NewDispatcher(1, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobDeleted, Key: "job-1"})
	d.Publish(domain.ActivityEvent{Kind: domain.ActivityJobPosted, Key: "job-1"})

	cancel()
	d.Wait()

	got := sink.byKey("job-1")
	if len(got) != 1 || got[0].Kind != domain.ActivityJobPosted {
		t.Fatalf("expected only the job_posted event recorded, got %+v", got)
	}
}

func TestLogSink_Record(t *testing.T) {
	if err := NewLogSink(zerolog.Nop()).Record(context.Background(), domain.ActivityEvent{Kind: domain.ActivityJobPosted}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
