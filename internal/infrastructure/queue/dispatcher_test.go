package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
)

type memoryRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	err    error
}

func (r *memoryRecorder) Record(_ context.Context, e domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *memoryRecorder) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

func TestDispatcher_PreservesPerActorOrder(t *testing.T) {
	rec := &memoryRecorder{}
	d := NewDispatcher(4, rec, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 50; i++ {
		for _, actor := range []string{"alice", "bob", "carol"} {
			d.Publish(domain.AuditEvent{Actor: actor, Action: domain.AuditLogin, Target: fmt.Sprint(i)})
		}
	}

	cancel()
	d.Wait()

	events := rec.snapshot()
	if len(events) != 150 {
		t.Fatalf("expected 150 recorded events, got %d", len(events))
	}

	next := map[string]int{}
	for _, e := range events {
		if e.Target != fmt.Sprint(next[e.Actor]) {
			t.Fatalf("actor %s: got event %s, want %d", e.Actor, e.Target, next[e.Actor])
		}
		next[e.Actor]++
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	rec := &memoryRecorder{}
	d := NewDispatcher(1, rec, zerolog.Nop())

	// not started: nothing drains the buffer
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Publish(domain.AuditEvent{Actor: "alice", Action: domain.AuditLogin})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish blocked on a full buffer")
	}

	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_RecorderErrorDoesNotStopWorker(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("mongo unavailable")}
	d := NewDispatcher(1, rec, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Publish(domain.AuditEvent{Actor: "alice"})
	d.Publish(domain.AuditEvent{Actor: "alice"})

	cancel()
	d.Wait()

	if len(d.workers[0]) != 0 {
		t.Fatalf("expected buffer drained despite recorder errors")
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &memoryRecorder{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
