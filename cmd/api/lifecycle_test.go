package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/infrastructure/queue"
)

type memoryRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *memoryRecorder) Record(_ context.Context, e domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *memoryRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// inFlightServer publishes an audit event from inside Shutdown, like a
// request that finishes while the server is draining.
type inFlightServer struct {
	publish func()
	err     error
}

func (s *inFlightServer) Shutdown(context.Context) error {
	time.Sleep(20 * time.Millisecond)
	s.publish()
	return s.err
}

func TestShutdown_RecordsEventsFromInFlightRequests(t *testing.T) {
	rec := &memoryRecorder{}
	d := queue.NewDispatcher(2, rec, zerolog.Nop())
	auditCtx, stopAudit := context.WithCancel(context.Background())
	d.Start(auditCtx)

	srv := &inFlightServer{publish: func() {
		d.Publish(domain.AuditEvent{Actor: "alice", Action: domain.AuditUserDelete, Outcome: domain.OutcomeApplied})
	}}

	if err := shutdown(srv, stopAudit, d, time.Second, zerolog.Nop()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := rec.count(); got != 1 {
		t.Fatalf("expected the in-flight event to be recorded, got %d events", got)
	}
}

func TestShutdown_StopsAuditEvenWhenServerFails(t *testing.T) {
	rec := &memoryRecorder{}
	d := queue.NewDispatcher(1, rec, zerolog.Nop())
	auditCtx, stopAudit := context.WithCancel(context.Background())
	d.Start(auditCtx)

	boom := errors.New("shutdown timed out")
	srv := &inFlightServer{publish: func() {}, err: boom}

	if err := shutdown(srv, stopAudit, d, time.Second, zerolog.Nop()); !errors.Is(err, boom) {
		t.Fatalf("expected server error, got %v", err)
	}
	if auditCtx.Err() == nil {
		t.Fatalf("audit context should be cancelled")
	}
}
