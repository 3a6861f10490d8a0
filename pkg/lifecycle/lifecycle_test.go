package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/posture/pkg/lifecycle"
)

func TestNotReadyBeforeStartup(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Error("should not be ready before WaitForStartup")
	}
}

func TestReadyAfterStartup(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	if !lc.Ready() {
		t.Error("should be ready after WaitForStartup")
	}
}

type flag struct{ ok atomic.Bool }

func (f *flag) Ready() bool { return f.ok.Load() }

func TestTrackedCheckers(t *testing.T) {
	lc := lifecycle.New()
	db, store := &flag{}, &flag{}
	lc.Track("storage", store)
	lc.Track("database", db)

	lc.WaitForStartup()

	if lc.Ready() {
		t.Error("should not be ready while checkers are pending")
	}
	if got := lc.Pending(); len(got) != 2 || got[0] != "database" || got[1] != "storage" {
		t.Errorf("pending: got %v, want [database storage]", got)
	}

	db.ok.Store(true)
	if got := lc.Pending(); len(got) != 1 || got[0] != "storage" {
		t.Errorf("pending: got %v, want [storage]", got)
	}

	store.ok.Store(true)
	if !lc.Ready() {
		t.Error("should be ready once every checker is ready")
	}
	if got := lc.Pending(); len(got) != 0 {
		t.Errorf("pending: got %v, want none", got)
	}
}

func TestReadyCheckersBeforeStartup(t *testing.T) {
	lc := lifecycle.New()
	ready := &flag{}
	ready.ok.Store(true)
	lc.Track("database", ready)

	if lc.Ready() {
		t.Error("should not be ready before WaitForStartup even with ready checkers")
	}
}

func TestStartupHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() {
			count.Add(1)
		})
	}

	lc.WaitForStartup()

	if got := count.Load(); got != 3 {
		t.Errorf("startup hooks: got %d, want 3", got)
	}
}

func TestShutdownHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if !cleaned.Load() {
		t.Error("shutdown hook did not execute")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		time.Sleep(500 * time.Millisecond)
	})

	lc.WaitForStartup()

	err := lc.Shutdown(50 * time.Millisecond)
	if err == nil {
		t.Error("expected timeout error, got nil")
	}
}

func TestContextCancelledOnShutdown(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}
