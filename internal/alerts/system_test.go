package alerts_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/records"
)

type mockStore struct {
	records.Store

	mu     sync.Mutex
	until  map[string]time.Time
	failOn string
}

func (m *mockStore) record(name string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.until == nil {
		m.until = make(map[string]time.Time)
	}
	m.until[name] = at
	if m.failOn == name {
		return errors.New(name + " unavailable")
	}
	return nil
}

// Returned dates are derived from the bounds so the mock works with any clock.
func (m *mockStore) ExpiringAttestations(_ context.Context, _ uuid.UUID, until time.Time) ([]records.Attestation, error) {
	validUntil := until.AddDate(0, 0, -27)
	return []records.Attestation{
		{ID: uuid.New(), VendorID: uuid.New(), VendorName: "Acme", Status: records.AttestationValid, ValidUntil: &validUntil},
	}, m.record("attestations", until)
}

func (m *mockStore) ExpiringEvidence(_ context.Context, _ uuid.UUID, until time.Time) ([]records.Evidence, error) {
	return nil, m.record("evidence", until)
}

func (m *mockStore) ControlsDueForReview(_ context.Context, _ uuid.UUID, until time.Time) ([]records.Control, error) {
	return nil, m.record("controls", until)
}

func (m *mockStore) OverdueTasks(_ context.Context, _ uuid.UUID, at time.Time) ([]records.Task, error) {
	due := at.AddDate(0, 0, -2)
	return []records.Task{
		{ID: uuid.New(), Title: "Register system", Status: records.TaskTodo, DueDate: &due},
	}, m.record("tasks", at)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSystemFeed(t *testing.T) {
	t.Run("missing organization returns empty feed", func(t *testing.T) {
		store := &mockStore{}
		sys := alerts.New(store, alerts.DefaultWindows(), discard())

		feed, err := sys.Feed(context.Background(), uuid.Nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(feed.Alerts) != 0 || feed.Counts.Total != 0 {
			t.Errorf("feed = %+v, want empty", feed)
		}
		if len(store.until) != 0 {
			t.Errorf("store was queried: %v", store.until)
		}
	})

	t.Run("queries each source with its window", func(t *testing.T) {
		store := &mockStore{}
		sys := alerts.New(store, alerts.DefaultWindows(), discard())

		feed, err := sys.Feed(context.Background(), uuid.New(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]time.Time{
			"attestations": now.AddDate(0, 0, 30),
			"evidence":     now.AddDate(0, 0, 30),
			"controls":     now.AddDate(0, 0, 14),
			"tasks":        now,
		}
		for name, at := range want {
			if got := store.until[name]; !got.Equal(at) {
				t.Errorf("%s bound = %s, want %s", name, got, at)
			}
		}

		if feed.Counts.Total != 2 {
			t.Fatalf("total = %d, want 2", feed.Counts.Total)
		}
		if feed.Alerts[0].Type != alerts.TypeTaskOverdue {
			t.Errorf("first alert = %s, want task_overdue", feed.Alerts[0].Type)
		}
	})

	t.Run("any source failure fails the feed", func(t *testing.T) {
		for _, source := range []string{"attestations", "evidence", "controls", "tasks"} {
			sys := alerts.New(&mockStore{failOn: source}, alerts.DefaultWindows(), discard())

			feed, err := sys.Feed(context.Background(), uuid.New(), now)
			if feed != nil {
				t.Errorf("%s: feed = %+v, want nil", source, feed)
			}
			if !errors.Is(err, alerts.ErrRetrieval) {
				t.Errorf("%s: err = %v, want ErrRetrieval", source, err)
			}
		}
	})
}

func setupMux(h *alerts.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}
	return mux
}

func TestHandlerGet(t *testing.T) {
	t.Run("returns feed", func(t *testing.T) {
		mux := setupMux(alerts.New(&mockStore{}, alerts.DefaultWindows(), discard()).Handler())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/alerts/"+uuid.NewString(), nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var feed alerts.Feed
		if err := json.NewDecoder(rec.Body).Decode(&feed); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if feed.Counts.Total != 2 {
			t.Errorf("total = %d, want 2", feed.Counts.Total)
		}
	})

	t.Run("severity filter keeps counts", func(t *testing.T) {
		mux := setupMux(alerts.New(&mockStore{}, alerts.DefaultWindows(), discard()).Handler())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/alerts/"+uuid.NewString()+"?severity=warning", nil))

		var feed alerts.Feed
		if err := json.NewDecoder(rec.Body).Decode(&feed); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(feed.Alerts) != 1 || feed.Alerts[0].Severity != alerts.SeverityWarning {
			t.Errorf("alerts = %+v, want one warning", feed.Alerts)
		}
		if feed.Counts.Total != 2 {
			t.Errorf("total = %d, want 2", feed.Counts.Total)
		}
	})

	t.Run("malformed organization id is rejected", func(t *testing.T) {
		mux := setupMux(alerts.New(&mockStore{failOn: "tasks"}, alerts.DefaultWindows(), discard()).Handler())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/alerts/not-a-uuid", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("nil organization yields empty feed", func(t *testing.T) {
		mux := setupMux(alerts.New(&mockStore{failOn: "tasks"}, alerts.DefaultWindows(), discard()).Handler())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/alerts/"+uuid.Nil.String(), nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var feed alerts.Feed
		if err := json.NewDecoder(rec.Body).Decode(&feed); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if feed.Counts.Total != 0 || len(feed.Alerts) != 0 {
			t.Errorf("feed = %+v, want empty", feed)
		}
	})

	t.Run("unknown severity is rejected", func(t *testing.T) {
		mux := setupMux(alerts.New(&mockStore{}, alerts.DefaultWindows(), discard()).Handler())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/alerts/"+uuid.NewString()+"?severity=urgent", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("retrieval failure maps to 503", func(t *testing.T) {
		mux := setupMux(alerts.New(&mockStore{failOn: "tasks"}, alerts.DefaultWindows(), discard()).Handler())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/alerts/"+uuid.NewString(), nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
	})
}
