package reports_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/escalation"
	"github.com/JaimeStill/posture/internal/readiness"
	"github.com/JaimeStill/posture/internal/reports"
	"github.com/JaimeStill/posture/pkg/lifecycle"
	"github.com/JaimeStill/posture/pkg/storage"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type mockReadiness struct {
	readiness.System
	err error
}

func (m *mockReadiness) Compute(_ context.Context, _ uuid.UUID, _ time.Time) (*readiness.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	r := readiness.Compute(readiness.Counts{TotalTraining: 2, CompletedTraining: 1})
	return &r, nil
}

type mockAlerts struct {
	alerts.System
}

func (m *mockAlerts) Feed(_ context.Context, _ uuid.UUID, _ time.Time) (*alerts.Feed, error) {
	feed := alerts.EmptyFeed()
	return &feed, nil
}

type mockEscalation struct {
	escalation.System
}

func (m *mockEscalation) ListEscalated(_ context.Context, _ uuid.UUID) ([]escalation.Escalated, error) {
	return []escalation.Escalated{}, nil
}

type memStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
	types map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{
		blobs: make(map[string][]byte),
		types: make(map[string]string),
	}
}

func (m *memStorage) Start(*lifecycle.Coordinator) error { return nil }

func (m *memStorage) Key(parts ...string) string {
	return storage.JoinKey("reports", parts...)
}

func (m *memStorage) Upload(_ context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memStorage) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(store *memStorage, readinessErr error) reports.System {
	return reports.New(
		&mockReadiness{err: readinessErr},
		&mockAlerts{},
		&mockEscalation{},
		store,
		discard(),
	)
}

func TestSnapshot(t *testing.T) {
	t.Run("assembles components", func(t *testing.T) {
		org := uuid.New()
		snap, err := newSystem(newMemStorage(), nil).Snapshot(context.Background(), org, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.OrganizationID != org || !snap.GeneratedAt.Equal(now) {
			t.Errorf("snapshot header = %s/%s", snap.OrganizationID, snap.GeneratedAt)
		}
		if snap.Readiness.Breakdown.Training.Score != 5 {
			t.Errorf("training = %d, want 5", snap.Readiness.Breakdown.Training.Score)
		}
		if snap.Escalations == nil {
			t.Error("escalations should be empty, not nil")
		}
	})

	t.Run("missing organization", func(t *testing.T) {
		_, err := newSystem(newMemStorage(), nil).Snapshot(context.Background(), uuid.Nil, now)
		if !errors.Is(err, reports.ErrMissingContext) {
			t.Errorf("err = %v, want ErrMissingContext", err)
		}
	})

	t.Run("component failure", func(t *testing.T) {
		cause := readiness.ErrRetrieval
		_, err := newSystem(newMemStorage(), cause).Snapshot(context.Background(), uuid.New(), now)
		if !errors.Is(err, reports.ErrRetrieval) || !errors.Is(err, cause) {
			t.Errorf("err = %v, want ErrRetrieval wrapping cause", err)
		}
	})
}

func TestExport(t *testing.T) {
	store := newMemStorage()
	sys := newSystem(store, nil)
	org := uuid.New()

	export, err := sys.Export(context.Background(), org, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKey := "reports/" + org.String() + "/20250601T120000Z.json"
	if export.Key != wantKey {
		t.Errorf("key = %s, want %s", export.Key, wantKey)
	}
	if store.types[wantKey] != "application/json" {
		t.Errorf("content type = %s", store.types[wantKey])
	}
	if export.SizeBytes != int64(len(store.blobs[wantKey])) {
		t.Errorf("size = %d, stored %d", export.SizeBytes, len(store.blobs[wantKey]))
	}

	body, err := sys.Download(context.Background(), wantKey)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer body.Close()

	var snap reports.Snapshot
	if err := json.NewDecoder(body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.OrganizationID != org {
		t.Errorf("organization = %s, want %s", snap.OrganizationID, org)
	}
}

func TestDownload(t *testing.T) {
	sys := newSystem(newMemStorage(), nil)

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"outside prefix", "documents/secret.json", reports.ErrInvalidKey},
		{"missing", "reports/" + uuid.NewString() + "/20250101T000000Z.json", reports.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Download(context.Background(), tt.key)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHandler(t *testing.T) {
	store := newMemStorage()
	sys := newSystem(store, nil)

	mux := http.NewServeMux()
	group := sys.Handler().Routes()
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+group.Prefix+route.Pattern, route.Handler)
	}

	org := uuid.New()

	t.Run("export then download", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/reports/"+org.String(), nil))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}

		var export reports.Export
		if err := json.NewDecoder(rec.Body).Decode(&export); err != nil {
			t.Fatalf("decode: %v", err)
		}

		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/reports/download/"+export.Key, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("download status = %d, want 200", rec.Code)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".json") {
			t.Errorf("content disposition = %q", cd)
		}
	})

	t.Run("organization id rejected", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			org    string
			want   string
		}{
			{"snapshot malformed", "GET", "not-a-uuid", reports.ErrInvalidOrg.Error()},
			{"export malformed", "POST", "not-a-uuid", reports.ErrInvalidOrg.Error()},
			{"snapshot nil", "GET", uuid.Nil.String(), reports.ErrMissingContext.Error()},
		}

		for _, tt := range tests {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, "/reports/"+tt.org, nil))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("%s: status = %d, want 400", tt.name, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("%s: body = %s, want %q", tt.name, rec.Body.String(), tt.want)
			}
		}
	})
}
