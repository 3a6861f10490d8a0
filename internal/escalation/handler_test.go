package escalation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/internal/escalation"
	"github.com/JaimeStill/posture/pkg/routes"
)

type mockSystem struct {
	findFn   func(ctx context.Context, id uuid.UUID, variant escalation.Variant) (*escalation.Verification, error)
	updateFn func(ctx context.Context, id uuid.UUID, variant escalation.Variant, cmd escalation.UpdateCommand) (*escalation.Verification, error)
	checkFn  func(ctx context.Context, id uuid.UUID, variant escalation.Variant) (*escalation.EscalationCheck, error)
	listFn   func(ctx context.Context, orgID uuid.UUID) ([]escalation.Escalated, error)
}

func (m *mockSystem) Handler() *escalation.Handler {
	return escalation.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID, variant escalation.Variant) (*escalation.Verification, error) {
	return m.findFn(ctx, id, variant)
}

func (m *mockSystem) Update(ctx context.Context, id uuid.UUID, variant escalation.Variant, cmd escalation.UpdateCommand) (*escalation.Verification, error) {
	return m.updateFn(ctx, id, variant, cmd)
}

func (m *mockSystem) Check(ctx context.Context, id uuid.UUID, variant escalation.Variant) (*escalation.EscalationCheck, error) {
	return m.checkFn(ctx, id, variant)
}

func (m *mockSystem) ListEscalated(ctx context.Context, orgID uuid.UUID) ([]escalation.Escalated, error) {
	return m.listFn(ctx, orgID)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestHandlerUpdate(t *testing.T) {
	stored := record(escalation.StatusCompliant)

	sys := &mockSystem{
		updateFn: func(_ context.Context, id uuid.UUID, variant escalation.Variant, cmd escalation.UpdateCommand) (*escalation.Verification, error) {
			next := escalation.Apply(stored, cmd)
			next.AISystemID = id
			next.Variant = variant
			return &next, nil
		},
	}
	mux := setupMux(sys)

	t.Run("modification escalates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		path := "/verifications/" + stored.AISystemID.String() + "/importer"
		mux.ServeHTTP(rec, httptest.NewRequest("PUT", path, bytes.NewBufferString(`{"has_modified":true}`)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got escalation.Verification
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !got.EscalationTriggered || got.Status != escalation.StatusEscalated {
			t.Errorf("got %+v, want escalated", got)
		}
		if got.Variant != escalation.VariantImporter {
			t.Errorf("variant = %s, want importer", got.Variant)
		}
	})

	t.Run("unknown variant", func(t *testing.T) {
		rec := httptest.NewRecorder()
		path := "/verifications/" + stored.AISystemID.String() + "/reseller"
		mux.ServeHTTP(rec, httptest.NewRequest("PUT", path, bytes.NewBufferString(`{}`)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		path := "/verifications/" + stored.AISystemID.String() + "/distributor"
		mux.ServeHTTP(rec, httptest.NewRequest("PUT", path, bytes.NewBufferString(`{`)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, _ uuid.UUID, _ escalation.Variant) (*escalation.Verification, error) {
			return nil, escalation.ErrNotFound
		},
	}
	mux := setupMux(sys)

	t.Run("missing record", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/verifications/"+uuid.NewString()+"/distributor", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("obligations of missing record use variant role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/verifications/"+uuid.NewString()+"/importer/obligations", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp escalation.ObligationsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Role != escalation.RoleImporter {
			t.Errorf("role = %s, want importer", resp.Role)
		}
	})
}

func TestHandlerCheck(t *testing.T) {
	sys := &mockSystem{
		checkFn: func(_ context.Context, _ uuid.UUID, _ escalation.Variant) (*escalation.EscalationCheck, error) {
			v := record(escalation.StatusEscalated)
			v.HasRebranded = true
			check := escalation.Check(v)
			return &check, nil
		},
	}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/verifications/"+uuid.NewString()+"/distributor/check", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var check escalation.EscalationCheck
	if err := json.NewDecoder(rec.Body).Decode(&check); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !check.IsTriggered || check.ArticleReference != "Article 25(1)" {
		t.Errorf("check = %+v", check)
	}
}

func TestHandlerListEscalated(t *testing.T) {
	org := uuid.New()
	var captured uuid.UUID

	sys := &mockSystem{
		listFn: func(_ context.Context, orgID uuid.UUID) ([]escalation.Escalated, error) {
			captured = orgID
			v := record(escalation.StatusEscalated)
			v.HasModified = true
			v.EscalationTriggered = true
			return []escalation.Escalated{{Verification: v, Check: escalation.Check(v), Role: escalation.EffectiveRole(v)}}, nil
		},
	}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/escalations/"+org.String(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured != org {
		t.Errorf("org = %s, want %s", captured, org)
	}

	var items []escalation.Escalated
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Role != escalation.RoleProvider {
		t.Errorf("items = %+v, want one provider", items)
	}
}

func TestHandlerObligations(t *testing.T) {
	tests := []struct {
		name     string
		variant  string
		findFn   func(ctx context.Context, id uuid.UUID, variant escalation.Variant) (*escalation.Verification, error)
		wantRole escalation.Role
	}{
		{
			name:    "no record uses variant role",
			variant: "importer",
			findFn: func(context.Context, uuid.UUID, escalation.Variant) (*escalation.Verification, error) {
				return nil, escalation.ErrNotFound
			},
			wantRole: escalation.RoleImporter,
		},
		{
			name:    "modified system is a provider",
			variant: "distributor",
			findFn: func(context.Context, uuid.UUID, escalation.Variant) (*escalation.Verification, error) {
				v := record(escalation.StatusInProgress)
				v.HasModified = true
				return &v, nil
			},
			wantRole: escalation.RoleProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := setupMux(&mockSystem{findFn: tt.findFn})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", "/verifications/"+uuid.NewString()+"/"+tt.variant+"/obligations", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var resp escalation.ObligationsResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Role != tt.wantRole {
				t.Errorf("role = %s, want %s", resp.Role, tt.wantRole)
			}
			if len(resp.Obligations) == 0 {
				t.Error("expected a non-empty checklist")
			}
		})
	}
}

func TestHandlerListEscalatedOrganization(t *testing.T) {
	called := false
	sys := &mockSystem{
		listFn: func(_ context.Context, orgID uuid.UUID) ([]escalation.Escalated, error) {
			called = true
			return []escalation.Escalated{}, nil
		},
	}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/escalations/not-a-uuid", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if called {
		t.Error("system should not be called with a malformed organization id")
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/escalations/"+uuid.Nil.String(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("nil organization status = %d, want 200", rec.Code)
	}
}
