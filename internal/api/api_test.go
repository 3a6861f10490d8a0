package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/posture/internal/api"
	"github.com/JaimeStill/posture/internal/config"
	"github.com/JaimeStill/posture/internal/infrastructure"
	"github.com/JaimeStill/posture/pkg/database"
	"github.com/JaimeStill/posture/pkg/middleware"
	"github.com/JaimeStill/posture/pkg/module"
	"github.com/JaimeStill/posture/pkg/openapi"
	"github.com/JaimeStill/posture/pkg/pagination"
	"github.com/JaimeStill/posture/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "posture",
			User:            "posture",
			Password:        "posture",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "posture",
			ConnectionString: azuriteConnString,
			KeyPrefix:        "reports",
		},
		API: config.APIConfig{
			BasePath: "/api",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			OpenAPI: openapi.Config{
				Title: "Posture API",
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
		},
		Engine: config.EngineConfig{
			AttestationWindowDays:   45,
			EvidenceWindowDays:      30,
			ControlReviewWindowDays: 14,
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() { infra.Database.Connection().Close() })
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Windows.AttestationDays != 45 {
		t.Errorf("attestation window: got %d, want 45", runtime.Windows.AttestationDays)
	}
	if runtime.Windows.ControlReviewDays != 14 {
		t.Errorf("control review window: got %d, want 14", runtime.Windows.ControlReviewDays)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
}

func TestWindowsDefaults(t *testing.T) {
	w := api.Windows(&config.EngineConfig{})
	if w.AttestationDays != 30 || w.EvidenceDays != 30 || w.ControlReviewDays != 14 {
		t.Errorf("windows: got %+v, want 30/30/14", w)
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(runtime)
	if domain == nil {
		t.Fatal("NewDomain() returned nil")
	}
	if domain.Readiness == nil || domain.Incidents == nil || domain.Alerts == nil ||
		domain.Escalation == nil || domain.Reports == nil {
		t.Errorf("domain has nil systems: %+v", domain)
	}
}

// Requests without a usable organization never reach the database,
// so the mounted routes can be exercised without one.
func TestRoutesWithoutOrganization(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	router := module.NewRouter()
	router.Mount(m)

	const nilOrg = "00000000-0000-0000-0000-000000000000"

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		want     int
		contains string
	}{
		{"readiness", "GET", "/api/readiness/" + nilOrg, "", http.StatusOK, `"status":"at_risk"`},
		{"alerts", "GET", "/api/alerts/" + nilOrg, "", http.StatusOK, `"total":0`},
		{"escalations", "GET", "/api/escalations/" + nilOrg, "", http.StatusOK, `[]`},
		{"reports", "GET", "/api/reports/" + nilOrg, "", http.StatusBadRequest, `"error"`},
		{"readiness malformed", "GET", "/api/readiness/none", "", http.StatusBadRequest, `invalid organization id`},
		{"alerts malformed", "GET", "/api/alerts/none", "", http.StatusBadRequest, `invalid organization id`},
		{"escalations malformed", "GET", "/api/escalations/none", "", http.StatusBadRequest, `"error"`},
		{"reports malformed", "GET", "/api/reports/none", "", http.StatusBadRequest, `invalid organization id`},
		{
			"deadline preview", "POST", "/api/incidents/deadline",
			`{"aware_at":"2025-03-10T09:00:00Z","category":"death_or_serious_damage"}`,
			http.StatusOK, `"deadline_at":"2025-03-12T09:00:00Z"`,
		},
		{"openapi", "GET", "/api/openapi.json", "", http.StatusOK, `"/verifications/{aiSystemId}/{variant}/check"`},
		{"unknown route", "GET", "/api/unknown", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body %s does not contain %s", rec.Body.String(), tt.contains)
			}
		})
	}
}

func TestBuildSpec(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	domain := api.NewDomain(api.NewRuntime(cfg, infra))

	spec := api.BuildSpec(cfg,
		domain.Readiness.Handler().Routes(),
		domain.Incidents.Handler().Routes(),
		domain.Reports.Handler().Routes(),
	)

	if spec.Info.Title != "Posture API" || spec.Info.Version != "0.1.0" {
		t.Errorf("info: got %s %s", spec.Info.Title, spec.Info.Version)
	}
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "/api" {
		t.Errorf("servers: got %+v", spec.Servers)
	}

	paths := []string{
		"/readiness/{orgId}",
		"/incidents",
		"/incidents/deadline",
		"/incidents/{id}/report",
		"/reports/{orgId}",
		"/reports/download/{key}",
	}
	for _, p := range paths {
		if _, ok := spec.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}

	item := spec.Paths["/incidents"]
	if item.Get == nil || item.Post == nil {
		t.Error("/incidents should carry get and post operations")
	}
	if _, ok := spec.Components.Schemas["AlertFeed"]; !ok {
		t.Error("missing AlertFeed schema")
	}
	if _, ok := spec.Components.Schemas["PageRequest"]; !ok {
		t.Error("default PageRequest schema dropped")
	}
}
