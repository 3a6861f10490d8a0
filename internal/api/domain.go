package api

import (
	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/escalation"
	"github.com/JaimeStill/posture/internal/incidents"
	"github.com/JaimeStill/posture/internal/readiness"
	"github.com/JaimeStill/posture/internal/records"
	"github.com/JaimeStill/posture/internal/reports"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Readiness  readiness.System
	Incidents  incidents.System
	Alerts     alerts.System
	Escalation escalation.System
	Reports    reports.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	store := records.New(runtime.Database.Connection(), runtime.Logger)

	readinessSystem := readiness.New(store, runtime.Logger)

	alertsSystem := alerts.New(store, runtime.Windows, runtime.Logger)

	escalationSystem := escalation.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	incidentsSystem := incidents.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	reportsSystem := reports.New(
		readinessSystem,
		alertsSystem,
		escalationSystem,
		runtime.Storage,
		runtime.Logger,
	)

	return &Domain{
		Readiness:  readinessSystem,
		Incidents:  incidentsSystem,
		Alerts:     alertsSystem,
		Escalation: escalationSystem,
		Reports:    reportsSystem,
	}
}
