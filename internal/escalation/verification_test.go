package escalation_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/internal/escalation"
)

func ptr[T any](v T) *T { return &v }

func record(status escalation.Status) escalation.Verification {
	return escalation.Verification{
		ID:         uuid.New(),
		AISystemID: uuid.New(),
		Variant:    escalation.VariantDistributor,
		Status:     status,
	}
}

func TestApplyModificationEscalates(t *testing.T) {
	current := record(escalation.StatusCompliant)

	next := escalation.Apply(current, escalation.UpdateCommand{HasModified: ptr(true)})

	if !next.EscalationTriggered {
		t.Error("escalation_triggered = false, want true")
	}
	if next.Status != escalation.StatusEscalated {
		t.Errorf("status = %s, want escalated", next.Status)
	}
}

func TestApplyTriggerOverridesRequestedStatus(t *testing.T) {
	current := record(escalation.StatusInProgress)

	next := escalation.Apply(current, escalation.UpdateCommand{
		HasRebranded: ptr(true),
		Status:       ptr(escalation.StatusCompliant),
	})

	if !next.EscalationTriggered {
		t.Error("escalation_triggered = false, want true")
	}
	if next.Status != escalation.StatusEscalated {
		t.Errorf("status = %s, want escalated", next.Status)
	}
}

func TestApplyStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current escalation.Verification
		cmd     escalation.UpdateCommand
		want    escalation.Status
	}{
		{
			name:    "requested status kept without triggers",
			current: record(escalation.StatusInProgress),
			cmd:     escalation.UpdateCommand{Status: ptr(escalation.StatusCompliant)},
			want:    escalation.StatusCompliant,
		},
		{
			name:    "first change starts verification",
			current: record(escalation.StatusNotStarted),
			cmd:     escalation.UpdateCommand{Notes: ptr("reviewed supplier documents")},
			want:    escalation.StatusInProgress,
		},
		{
			name:    "empty update leaves not_started",
			current: record(escalation.StatusNotStarted),
			cmd:     escalation.UpdateCommand{},
			want:    escalation.StatusNotStarted,
		},
		{
			name: "clearing triggers demotes escalation",
			current: func() escalation.Verification {
				v := record(escalation.StatusEscalated)
				v.HasModified = true
				v.EscalationTriggered = true
				return v
			}(),
			cmd:  escalation.UpdateCommand{HasModified: ptr(false)},
			want: escalation.StatusInProgress,
		},
		{
			name: "clearing one of two triggers stays escalated",
			current: func() escalation.Verification {
				v := record(escalation.StatusEscalated)
				v.HasModified = true
				v.HasRebranded = true
				v.EscalationTriggered = true
				return v
			}(),
			cmd:  escalation.UpdateCommand{HasModified: ptr(false)},
			want: escalation.StatusEscalated,
		},
		{
			name:    "manual escalation without triggers is allowed",
			current: record(escalation.StatusInProgress),
			cmd:     escalation.UpdateCommand{Status: ptr(escalation.StatusEscalated)},
			want:    escalation.StatusEscalated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escalation.Apply(tt.current, tt.cmd)
			if got.Status != tt.want {
				t.Errorf("status = %s, want %s", got.Status, tt.want)
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	commands := []escalation.UpdateCommand{
		{},
		{HasModified: ptr(true)},
		{HasRebranded: ptr(true), Status: ptr(escalation.StatusCompliant)},
		{HasModified: ptr(false), HasRebranded: ptr(false)},
		{Status: ptr(escalation.StatusNonCompliant)},
		{Notes: ptr("n")},
	}

	starts := []escalation.Verification{
		record(escalation.StatusNotStarted),
		record(escalation.StatusCompliant),
		func() escalation.Verification {
			v := record(escalation.StatusEscalated)
			v.HasRebranded = true
			v.EscalationTriggered = true
			return v
		}(),
	}

	for _, start := range starts {
		for _, cmd := range commands {
			once := escalation.Apply(start, cmd)
			twice := escalation.Apply(once, cmd)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("apply not idempotent from %s with %+v: %+v vs %+v", start.Status, cmd, once, twice)
			}
		}
	}
}

func TestUpdateCommandValidate(t *testing.T) {
	if err := (escalation.UpdateCommand{Status: ptr(escalation.Status("done"))}).Validate(); err != escalation.ErrInvalidStatus {
		t.Errorf("Validate = %v, want ErrInvalidStatus", err)
	}
	if err := (escalation.UpdateCommand{Status: ptr(escalation.StatusCompliant)}).Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestCheck(t *testing.T) {
	t.Run("no triggers", func(t *testing.T) {
		check := escalation.Check(record(escalation.StatusCompliant))

		if check.IsTriggered {
			t.Error("is_triggered = true, want false")
		}
		if check.Severity != "none" {
			t.Errorf("severity = %s, want none", check.Severity)
		}
		if len(check.RequiredActions) != 0 {
			t.Errorf("required actions = %v, want none", check.RequiredActions)
		}
		if check.ArticleReference != escalation.ArticleReference {
			t.Errorf("article = %s", check.ArticleReference)
		}
	})

	t.Run("both triggers", func(t *testing.T) {
		v := record(escalation.StatusEscalated)
		v.HasRebranded = true
		v.HasModified = true

		check := escalation.Check(v)

		if !check.IsTriggered || check.Severity != "high" {
			t.Errorf("check = %+v, want triggered high", check)
		}
		want := []escalation.Trigger{escalation.TriggerRebranding, escalation.TriggerSubstantialModification}
		if !reflect.DeepEqual(check.Triggers, want) {
			t.Errorf("triggers = %v, want %v", check.Triggers, want)
		}
		if len(check.RequiredActions) != 6 {
			t.Errorf("required actions = %d, want 6", len(check.RequiredActions))
		}
		if !strings.Contains(check.Explanation, escalation.TriggerRebranding.Description()) ||
			!strings.Contains(check.Explanation, escalation.TriggerSubstantialModification.Description()) {
			t.Errorf("explanation = %q", check.Explanation)
		}
	})
}

func TestExplain(t *testing.T) {
	for _, trigger := range []escalation.Trigger{
		escalation.TriggerRebranding,
		escalation.TriggerSubstantialModification,
		escalation.TriggerNameChange,
		escalation.TriggerPurposeChange,
	} {
		text := escalation.Explain([]escalation.Trigger{trigger})
		if !strings.Contains(text, trigger.Description()) {
			t.Errorf("%s: explanation %q missing description", trigger, text)
		}
		if !strings.Contains(text, trigger.Article()) {
			t.Errorf("%s: explanation %q missing article", trigger, text)
		}
	}
}

func TestEffectiveRole(t *testing.T) {
	importer := record(escalation.StatusInProgress)
	importer.Variant = escalation.VariantImporter

	tests := []struct {
		name string
		v    escalation.Verification
		want escalation.Role
	}{
		{"distributor", record(escalation.StatusCompliant), escalation.RoleDistributor},
		{"importer", importer, escalation.RoleImporter},
		{"escalated", escalation.Apply(importer, escalation.UpdateCommand{HasRebranded: ptr(true)}), escalation.RoleProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escalation.EffectiveRole(tt.v); got != tt.want {
				t.Errorf("role = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestObligations(t *testing.T) {
	provider := escalation.Obligations(escalation.RoleProvider)
	codes := make([]string, len(provider))
	for i, o := range provider {
		codes[i] = o.Code
	}

	want := []string{
		"quality_management_system",
		"technical_documentation",
		"conformity_assessment",
		"ce_marking",
		"registration",
		"post_market_monitoring",
	}
	if !reflect.DeepEqual(codes, want) {
		t.Errorf("provider obligations = %v, want %v", codes, want)
	}

	if len(escalation.Obligations(escalation.RoleDistributor)) == 0 {
		t.Error("distributor obligations empty")
	}
	if len(escalation.Obligations(escalation.RoleImporter)) == 0 {
		t.Error("importer obligations empty")
	}
}
