package escalation

import (
	"strings"
)

// Trigger is a condition under which a distributor or importer is considered a provider.
type Trigger string

const (
	TriggerRebranding              Trigger = "rebranding"
	TriggerSubstantialModification Trigger = "substantial_modification"
	TriggerNameChange              Trigger = "name_change"
	TriggerPurposeChange           Trigger = "purpose_change"
)

// Description explains the trigger in plain language.
func (t Trigger) Description() string {
	switch t {
	case TriggerRebranding:
		return "The system is placed on the market under your own name or trademark"
	case TriggerSubstantialModification:
		return "A substantial modification was made to a high-risk AI system"
	case TriggerNameChange:
		return "The name or trademark on the system was changed"
	case TriggerPurposeChange:
		return "The intended purpose was changed so that the system becomes high-risk"
	default:
		return string(t)
	}
}

// Article returns the paragraph of ArticleReference the trigger falls under.
func (t Trigger) Article() string {
	switch t {
	case TriggerRebranding, TriggerNameChange:
		return ArticleReference + "(a)"
	case TriggerSubstantialModification:
		return ArticleReference + "(b)"
	case TriggerPurposeChange:
		return ArticleReference + "(c)"
	default:
		return ArticleReference
	}
}

// Triggers returns the triggers fired by v. Only rebranding and substantial
// modification are recorded on a verification; the other triggers are
// described for display but never fire from a record.
func Triggers(v Verification) []Trigger {
	triggers := make([]Trigger, 0, 2)
	if v.HasRebranded {
		triggers = append(triggers, TriggerRebranding)
	}
	if v.HasModified {
		triggers = append(triggers, TriggerSubstantialModification)
	}
	return triggers
}

// Explain names the fired triggers, or states that none fired.
func Explain(triggers []Trigger) string {
	if len(triggers) == 0 {
		return "No escalation triggers detected. Distributor or importer obligations apply."
	}

	reasons := make([]string, len(triggers))
	for i, t := range triggers {
		reasons[i] = t.Description() + " (" + t.Article() + ")"
	}

	return "Provider obligations apply under " + ArticleReference + ": " +
		strings.Join(reasons, "; ") + "."
}

// EscalationCheck is the evaluated escalation state of a verification record.
type EscalationCheck struct {
	IsTriggered      bool      `json:"is_triggered"`
	Triggers         []Trigger `json:"triggers"`
	Severity         string    `json:"severity"`
	ArticleReference string    `json:"article_reference"`
	RequiredActions  []string  `json:"required_actions"`
	Explanation      string    `json:"explanation"`
}

// Check evaluates v. The result depends only on the trigger fields.
func Check(v Verification) EscalationCheck {
	triggers := Triggers(v)
	check := EscalationCheck{
		IsTriggered:      len(triggers) > 0,
		Triggers:         triggers,
		Severity:         "none",
		ArticleReference: ArticleReference,
		RequiredActions:  []string{},
		Explanation:      Explain(triggers),
	}

	if check.IsTriggered {
		check.Severity = "high"
		for _, o := range Obligations(RoleProvider) {
			check.RequiredActions = append(check.RequiredActions, o.Title)
		}
	}

	return check
}
