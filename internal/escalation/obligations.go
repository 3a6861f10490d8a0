package escalation

// Role is the value-chain role whose obligations apply to an AI system.
type Role string

const (
	RoleProvider    Role = "provider"
	RoleDistributor Role = "distributor"
	RoleImporter    Role = "importer"
)

// Obligation is a single compliance duty of a role.
type Obligation struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Article string `json:"article"`
}

// EffectiveRole returns provider once escalation has triggered,
// otherwise the role named by the record's variant.
func EffectiveRole(v Verification) Role {
	if v.EscalationTriggered || v.HasRebranded || v.HasModified {
		return RoleProvider
	}
	switch v.Variant {
	case VariantImporter:
		return RoleImporter
	default:
		return RoleDistributor
	}
}

// Obligations returns the fixed checklist for role.
func Obligations(role Role) []Obligation {
	switch role {
	case RoleProvider:
		return []Obligation{
			{Code: "quality_management_system", Title: "Establish a quality management system", Article: "Article 17"},
			{Code: "technical_documentation", Title: "Draw up technical documentation", Article: "Article 11"},
			{Code: "conformity_assessment", Title: "Complete the conformity assessment", Article: "Article 43"},
			{Code: "ce_marking", Title: "Affix the CE marking", Article: "Article 48"},
			{Code: "registration", Title: "Register the system in the EU database", Article: "Article 49"},
			{Code: "post_market_monitoring", Title: "Operate a post-market monitoring system", Article: "Article 72"},
		}
	case RoleImporter:
		return []Obligation{
			{Code: "verify_conformity_assessment", Title: "Verify the provider carried out the conformity assessment", Article: "Article 23(1)(a)"},
			{Code: "verify_technical_documentation", Title: "Verify the provider drew up the technical documentation", Article: "Article 23(1)(b)"},
			{Code: "verify_ce_marking", Title: "Verify the CE marking and declaration of conformity", Article: "Article 23(1)(c)"},
			{Code: "importer_identification", Title: "Indicate the importer name and contact address", Article: "Article 23(3)"},
			{Code: "record_keeping", Title: "Keep the certificate and declaration for 10 years", Article: "Article 23(5)"},
			{Code: "authority_cooperation", Title: "Cooperate with competent authorities", Article: "Article 23(7)"},
		}
	case RoleDistributor:
		return []Obligation{
			{Code: "verify_ce_marking", Title: "Verify the CE marking and declaration of conformity", Article: "Article 24(1)"},
			{Code: "verify_instructions", Title: "Verify the instructions for use accompany the system", Article: "Article 24(1)"},
			{Code: "storage_conditions", Title: "Ensure storage and transport conditions preserve compliance", Article: "Article 24(3)"},
			{Code: "corrective_action", Title: "Take corrective action on non-conformity and inform the provider", Article: "Article 24(4)"},
			{Code: "authority_cooperation", Title: "Cooperate with competent authorities", Article: "Article 24(6)"},
		}
	default:
		return nil
	}
}
