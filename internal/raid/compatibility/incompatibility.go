package compatibility

import "github.com/google/uuid"

// IncompatibilityType enumerates the structural invariants a project can
// violate with respect to the RAiD metadata schema.
type IncompatibilityType string

const (
	NoActivePrimaryTitle             IncompatibilityType = "no_active_primary_title"
	MultipleActivePrimaryTitle       IncompatibilityType = "multiple_active_primary_title"
	ProjectTitleTooLong              IncompatibilityType = "project_title_too_long"
	ProjectDescriptionTooLong        IncompatibilityType = "project_description_too_long"
	NoPrimaryDescription             IncompatibilityType = "no_primary_description"
	MultiplePrimaryDescriptions      IncompatibilityType = "multiple_primary_descriptions"
	NoContributors                   IncompatibilityType = "no_contributors"
	ContributorWithoutOrcid          IncompatibilityType = "contributor_without_orcid"
	OverlappingContributorPositions  IncompatibilityType = "overlapping_contributor_positions"
	NoProjectLeader                  IncompatibilityType = "no_project_leader"
	NoProjectContact                 IncompatibilityType = "no_project_contact"
	OverlappingOrganisationRoles     IncompatibilityType = "overlapping_organisation_roles"
	NoLeadResearchOrganisation       IncompatibilityType = "no_lead_research_organisation"
	MultipleLeadResearchOrganisation IncompatibilityType = "multiple_lead_research_organisation"
	NoProductCategory                IncompatibilityType = "no_product_category"
)

// Incompatibility reports one violated invariant. ObjectID names the entity
// instance that triggered it so a UI can point at the offending record.
// Incompatibilities are ordinary data, produced fresh on every check call and
// never persisted.
type Incompatibility struct {
	Type     IncompatibilityType `json:"type"`
	ObjectID uuid.UUID           `json:"objectId"`
}
