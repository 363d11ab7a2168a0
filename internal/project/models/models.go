// Package models defines the in-memory project snapshot consumed by the RAiD
// mapping and compatibility engine. Snapshots are fully materialized by the
// store; the engine never mutates them.
package models

import (
	"time"

	id "conflux/pkg/domain"
)

// TitleType labels a project title.
type TitleType string

const (
	TitleTypePrimary     TitleType = "primary"
	TitleTypeShort       TitleType = "short"
	TitleTypeAcronym     TitleType = "acronym"
	TitleTypeAlternative TitleType = "alternative"
)

// Title is a dated project title. A nil EndDate means the title is still
// current.
type Title struct {
	ID        id.TitleID
	Text      string
	Type      TitleType
	Language  *string // ISO 639-3 code
	StartDate time.Time
	EndDate   *time.Time
}

// IsActive returns true when the title is in effect at the given instant:
// the start date has passed and the end date, if any, has not.
func (t Title) IsActive(now time.Time) bool {
	if t.StartDate.After(now) {
		return false
	}
	return t.EndDate == nil || !t.EndDate.Before(now)
}

// DescriptionType labels a project description.
type DescriptionType string

const (
	DescriptionTypePrimary          DescriptionType = "primary"
	DescriptionTypeAlternative      DescriptionType = "alternative"
	DescriptionTypeBrief            DescriptionType = "brief"
	DescriptionTypeMethods          DescriptionType = "methods"
	DescriptionTypeObjectives       DescriptionType = "objectives"
	DescriptionTypeAcknowledgements DescriptionType = "acknowledgements"
	DescriptionTypeOther            DescriptionType = "other"
)

// Description is a typed project description.
type Description struct {
	ID       id.DescriptionID
	Text     string
	Type     DescriptionType
	Language *string // ISO 639-3 code
}

// Person is the identity a contributor record points at.
type Person struct {
	ID    id.PersonID
	Name  string
	ORCiD *string // full URI, e.g. https://orcid.org/0000-0002-1825-0097
	Email *string
}

// ContributorRoleType follows the CRediT contributor role taxonomy.
type ContributorRoleType string

const (
	RoleConceptualization     ContributorRoleType = "conceptualization"
	RoleDataCuration          ContributorRoleType = "data_curation"
	RoleFormalAnalysis        ContributorRoleType = "formal_analysis"
	RoleFundingAcquisition    ContributorRoleType = "funding_acquisition"
	RoleInvestigation         ContributorRoleType = "investigation"
	RoleMethodology           ContributorRoleType = "methodology"
	RoleProjectAdministration ContributorRoleType = "project_administration"
	RoleResources             ContributorRoleType = "resources"
	RoleSoftware              ContributorRoleType = "software"
	RoleSupervision           ContributorRoleType = "supervision"
	RoleValidation            ContributorRoleType = "validation"
	RoleVisualization         ContributorRoleType = "visualization"
	RoleWritingOriginalDraft  ContributorRoleType = "writing_original_draft"
	RoleWritingReviewEditing  ContributorRoleType = "writing_review_editing"
)

// ContributorRole is a taxonomy tag without temporal extent.
type ContributorRole struct {
	Role ContributorRoleType
}

// ContributorPositionType labels a contributor's position in the project.
type ContributorPositionType string

const (
	PositionPrincipalInvestigator ContributorPositionType = "principal_investigator"
	PositionCoInvestigator        ContributorPositionType = "co_investigator"
	PositionPartnerInvestigator   ContributorPositionType = "partner_investigator"
	PositionConsultant            ContributorPositionType = "consultant"
	PositionOtherParticipant      ContributorPositionType = "other_participant"
)

// ContributorPosition is a dated position. A nil EndDate means open-ended.
type ContributorPosition struct {
	Position  ContributorPositionType
	StartDate time.Time
	EndDate   *time.Time
}

// Contributor links a person to a project with roles, positions, and the
// leader/contact flags RAiD requires at least one of each of.
type Contributor struct {
	Person    Person
	Leader    bool
	Contact   bool
	Roles     []ContributorRole
	Positions []ContributorPosition
}

// OrganisationRoleType labels an organisation's involvement.
type OrganisationRoleType string

const (
	OrgRoleLeadResearchOrganisation  OrganisationRoleType = "lead_research_organisation"
	OrgRoleOtherResearchOrganisation OrganisationRoleType = "other_research_organisation"
	OrgRolePartnerOrganisation       OrganisationRoleType = "partner_organisation"
	OrgRoleContractor                OrganisationRoleType = "contractor"
	OrgRoleFunder                    OrganisationRoleType = "funder"
	OrgRoleFacility                  OrganisationRoleType = "facility"
	OrgRoleOtherOrganisation         OrganisationRoleType = "other_organisation"
)

// OrganisationRole is a dated role. A nil EndDate means open-ended.
type OrganisationRole struct {
	Role      OrganisationRoleType
	StartDate time.Time
	EndDate   *time.Time
}

// Organisation is an external organisation record. RAiD mandates a ROR id
// before an organisation can appear in a mint or update payload.
type Organisation struct {
	ID    id.OrganisationID
	Name  string
	RORId *string // full URI, e.g. https://ror.org/04pp8hn57
}

// ProjectOrganisation links an organisation to a project with dated roles.
type ProjectOrganisation struct {
	Organisation Organisation
	Roles        []OrganisationRole
}

// ProductSchema is the identifier scheme of a product URL.
type ProductSchema string

const (
	SchemaDoi        ProductSchema = "doi"
	SchemaHandle     ProductSchema = "handle"
	SchemaArk        ProductSchema = "ark"
	SchemaArchiveOrg ProductSchema = "archive_org"
)

// ProductType is the work type of a related object.
type ProductType string

const (
	ProductTypeDataset        ProductType = "dataset"
	ProductTypeSoftware       ProductType = "software"
	ProductTypeJournalArticle ProductType = "journal_article"
	ProductTypePreprint       ProductType = "preprint"
	ProductTypeReport         ProductType = "report"
	ProductTypeInstrument     ProductType = "instrument"
	ProductTypeWorkflow       ProductType = "workflow"
	ProductTypeModel          ProductType = "model"
)

// ProductCategoryType distinguishes inputs, internal artifacts, and outputs.
type ProductCategoryType string

const (
	CategoryInput    ProductCategoryType = "input"
	CategoryInternal ProductCategoryType = "internal"
	CategoryOutput   ProductCategoryType = "output"
)

// Product is a related object attached to a project.
type Product struct {
	ID         id.ProductID
	Title      string
	URL        string
	Schema     ProductSchema
	Type       ProductType
	Categories []ProductCategoryType
}

// RAiDInfo links a project to its minted RAiD. Version is owned by the
// external registry; Checksum is the content hash last confirmed synced.
type RAiDInfo struct {
	RAiDId               string
	RegistrationAgencyID string
	OwnerID              string
	OwnerServicePoint    int64
	Version              int
	Checksum             string
	Dirty                bool
	LatestSync           time.Time
}

// ProjectSnapshot is the aggregate root handed to the mapping and
// compatibility engine. Collection order is meaningful: mapped payloads and
// content hashes preserve it.
type ProjectSnapshot struct {
	ID            id.ProjectID
	Title         string // working display title, independent of the dated Titles list
	StartDate     time.Time
	EndDate       *time.Time
	Titles        []Title
	Descriptions  []Description
	Contributors  []Contributor
	Organisations []ProjectOrganisation
	Products      []Product
	RAiD          *RAiDInfo
}
