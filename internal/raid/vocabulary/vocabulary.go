// Package vocabulary maps internal enum values onto the RAiD controlled
// vocabularies. Every mapping is a fixed lookup table built at init; a value
// absent from its table is a programming error and fails loudly rather than
// defaulting.
package vocabulary

import (
	projectModels "conflux/internal/project/models"
	"conflux/internal/raid/models"
	dErrors "conflux/pkg/domain-errors"
)

// Schema URIs of the vocabularies referenced by the RAiD metadata schema.
const (
	TitleTypeSchemaURI           = "https://vocabulary.raid.org/title.type.schema/376"
	DescriptionTypeSchemaURI     = "https://vocabulary.raid.org/description.type.schema/320"
	ContributorPositionSchemaURI = "https://vocabulary.raid.org/contributor.position.schema/305"
	ContributorRoleSchemaURI     = "https://credit.niso.org/"
	OrganisationRoleSchemaURI    = "https://vocabulary.raid.org/organisation.role.schema/359"
	RelatedObjectTypeSchemaURI   = "https://vocabulary.raid.org/relatedObject.type.schema/329"
	RelatedObjectCategorySchema  = "https://vocabulary.raid.org/relatedObject.category.schema/385"
	AccessTypeSchemaURI          = "https://vocabularies.coar-repositories.org/access_rights/"
	LanguageSchemaURI            = "https://www.iso.org/standard/39534.html"
	ORCiDSchemaURI               = "https://orcid.org/"
	RORSchemaURI                 = "https://ror.org/"
	RaidSchemaURI                = "https://raid.org/"
)

// OpenAccess is the access block every payload carries: RAiD metadata records
// minted by this service are always openly readable.
var OpenAccess = models.Term{
	ID:        "https://vocabularies.coar-repositories.org/access_rights/c_abf2/",
	SchemaURI: AccessTypeSchemaURI,
}

var titleTypes = map[projectModels.TitleType]models.Term{
	projectModels.TitleTypePrimary:     {ID: TitleTypeSchemaURI + "/5", SchemaURI: TitleTypeSchemaURI},
	projectModels.TitleTypeAlternative: {ID: TitleTypeSchemaURI + "/4", SchemaURI: TitleTypeSchemaURI},
	projectModels.TitleTypeAcronym:     {ID: TitleTypeSchemaURI + "/156", SchemaURI: TitleTypeSchemaURI},
	projectModels.TitleTypeShort:       {ID: TitleTypeSchemaURI + "/157", SchemaURI: TitleTypeSchemaURI},
}

var descriptionTypes = map[projectModels.DescriptionType]models.Term{
	projectModels.DescriptionTypePrimary:          {ID: DescriptionTypeSchemaURI + "/318", SchemaURI: DescriptionTypeSchemaURI},
	projectModels.DescriptionTypeAlternative:      {ID: DescriptionTypeSchemaURI + "/319", SchemaURI: DescriptionTypeSchemaURI},
	projectModels.DescriptionTypeBrief:            {ID: DescriptionTypeSchemaURI + "/3", SchemaURI: DescriptionTypeSchemaURI},
	projectModels.DescriptionTypeMethods:          {ID: DescriptionTypeSchemaURI + "/8", SchemaURI: DescriptionTypeSchemaURI},
	projectModels.DescriptionTypeObjectives:       {ID: DescriptionTypeSchemaURI + "/9", SchemaURI: DescriptionTypeSchemaURI},
	projectModels.DescriptionTypeAcknowledgements: {ID: DescriptionTypeSchemaURI + "/11", SchemaURI: DescriptionTypeSchemaURI},
	projectModels.DescriptionTypeOther:            {ID: DescriptionTypeSchemaURI + "/7", SchemaURI: DescriptionTypeSchemaURI},
}

var contributorPositions = map[projectModels.ContributorPositionType]models.Term{
	projectModels.PositionPrincipalInvestigator: {ID: ContributorPositionSchemaURI + "/307", SchemaURI: ContributorPositionSchemaURI},
	projectModels.PositionCoInvestigator:        {ID: ContributorPositionSchemaURI + "/308", SchemaURI: ContributorPositionSchemaURI},
	projectModels.PositionPartnerInvestigator:   {ID: ContributorPositionSchemaURI + "/309", SchemaURI: ContributorPositionSchemaURI},
	projectModels.PositionConsultant:            {ID: ContributorPositionSchemaURI + "/310", SchemaURI: ContributorPositionSchemaURI},
	projectModels.PositionOtherParticipant:      {ID: ContributorPositionSchemaURI + "/311", SchemaURI: ContributorPositionSchemaURI},
}

var contributorRoles = map[projectModels.ContributorRoleType]models.Term{
	projectModels.RoleConceptualization:     creditRole("conceptualization"),
	projectModels.RoleDataCuration:          creditRole("data-curation"),
	projectModels.RoleFormalAnalysis:        creditRole("formal-analysis"),
	projectModels.RoleFundingAcquisition:    creditRole("funding-acquisition"),
	projectModels.RoleInvestigation:         creditRole("investigation"),
	projectModels.RoleMethodology:           creditRole("methodology"),
	projectModels.RoleProjectAdministration: creditRole("project-administration"),
	projectModels.RoleResources:             creditRole("resources"),
	projectModels.RoleSoftware:              creditRole("software"),
	projectModels.RoleSupervision:           creditRole("supervision"),
	projectModels.RoleValidation:            creditRole("validation"),
	projectModels.RoleVisualization:         creditRole("visualization"),
	projectModels.RoleWritingOriginalDraft:  creditRole("writing-original-draft"),
	projectModels.RoleWritingReviewEditing:  creditRole("writing-review-editing"),
}

func creditRole(slug string) models.Term {
	return models.Term{
		ID:        ContributorRoleSchemaURI + "contributor-roles/" + slug + "/",
		SchemaURI: ContributorRoleSchemaURI,
	}
}

var organisationRoles = map[projectModels.OrganisationRoleType]models.Term{
	projectModels.OrgRoleLeadResearchOrganisation:  {ID: OrganisationRoleSchemaURI + "/182", SchemaURI: OrganisationRoleSchemaURI},
	projectModels.OrgRoleOtherResearchOrganisation: {ID: OrganisationRoleSchemaURI + "/183", SchemaURI: OrganisationRoleSchemaURI},
	projectModels.OrgRolePartnerOrganisation:       {ID: OrganisationRoleSchemaURI + "/184", SchemaURI: OrganisationRoleSchemaURI},
	projectModels.OrgRoleContractor:                {ID: OrganisationRoleSchemaURI + "/185", SchemaURI: OrganisationRoleSchemaURI},
	projectModels.OrgRoleFunder:                    {ID: OrganisationRoleSchemaURI + "/186", SchemaURI: OrganisationRoleSchemaURI},
	projectModels.OrgRoleFacility:                  {ID: OrganisationRoleSchemaURI + "/187", SchemaURI: OrganisationRoleSchemaURI},
	projectModels.OrgRoleOtherOrganisation:         {ID: OrganisationRoleSchemaURI + "/188", SchemaURI: OrganisationRoleSchemaURI},
}

var productTypes = map[projectModels.ProductType]models.Term{
	projectModels.ProductTypeJournalArticle: {ID: RelatedObjectTypeSchemaURI + "/250", SchemaURI: RelatedObjectTypeSchemaURI},
	projectModels.ProductTypeModel:          {ID: RelatedObjectTypeSchemaURI + "/253", SchemaURI: RelatedObjectTypeSchemaURI},
	projectModels.ProductTypeSoftware:       {ID: RelatedObjectTypeSchemaURI + "/256", SchemaURI: RelatedObjectTypeSchemaURI},
	projectModels.ProductTypeInstrument:     {ID: RelatedObjectTypeSchemaURI + "/257", SchemaURI: RelatedObjectTypeSchemaURI},
	projectModels.ProductTypeDataset:        {ID: RelatedObjectTypeSchemaURI + "/258", SchemaURI: RelatedObjectTypeSchemaURI},
	projectModels.ProductTypePreprint:       {ID: RelatedObjectTypeSchemaURI + "/262", SchemaURI: RelatedObjectTypeSchemaURI},
	projectModels.ProductTypeReport:         {ID: RelatedObjectTypeSchemaURI + "/263", SchemaURI: RelatedObjectTypeSchemaURI},
	projectModels.ProductTypeWorkflow:       {ID: RelatedObjectTypeSchemaURI + "/271", SchemaURI: RelatedObjectTypeSchemaURI},
}

var productCategories = map[projectModels.ProductCategoryType]models.Term{
	projectModels.CategoryOutput:   {ID: RelatedObjectCategorySchema + "/190", SchemaURI: RelatedObjectCategorySchema},
	projectModels.CategoryInput:    {ID: RelatedObjectCategorySchema + "/191", SchemaURI: RelatedObjectCategorySchema},
	projectModels.CategoryInternal: {ID: RelatedObjectCategorySchema + "/192", SchemaURI: RelatedObjectCategorySchema},
}

var productSchemas = map[projectModels.ProductSchema]string{
	projectModels.SchemaDoi:        "https://doi.org/",
	projectModels.SchemaHandle:     "https://hdl.handle.net/",
	projectModels.SchemaArk:        "https://arks.org/",
	projectModels.SchemaArchiveOrg: "https://web.archive.org/",
}

func lookup[K comparable](table map[K]models.Term, key K, family string) (models.Term, error) {
	term, ok := table[key]
	if !ok {
		return models.Term{}, dErrors.Newf(dErrors.CodeInvalidState, "unmapped %s value %v", family, key)
	}
	return term, nil
}

// TitleType maps a title type to its vocabulary term.
func TitleType(t projectModels.TitleType) (models.Term, error) {
	return lookup(titleTypes, t, "title type")
}

// DescriptionType maps a description type to its vocabulary term.
func DescriptionType(t projectModels.DescriptionType) (models.Term, error) {
	return lookup(descriptionTypes, t, "description type")
}

// ContributorPosition maps a contributor position to its vocabulary term.
func ContributorPosition(p projectModels.ContributorPositionType) (models.Term, error) {
	return lookup(contributorPositions, p, "contributor position")
}

// ContributorRole maps a CRediT role to its taxonomy term.
func ContributorRole(r projectModels.ContributorRoleType) (models.Term, error) {
	return lookup(contributorRoles, r, "contributor role")
}

// OrganisationRole maps an organisation role to its vocabulary term.
func OrganisationRole(r projectModels.OrganisationRoleType) (models.Term, error) {
	return lookup(organisationRoles, r, "organisation role")
}

// ProductType maps a product work type to its related-object term.
func ProductType(t projectModels.ProductType) (models.Term, error) {
	return lookup(productTypes, t, "product type")
}

// ProductCategory maps a product category to its related-object category term.
func ProductCategory(c projectModels.ProductCategoryType) (models.Term, error) {
	return lookup(productCategories, c, "product category")
}

// ProductSchemaURI maps a product identifier scheme to its schema URI.
func ProductSchemaURI(s projectModels.ProductSchema) (string, error) {
	uri, ok := productSchemas[s]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidState, "unmapped product schema value %v", s)
	}
	return uri, nil
}
