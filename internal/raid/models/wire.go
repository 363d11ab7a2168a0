// Package models defines the RAiD wire format. Field names and JSON tags
// follow the registry's metadata schema; collection order is meaningful and
// preserved as produced by the mapper.
package models

// Term is a controlled-vocabulary reference: an id URI plus the schema URI of
// the vocabulary it is drawn from.
type Term struct {
	ID        string `json:"id"`
	SchemaURI string `json:"schemaUri"`
}

// Language tags a text field with an ISO 639-3 code.
type Language struct {
	ID        string `json:"id"`
	SchemaURI string `json:"schemaUri"`
}

// Title is a dated, typed project title.
type Title struct {
	Text      string    `json:"text"`
	Type      Term      `json:"type"`
	StartDate string    `json:"startDate"`
	EndDate   *string   `json:"endDate,omitempty"`
	Language  *Language `json:"language,omitempty"`
}

// Date is the project date range. EndDate is omitted for open-ended projects.
type Date struct {
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
}

// Description is a typed project description.
type Description struct {
	Text     string    `json:"text"`
	Type     Term      `json:"type"`
	Language *Language `json:"language,omitempty"`
}

// Access declares the access level of the RAiD metadata record.
type Access struct {
	Type Term `json:"type"`
}

// ContributorPosition is a dated position entry for a contributor.
type ContributorPosition struct {
	SchemaURI string  `json:"schemaUri"`
	ID        string  `json:"id"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
}

// ContributorRole is a CRediT taxonomy tag.
type ContributorRole struct {
	SchemaURI string `json:"schemaUri"`
	ID        string `json:"id"`
}

// Contributor is a person attached to the RAiD. ID is the ORCID URI, or null
// when the person has none.
type Contributor struct {
	ID        *string               `json:"id"`
	SchemaURI string                `json:"schemaUri"`
	Position  []ContributorPosition `json:"position"`
	Role      []ContributorRole     `json:"role"`
	Leader    bool                  `json:"leader"`
	Contact   bool                  `json:"contact"`
}

// OrganisationRole is a dated role entry for an organisation.
type OrganisationRole struct {
	SchemaURI string  `json:"schemaUri"`
	ID        string  `json:"id"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
}

// Organisation is an organisation attached to the RAiD, identified by its ROR.
type Organisation struct {
	ID        string             `json:"id"`
	SchemaURI string             `json:"schemaUri"`
	Role      []OrganisationRole `json:"role"`
}

// RelatedObject is a product linked to the RAiD.
type RelatedObject struct {
	ID        string `json:"id"`
	SchemaURI string `json:"schemaUri"`
	Type      Term   `json:"type"`
	Category  []Term `json:"category"`
}

// RegistrationAgency identifies the agency that registered the RAiD.
type RegistrationAgency struct {
	ID        string `json:"id"`
	SchemaURI string `json:"schemaUri"`
}

// Owner identifies the owning institution and its registry service point.
type Owner struct {
	ID           string `json:"id"`
	SchemaURI    string `json:"schemaUri"`
	ServicePoint int64  `json:"servicePoint"`
}

// Identifier is the mutable identifier block of an existing RAiD. Version is
// owned by the registry and excluded from content hashing.
type Identifier struct {
	IDValue            string             `json:"id"`
	SchemaURI          string             `json:"schemaUri"`
	RegistrationAgency RegistrationAgency `json:"registrationAgency"`
	Owner              Owner              `json:"owner"`
	License            string             `json:"license"`
	Version            int                `json:"version"`
}

// CreateRequest is the payload for minting a new RAiD.
type CreateRequest struct {
	Title         []Title         `json:"title"`
	Date          Date            `json:"date"`
	Description   []Description   `json:"description"`
	Access        Access          `json:"access"`
	Contributor   []Contributor   `json:"contributor"`
	Organisation  []Organisation  `json:"organisation"`
	RelatedObject []RelatedObject `json:"relatedObject"`
}

// UpdateRequest is the payload for updating an existing RAiD: the creation
// fields plus the identifier block.
type UpdateRequest struct {
	Identifier    Identifier      `json:"identifier"`
	Title         []Title         `json:"title"`
	Date          Date            `json:"date"`
	Description   []Description   `json:"description"`
	Access        Access          `json:"access"`
	Contributor   []Contributor   `json:"contributor"`
	Organisation  []Organisation  `json:"organisation"`
	RelatedObject []RelatedObject `json:"relatedObject"`
}

// RaidDto is the registry's response to a mint or update. Only the identifier
// block is consumed by this service.
type RaidDto struct {
	Identifier Identifier `json:"identifier"`
}
