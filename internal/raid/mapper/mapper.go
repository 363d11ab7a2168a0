// Package mapper builds RAiD creation and update payloads from a project
// snapshot. Mapping is deterministic: input collection order is preserved,
// which downstream content hashing depends on.
package mapper

import (
	"fmt"
	"time"

	"conflux/internal/language"
	projectModels "conflux/internal/project/models"
	"conflux/internal/raid/models"
	"conflux/internal/raid/vocabulary"
	dErrors "conflux/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// License recorded on the identifier block of update payloads.
const identifierLicense = "Creative Commons CC-0"

// Mapper converts project snapshots into RAiD wire payloads.
type Mapper struct {
	languages *language.Validator
}

// New creates a Mapper. The language validator is required: language-tagged
// fields must never reach the registry with an unverified code.
func New(languages *language.Validator) (*Mapper, error) {
	if languages == nil {
		return nil, fmt.Errorf("language validator is required")
	}
	return &Mapper{languages: languages}, nil
}

// CreationRequest builds the payload for minting a new RAiD.
func (m *Mapper) CreationRequest(p *projectModels.ProjectSnapshot) (*models.CreateRequest, error) {
	titles, err := m.mapTitles(p.Titles)
	if err != nil {
		return nil, err
	}
	descriptions, err := m.mapDescriptions(p.Descriptions)
	if err != nil {
		return nil, err
	}
	contributors, err := mapContributors(p.Contributors)
	if err != nil {
		return nil, err
	}
	organisations, err := mapOrganisations(p.Organisations)
	if err != nil {
		return nil, err
	}
	related, err := mapProducts(p.Products)
	if err != nil {
		return nil, err
	}

	return &models.CreateRequest{
		Title:         titles,
		Date:          models.Date{StartDate: formatDate(p.StartDate), EndDate: formatDatePtr(p.EndDate)},
		Description:   descriptions,
		Access:        models.Access{Type: vocabulary.OpenAccess},
		Contributor:   contributors,
		Organisation:  organisations,
		RelatedObject: related,
	}, nil
}

// UpdateRequest builds the payload for updating an existing RAiD. The
// identifier block is sourced from the project's stored RAiDInfo and is
// excluded from content hashing because its version mutates independently.
func (m *Mapper) UpdateRequest(p *projectModels.ProjectSnapshot) (*models.UpdateRequest, error) {
	if p.RAiD == nil {
		return nil, dErrors.ForEntity(dErrors.CodeInvalidState, p.ID.String(), "project has no RAiD to update")
	}

	create, err := m.CreationRequest(p)
	if err != nil {
		return nil, err
	}

	return &models.UpdateRequest{
		Identifier: models.Identifier{
			IDValue:   p.RAiD.RAiDId,
			SchemaURI: vocabulary.RaidSchemaURI,
			RegistrationAgency: models.RegistrationAgency{
				ID:        p.RAiD.RegistrationAgencyID,
				SchemaURI: vocabulary.RORSchemaURI,
			},
			Owner: models.Owner{
				ID:           p.RAiD.OwnerID,
				SchemaURI:    vocabulary.RORSchemaURI,
				ServicePoint: p.RAiD.OwnerServicePoint,
			},
			License: identifierLicense,
			Version: p.RAiD.Version,
		},
		Title:         create.Title,
		Date:          create.Date,
		Description:   create.Description,
		Access:        create.Access,
		Contributor:   create.Contributor,
		Organisation:  create.Organisation,
		RelatedObject: create.RelatedObject,
	}, nil
}

func (m *Mapper) mapTitles(titles []projectModels.Title) ([]models.Title, error) {
	out := make([]models.Title, 0, len(titles))
	for _, t := range titles {
		term, err := vocabulary.TitleType(t.Type)
		if err != nil {
			return nil, err
		}
		lang, err := m.mapLanguage(t.Language, t.ID.String())
		if err != nil {
			return nil, err
		}
		out = append(out, models.Title{
			Text:      t.Text,
			Type:      term,
			StartDate: formatDate(t.StartDate),
			EndDate:   formatDatePtr(t.EndDate),
			Language:  lang,
		})
	}
	return out, nil
}

func (m *Mapper) mapDescriptions(descriptions []projectModels.Description) ([]models.Description, error) {
	out := make([]models.Description, 0, len(descriptions))
	for _, d := range descriptions {
		term, err := vocabulary.DescriptionType(d.Type)
		if err != nil {
			return nil, err
		}
		lang, err := m.mapLanguage(d.Language, d.ID.String())
		if err != nil {
			return nil, err
		}
		out = append(out, models.Description{Text: d.Text, Type: term, Language: lang})
	}
	return out, nil
}

// mapLanguage returns nil for a nil code: the language sub-object is omitted
// entirely, never emitted as a placeholder. An unknown code is a stored-data
// fault, not something to silently drop.
func (m *Mapper) mapLanguage(code *string, entityID string) (*models.Language, error) {
	if code == nil {
		return nil, nil
	}
	if !m.languages.IsValid(*code) {
		return nil, dErrors.ForEntity(dErrors.CodeInvalidState, entityID,
			fmt.Sprintf("unknown ISO 639-3 language code %q", *code))
	}
	return &models.Language{ID: *code, SchemaURI: vocabulary.LanguageSchemaURI}, nil
}

func mapContributors(contributors []projectModels.Contributor) ([]models.Contributor, error) {
	out := make([]models.Contributor, 0, len(contributors))
	for _, c := range contributors {
		positions := make([]models.ContributorPosition, 0, len(c.Positions))
		for _, p := range c.Positions {
			term, err := vocabulary.ContributorPosition(p.Position)
			if err != nil {
				return nil, err
			}
			positions = append(positions, models.ContributorPosition{
				SchemaURI: term.SchemaURI,
				ID:        term.ID,
				StartDate: formatDate(p.StartDate),
				EndDate:   formatDatePtr(p.EndDate),
			})
		}

		roles := make([]models.ContributorRole, 0, len(c.Roles))
		for _, r := range c.Roles {
			term, err := vocabulary.ContributorRole(r.Role)
			if err != nil {
				return nil, err
			}
			roles = append(roles, models.ContributorRole{SchemaURI: term.SchemaURI, ID: term.ID})
		}

		out = append(out, models.Contributor{
			ID:        c.Person.ORCiD,
			SchemaURI: vocabulary.ORCiDSchemaURI,
			Position:  positions,
			Role:      roles,
			Leader:    c.Leader,
			Contact:   c.Contact,
		})
	}
	return out, nil
}

func mapOrganisations(organisations []projectModels.ProjectOrganisation) ([]models.Organisation, error) {
	out := make([]models.Organisation, 0, len(organisations))
	for _, po := range organisations {
		// The registry mandates ROR identifiers for organisations.
		if po.Organisation.RORId == nil {
			return nil, dErrors.ForEntity(dErrors.CodeInvalidState, po.Organisation.ID.String(),
				fmt.Sprintf("organisation %q has no ROR id", po.Organisation.Name))
		}

		roles := make([]models.OrganisationRole, 0, len(po.Roles))
		for _, r := range po.Roles {
			term, err := vocabulary.OrganisationRole(r.Role)
			if err != nil {
				return nil, err
			}
			roles = append(roles, models.OrganisationRole{
				SchemaURI: term.SchemaURI,
				ID:        term.ID,
				StartDate: formatDate(r.StartDate),
				EndDate:   formatDatePtr(r.EndDate),
			})
		}

		out = append(out, models.Organisation{
			ID:        *po.Organisation.RORId,
			SchemaURI: vocabulary.RORSchemaURI,
			Role:      roles,
		})
	}
	return out, nil
}

func mapProducts(products []projectModels.Product) ([]models.RelatedObject, error) {
	out := make([]models.RelatedObject, 0, len(products))
	for _, p := range products {
		schemaURI, err := vocabulary.ProductSchemaURI(p.Schema)
		if err != nil {
			return nil, err
		}
		typeTerm, err := vocabulary.ProductType(p.Type)
		if err != nil {
			return nil, err
		}
		categories := make([]models.Term, 0, len(p.Categories))
		for _, c := range p.Categories {
			term, err := vocabulary.ProductCategory(c)
			if err != nil {
				return nil, err
			}
			categories = append(categories, term)
		}

		out = append(out, models.RelatedObject{
			ID:        p.URL,
			SchemaURI: schemaURI,
			Type:      typeTerm,
			Category:  categories,
		})
	}
	return out, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
