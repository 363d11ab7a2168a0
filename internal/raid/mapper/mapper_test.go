package mapper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"conflux/internal/language"
	projectModels "conflux/internal/project/models"
	"conflux/internal/raid/vocabulary"
	id "conflux/pkg/domain"
	dErrors "conflux/pkg/domain-errors"
)

const languageTable = "Id\tPart2b\tPart2t\tPart1\tScope\tLanguage_Type\tRef_Name\n" +
	"eng\teng\teng\ten\tI\tL\tEnglish\n" +
	"nld\tdut\tnld\tnl\tI\tL\tDutch\n" +
	"deu\tger\tdeu\tde\tI\tL\tGerman\n"

type MapperSuite struct {
	suite.Suite
	mapper *Mapper
}

func TestMapperSuite(t *testing.T) {
	suite.Run(t, new(MapperSuite))
}

func (s *MapperSuite) SetupSuite() {
	validator, err := language.Load(context.Background(), language.StaticSource(languageTable))
	s.Require().NoError(err)

	s.mapper, err = New(validator)
	s.Require().NoError(err)
}

func (s *MapperSuite) TestNewRequiresValidator() {
	_, err := New(nil)
	s.Error(err)
}

func strPtr(v string) *string { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func snapshot() *projectModels.ProjectSnapshot {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	return &projectModels.ProjectSnapshot{
		ID:        id.ProjectID(uuid.New()),
		StartDate: start,
		EndDate:   timePtr(end),
		Titles: []projectModels.Title{{
			ID:        id.TitleID(uuid.New()),
			Text:      "Coastal Sediment Transport",
			Type:      projectModels.TitleTypePrimary,
			StartDate: start,
			Language:  strPtr("eng"),
		}},
		Descriptions: []projectModels.Description{{
			ID:       id.DescriptionID(uuid.New()),
			Text:     "Meerjarig onderzoek naar sedimenttransport.",
			Type:     projectModels.DescriptionTypePrimary,
			Language: strPtr("nld"),
		}},
		Contributors: []projectModels.Contributor{{
			Person: projectModels.Person{
				ID:    id.PersonID(uuid.New()),
				Name:  "A. Example",
				ORCiD: strPtr("https://orcid.org/0000-0002-1825-0097"),
			},
			Leader:  true,
			Contact: true,
			Roles:   []projectModels.ContributorRole{{Role: projectModels.RoleInvestigation}},
			Positions: []projectModels.ContributorPosition{{
				Position:  projectModels.PositionPrincipalInvestigator,
				StartDate: start,
				EndDate:   timePtr(end),
			}},
		}},
		Organisations: []projectModels.ProjectOrganisation{{
			Organisation: projectModels.Organisation{
				ID:    id.OrganisationID(uuid.New()),
				Name:  "Example University",
				RORId: strPtr("https://ror.org/04pp8hn57"),
			},
			Roles: []projectModels.OrganisationRole{{
				Role:      projectModels.OrgRoleLeadResearchOrganisation,
				StartDate: start,
			}},
		}},
		Products: []projectModels.Product{{
			ID:         id.ProductID(uuid.New()),
			Title:      "Field measurements 2024",
			URL:        "https://doi.org/10.1234/example",
			Schema:     projectModels.SchemaDoi,
			Type:       projectModels.ProductTypeDataset,
			Categories: []projectModels.ProductCategoryType{projectModels.CategoryOutput},
		}},
	}
}

func (s *MapperSuite) TestCreationRequest() {
	p := snapshot()

	req, err := s.mapper.CreationRequest(p)
	s.Require().NoError(err)

	s.Run("dates use the ISO day layout", func() {
		s.Equal("2024-01-01", req.Date.StartDate)
		s.Require().NotNil(req.Date.EndDate)
		s.Equal("2025-06-30", *req.Date.EndDate)
	})

	s.Run("titles carry vocabulary terms and language tags", func() {
		s.Require().Len(req.Title, 1)
		title := req.Title[0]
		s.Equal("Coastal Sediment Transport", title.Text)
		s.Equal(vocabulary.TitleTypeSchemaURI+"/5", title.Type.ID)
		s.Equal(vocabulary.TitleTypeSchemaURI, title.Type.SchemaURI)
		s.Require().NotNil(title.Language)
		s.Equal("eng", title.Language.ID)
		s.Equal(vocabulary.LanguageSchemaURI, title.Language.SchemaURI)
	})

	s.Run("contributor id is the orcid uri", func() {
		s.Require().Len(req.Contributor, 1)
		c := req.Contributor[0]
		s.Require().NotNil(c.ID)
		s.Equal("https://orcid.org/0000-0002-1825-0097", *c.ID)
		s.Equal(vocabulary.ORCiDSchemaURI, c.SchemaURI)
		s.True(c.Leader)
		s.True(c.Contact)
		s.Require().Len(c.Position, 1)
		s.Equal(vocabulary.ContributorPositionSchemaURI+"/307", c.Position[0].ID)
		s.Require().Len(c.Role, 1)
		s.Equal("https://credit.niso.org/contributor-roles/investigation/", c.Role[0].ID)
	})

	s.Run("organisation id is the ror uri", func() {
		s.Require().Len(req.Organisation, 1)
		org := req.Organisation[0]
		s.Equal("https://ror.org/04pp8hn57", org.ID)
		s.Equal(vocabulary.RORSchemaURI, org.SchemaURI)
		s.Require().Len(org.Role, 1)
		s.Equal(vocabulary.OrganisationRoleSchemaURI+"/182", org.Role[0].ID)
		s.Nil(org.Role[0].EndDate)
	})

	s.Run("products become related objects", func() {
		s.Require().Len(req.RelatedObject, 1)
		obj := req.RelatedObject[0]
		s.Equal("https://doi.org/10.1234/example", obj.ID)
		s.Equal("https://doi.org/", obj.SchemaURI)
		s.Equal(vocabulary.RelatedObjectTypeSchemaURI+"/258", obj.Type.ID)
		s.Require().Len(obj.Category, 1)
		s.Equal(vocabulary.RelatedObjectCategorySchema+"/190", obj.Category[0].ID)
	})

	s.Run("access is always open", func() {
		s.Equal(vocabulary.OpenAccess, req.Access.Type)
	})
}

func (s *MapperSuite) TestContributorWithoutOrcidMapsToNullID() {
	p := snapshot()
	p.Contributors[0].Person.ORCiD = nil

	req, err := s.mapper.CreationRequest(p)
	s.Require().NoError(err)
	s.Nil(req.Contributor[0].ID)
}

func (s *MapperSuite) TestNilLanguageOmitsBlock() {
	p := snapshot()
	p.Titles[0].Language = nil
	p.Descriptions[0].Language = nil

	req, err := s.mapper.CreationRequest(p)
	s.Require().NoError(err)
	s.Nil(req.Title[0].Language)
	s.Nil(req.Description[0].Language)
}

func (s *MapperSuite) TestUnknownLanguageFails() {
	p := snapshot()
	p.Titles[0].Language = strPtr("zzz")

	_, err := s.mapper.CreationRequest(p)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	s.Contains(err.Error(), "zzz")
}

func (s *MapperSuite) TestMissingRORFails() {
	p := snapshot()
	p.Organisations[0].Organisation.RORId = nil

	_, err := s.mapper.CreationRequest(p)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	s.Contains(err.Error(), "ROR")
}

func (s *MapperSuite) TestCollectionOrderPreserved() {
	p := snapshot()
	p.Titles = append(p.Titles, projectModels.Title{
		ID:        id.TitleID(uuid.New()),
		Text:      "CST",
		Type:      projectModels.TitleTypeAcronym,
		StartDate: p.StartDate,
	})
	p.Products = append([]projectModels.Product{{
		ID:         id.ProductID(uuid.New()),
		Title:      "Protocol",
		URL:        "https://hdl.handle.net/20.500.1234/ab",
		Schema:     projectModels.SchemaHandle,
		Type:       projectModels.ProductTypeReport,
		Categories: []projectModels.ProductCategoryType{projectModels.CategoryInternal},
	}}, p.Products...)

	req, err := s.mapper.CreationRequest(p)
	s.Require().NoError(err)

	s.Equal("Coastal Sediment Transport", req.Title[0].Text)
	s.Equal("CST", req.Title[1].Text)
	s.Equal("https://hdl.handle.net/20.500.1234/ab", req.RelatedObject[0].ID)
	s.Equal("https://doi.org/10.1234/example", req.RelatedObject[1].ID)
}

func (s *MapperSuite) TestUpdateRequest() {
	p := snapshot()
	p.RAiD = &projectModels.RAiDInfo{
		RAiDId:               "https://raid.org/10.25.10.1234/a1b2c",
		RegistrationAgencyID: "https://ror.org/038x9td50",
		OwnerID:              "https://ror.org/04pp8hn57",
		OwnerServicePoint:    20000003,
		Version:              7,
	}

	req, err := s.mapper.UpdateRequest(p)
	s.Require().NoError(err)

	s.Equal("https://raid.org/10.25.10.1234/a1b2c", req.Identifier.IDValue)
	s.Equal(vocabulary.RaidSchemaURI, req.Identifier.SchemaURI)
	s.Equal("https://ror.org/038x9td50", req.Identifier.RegistrationAgency.ID)
	s.Equal("https://ror.org/04pp8hn57", req.Identifier.Owner.ID)
	s.Equal(int64(20000003), req.Identifier.Owner.ServicePoint)
	s.Equal("Creative Commons CC-0", req.Identifier.License)
	s.Equal(7, req.Identifier.Version)

	// The content fields match what a creation request would carry.
	create, err := s.mapper.CreationRequest(p)
	s.Require().NoError(err)
	s.Equal(create.Title, req.Title)
	s.Equal(create.Contributor, req.Contributor)
	s.Equal(create.Organisation, req.Organisation)
	s.Equal(create.RelatedObject, req.RelatedObject)
}

func (s *MapperSuite) TestUpdateRequestWithoutRAiDFails() {
	p := snapshot()
	p.RAiD = nil

	_, err := s.mapper.UpdateRequest(p)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
}
