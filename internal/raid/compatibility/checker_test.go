package compatibility

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	projectModels "conflux/internal/project/models"
	id "conflux/pkg/domain"
)

// The checker is the gate for every mint and sync. These tests pin the exact
// finding order and the interval-overlap semantics (touching is fine,
// overlapping is not), which the registry sync flow and the UI depend on.

type CheckerSuite struct {
	suite.Suite
	now     time.Time
	checker *Checker
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func (s *CheckerSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.checker = New(WithClock(func() time.Time { return s.now }))
}

// day returns the project timeline day n, with day 0 well in the past
// relative to the test clock.
func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func dayPtr(n int) *time.Time {
	d := day(n)
	return &d
}

func strPtr(s string) *string { return &s }

// compatibleProject builds a snapshot that passes every check: one active
// primary title, one primary description, one contributor with an ORCID who
// is both leader and contact, one open-ended lead research organisation from
// project start, and one product with a category.
func compatibleProject() *projectModels.ProjectSnapshot {
	return &projectModels.ProjectSnapshot{
		ID:        id.ProjectID(uuid.New()),
		StartDate: day(0),
		EndDate:   dayPtr(400),
		Titles: []projectModels.Title{{
			ID:        id.TitleID(uuid.New()),
			Text:      "Dune Dynamics of the Wadden Coast",
			Type:      projectModels.TitleTypePrimary,
			StartDate: day(0),
		}},
		Descriptions: []projectModels.Description{{
			ID:   id.DescriptionID(uuid.New()),
			Text: "Longitudinal study of sediment transport.",
			Type: projectModels.DescriptionTypePrimary,
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
				StartDate: day(0),
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
				StartDate: day(0),
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

func (s *CheckerSuite) types(incompatibilities []Incompatibility) []IncompatibilityType {
	out := make([]IncompatibilityType, 0, len(incompatibilities))
	for _, inc := range incompatibilities {
		out = append(out, inc.Type)
	}
	return out
}

func (s *CheckerSuite) TestCompatibleProjectYieldsNoFindings() {
	s.Empty(s.checker.Check(compatibleProject()))
}

func (s *CheckerSuite) TestDeterminism() {
	p := compatibleProject()
	p.Titles[0].Text = strings.Repeat("x", 150)
	p.Contributors[0].Person.ORCiD = nil

	first := s.checker.Check(p)
	second := s.checker.Check(p)
	s.Equal(first, second)
}

func (s *CheckerSuite) TestActivePrimaryTitle() {
	s.Run("no primary title", func() {
		p := compatibleProject()
		p.Titles[0].Type = projectModels.TitleTypeAlternative
		s.Equal([]IncompatibilityType{NoActivePrimaryTitle}, s.types(s.checker.Check(p)))
	})

	s.Run("primary title expired before now", func() {
		p := compatibleProject()
		p.Titles[0].EndDate = dayPtr(30) // ends 2024-01-31, clock is 2024-06-01
		s.Equal([]IncompatibilityType{NoActivePrimaryTitle}, s.types(s.checker.Check(p)))
	})

	s.Run("primary title not started yet", func() {
		p := compatibleProject()
		p.Titles[0].StartDate = s.now.AddDate(0, 1, 0)
		s.Equal([]IncompatibilityType{NoActivePrimaryTitle}, s.types(s.checker.Check(p)))
	})

	s.Run("two active primary titles", func() {
		p := compatibleProject()
		p.Titles = append(p.Titles, projectModels.Title{
			ID:        id.TitleID(uuid.New()),
			Text:      "Second primary",
			Type:      projectModels.TitleTypePrimary,
			StartDate: day(0),
		})
		s.Equal([]IncompatibilityType{MultipleActivePrimaryTitle}, s.types(s.checker.Check(p)))
	})

	s.Run("clock is injected", func() {
		p := compatibleProject()
		p.Titles[0].EndDate = dayPtr(30)

		early := New(WithClock(func() time.Time { return day(10) }))
		s.Empty(early.Check(p))
	})
}

func (s *CheckerSuite) TestTitleLengthBoundary() {
	s.Run("exactly 100 characters is fine", func() {
		p := compatibleProject()
		p.Titles[0].Text = strings.Repeat("a", 100)
		s.Empty(s.checker.Check(p))
	})

	s.Run("101 characters is too long", func() {
		p := compatibleProject()
		p.Titles[0].Text = strings.Repeat("a", 101)
		findings := s.checker.Check(p)
		s.Equal([]IncompatibilityType{ProjectTitleTooLong}, s.types(findings))
		s.Equal(uuid.UUID(p.Titles[0].ID), findings[0].ObjectID)
	})

	s.Run("one finding per offending title", func() {
		p := compatibleProject()
		long := strings.Repeat("a", 101)
		p.Titles = append(p.Titles,
			projectModels.Title{ID: id.TitleID(uuid.New()), Text: long, Type: projectModels.TitleTypeAlternative, StartDate: day(0)},
			projectModels.Title{ID: id.TitleID(uuid.New()), Text: long, Type: projectModels.TitleTypeShort, StartDate: day(0)},
		)
		s.Equal([]IncompatibilityType{ProjectTitleTooLong, ProjectTitleTooLong}, s.types(s.checker.Check(p)))
	})
}

func (s *CheckerSuite) TestDescriptionLengthBoundary() {
	s.Run("exactly 1000 characters is fine", func() {
		p := compatibleProject()
		p.Descriptions[0].Text = strings.Repeat("d", 1000)
		s.Empty(s.checker.Check(p))
	})

	s.Run("1001 characters is too long", func() {
		p := compatibleProject()
		p.Descriptions[0].Text = strings.Repeat("d", 1001)
		findings := s.checker.Check(p)
		s.Equal([]IncompatibilityType{ProjectDescriptionTooLong}, s.types(findings))
		s.Equal(uuid.UUID(p.Descriptions[0].ID), findings[0].ObjectID)
	})
}

func (s *CheckerSuite) TestPrimaryDescriptionCardinality() {
	s.Run("no descriptions at all is fine", func() {
		p := compatibleProject()
		p.Descriptions = nil
		s.Empty(s.checker.Check(p))
	})

	s.Run("descriptions without a primary", func() {
		p := compatibleProject()
		p.Descriptions[0].Type = projectModels.DescriptionTypeBrief
		s.Equal([]IncompatibilityType{NoPrimaryDescription}, s.types(s.checker.Check(p)))
	})

	s.Run("two primary descriptions", func() {
		p := compatibleProject()
		p.Descriptions = append(p.Descriptions, projectModels.Description{
			ID:   id.DescriptionID(uuid.New()),
			Text: "Another primary.",
			Type: projectModels.DescriptionTypePrimary,
		})
		s.Equal([]IncompatibilityType{MultiplePrimaryDescriptions}, s.types(s.checker.Check(p)))
	})
}

func (s *CheckerSuite) TestContributorChecks() {
	s.Run("no contributors also loses leader and contact", func() {
		p := compatibleProject()
		p.Contributors = nil
		s.Equal(
			[]IncompatibilityType{NoContributors, NoProjectLeader, NoProjectContact},
			s.types(s.checker.Check(p)),
		)
	})

	s.Run("contributor without orcid", func() {
		p := compatibleProject()
		p.Contributors[0].Person.ORCiD = nil
		findings := s.checker.Check(p)
		s.Equal([]IncompatibilityType{ContributorWithoutOrcid}, s.types(findings))
		s.Equal(uuid.UUID(p.Contributors[0].Person.ID), findings[0].ObjectID)
	})

	s.Run("empty orcid counts as missing", func() {
		p := compatibleProject()
		p.Contributors[0].Person.ORCiD = strPtr("")
		s.Equal([]IncompatibilityType{ContributorWithoutOrcid}, s.types(s.checker.Check(p)))
	})

	s.Run("no leader", func() {
		p := compatibleProject()
		p.Contributors[0].Leader = false
		s.Equal([]IncompatibilityType{NoProjectLeader}, s.types(s.checker.Check(p)))
	})

	s.Run("no contact", func() {
		p := compatibleProject()
		p.Contributors[0].Contact = false
		s.Equal([]IncompatibilityType{NoProjectContact}, s.types(s.checker.Check(p)))
	})
}

func (s *CheckerSuite) TestContributorPositionOverlap() {
	withPositions := func(positions ...projectModels.ContributorPosition) *projectModels.ProjectSnapshot {
		p := compatibleProject()
		p.Contributors[0].Positions = positions
		return p
	}

	s.Run("touching positions do not overlap", func() {
		p := withPositions(
			projectModels.ContributorPosition{Position: projectModels.PositionPrincipalInvestigator, StartDate: day(0), EndDate: dayPtr(5)},
			projectModels.ContributorPosition{Position: projectModels.PositionConsultant, StartDate: day(5)},
		)
		s.Empty(s.checker.Check(p))
	})

	s.Run("true overlap is flagged once per contributor", func() {
		p := withPositions(
			projectModels.ContributorPosition{Position: projectModels.PositionPrincipalInvestigator, StartDate: day(0), EndDate: dayPtr(10)},
			projectModels.ContributorPosition{Position: projectModels.PositionConsultant, StartDate: day(5)},
		)
		findings := s.checker.Check(p)
		s.Equal([]IncompatibilityType{OverlappingContributorPositions}, s.types(findings))
		s.Equal(uuid.UUID(p.Contributors[0].Person.ID), findings[0].ObjectID)
	})

	s.Run("open-ended position followed by another is flagged", func() {
		p := withPositions(
			projectModels.ContributorPosition{Position: projectModels.PositionPrincipalInvestigator, StartDate: day(0)},
			projectModels.ContributorPosition{Position: projectModels.PositionConsultant, StartDate: day(20), EndDate: dayPtr(30)},
		)
		s.Equal([]IncompatibilityType{OverlappingContributorPositions}, s.types(s.checker.Check(p)))
	})

	s.Run("contained interval is flagged", func() {
		p := withPositions(
			projectModels.ContributorPosition{Position: projectModels.PositionPrincipalInvestigator, StartDate: day(0), EndDate: dayPtr(30)},
			projectModels.ContributorPosition{Position: projectModels.PositionConsultant, StartDate: day(5), EndDate: dayPtr(10)},
		)
		s.Equal([]IncompatibilityType{OverlappingContributorPositions}, s.types(s.checker.Check(p)))
	})

	s.Run("gap between positions is fine", func() {
		p := withPositions(
			projectModels.ContributorPosition{Position: projectModels.PositionPrincipalInvestigator, StartDate: day(0), EndDate: dayPtr(5)},
			projectModels.ContributorPosition{Position: projectModels.PositionConsultant, StartDate: day(10), EndDate: dayPtr(20)},
		)
		s.Empty(s.checker.Check(p))
	})

	s.Run("unsorted input is sorted before scanning", func() {
		p := withPositions(
			projectModels.ContributorPosition{Position: projectModels.PositionConsultant, StartDate: day(10), EndDate: dayPtr(20)},
			projectModels.ContributorPosition{Position: projectModels.PositionPrincipalInvestigator, StartDate: day(0), EndDate: dayPtr(10)},
		)
		s.Empty(s.checker.Check(p))
	})
}

func (s *CheckerSuite) TestOrganisationRoleOverlap() {
	s.Run("overlapping roles flagged per organisation", func() {
		p := compatibleProject()
		p.Organisations[0].Roles = []projectModels.OrganisationRole{
			{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(0)},
			{Role: projectModels.OrgRoleFunder, StartDate: day(5), EndDate: dayPtr(10)},
		}
		findings := s.checker.Check(p)
		s.Equal([]IncompatibilityType{OverlappingOrganisationRoles}, s.types(findings))
		s.Equal(uuid.UUID(p.Organisations[0].Organisation.ID), findings[0].ObjectID)
	})

	s.Run("roles in different organisations are independent", func() {
		p := compatibleProject()
		p.Organisations = append(p.Organisations, projectModels.ProjectOrganisation{
			Organisation: projectModels.Organisation{
				ID:    id.OrganisationID(uuid.New()),
				Name:  "Partner Institute",
				RORId: strPtr("https://ror.org/02e7b5302"),
			},
			Roles: []projectModels.OrganisationRole{
				{Role: projectModels.OrgRolePartnerOrganisation, StartDate: day(0), EndDate: dayPtr(100)},
			},
		})
		s.Empty(s.checker.Check(p))
	})
}

func (s *CheckerSuite) TestLeadResearchOrganisationCoverage() {
	withLeadRoles := func(p *projectModels.ProjectSnapshot, roles ...projectModels.OrganisationRole) {
		p.Organisations[0].Roles = roles
	}

	s.Run("no lead role at all", func() {
		p := compatibleProject()
		withLeadRoles(p, projectModels.OrganisationRole{
			Role: projectModels.OrgRolePartnerOrganisation, StartDate: day(0),
		})
		findings := s.checker.Check(p)
		s.Equal([]IncompatibilityType{NoLeadResearchOrganisation}, s.types(findings))
		s.Equal(uuid.UUID(p.ID), findings[0].ObjectID)
	})

	s.Run("single role ending before project end leaves a gap", func() {
		p := compatibleProject()
		p.EndDate = dayPtr(20)
		withLeadRoles(p, projectModels.OrganisationRole{
			Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(0), EndDate: dayPtr(10),
		})
		s.Equal([]IncompatibilityType{NoLeadResearchOrganisation}, s.types(s.checker.Check(p)))
	})

	s.Run("closed role on an open-ended project leaves a gap", func() {
		p := compatibleProject()
		p.EndDate = nil
		withLeadRoles(p, projectModels.OrganisationRole{
			Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(0), EndDate: dayPtr(10),
		})
		s.Equal([]IncompatibilityType{NoLeadResearchOrganisation}, s.types(s.checker.Check(p)))
	})

	s.Run("role starting after project start leaves a gap", func() {
		p := compatibleProject()
		withLeadRoles(p, projectModels.OrganisationRole{
			Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(5),
		})
		s.Equal([]IncompatibilityType{NoLeadResearchOrganisation}, s.types(s.checker.Check(p)))
	})

	s.Run("touching handover is continuous", func() {
		p := compatibleProject()
		withLeadRoles(p,
			projectModels.OrganisationRole{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(0), EndDate: dayPtr(100)},
			projectModels.OrganisationRole{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(100)},
		)
		s.Empty(s.checker.Check(p))
	})

	s.Run("overlapping leads are doubled up", func() {
		p := compatibleProject()
		withLeadRoles(p,
			projectModels.OrganisationRole{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(0), EndDate: dayPtr(100)},
			projectModels.OrganisationRole{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(50)},
		)
		findings := s.checker.Check(p)
		// The same organisation also trips the generic role-overlap check.
		s.Equal(
			[]IncompatibilityType{OverlappingOrganisationRoles, MultipleLeadResearchOrganisation},
			s.types(findings),
		)
	})

	s.Run("three roles with a gap in the middle", func() {
		p := compatibleProject()
		p.EndDate = nil
		p.Organisations = append(p.Organisations, projectModels.ProjectOrganisation{
			Organisation: projectModels.Organisation{
				ID:    id.OrganisationID(uuid.New()),
				Name:  "Successor Institute",
				RORId: strPtr("https://ror.org/02e7b5302"),
			},
			Roles: []projectModels.OrganisationRole{
				{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(40), EndDate: dayPtr(60)},
				{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(70)},
			},
		})
		withLeadRoles(p, projectModels.OrganisationRole{
			Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(0), EndDate: dayPtr(40),
		})
		// Coverage: [0,40] → [40,60] → gap → [70,open]. One gap finding; the
		// scan keeps walking from the entry it just examined.
		s.Equal([]IncompatibilityType{NoLeadResearchOrganisation}, s.types(s.checker.Check(p)))
	})

	s.Run("three roles with overlap then gap reports both", func() {
		p := compatibleProject()
		p.EndDate = nil
		withLeadRoles(p,
			projectModels.OrganisationRole{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(0), EndDate: dayPtr(40)},
			projectModels.OrganisationRole{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(30), EndDate: dayPtr(50)},
			projectModels.OrganisationRole{Role: projectModels.OrgRoleLeadResearchOrganisation, StartDate: day(60)},
		)
		s.Equal(
			[]IncompatibilityType{
				OverlappingOrganisationRoles,
				MultipleLeadResearchOrganisation,
				NoLeadResearchOrganisation,
			},
			s.types(s.checker.Check(p)),
		)
	})
}

func (s *CheckerSuite) TestProductCategories() {
	p := compatibleProject()
	p.Products[0].Categories = nil
	findings := s.checker.Check(p)
	s.Equal([]IncompatibilityType{NoProductCategory}, s.types(findings))
	s.Equal(uuid.UUID(p.Products[0].ID), findings[0].ObjectID)
}

// TestFixedFindingOrder violates several invariants at once and pins the
// battery order end to end.
func (s *CheckerSuite) TestFixedFindingOrder() {
	p := compatibleProject()
	p.Titles[0].Type = projectModels.TitleTypeAlternative // no active primary
	p.Titles[0].Text = strings.Repeat("t", 101)           // too long
	p.Descriptions[0].Type = projectModels.DescriptionTypeBrief
	p.Descriptions[0].Text = strings.Repeat("d", 1001)
	p.Contributors[0].Person.ORCiD = nil
	p.Contributors[0].Leader = false
	p.Contributors[0].Contact = false
	p.Contributors[0].Positions = []projectModels.ContributorPosition{
		{Position: projectModels.PositionPrincipalInvestigator, StartDate: day(0), EndDate: dayPtr(10)},
		{Position: projectModels.PositionConsultant, StartDate: day(5)},
	}
	p.Organisations[0].Roles = []projectModels.OrganisationRole{
		{Role: projectModels.OrgRolePartnerOrganisation, StartDate: day(0), EndDate: dayPtr(10)},
		{Role: projectModels.OrgRoleFunder, StartDate: day(5), EndDate: dayPtr(20)},
	}
	p.Products[0].Categories = nil

	s.Equal(
		[]IncompatibilityType{
			NoActivePrimaryTitle,
			ProjectTitleTooLong,
			ProjectDescriptionTooLong,
			NoPrimaryDescription,
			ContributorWithoutOrcid,
			OverlappingContributorPositions,
			NoProjectLeader,
			NoProjectContact,
			OverlappingOrganisationRoles,
			NoLeadResearchOrganisation,
			NoProductCategory,
		},
		s.types(s.checker.Check(p)),
	)
}
