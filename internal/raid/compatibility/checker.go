// Package compatibility validates that a project snapshot satisfies the RAiD
// structural invariants before a mint or sync is allowed. The check battery
// runs in full on every call, in a fixed order, and reports violations as
// data rather than errors so callers can show "why can't I mint" without
// try/catch.
package compatibility

import (
	"sort"
	"time"

	"github.com/google/uuid"

	projectModels "conflux/internal/project/models"
)

// RAiD field limits.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// Checker runs the invariant battery. The clock is injectable because the
// active-primary-title check depends on wall-clock time.
type Checker struct {
	now func() time.Time
}

type Option func(*Checker)

// WithClock overrides the time source used for title activity.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

func New(opts ...Option) *Checker {
	c := &Checker{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs every check unconditionally and returns violations in the fixed
// check order. For a given snapshot and clock the result is deterministic;
// downstream consumers depend on that ordering.
func (c *Checker) Check(p *projectModels.ProjectSnapshot) []Incompatibility {
	out := []Incompatibility{}

	out = append(out, c.checkActivePrimaryTitle(p)...)
	out = append(out, checkTitleLengths(p)...)
	out = append(out, checkDescriptionLengths(p)...)
	out = append(out, checkPrimaryDescription(p)...)
	out = append(out, checkContributorPresence(p)...)
	out = append(out, checkContributorOrcids(p)...)
	out = append(out, checkContributorPositions(p)...)
	out = append(out, checkProjectLeader(p)...)
	out = append(out, checkProjectContact(p)...)
	out = append(out, checkOrganisationRoles(p)...)
	out = append(out, checkLeadResearchOrganisation(p)...)
	out = append(out, checkProductCategories(p)...)

	return out
}

// Exactly one primary title must be active right now.
func (c *Checker) checkActivePrimaryTitle(p *projectModels.ProjectSnapshot) []Incompatibility {
	now := c.now()
	active := 0
	for _, t := range p.Titles {
		if t.Type == projectModels.TitleTypePrimary && t.IsActive(now) {
			active++
		}
	}
	switch {
	case active == 0:
		return []Incompatibility{{Type: NoActivePrimaryTitle, ObjectID: uuid.UUID(p.ID)}}
	case active > 1:
		return []Incompatibility{{Type: MultipleActivePrimaryTitle, ObjectID: uuid.UUID(p.ID)}}
	}
	return nil
}

func checkTitleLengths(p *projectModels.ProjectSnapshot) []Incompatibility {
	var out []Incompatibility
	for _, t := range p.Titles {
		if len(t.Text) > MaxTitleLength {
			out = append(out, Incompatibility{Type: ProjectTitleTooLong, ObjectID: uuid.UUID(t.ID)})
		}
	}
	return out
}

func checkDescriptionLengths(p *projectModels.ProjectSnapshot) []Incompatibility {
	var out []Incompatibility
	for _, d := range p.Descriptions {
		if len(d.Text) > MaxDescriptionLength {
			out = append(out, Incompatibility{Type: ProjectDescriptionTooLong, ObjectID: uuid.UUID(d.ID)})
		}
	}
	return out
}

// Primary description cardinality is only evaluated when descriptions exist
// at all: a project without descriptions is valid.
func checkPrimaryDescription(p *projectModels.ProjectSnapshot) []Incompatibility {
	if len(p.Descriptions) == 0 {
		return nil
	}
	primary := 0
	for _, d := range p.Descriptions {
		if d.Type == projectModels.DescriptionTypePrimary {
			primary++
		}
	}
	switch {
	case primary == 0:
		return []Incompatibility{{Type: NoPrimaryDescription, ObjectID: uuid.UUID(p.ID)}}
	case primary > 1:
		return []Incompatibility{{Type: MultiplePrimaryDescriptions, ObjectID: uuid.UUID(p.ID)}}
	}
	return nil
}

func checkContributorPresence(p *projectModels.ProjectSnapshot) []Incompatibility {
	if len(p.Contributors) == 0 {
		return []Incompatibility{{Type: NoContributors, ObjectID: uuid.UUID(p.ID)}}
	}
	return nil
}

func checkContributorOrcids(p *projectModels.ProjectSnapshot) []Incompatibility {
	var out []Incompatibility
	for _, c := range p.Contributors {
		if c.Person.ORCiD == nil || *c.Person.ORCiD == "" {
			out = append(out, Incompatibility{Type: ContributorWithoutOrcid, ObjectID: uuid.UUID(c.Person.ID)})
		}
	}
	return out
}

// interval is a dated extent; a nil end means open-ended.
type interval struct {
	start time.Time
	end   *time.Time
}

// hasOverlap walks intervals sorted by start date tracking the previous
// entry's effective end. A violation occurs when the previous entry was
// open-ended but not the last examined, when it ends after the current one
// starts, or when it ends after the current one ends. Touching intervals
// (end == next start) are fine; gaps are fine.
func hasOverlap(intervals []interval) bool {
	if len(intervals) < 2 {
		return false
	}
	sorted := make([]interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.end == nil {
			return true
		}
		if prev.end.After(cur.start) {
			return true
		}
		if cur.end != nil && prev.end.After(*cur.end) {
			return true
		}
	}
	return false
}

func checkContributorPositions(p *projectModels.ProjectSnapshot) []Incompatibility {
	var out []Incompatibility
	for _, c := range p.Contributors {
		intervals := make([]interval, 0, len(c.Positions))
		for _, pos := range c.Positions {
			intervals = append(intervals, interval{start: pos.StartDate, end: pos.EndDate})
		}
		if hasOverlap(intervals) {
			out = append(out, Incompatibility{Type: OverlappingContributorPositions, ObjectID: uuid.UUID(c.Person.ID)})
		}
	}
	return out
}

func checkProjectLeader(p *projectModels.ProjectSnapshot) []Incompatibility {
	for _, c := range p.Contributors {
		if c.Leader {
			return nil
		}
	}
	return []Incompatibility{{Type: NoProjectLeader, ObjectID: uuid.UUID(p.ID)}}
}

func checkProjectContact(p *projectModels.ProjectSnapshot) []Incompatibility {
	for _, c := range p.Contributors {
		if c.Contact {
			return nil
		}
	}
	return []Incompatibility{{Type: NoProjectContact, ObjectID: uuid.UUID(p.ID)}}
}

func checkOrganisationRoles(p *projectModels.ProjectSnapshot) []Incompatibility {
	var out []Incompatibility
	for _, po := range p.Organisations {
		intervals := make([]interval, 0, len(po.Roles))
		for _, r := range po.Roles {
			intervals = append(intervals, interval{start: r.StartDate, end: r.EndDate})
		}
		if hasOverlap(intervals) {
			out = append(out, Incompatibility{Type: OverlappingOrganisationRoles, ObjectID: uuid.UUID(po.Organisation.ID)})
		}
	}
	return out
}

type leadRole struct {
	orgID uuid.UUID
	start time.Time
	end   *time.Time
}

// checkLeadResearchOrganisation verifies the lead-research-organisation roles
// cover the project's whole date range without gaps or doubling. The scan
// keeps walking after a violation, tracking the latest entry examined, so one
// snapshot can report several coverage faults.
func checkLeadResearchOrganisation(p *projectModels.ProjectSnapshot) []Incompatibility {
	var leads []leadRole
	for _, po := range p.Organisations {
		for _, r := range po.Roles {
			if r.Role == projectModels.OrgRoleLeadResearchOrganisation {
				leads = append(leads, leadRole{orgID: uuid.UUID(po.Organisation.ID), start: r.StartDate, end: r.EndDate})
			}
		}
	}
	if len(leads) == 0 {
		return []Incompatibility{{Type: NoLeadResearchOrganisation, ObjectID: uuid.UUID(p.ID)}}
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].start.Before(leads[j].start)
	})

	var out []Incompatibility
	if leads[0].start.After(p.StartDate) {
		// Coverage starts too late.
		out = append(out, Incompatibility{Type: NoLeadResearchOrganisation, ObjectID: uuid.UUID(p.ID)})
	}
	for i := 1; i < len(leads); i++ {
		prev, cur := leads[i-1], leads[i]
		switch {
		case prev.end == nil:
			// Previous lead never ends, so a second one doubles up.
			out = append(out, Incompatibility{Type: MultipleLeadResearchOrganisation, ObjectID: cur.orgID})
		case cur.start.After(*prev.end):
			out = append(out, Incompatibility{Type: NoLeadResearchOrganisation, ObjectID: uuid.UUID(p.ID)})
		case cur.start.Before(*prev.end):
			out = append(out, Incompatibility{Type: MultipleLeadResearchOrganisation, ObjectID: cur.orgID})
		}
	}
	last := leads[len(leads)-1]
	if last.end != nil {
		if p.EndDate == nil || last.end.Before(*p.EndDate) {
			// Coverage ends before the project does.
			out = append(out, Incompatibility{Type: NoLeadResearchOrganisation, ObjectID: uuid.UUID(p.ID)})
		}
	}
	return out
}

func checkProductCategories(p *projectModels.ProjectSnapshot) []Incompatibility {
	var out []Incompatibility
	for _, prod := range p.Products {
		if len(prod.Categories) == 0 {
			out = append(out, Incompatibility{Type: NoProductCategory, ObjectID: uuid.UUID(prod.ID)})
		}
	}
	return out
}
