// Package domain provides typed identifiers shared across the project graph.
// Distinct types keep a ProjectID from being passed where a TitleID is
// expected; the compiler enforces the distinction.
package domain

import (
	"github.com/google/uuid"

	dErrors "conflux/pkg/domain-errors"
)

type (
	// ProjectID identifies a project aggregate.
	ProjectID uuid.UUID
	// TitleID identifies a project title.
	TitleID uuid.UUID
	// DescriptionID identifies a project description.
	DescriptionID uuid.UUID
	// ContributorID identifies a project-person link.
	ContributorID uuid.UUID
	// PersonID identifies a person record.
	PersonID uuid.UUID
	// OrganisationID identifies an organisation record.
	OrganisationID uuid.UUID
	// ProductID identifies a project product (related object).
	ProductID uuid.UUID
)

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid id %q", s)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil uuid")
	}
	return u, nil
}

// ParseProjectID validates and returns a ProjectID.
func ParseProjectID(s string) (ProjectID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ProjectID(uuid.Nil), err
	}
	return ProjectID(u), nil
}

func (id ProjectID) String() string      { return uuid.UUID(id).String() }
func (id ProjectID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id TitleID) String() string        { return uuid.UUID(id).String() }
func (id DescriptionID) String() string  { return uuid.UUID(id).String() }
func (id ContributorID) String() string  { return uuid.UUID(id).String() }
func (id PersonID) String() string       { return uuid.UUID(id).String() }
func (id OrganisationID) String() string { return uuid.UUID(id).String() }
func (id ProductID) String() string      { return uuid.UUID(id).String() }
