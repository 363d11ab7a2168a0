package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"conflux/internal/project/models"
	id "conflux/pkg/domain"
	"conflux/pkg/platform/sentinel"
)

// PostgresStore loads project snapshots from PostgreSQL. Reads materialize
// the whole graph in collection order; the stored ordinal keeps the mapped
// payloads and content hashes reproducible.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed project store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, projectID id.ProjectID) (*models.ProjectSnapshot, error) {
	snapshot := &models.ProjectSnapshot{ID: projectID}

	err := s.pool.QueryRow(ctx,
		`SELECT title, start_date, end_date FROM projects WHERE id = $1`,
		uuid.UUID(projectID),
	).Scan(&snapshot.Title, &snapshot.StartDate, &snapshot.EndDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", projectID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	if snapshot.Titles, err = s.loadTitles(ctx, projectID); err != nil {
		return nil, err
	}
	if snapshot.Descriptions, err = s.loadDescriptions(ctx, projectID); err != nil {
		return nil, err
	}
	if snapshot.Contributors, err = s.loadContributors(ctx, projectID); err != nil {
		return nil, err
	}
	if snapshot.Organisations, err = s.loadOrganisations(ctx, projectID); err != nil {
		return nil, err
	}
	if snapshot.Products, err = s.loadProducts(ctx, projectID); err != nil {
		return nil, err
	}
	if snapshot.RAiD, err = s.loadRAiDInfo(ctx, projectID); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (s *PostgresStore) loadTitles(ctx context.Context, projectID id.ProjectID) ([]models.Title, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, text, type, language, start_date, end_date
		 FROM project_titles WHERE project_id = $1 ORDER BY ordinal`,
		uuid.UUID(projectID))
	if err != nil {
		return nil, fmt.Errorf("load titles: %w", err)
	}
	defer rows.Close()

	var out []models.Title
	for rows.Next() {
		var t models.Title
		var titleID uuid.UUID
		if err := rows.Scan(&titleID, &t.Text, &t.Type, &t.Language, &t.StartDate, &t.EndDate); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		t.ID = id.TitleID(titleID)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadDescriptions(ctx context.Context, projectID id.ProjectID) ([]models.Description, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, text, type, language
		 FROM project_descriptions WHERE project_id = $1 ORDER BY ordinal`,
		uuid.UUID(projectID))
	if err != nil {
		return nil, fmt.Errorf("load descriptions: %w", err)
	}
	defer rows.Close()

	var out []models.Description
	for rows.Next() {
		var d models.Description
		var descriptionID uuid.UUID
		if err := rows.Scan(&descriptionID, &d.Text, &d.Type, &d.Language); err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		d.ID = id.DescriptionID(descriptionID)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadContributors(ctx context.Context, projectID id.ProjectID) ([]models.Contributor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.name, p.orcid, p.email, c.leader, c.contact
		 FROM contributors c JOIN persons p ON p.id = c.person_id
		 WHERE c.project_id = $1 ORDER BY c.ordinal`,
		uuid.UUID(projectID))
	if err != nil {
		return nil, fmt.Errorf("load contributors: %w", err)
	}
	defer rows.Close()

	var out []models.Contributor
	for rows.Next() {
		var c models.Contributor
		var personID uuid.UUID
		if err := rows.Scan(&personID, &c.Person.Name, &c.Person.ORCiD, &c.Person.Email, &c.Leader, &c.Contact); err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}
		c.Person.ID = id.PersonID(personID)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		personID := uuid.UUID(out[i].Person.ID)
		if out[i].Roles, err = s.loadContributorRoles(ctx, projectID, personID); err != nil {
			return nil, err
		}
		if out[i].Positions, err = s.loadContributorPositions(ctx, projectID, personID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PostgresStore) loadContributorRoles(ctx context.Context, projectID id.ProjectID, personID uuid.UUID) ([]models.ContributorRole, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT role FROM contributor_roles WHERE project_id = $1 AND person_id = $2 ORDER BY role`,
		uuid.UUID(projectID), personID)
	if err != nil {
		return nil, fmt.Errorf("load contributor roles: %w", err)
	}
	defer rows.Close()

	var out []models.ContributorRole
	for rows.Next() {
		var r models.ContributorRole
		if err := rows.Scan(&r.Role); err != nil {
			return nil, fmt.Errorf("scan contributor role: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadContributorPositions(ctx context.Context, projectID id.ProjectID, personID uuid.UUID) ([]models.ContributorPosition, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT position, start_date, end_date
		 FROM contributor_positions WHERE project_id = $1 AND person_id = $2 ORDER BY start_date`,
		uuid.UUID(projectID), personID)
	if err != nil {
		return nil, fmt.Errorf("load contributor positions: %w", err)
	}
	defer rows.Close()

	var out []models.ContributorPosition
	for rows.Next() {
		var p models.ContributorPosition
		if err := rows.Scan(&p.Position, &p.StartDate, &p.EndDate); err != nil {
			return nil, fmt.Errorf("scan contributor position: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadOrganisations(ctx context.Context, projectID id.ProjectID) ([]models.ProjectOrganisation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT o.id, o.name, o.ror_id
		 FROM project_organisations po JOIN organisations o ON o.id = po.organisation_id
		 WHERE po.project_id = $1 ORDER BY po.ordinal`,
		uuid.UUID(projectID))
	if err != nil {
		return nil, fmt.Errorf("load organisations: %w", err)
	}
	defer rows.Close()

	var out []models.ProjectOrganisation
	for rows.Next() {
		var po models.ProjectOrganisation
		var orgID uuid.UUID
		if err := rows.Scan(&orgID, &po.Organisation.Name, &po.Organisation.RORId); err != nil {
			return nil, fmt.Errorf("scan organisation: %w", err)
		}
		po.Organisation.ID = id.OrganisationID(orgID)
		out = append(out, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		roleRows, err := s.pool.Query(ctx,
			`SELECT role, start_date, end_date
			 FROM organisation_roles WHERE project_id = $1 AND organisation_id = $2 ORDER BY start_date`,
			uuid.UUID(projectID), uuid.UUID(out[i].Organisation.ID))
		if err != nil {
			return nil, fmt.Errorf("load organisation roles: %w", err)
		}
		for roleRows.Next() {
			var r models.OrganisationRole
			if err := roleRows.Scan(&r.Role, &r.StartDate, &r.EndDate); err != nil {
				roleRows.Close()
				return nil, fmt.Errorf("scan organisation role: %w", err)
			}
			out[i].Roles = append(out[i].Roles, r)
		}
		roleRows.Close()
		if err := roleRows.Err(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PostgresStore) loadProducts(ctx context.Context, projectID id.ProjectID) ([]models.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, url, schema, type
		 FROM products WHERE project_id = $1 ORDER BY ordinal`,
		uuid.UUID(projectID))
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		var productID uuid.UUID
		if err := rows.Scan(&productID, &p.Title, &p.URL, &p.Schema, &p.Type); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.ID = id.ProductID(productID)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		catRows, err := s.pool.Query(ctx,
			`SELECT category FROM product_categories WHERE product_id = $1 ORDER BY category`,
			uuid.UUID(out[i].ID))
		if err != nil {
			return nil, fmt.Errorf("load product categories: %w", err)
		}
		for catRows.Next() {
			var c models.ProductCategoryType
			if err := catRows.Scan(&c); err != nil {
				catRows.Close()
				return nil, fmt.Errorf("scan product category: %w", err)
			}
			out[i].Categories = append(out[i].Categories, c)
		}
		catRows.Close()
		if err := catRows.Err(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PostgresStore) loadRAiDInfo(ctx context.Context, projectID id.ProjectID) (*models.RAiDInfo, error) {
	var info models.RAiDInfo
	err := s.pool.QueryRow(ctx,
		`SELECT raid_id, registration_agency_id, owner_id, owner_service_point,
		        version, checksum, dirty, latest_sync
		 FROM raid_info WHERE project_id = $1`,
		uuid.UUID(projectID),
	).Scan(&info.RAiDId, &info.RegistrationAgencyID, &info.OwnerID, &info.OwnerServicePoint,
		&info.Version, &info.Checksum, &info.Dirty, &info.LatestSync)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load raid info: %w", err)
	}
	return &info, nil
}

func (s *PostgresStore) ListMinted(ctx context.Context) ([]id.ProjectID, error) {
	rows, err := s.pool.Query(ctx, `SELECT project_id FROM raid_info ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("list minted projects: %w", err)
	}
	defer rows.Close()

	var out []id.ProjectID
	for rows.Next() {
		var projectID uuid.UUID
		if err := rows.Scan(&projectID); err != nil {
			return nil, fmt.Errorf("scan project id: %w", err)
		}
		out = append(out, id.ProjectID(projectID))
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveRAiDInfo(ctx context.Context, projectID id.ProjectID, info *models.RAiDInfo) error {
	if info == nil {
		return fmt.Errorf("raid info is required")
	}
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO raid_info (project_id, raid_id, registration_agency_id, owner_id,
		                        owner_service_point, version, checksum, dirty, latest_sync)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (project_id) DO UPDATE SET
		   raid_id = EXCLUDED.raid_id,
		   registration_agency_id = EXCLUDED.registration_agency_id,
		   owner_id = EXCLUDED.owner_id,
		   owner_service_point = EXCLUDED.owner_service_point,
		   version = EXCLUDED.version,
		   checksum = EXCLUDED.checksum,
		   dirty = EXCLUDED.dirty,
		   latest_sync = EXCLUDED.latest_sync`,
		uuid.UUID(projectID), info.RAiDId, info.RegistrationAgencyID, info.OwnerID,
		info.OwnerServicePoint, info.Version, info.Checksum, info.Dirty, info.LatestSync)
	if err != nil {
		return fmt.Errorf("save raid info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save raid info: %w", sentinel.ErrInvalidState)
	}
	return nil
}
