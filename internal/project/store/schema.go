package store

// Schema creates the tables the PostgresStore reads. Applied by the
// integration tests and by deployment tooling; the ordinal columns preserve
// collection order, which mapped payloads and content hashes depend on.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
    id         uuid PRIMARY KEY,
    title      text NOT NULL DEFAULT '',
    start_date date NOT NULL,
    end_date   date
);

CREATE TABLE IF NOT EXISTS project_titles (
    id         uuid PRIMARY KEY,
    project_id uuid NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    text       text NOT NULL,
    type       text NOT NULL,
    language   text,
    start_date date NOT NULL,
    end_date   date,
    ordinal    int  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS project_descriptions (
    id         uuid PRIMARY KEY,
    project_id uuid NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    text       text NOT NULL,
    type       text NOT NULL,
    language   text,
    ordinal    int  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS persons (
    id    uuid PRIMARY KEY,
    name  text NOT NULL,
    orcid text,
    email text
);

CREATE TABLE IF NOT EXISTS contributors (
    project_id uuid NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    person_id  uuid NOT NULL REFERENCES persons (id),
    leader     boolean NOT NULL DEFAULT false,
    contact    boolean NOT NULL DEFAULT false,
    ordinal    int     NOT NULL DEFAULT 0,
    PRIMARY KEY (project_id, person_id)
);

CREATE TABLE IF NOT EXISTS contributor_roles (
    project_id uuid NOT NULL,
    person_id  uuid NOT NULL,
    role       text NOT NULL,
    PRIMARY KEY (project_id, person_id, role)
);

CREATE TABLE IF NOT EXISTS contributor_positions (
    project_id uuid NOT NULL,
    person_id  uuid NOT NULL,
    position   text NOT NULL,
    start_date date NOT NULL,
    end_date   date
);

CREATE TABLE IF NOT EXISTS organisations (
    id     uuid PRIMARY KEY,
    name   text NOT NULL,
    ror_id text
);

CREATE TABLE IF NOT EXISTS project_organisations (
    project_id      uuid NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    organisation_id uuid NOT NULL REFERENCES organisations (id),
    ordinal         int  NOT NULL DEFAULT 0,
    PRIMARY KEY (project_id, organisation_id)
);

CREATE TABLE IF NOT EXISTS organisation_roles (
    project_id      uuid NOT NULL,
    organisation_id uuid NOT NULL,
    role            text NOT NULL,
    start_date      date NOT NULL,
    end_date        date
);

CREATE TABLE IF NOT EXISTS products (
    id         uuid PRIMARY KEY,
    project_id uuid NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
    title      text NOT NULL,
    url        text NOT NULL,
    schema     text NOT NULL,
    type       text NOT NULL,
    ordinal    int  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS product_categories (
    product_id uuid NOT NULL REFERENCES products (id) ON DELETE CASCADE,
    category   text NOT NULL,
    PRIMARY KEY (product_id, category)
);

CREATE TABLE IF NOT EXISTS raid_info (
    project_id             uuid PRIMARY KEY REFERENCES projects (id) ON DELETE CASCADE,
    raid_id                text NOT NULL,
    registration_agency_id text NOT NULL DEFAULT '',
    owner_id               text NOT NULL DEFAULT '',
    owner_service_point    bigint NOT NULL DEFAULT 0,
    version                int NOT NULL DEFAULT 0,
    checksum               text NOT NULL DEFAULT '',
    dirty                  boolean NOT NULL DEFAULT false,
    latest_sync            timestamptz NOT NULL DEFAULT now()
);
`
