package database

import "context"

// Schema bootstrap for the one table this service owns. Statements are
// idempotent so startup can run them unconditionally; there is no versioned
// migration machinery here on purpose.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS job_offers (
		id               UUID PRIMARY KEY,
		job_id           TEXT NOT NULL,
		job_type         TEXT NOT NULL,
		title            TEXT NOT NULL,
		location         TEXT NOT NULL,
		salary_range     TEXT NOT NULL,
		currency_unit    TEXT NOT NULL,
		company          TEXT NOT NULL,
		company_web_site TEXT NOT NULL,
		industry         TEXT NOT NULL,
		skils            TEXT NOT NULL,
		experience       TEXT NOT NULL,
		posted_date      TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_offers_job_id ON job_offers (job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_offers_job_id_title ON job_offers (job_id, title)`,
	`CREATE INDEX IF NOT EXISTS idx_job_offers_created_at ON job_offers (created_at)`,
}

func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
