package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/MiMmohammdi/job-offers-api/internal/database"
	"github.com/MiMmohammdi/job-offers-api/internal/domain/offer"

	"github.com/google/uuid"
)

// JobOfferFilter holds the optional listing filters. Matching is exact-value
// equality, AND-composed; an empty field means "no filter". Salary matches
// against the stored salary_range text.
type JobOfferFilter struct {
	Title    string
	Location string
	Salary   string
	Company  string
}

func (f JobOfferFilter) IsZero() bool {
	return f.Title == "" && f.Location == "" && f.Salary == "" && f.Company == ""
}

type JobOfferRepository interface {
	ExistsByJobIDAndTitle(ctx context.Context, jobID, title string) (bool, error)
	Insert(ctx context.Context, rec offer.JobOffer) (offer.JobOffer, error)
	List(ctx context.Context, f JobOfferFilter, limit, offset int) ([]offer.JobOffer, error)
	Count(ctx context.Context, f JobOfferFilter) (int, error)
}

type PostgresJobOfferRepository struct {
	db database.DB
}

func NewPostgresJobOfferRepository(db database.DB) *PostgresJobOfferRepository {
	return &PostgresJobOfferRepository{db: db}
}

func (r *PostgresJobOfferRepository) ExistsByJobIDAndTitle(ctx context.Context, jobID, title string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_offers WHERE job_id = $1 AND title = $2)`,
		jobID, title,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Insert persists a new record, assigning its id and creation timestamp.
// Rows are never updated afterwards.
func (r *PostgresJobOfferRepository) Insert(ctx context.Context, rec offer.JobOffer) (offer.JobOffer, error) {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO job_offers (
			id, job_id, job_type, title, location, salary_range, currency_unit,
			company, company_web_site, industry, skils, experience, posted_date, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		rec.ID, rec.JobID, rec.JobType, rec.Title, rec.Location, rec.SalaryRange,
		rec.CurrencyUnit, rec.Company, rec.CompanyWebSite, rec.Industry,
		rec.Skils, rec.Experience, rec.PostedDate, rec.CreatedAt,
	)
	if err != nil {
		return offer.JobOffer{}, err
	}
	return rec, nil
}

// List returns one page ordered by insertion (created_at, then id) so
// pagination stays reproducible across pages.
func (r *PostgresJobOfferRepository) List(ctx context.Context, f JobOfferFilter, limit, offset int) ([]offer.JobOffer, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildFilter(f)
	args = append(args, limit, offset)

	query := `SELECT id, job_id, job_type, title, location, salary_range, currency_unit,
			company, company_web_site, industry, skils, experience, posted_date, created_at
		FROM job_offers` + where +
		` ORDER BY created_at ASC, id ASC LIMIT $` + placeholder(len(args)-1) +
		` OFFSET $` + placeholder(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]offer.JobOffer, 0)
	for rows.Next() {
		var rec offer.JobOffer
		if err := rows.Scan(
			&rec.ID, &rec.JobID, &rec.JobType, &rec.Title, &rec.Location,
			&rec.SalaryRange, &rec.CurrencyUnit, &rec.Company, &rec.CompanyWebSite,
			&rec.Industry, &rec.Skils, &rec.Experience, &rec.PostedDate, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobOfferRepository) Count(ctx context.Context, f JobOfferFilter) (int, error) {
	where, args := buildFilter(f)

	var c int
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM job_offers`+where, args...)
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func buildFilter(f JobOfferFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, column+" = $"+placeholder(len(args)))
	}

	add("title", f.Title)
	add("location", f.Location)
	add("salary_range", f.Salary)
	add("company", f.Company)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeholder(n int) string {
	return strconv.Itoa(n)
}
