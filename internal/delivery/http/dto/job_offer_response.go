package dto

import (
	"time"

	"github.com/MiMmohammdi/job-offers-api/internal/domain/offer"

	"github.com/google/uuid"
)

// JobOfferResponse mirrors the stored record, serialized with the camelCase
// field names existing clients depend on. skils keeps its historical
// spelling.
type JobOfferResponse struct {
	ID             uuid.UUID `json:"id"`
	JobID          string    `json:"jobId"`
	JobType        string    `json:"jobType"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	SalaryRange    string    `json:"salaryRange"`
	CurrencyUnit   string    `json:"currencyUnit"`
	Company        string    `json:"company"`
	CompanyWebSite string    `json:"companyWebSite"`
	Industry       string    `json:"industry"`
	Skils          string    `json:"skils"`
	Experience     string    `json:"experience"`
	PostedDate     string    `json:"postedDate"`
	CreatedAt      string    `json:"createdAt"`
}

type PaginatedJobOffersResponse struct {
	Data            []JobOfferResponse `json:"data"`
	Total           int                `json:"total"`
	Page            int                `json:"page"`
	PageSize        int                `json:"page_size"`
	TotalPages      int                `json:"totalPages"`
	HasNextPage     bool               `json:"hasNextPage"`
	HasPreviousPage bool               `json:"hasPreviousPage"`
}

func FromOffer(rec offer.JobOffer) JobOfferResponse {
	created := ""
	if !rec.CreatedAt.IsZero() {
		created = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	return JobOfferResponse{
		ID:             rec.ID,
		JobID:          rec.JobID,
		JobType:        rec.JobType,
		Title:          rec.Title,
		Location:       rec.Location,
		SalaryRange:    rec.SalaryRange,
		CurrencyUnit:   rec.CurrencyUnit,
		Company:        rec.Company,
		CompanyWebSite: rec.CompanyWebSite,
		Industry:       rec.Industry,
		Skils:          rec.Skils,
		Experience:     rec.Experience,
		PostedDate:     rec.PostedDate,
		CreatedAt:      created,
	}
}
