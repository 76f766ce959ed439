package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/MiMmohammdi/job-offers-api/internal/domain/offer"
	"github.com/MiMmohammdi/job-offers-api/internal/repository"
)

const defaultPageSize = 10

// OfferListParams carries the listing request after the handler has parsed
// it. Zero Page / PageSize mean "use the defaults"; empty filter strings
// mean "no filter".
type OfferListParams struct {
	Page     int
	PageSize int
	Title    string
	Location string
	Salary   string
	Company  string
}

type OfferListResult struct {
	Data            []offer.JobOffer
	Total           int
	Page            int
	PageSize        int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

type OfferListUsecase interface {
	ListOffers(ctx context.Context, params OfferListParams) (OfferListResult, error)
}

type OfferList struct {
	offers      repository.JobOfferRepository
	cache       SearchCache
	pageSizeMax int
	logger      *log.Logger
}

func NewOfferListUsecase(offers repository.JobOfferRepository, cache SearchCache, pageSizeMax int, logger *log.Logger) *OfferList {
	if pageSizeMax <= 0 {
		pageSizeMax = 100
	}
	return &OfferList{offers: offers, cache: cache, pageSizeMax: pageSizeMax, logger: logger}
}

// ListOffers returns one page of stored offers, exact-match filtered. The
// total count is taken under the same filters, so the pagination metadata
// always describes the filtered set, not the whole table.
func (u *OfferList) ListOffers(ctx context.Context, params OfferListParams) (OfferListResult, error) {
	page := params.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return OfferListResult{}, ErrInvalidInput
	}
	pageSize := params.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > u.pageSizeMax {
		return OfferListResult{}, ErrInvalidInput
	}

	params.Page = page
	params.PageSize = pageSize
	params.Title = strings.TrimSpace(params.Title)
	params.Location = strings.TrimSpace(params.Location)
	params.Salary = strings.TrimSpace(params.Salary)
	params.Company = strings.TrimSpace(params.Company)

	filter := repository.JobOfferFilter{
		Title:    params.Title,
		Location: params.Location,
		Salary:   params.Salary,
		Company:  params.Company,
	}

	// Unfiltered pages churn on every ingestion cycle, so only filtered
	// queries are worth caching.
	cacheable := !filter.IsZero()
	cacheKey := ""
	lockKey := ""
	if cacheable {
		cacheKey = OffersSearchCacheKey(params)
		lockKey = OffersSearchLockKey(cacheKey)

		if u.cache != nil {
			var cached OfferListResult
			hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err == nil && hit {
				if u.logger != nil {
					u.logger.Printf("[Offers] Cache HIT: %s", cacheKey)
				}
				return cached, nil
			}
			if u.logger != nil {
				u.logger.Printf("[Offers] Cache MISS: %s", cacheKey)
			}
		}
	}

	lockAcquired := false
	if cacheable && u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil && !ok {
			jitterMs := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			time.Sleep(300*time.Millisecond + jitterMs)
			var cached OfferListResult
			hit, err2 := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err2 == nil && hit {
				if u.logger != nil {
					u.logger.Printf("[Offers] Cache HIT: %s", cacheKey)
				}
				return cached, nil
			}
			if u.logger != nil {
				u.logger.Printf("[Offers] Lock wait fallback: %s", lockKey)
			}
		}
	}

	total, err := u.offers.Count(ctx, filter)
	if err != nil {
		return OfferListResult{}, ErrInternal
	}

	offset := (page - 1) * pageSize
	rows, err := u.offers.List(ctx, filter, pageSize, offset)
	if err != nil {
		return OfferListResult{}, ErrInternal
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	result := OfferListResult{
		Data:            rows,
		Total:           total,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}

	if cacheable && u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, result, 0)
		if u.logger != nil {
			u.logger.Printf("[Offers] Cache SET: %s", cacheKey)
		}
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return result, nil
}
