package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/MiMmohammdi/job-offers-api/internal/domain/offer"
	"github.com/MiMmohammdi/job-offers-api/internal/repository"

	"github.com/google/uuid"
)

type mockOfferRepo struct {
	items      []offer.JobOffer
	total      int
	err        error
	lastFilter repository.JobOfferFilter
	lastLimit  int
	lastOffset int
}

func (m *mockOfferRepo) ExistsByJobIDAndTitle(context.Context, string, string) (bool, error) {
	return false, nil
}

func (m *mockOfferRepo) Insert(_ context.Context, rec offer.JobOffer) (offer.JobOffer, error) {
	return rec, nil
}

func (m *mockOfferRepo) List(_ context.Context, f repository.JobOfferFilter, limit, offset int) ([]offer.JobOffer, error) {
	m.lastFilter = f
	m.lastLimit = limit
	m.lastOffset = offset
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockOfferRepo) Count(context.Context, repository.JobOfferFilter) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.total, nil
}

func TestOfferListUsecase_InvalidPage(t *testing.T) {
	uc := NewOfferListUsecase(&mockOfferRepo{}, nil, 100, nil)
	_, err := uc.ListOffers(context.Background(), OfferListParams{Page: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOfferListUsecase_PageSizeOverCap(t *testing.T) {
	uc := NewOfferListUsecase(&mockOfferRepo{}, nil, 100, nil)
	_, err := uc.ListOffers(context.Background(), OfferListParams{PageSize: 101})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOfferListUsecase_DefaultsAndMetadata(t *testing.T) {
	repo := &mockOfferRepo{
		items: []offer.JobOffer{{ID: uuid.New(), Title: "Backend Engineer"}},
		total: 25,
	}
	uc := NewOfferListUsecase(repo, nil, 100, nil)

	res, err := uc.ListOffers(context.Background(), OfferListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Page != 1 || res.PageSize != 10 {
		t.Fatalf("defaults: page=%d page_size=%d", res.Page, res.PageSize)
	}
	if res.TotalPages != 3 {
		t.Fatalf("total_pages=%d", res.TotalPages)
	}
	if !res.HasNextPage || res.HasPreviousPage {
		t.Fatalf("hasNext=%v hasPrev=%v", res.HasNextPage, res.HasPreviousPage)
	}
	if repo.lastLimit != 10 || repo.lastOffset != 0 {
		t.Fatalf("limit=%d offset=%d", repo.lastLimit, repo.lastOffset)
	}
}

func TestOfferListUsecase_LastPage(t *testing.T) {
	repo := &mockOfferRepo{total: 25}
	uc := NewOfferListUsecase(repo, nil, 100, nil)

	res, err := uc.ListOffers(context.Background(), OfferListParams{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.HasNextPage {
		t.Fatal("expected no next page")
	}
	if !res.HasPreviousPage {
		t.Fatal("expected previous page")
	}
	if repo.lastOffset != 20 {
		t.Fatalf("offset=%d", repo.lastOffset)
	}
}

func TestOfferListUsecase_PageBeyondEnd(t *testing.T) {
	repo := &mockOfferRepo{total: 5}
	uc := NewOfferListUsecase(repo, nil, 100, nil)

	res, err := uc.ListOffers(context.Background(), OfferListParams{Page: 4, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Out-of-range pages are not an error, just an empty page with honest
	// metadata.
	if len(res.Data) != 0 && res.Data != nil {
		t.Fatalf("expected empty data, got %d rows", len(res.Data))
	}
	if res.TotalPages != 1 || res.HasNextPage {
		t.Fatalf("total_pages=%d hasNext=%v", res.TotalPages, res.HasNextPage)
	}
}

func TestOfferListUsecase_EmptyStore(t *testing.T) {
	uc := NewOfferListUsecase(&mockOfferRepo{}, nil, 100, nil)

	res, err := uc.ListOffers(context.Background(), OfferListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Total != 0 || res.TotalPages != 0 {
		t.Fatalf("total=%d total_pages=%d", res.Total, res.TotalPages)
	}
	if res.HasNextPage || res.HasPreviousPage {
		t.Fatal("empty store must report no pages either side")
	}
}

func TestOfferListUsecase_PreviousPageIndependentOfTotal(t *testing.T) {
	// hasPreviousPage only depends on the requested page; an empty result
	// set on page 2 still has a page 1 behind it.
	uc := NewOfferListUsecase(&mockOfferRepo{total: 0}, nil, 100, nil)

	res, err := uc.ListOffers(context.Background(), OfferListParams{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.HasPreviousPage {
		t.Fatal("page 2 must report a previous page even when total=0")
	}
	if res.HasNextPage {
		t.Fatal("expected no next page")
	}
}

func TestOfferListUsecase_FiltersPassedThrough(t *testing.T) {
	repo := &mockOfferRepo{total: 1}
	uc := NewOfferListUsecase(repo, nil, 100, nil)

	_, err := uc.ListOffers(context.Background(), OfferListParams{
		Title:   "  Backend Engineer ",
		Company: "TechCorp",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastFilter.Title != "Backend Engineer" {
		t.Fatalf("title filter = %q", repo.lastFilter.Title)
	}
	if repo.lastFilter.Company != "TechCorp" || repo.lastFilter.Location != "" {
		t.Fatalf("filter = %+v", repo.lastFilter)
	}
}

func TestOfferListUsecase_RepoErrorIsInternal(t *testing.T) {
	uc := NewOfferListUsecase(&mockOfferRepo{err: errors.New("boom")}, nil, 100, nil)
	_, err := uc.ListOffers(context.Background(), OfferListParams{})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestOffersSearchCacheKey_NormalizesValues(t *testing.T) {
	a := OffersSearchCacheKey(OfferListParams{Title: "  Backend   Engineer ", Page: 1, PageSize: 10})
	b := OffersSearchCacheKey(OfferListParams{Title: "backend engineer", Page: 1, PageSize: 10})
	if a != b {
		t.Fatalf("expected equal keys, got %s vs %s", a, b)
	}

	c := OffersSearchCacheKey(OfferListParams{Title: "backend engineer", Page: 2, PageSize: 10})
	if a == c {
		t.Fatal("page must be part of the key")
	}
}
