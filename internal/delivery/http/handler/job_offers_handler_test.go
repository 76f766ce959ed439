package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/MiMmohammdi/job-offers-api/internal/delivery/http/middleware"
	"github.com/MiMmohammdi/job-offers-api/internal/domain/offer"
	"github.com/MiMmohammdi/job-offers-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type mockOfferListUsecase struct {
	res    usecase.OfferListResult
	err    error
	params usecase.OfferListParams
}

func (m *mockOfferListUsecase) ListOffers(_ context.Context, params usecase.OfferListParams) (usecase.OfferListResult, error) {
	m.params = params
	if m.err != nil {
		return usecase.OfferListResult{}, m.err
	}
	return m.res, nil
}

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(uc usecase.OfferListUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Get("/api/job-offers", NewJobOffersHandler(uc).HandleListOffers)
	return app
}

func doRequest(t *testing.T, app *fiber.App, url string) (int, semanticResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var sr semanticResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
	return resp.StatusCode, sr
}

func TestHandleListOffers_DefaultsAndEnvelope(t *testing.T) {
	mock := &mockOfferListUsecase{res: usecase.OfferListResult{
		Data:       []offer.JobOffer{{ID: uuid.New(), Title: "Backend Engineer", Skils: "Go, PostgreSQL"}},
		Total:      1,
		Page:       1,
		PageSize:   10,
		TotalPages: 1,
	}}
	app := newTestApp(mock)

	status, sr := doRequest(t, app, "/api/job-offers")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if sr.Status != 200 || sr.Message != "success" {
		t.Fatalf("envelope = %d %q", sr.Status, sr.Message)
	}
	if mock.params.Page != 1 || mock.params.PageSize != 10 {
		t.Fatalf("defaults not applied: %+v", mock.params)
	}

	var data struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(data.Data) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(data.Data))
	}
	// Record fields serialize camelCase; skils keeps its historical spelling.
	for _, key := range []string{"jobId", "salaryRange", "currencyUnit", "companyWebSite", "postedDate", "skils"} {
		if _, ok := data.Data[0][key]; !ok {
			t.Fatalf("expected %s field in payload", key)
		}
	}
}

func TestHandleListOffers_FiltersForwarded(t *testing.T) {
	mock := &mockOfferListUsecase{}
	app := newTestApp(mock)

	status, _ := doRequest(t, app, "/api/job-offers?title=Backend+Engineer&location=Remote&salary=50k&company=TechCorp&page=2&page_size=5")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	want := usecase.OfferListParams{
		Page: 2, PageSize: 5,
		Title: "Backend Engineer", Location: "Remote", Salary: "50k", Company: "TechCorp",
	}
	if mock.params != want {
		t.Fatalf("params = %+v", mock.params)
	}
}

func TestHandleListOffers_NonNumericPage(t *testing.T) {
	app := newTestApp(&mockOfferListUsecase{})

	status, sr := doRequest(t, app, "/api/job-offers?page=abc")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if sr.Status != 400 {
		t.Fatalf("envelope status = %d", sr.Status)
	}
}

func TestHandleListOffers_InvalidInputIs400(t *testing.T) {
	app := newTestApp(&mockOfferListUsecase{err: usecase.ErrInvalidInput})

	status, _ := doRequest(t, app, "/api/job-offers?page_size=9999")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
}

func TestHandleListOffers_InternalErrorHidesDetail(t *testing.T) {
	app := newTestApp(&mockOfferListUsecase{err: usecase.ErrInternal})

	status, sr := doRequest(t, app, "/api/job-offers")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d", status)
	}
	if sr.Message != "internal server error" {
		t.Fatalf("message = %q", sr.Message)
	}
}
