package handler

import (
	"errors"
	"strconv"

	"github.com/MiMmohammdi/job-offers-api/internal/delivery/http/dto"
	"github.com/MiMmohammdi/job-offers-api/internal/delivery/http/middleware"
	"github.com/MiMmohammdi/job-offers-api/internal/pkg/response"
	"github.com/MiMmohammdi/job-offers-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobOffersHandler struct {
	uc usecase.OfferListUsecase
}

func NewJobOffersHandler(uc usecase.OfferListUsecase) *JobOffersHandler {
	return &JobOffersHandler{uc: uc}
}

// HandleListOffers serves GET /api/job-offers. Filters are exact-match;
// a non-numeric page or page_size is a client error, not a silent default.
func (h *JobOffersHandler) HandleListOffers(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "page must be an integer", nil, err)
	}
	pageSize, err := parseQueryIntStrict(c, "page_size", 10)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "page_size must be an integer", nil, err)
	}

	res, err := h.uc.ListOffers(c.Context(), usecase.OfferListParams{
		Page:     page,
		PageSize: pageSize,
		Title:    c.Query("title"),
		Location: c.Query("location"),
		Salary:   c.Query("salary"),
		Company:  c.Query("company"),
	})
	if err != nil {
		return mapOfferListUsecaseError(err)
	}

	out := make([]dto.JobOfferResponse, 0, len(res.Data))
	for _, rec := range res.Data {
		out = append(out, dto.FromOffer(rec))
	}

	return response.Success(c, fiber.StatusOK, "success", dto.PaginatedJobOffersResponse{
		Data:            out,
		Total:           res.Total,
		Page:            res.Page,
		PageSize:        res.PageSize,
		TotalPages:      res.TotalPages,
		HasNextPage:     res.HasNextPage,
		HasPreviousPage: res.HasPreviousPage,
	})
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapOfferListUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
