package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookx/internal/models"
	"bookx/internal/service"
)

// AdviceHandler wires HTTP → AdviceService + MatchService. Each surface gets
// its own instance: the browse surface matches fewer listings and adds a
// ready-to-use search URL, the API surface returns the larger raw result.
type AdviceHandler struct {
	advice        service.AdviceService
	match         service.MatchService
	limit         int
	withSearchURL bool
}

// NewAdviceHandler returns a handler with the given match limit.
func NewAdviceHandler(advice service.AdviceService, match service.MatchService, limit int, withSearchURL bool) *AdviceHandler {
	return &AdviceHandler{
		advice:        advice,
		match:         match,
		limit:         limit,
		withSearchURL: withSearchURL,
	}
}

// Register mounts POST /advice on the given router group.
func (h *AdviceHandler) Register(r fiber.Router) {
	r.Post("/advice", h.advise)
}

// advise handles POST /advice { "prompt": "..." }
func (h *AdviceHandler) advise(c *fiber.Ctx) error {
	var req models.AdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// Blank prompts are rejected here; the core never sees them.
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prompt is required")
	}

	payload := h.advice.Advise(c.UserContext(), prompt)

	result, err := h.match.Match(c.UserContext(), payload, h.limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	resp := models.AdviceResponse{
		AI:           payload,
		MatchedBooks: result.Books,
		FilterQuery:  result.FilterQuery,
	}
	if h.withSearchURL {
		resp.SearchURL = searchURL(result.FilterQuery)
	}
	return c.JSON(resp)
}

// searchURL builds the /books query string that re-issues the filter query
// as an explicit search. Empty when there is nothing to search for.
func searchURL(q models.FilterQuery) string {
	params := url.Values{}
	if len(q.Titles) > 0 {
		params.Set("titles", strings.Join(q.Titles, ","))
	}
	if len(q.Authors) > 0 {
		params.Set("authors", strings.Join(q.Authors, ","))
	}
	if len(params) == 0 {
		return ""
	}
	return "/books?" + params.Encode()
}
