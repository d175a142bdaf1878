package handler

import (
	"github.com/gofiber/fiber/v2"

	"bookx/internal/service"
)

// Limits carries the per-surface match caps for the advice endpoint.
type Limits struct {
	AdviceWeb int // browse surface
	AdviceAPI int // JSON API surface
}

// RegisterRoutes mounts the browse surface at the site root and the JSON API
// under /api/v1.
func RegisterRoutes(app *fiber.App,
	bookSvc service.BookService,
	adviceSvc service.AdviceService,
	matchSvc service.MatchService,
	limits Limits,
) {
	books := NewBookHandler(bookSvc)

	// Browse surface: read-only listings plus advice with a search URL.
	books.RegisterPublic(app)
	NewAdviceHandler(adviceSvc, matchSvc, limits.AdviceWeb, true).Register(app)

	v1 := app.Group("/api/v1")
	books.Register(v1)
	NewAdviceHandler(adviceSvc, matchSvc, limits.AdviceAPI, false).Register(v1)
}
