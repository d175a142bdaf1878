package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookx/internal/middleware"
	"bookx/internal/models"
	"bookx/internal/service"
)

// BookHandler wires HTTP → BookService.
type BookHandler struct {
	svc service.BookService
}

// NewBookHandler returns a handler instance.
func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// RegisterPublic mounts the read-only browsing routes on the given router
// group (used for the site root surface).
func (h *BookHandler) RegisterPublic(r fiber.Router) {
	r.Get("/books", h.search)
	r.Get("/books/:id", h.get)
}

// Register mounts the full CRUD + search routes on the given router group.
func (h *BookHandler) Register(r fiber.Router) {
	r.Get("/books", h.search)
	r.Get("/books/:id", h.get)
	r.Post("/books", middleware.RequireUser, h.create)
	r.Put("/books/:id", middleware.RequireUser, h.update)
	r.Delete("/books/:id", middleware.RequireUser, h.delete)
	r.Get("/users/me/books", middleware.RequireUser, h.listMine)
}

// search handles GET /books?q=...&titles=...&authors=...
// titles/authors accept repeated parameters or comma/semicolon lists.
func (h *BookHandler) search(c *fiber.Ctx) error {
	books, err := h.svc.Search(
		c.UserContext(),
		c.Query("q"),
		queryValues(c, "titles"),
		queryValues(c, "authors"),
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(books)
}

// get handles GET /books/:id
func (h *BookHandler) get(c *fiber.Ctx) error {
	book, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return errStatus(err)
	}
	return c.JSON(book)
}

// create handles POST /books
func (h *BookHandler) create(c *fiber.Ctx) error {
	var in models.BookInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	book, err := h.svc.Create(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return errStatus(err)
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// update handles PUT /books/:id
func (h *BookHandler) update(c *fiber.Ctx) error {
	var in models.BookInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	book, err := h.svc.Update(c.UserContext(), c.Params("id"), middleware.UserID(c), in)
	if err != nil {
		return errStatus(err)
	}
	return c.JSON(book)
}

// delete handles DELETE /books/:id
func (h *BookHandler) delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id"), middleware.UserID(c)); err != nil {
		return errStatus(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// listMine handles GET /users/me/books
func (h *BookHandler) listMine(c *fiber.Ctx) error {
	books, err := h.svc.ListMine(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(books)
}

// errStatus maps service errors onto HTTP statuses.
func errStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// queryValues collects every occurrence of a query parameter.
func queryValues(c *fiber.Ctx, key string) []string {
	raw := c.Context().QueryArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return values
}
