package handlers

import (
	"produtos/internal/dtos"
	"produtos/internal/services"
	"produtos/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProdutoHandler handles HTTP requests for produtos. Every failure is
// returned to the app's ErrorHandler.
type ProdutoHandler struct {
	service   *services.ProdutoService
	validator *validation.Validator
}

// NewProdutoHandler creates a new ProdutoHandler.
func NewProdutoHandler(service *services.ProdutoService, validator *validation.Validator) *ProdutoHandler {
	return &ProdutoHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the produto routes under /produtos, behind the
// given middlewares.
func (h *ProdutoHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	produtoRoutes := router.Group("/produtos", middlewares...)
	produtoRoutes.Post("/", h.HandleCreate)
	produtoRoutes.Put("/:id", h.HandleUpdate)
	produtoRoutes.Delete("/:id", h.HandleDelete)
	produtoRoutes.Get("/", h.HandleGetAll)
	produtoRoutes.Get("/:id", h.HandleGetByID)
}

// HandleCreate creates a produto.
func (h *ProdutoHandler) HandleCreate(c *fiber.Ctx) error {
	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// HandleUpdate overwrites an existing produto.
func (h *ProdutoHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// HandleDelete removes a produto and returns its last state.
func (h *ProdutoHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// HandleGetAll lists every produto.
func (h *ProdutoHandler) HandleGetAll(c *fiber.Ctx) error {
	resp, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// HandleGetByID returns a single produto.
func (h *ProdutoHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// bindRequest parses and validates the request body.
func (h *ProdutoHandler) bindRequest(c *fiber.Ctx) (dtos.ProdutoRequest, error) {
	var req dtos.ProdutoRequest
	if err := c.BodyParser(&req); err != nil {
		return req, services.NewArgumentError(msgInvalidBody)
	}
	if err := h.validator.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, services.NewArgumentError(msgInvalidID)
	}
	return id, nil
}
