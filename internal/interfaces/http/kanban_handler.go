package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/domain"
)

// KanbanHandler maneja el tablero de ventas.
type KanbanHandler struct {
	uc *pipeline.UseCase
}

// NewKanbanHandler construye el handler.
func NewKanbanHandler(uc *pipeline.UseCase) *KanbanHandler {
	return &KanbanHandler{uc: uc}
}

// Board GET /api/kanban: las cinco columnas en orden de proceso.
func (h *KanbanHandler) Board(c *fiber.Ctx) error {
	board, err := h.uc.Board()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(board)
}

// Create POST /api/kanban/cards
func (h *KanbanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCardRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateCard(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/kanban/cards/:id
func (h *KanbanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/kanban/cards/:id
func (h *KanbanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCardRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/kanban/cards/:id
func (h *KanbanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Move POST /api/kanban/cards/:id/move con {"column":"<etapa>"}.
// Responde {"success":true}, o 400 {"success":false} si la etapa es inválida
// o la tarjeta no existe.
func (h *KanbanHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveCardRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SuccessResponse{Success: false})
	}
	if err := h.uc.Move(c.Params("id"), in.Column); err != nil {
		if errors.Is(err, domain.ErrInvalidStage) || errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.SuccessResponse{Success: false})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SuccessResponse{Success: false})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
