package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/social"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
)

// MessageHandler maneja el inbox de WhatsApp.
type MessageHandler struct {
	uc     *usecase.MessageUseCase
	social *social.UseCase // nil = sin sincronización con el gateway
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.MessageUseCase, socialUC *social.UseCase) *MessageHandler {
	return &MessageHandler{uc: uc, social: socialUC}
}

// List GET /api/messages?client_id=
// Sin filtro devuelve todos, del más reciente al más antiguo.
func (h *MessageHandler) List(c *fiber.Ctx) error {
	if c.Query("client_id") != "" {
		clientID := int64(c.QueryInt("client_id"))
		if clientID <= 0 {
			return invalidID(c)
		}
		list, err := h.uc.ListByClient(clientID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	}
	list, err := h.uc.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Unread GET /api/messages/unread
func (h *MessageHandler) Unread(c *fiber.Ctx) error {
	n, err := h.uc.UnreadCount()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"unread": n})
}

// Send POST /api/messages: el remitente es el nombre del usuario de la sesión.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Send(c.Context(), GetUserName(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkRead POST /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.MarkAsRead(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Sync POST /api/messages/sync?limit=: trae los mensajes recibidos desde WhatsApp.
func (h *MessageHandler) Sync(c *fiber.Ctx) error {
	if h.social == nil {
		return writeError(c, domain.ErrGatewayNotConfigured)
	}
	n, err := h.social.SyncInbox(c.Context(), c.QueryInt("limit", social.DefaultSyncLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"synced": n})
}
