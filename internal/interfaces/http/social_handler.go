package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/social"
)

// SocialHandler cuentas, métricas y publicaciones en redes sociales.
type SocialHandler struct {
	uc *social.UseCase
}

// NewSocialHandler construye el handler.
func NewSocialHandler(uc *social.UseCase) *SocialHandler {
	return &SocialHandler{uc: uc}
}

// Accounts GET /api/social/accounts
func (h *SocialHandler) Accounts(c *fiber.Ctx) error {
	out, err := h.uc.Accounts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Insights GET /api/social/insights
func (h *SocialHandler) Insights(c *fiber.Ctx) error {
	out, err := h.uc.Insights(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Media GET /api/social/media/:account?limit=
func (h *SocialHandler) Media(c *fiber.Ctx) error {
	out, err := h.uc.Media(c.Context(), c.Params("account"), c.QueryInt("limit", 25))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePost POST /api/social/posts
func (h *SocialHandler) CreatePost(c *fiber.Ctx) error {
	var in dto.CreatePostRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreatePost(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
