package testimonial

import (
	"log/slog"
	"net/http"

	"github.com/atelierpoint/studio-backend/internal/shared"
	"github.com/atelierpoint/studio-backend/internal/user"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	testimonials, err := h.svc.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", "error", err)
		return shared.InternalError("list_failed", "failed to load testimonials")
	}
	return c.JSON(http.StatusOK, testimonials)
}

func (h *Handler) Create(c echo.Context) error {
	var fields shared.Fields
	if err := c.Bind(&fields); err != nil {
		return shared.BadRequest("invalid_body", "request body must be a JSON object")
	}

	if err := h.svc.Create(c.Request().Context(), user.CurrentUser(c), fields); err != nil {
		h.logger.Warn("testimonial create rejected", "error", err)
		return shared.FromError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *Handler) Update(c echo.Context) error {
	var fields shared.Fields
	if err := c.Bind(&fields); err != nil {
		return shared.BadRequest("invalid_body", "request body must be a JSON object")
	}

	id := shared.CoerceID(c.Param("id"))
	if err := h.svc.Update(c.Request().Context(), user.CurrentUser(c), id, fields); err != nil {
		h.logger.Warn("testimonial update rejected", "error", err, "id", id)
		return shared.FromError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *Handler) Delete(c echo.Context) error {
	id := shared.CoerceID(c.Param("id"))
	if err := h.svc.Delete(c.Request().Context(), user.CurrentUser(c), id); err != nil {
		h.logger.Warn("testimonial delete rejected", "error", err, "id", id)
		return shared.FromError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
