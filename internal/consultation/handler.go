package consultation

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/atelierpoint/studio-backend/internal/shared"
	"github.com/atelierpoint/studio-backend/internal/user"
	"github.com/labstack/echo/v4"
)

type SubmitRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
}

type Handler struct {
	store   *Store
	limiter *RateLimiter
	logger  *slog.Logger
}

func NewHandler(store *Store, limiter *RateLimiter, logger *slog.Logger) *Handler {
	return &Handler{store: store, limiter: limiter, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Submit)
	g.GET("", h.List)
}

// Submit accepts a booking inquiry from the public site. Unlike the admin
// collections this endpoint validates instead of coercing: an inquiry
// without contact details is useless.
func (h *Handler) Submit(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_body", "request body must be a JSON object")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return shared.BadRequest("missing_fields", "name, email and message are required")
	}

	if !h.limiter.Allow(c.Request().Context(), c.RealIP()) {
		return shared.NewAPIError("rate_limited", "too many submissions, try again later").
			ToHTTP(http.StatusTooManyRequests)
	}

	inquiry := &Consultation{
		Name:        req.Name,
		Email:       req.Email,
		ProjectType: strings.TrimSpace(req.ProjectType),
		Budget:      strings.TrimSpace(req.Budget),
		Message:     req.Message,
	}
	if err := h.store.Create(c.Request().Context(), inquiry); err != nil {
		h.logger.Error("failed to save consultation", "error", err)
		return shared.FromError(err)
	}

	h.logger.Info("consultation received", "id", inquiry.ID)
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// List shows submitted inquiries to the site owner.
func (h *Handler) List(c echo.Context) error {
	if !user.CurrentUser(c).IsAdmin() {
		return shared.FromError(shared.ErrUnauthorized)
	}

	inquiries, err := h.store.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list consultations", "error", err)
		return shared.InternalError("list_failed", "failed to load consultations")
	}
	return c.JSON(http.StatusOK, inquiries)
}
