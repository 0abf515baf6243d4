package portfolio

import (
	"context"
	"log/slog"

	"github.com/atelierpoint/studio-backend/internal/shared"
	"github.com/atelierpoint/studio-backend/internal/user"
)

// CreateInput is the typed result of coercing an untrusted create
// payload. Missing required strings coerce to "" rather than failing;
// a missing order defaults to 0 and is never auto-appended.
type CreateInput struct {
	Title        string
	Description  *string
	Category     string
	ImageURL     *string
	ProjectURL   *string
	Technologies *string
	Order        int
}

// UpdateInput carries only the fields present in the payload.
type UpdateInput struct {
	Title        *string
	Description  *string
	Category     *string
	ImageURL     *string
	ProjectURL   *string
	Technologies *string
	Order        *int
}

// Service is the boundary between untrusted callers and the store: it
// owns input coercion and the admin-only write policy, nothing else.
type Service struct {
	store  *Store
	logger *slog.Logger
}

func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, caller *user.User, fields shared.Fields) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	in := coerceCreate(fields)
	p := &Project{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
		ProjectURL:   in.ProjectURL,
		Technologies: in.Technologies,
		Order:        in.Order,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return err
	}

	s.logger.Info("project created", "id", p.ID, "title", p.Title)
	return nil
}

func (s *Service) Update(ctx context.Context, caller *user.User, id uint, fields shared.Fields) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if err := s.store.Update(ctx, id, coerceUpdate(fields)); err != nil {
		return err
	}

	s.logger.Info("project updated", "id", id)
	return nil
}

func (s *Service) Delete(ctx context.Context, caller *user.User, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}

func requireAdmin(caller *user.User) error {
	if !caller.IsAdmin() {
		return shared.ErrUnauthorized
	}
	return nil
}

func coerceCreate(f shared.Fields) CreateInput {
	return CreateInput{
		Title:        f.String("title"),
		Description:  f.OptString("description"),
		Category:     f.String("category"),
		ImageURL:     f.OptString("imageUrl"),
		ProjectURL:   f.OptString("projectUrl"),
		Technologies: f.OptString("technologies"),
		Order:        f.Int("order", 0),
	}
}

func coerceUpdate(f shared.Fields) UpdateInput {
	return UpdateInput{
		Title:        f.OptString("title"),
		Description:  f.OptString("description"),
		Category:     f.OptString("category"),
		ImageURL:     f.OptString("imageUrl"),
		ProjectURL:   f.OptString("projectUrl"),
		Technologies: f.OptString("technologies"),
		Order:        f.OptInt("order"),
	}
}
