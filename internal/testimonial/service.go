package testimonial

import (
	"context"
	"log/slog"

	"github.com/atelierpoint/studio-backend/internal/shared"
	"github.com/atelierpoint/studio-backend/internal/user"
)

const defaultRating = 5

type CreateInput struct {
	ClientName  string
	ClientRole  *string
	ClientImage *string
	Content     string
	Rating      int
	Order       int
}

type UpdateInput struct {
	ClientName  *string
	ClientRole  *string
	ClientImage *string
	Content     *string
	Rating      *int
	Order       *int
}

// Service coerces untrusted input and enforces the admin-only write
// policy for testimonials. Storage stays in the store.
type Service struct {
	store  *Store
	logger *slog.Logger
}

func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Testimonial, error) {
	return s.store.List(ctx)
}

func (s *Service) Create(ctx context.Context, caller *user.User, fields shared.Fields) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	in := coerceCreate(fields)
	t := &Testimonial{
		ClientName:  in.ClientName,
		ClientRole:  in.ClientRole,
		ClientImage: in.ClientImage,
		Content:     in.Content,
		Rating:      in.Rating,
		Order:       in.Order,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return err
	}

	s.logger.Info("testimonial created", "id", t.ID, "client", t.ClientName)
	return nil
}

func (s *Service) Update(ctx context.Context, caller *user.User, id uint, fields shared.Fields) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if err := s.store.Update(ctx, id, coerceUpdate(fields)); err != nil {
		return err
	}

	s.logger.Info("testimonial updated", "id", id)
	return nil
}

func (s *Service) Delete(ctx context.Context, caller *user.User, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("testimonial deleted", "id", id)
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
		ClientName:  f.String("clientName"),
		ClientRole:  f.OptString("clientRole"),
		ClientImage: f.OptString("clientImage"),
		Content:     f.String("content"),
		Rating:      f.Int("rating", defaultRating),
		Order:       f.Int("order", 0),
	}
}

func coerceUpdate(f shared.Fields) UpdateInput {
	return UpdateInput{
		ClientName:  f.OptString("clientName"),
		ClientRole:  f.OptString("clientRole"),
		ClientImage: f.OptString("clientImage"),
		Content:     f.OptString("content"),
		Rating:      f.OptInt("rating"),
		Order:       f.OptInt("order"),
	}
}
