package testimonial

import (
	"context"

	"github.com/atelierpoint/studio-backend/internal/database"
)

type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.Migrate(&Testimonial{})
}

// List returns every testimonial in display order, or an empty slice when
// the store is unavailable.
func (s *Store) List(ctx context.Context) ([]Testimonial, error) {
	if !s.db.Available() {
		return []Testimonial{}, nil
	}
	conn, _ := s.db.Conn()

	testimonials := []Testimonial{}
	err := conn.WithContext(ctx).
		Order("display_order ASC, created_at ASC").
		Find(&testimonials).Error
	return testimonials, err
}

func (s *Store) Create(ctx context.Context, t *Testimonial) error {
	conn, err := s.db.Conn()
	if err != nil {
		return err
	}
	return conn.WithContext(ctx).Create(t).Error
}

func (s *Store) Update(ctx context.Context, id uint, in UpdateInput) error {
	conn, err := s.db.Conn()
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if in.ClientName != nil {
		updates["client_name"] = *in.ClientName
	}
	if in.ClientRole != nil {
		updates["client_role"] = *in.ClientRole
	}
	if in.ClientImage != nil {
		updates["client_image"] = *in.ClientImage
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Rating != nil {
		updates["rating"] = *in.Rating
	}
	if in.Order != nil {
		updates["display_order"] = *in.Order
	}
	if len(updates) == 0 {
		return nil
	}

	return conn.WithContext(ctx).Model(&Testimonial{}).Where("id = ?", id).Updates(updates).Error
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	conn, err := s.db.Conn()
	if err != nil {
		return err
	}
	return conn.WithContext(ctx).Delete(&Testimonial{}, id).Error
}
