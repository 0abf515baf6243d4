package portfolio

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
	return s.db.Migrate(&Project{})
}

// List returns every project in display order. An unavailable store reads
// as empty so the public site keeps rendering.
func (s *Store) List(ctx context.Context) ([]Project, error) {
	if !s.db.Available() {
		return []Project{}, nil
	}
	conn, _ := s.db.Conn()

	projects := []Project{}
	err := conn.WithContext(ctx).
		Order("display_order ASC, created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (s *Store) Create(ctx context.Context, p *Project) error {
	conn, err := s.db.Conn()
	if err != nil {
		return err
	}
	return conn.WithContext(ctx).Create(p).Error
}

// Update applies only the supplied fields by primary key. A missing row
// is a no-op, not an error.
func (s *Store) Update(ctx context.Context, id uint, in UpdateInput) error {
	conn, err := s.db.Conn()
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.ProjectURL != nil {
		updates["project_url"] = *in.ProjectURL
	}
	if in.Technologies != nil {
		updates["technologies"] = *in.Technologies
	}
	if in.Order != nil {
		updates["display_order"] = *in.Order
	}
	if len(updates) == 0 {
		return nil
	}

	return conn.WithContext(ctx).Model(&Project{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a project by primary key; deleting an absent id is a
// no-op.
func (s *Store) Delete(ctx context.Context, id uint) error {
	conn, err := s.db.Conn()
	if err != nil {
		return err
	}
	return conn.WithContext(ctx).Delete(&Project{}, id).Error
}
