package consultation

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
	return s.db.Migrate(&Consultation{})
}

func (s *Store) Create(ctx context.Context, c *Consultation) error {
	conn, err := s.db.Conn()
	if err != nil {
		return err
	}
	return conn.WithContext(ctx).Create(c).Error
}

// List returns inquiries newest first; empty when the store is
// unavailable.
func (s *Store) List(ctx context.Context) ([]Consultation, error) {
	if !s.db.Available() {
		return []Consultation{}, nil
	}
	conn, _ := s.db.Conn()

	inquiries := []Consultation{}
	err := conn.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error
	return inquiries, err
}
