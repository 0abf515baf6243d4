package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelierpoint/studio-backend/internal/database"
	"github.com/atelierpoint/studio-backend/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db          *database.DB
	ownerOpenID string
	logger      *slog.Logger
}

// NewStore builds a user store. ownerOpenID is the configured owner
// identity that gets auto-promoted to admin on sign-in.
func NewStore(db *database.DB, ownerOpenID string, logger *slog.Logger) *Store {
	return &Store{db: db, ownerOpenID: ownerOpenID, logger: logger}
}

func (s *Store) Migrate() error {
	return s.db.Migrate(&User{})
}

// UpsertInput carries the fields refreshed on sign-in. Nil pointers mean
// "leave unchanged"; each field is independently settable.
type UpsertInput struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *Role
	LastSignedIn *time.Time
}

// Upsert inserts or refreshes the row for in.OpenID, guaranteeing at most
// one row per OpenID. When no role is supplied and the OpenID matches the
// configured owner, the role is forced to admin. A sign-in that changes
// nothing else still refreshes LastSignedIn.
func (s *Store) Upsert(ctx context.Context, in UpsertInput) (*User, error) {
	if in.OpenID == "" {
		return nil, fmt.Errorf("%w: openId is required", shared.ErrValidation)
	}

	conn, err := s.db.Conn()
	if err != nil {
		return nil, err
	}

	u, err := s.GetByOpenID(ctx, in.OpenID)
	switch {
	case err == nil:
		return s.refresh(ctx, conn, u, in)
	case errors.Is(err, shared.ErrNotFound):
		return s.insert(ctx, conn, in)
	default:
		s.logger.Error("failed to upsert user", "error", err, "open_id", in.OpenID)
		return nil, err
	}
}

func (s *Store) insert(ctx context.Context, conn *gorm.DB, in UpsertInput) (*User, error) {
	u := &User{
		OpenID:       in.OpenID,
		Role:         RoleUser,
		LastSignedIn: time.Now(),
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.LoginMethod != nil {
		u.LoginMethod = *in.LoginMethod
	}
	if in.Role != nil {
		u.Role = *in.Role
	} else if s.ownerOpenID != "" && in.OpenID == s.ownerOpenID {
		u.Role = RoleAdmin
	}
	if in.LastSignedIn != nil {
		u.LastSignedIn = *in.LastSignedIn
	}

	if err := conn.WithContext(ctx).Create(u).Error; err != nil {
		s.logger.Error("failed to insert user", "error", err, "open_id", in.OpenID)
		return nil, err
	}
	return u, nil
}

func (s *Store) refresh(ctx context.Context, conn *gorm.DB, u *User, in UpsertInput) (*User, error) {
	changed := false
	if in.Name != nil && u.Name != *in.Name {
		u.Name = *in.Name
		changed = true
	}
	if in.Email != nil && u.Email != *in.Email {
		u.Email = *in.Email
		changed = true
	}
	if in.LoginMethod != nil && u.LoginMethod != *in.LoginMethod {
		u.LoginMethod = *in.LoginMethod
		changed = true
	}
	if in.Role != nil {
		if u.Role != *in.Role {
			u.Role = *in.Role
			changed = true
		}
	} else if s.ownerOpenID != "" && u.OpenID == s.ownerOpenID && u.Role != RoleAdmin {
		u.Role = RoleAdmin
		changed = true
	}
	if in.LastSignedIn != nil {
		u.LastSignedIn = *in.LastSignedIn
		changed = true
	}

	// A repeat sign-in with nothing new still counts as activity.
	if !changed {
		u.LastSignedIn = time.Now()
	}

	if err := conn.WithContext(ctx).Save(u).Error; err != nil {
		s.logger.Error("failed to refresh user", "error", err, "open_id", in.OpenID)
		return nil, err
	}
	return u, nil
}

// GetByOpenID returns the matching user. An unavailable store reads as
// "not found", never as an error.
func (s *Store) GetByOpenID(ctx context.Context, openID string) (*User, error) {
	if !s.db.Available() {
		return nil, shared.ErrNotFound
	}
	conn, _ := s.db.Conn()

	var u User
	err := conn.WithContext(ctx).Where("open_id = ?", openID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
