package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/atelierpoint/studio-backend/internal/database"
	"github.com/atelierpoint/studio-backend/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T, ownerOpenID string) *Store {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	store := NewStore(database.FromGorm(conn), ownerOpenID, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return store
}

func strPtr(s string) *string {
	return &s
}

func TestStore_Upsert_RequiresOpenID(t *testing.T) {
	store := setupTestStore(t, "")

	_, err := store.Upsert(context.Background(), UpsertInput{})
	if !errors.Is(err, shared.ErrValidation) {
		t.Errorf("Upsert without openId error = %v, want ErrValidation", err)
	}
}

func TestStore_Upsert_Unavailable(t *testing.T) {
	store := NewStore(database.Unavailable(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := store.Upsert(context.Background(), UpsertInput{OpenID: "abc"})
	if !errors.Is(err, shared.ErrUnavailable) {
		t.Errorf("Upsert on unavailable store error = %v, want ErrUnavailable", err)
	}
}

func TestStore_Upsert_Insert(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	u, err := store.Upsert(ctx, UpsertInput{
		OpenID: "open_1",
		Name:   strPtr("Nadia"),
		Email:  strPtr("nadia@example.com"),
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if u.ID == 0 {
		t.Error("inserted user should have a generated id")
	}
	if u.Role != RoleUser {
		t.Errorf("role = %v, want default user", u.Role)
	}
	if u.LastSignedIn.IsZero() {
		t.Error("LastSignedIn should be set on insert")
	}
}

func TestStore_Upsert_OwnerAutoPromotion(t *testing.T) {
	store := setupTestStore(t, "owner_open_id")
	ctx := context.Background()

	u, err := store.Upsert(ctx, UpsertInput{OpenID: "owner_open_id"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if u.Role != RoleAdmin {
		t.Errorf("owner role = %v, want admin even though no role was supplied", u.Role)
	}

	other, err := store.Upsert(ctx, UpsertInput{OpenID: "someone_else"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if other.Role != RoleUser {
		t.Errorf("non-owner role = %v, want user", other.Role)
	}
}

func TestStore_Upsert_ExplicitRoleWins(t *testing.T) {
	store := setupTestStore(t, "owner_open_id")
	role := RoleUser

	u, err := store.Upsert(context.Background(), UpsertInput{OpenID: "owner_open_id", Role: &role})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if u.Role != RoleUser {
		t.Errorf("role = %v, want explicitly supplied user role", u.Role)
	}
}

func TestStore_Upsert_SecondCallUpdatesInPlace(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	first, err := store.Upsert(ctx, UpsertInput{OpenID: "open_2", Name: strPtr("First")})
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}

	second, err := store.Upsert(ctx, UpsertInput{OpenID: "open_2", Name: strPtr("Second")})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Error("upsert should reuse the existing row")
	}
	if second.Name != "Second" {
		t.Errorf("name = %q, want the second value", second.Name)
	}

	var count int64
	conn, _ := store.db.Conn()
	conn.Model(&User{}).Where("open_id = ?", "open_2").Count(&count)
	if count != 1 {
		t.Errorf("row count = %d, want exactly one row per openId", count)
	}
}

func TestStore_Upsert_PartialFieldsLeaveOthersUnchanged(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	_, err := store.Upsert(ctx, UpsertInput{
		OpenID:      "open_3",
		Name:        strPtr("Keep Me"),
		Email:       strPtr("keep@example.com"),
		LoginMethod: strPtr("portal"),
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	u, err := store.Upsert(ctx, UpsertInput{OpenID: "open_3", Email: strPtr("new@example.com")})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if u.Name != "Keep Me" {
		t.Errorf("name = %q, should be untouched", u.Name)
	}
	if u.Email != "new@example.com" {
		t.Errorf("email = %q, want updated value", u.Email)
	}
	if u.LoginMethod != "portal" {
		t.Errorf("loginMethod = %q, should be untouched", u.LoginMethod)
	}
}

func TestStore_Upsert_NoChangeRefreshesLastSignedIn(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	old := time.Now().Add(-24 * time.Hour)
	first, err := store.Upsert(ctx, UpsertInput{OpenID: "open_4", LastSignedIn: &old})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	refreshed, err := store.Upsert(ctx, UpsertInput{OpenID: "open_4"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !refreshed.LastSignedIn.After(first.LastSignedIn) {
		t.Error("a field-free upsert should still refresh LastSignedIn")
	}
}

func TestStore_GetByOpenID(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	if _, err := store.Upsert(ctx, UpsertInput{OpenID: "open_5"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	tests := []struct {
		name    string
		openID  string
		wantErr error
	}{
		{"existing user", "open_5", nil},
		{"missing user", "nope", shared.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetByOpenID(ctx, tt.openID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByOpenID() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByOpenID() unexpected error: %v", err)
			}
			if got.OpenID != tt.openID {
				t.Errorf("GetByOpenID() openId = %v, want %v", got.OpenID, tt.openID)
			}
		})
	}
}

func TestStore_GetByOpenID_UnavailableReadsAsNotFound(t *testing.T) {
	store := NewStore(database.Unavailable(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := store.GetByOpenID(context.Background(), "anything")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("GetByOpenID on unavailable store error = %v, want ErrNotFound", err)
	}
}

func TestUser_IsAdmin(t *testing.T) {
	var nilUser *User
	if nilUser.IsAdmin() {
		t.Error("nil user should not be admin")
	}
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Error("user role should not be admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should be admin")
	}
}
