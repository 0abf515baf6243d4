package portfolio

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/atelierpoint/studio-backend/internal/shared"
	"github.com/atelierpoint/studio-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(setupTestStore(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var admin = &user.User{OpenID: "owner", Role: user.RoleAdmin}

func TestService_WritesRequireAdmin(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	callers := []struct {
		name   string
		caller *user.User
	}{
		{"anonymous", nil},
		{"non-admin", &user.User{OpenID: "visitor", Role: user.RoleUser}},
	}

	for _, tt := range callers {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Create(ctx, tt.caller, shared.Fields{"title": "x"}), shared.ErrUnauthorized)
			assert.ErrorIs(t, svc.Update(ctx, tt.caller, 1, shared.Fields{"title": "x"}), shared.ErrUnauthorized)
			assert.ErrorIs(t, svc.Delete(ctx, tt.caller, 1), shared.ErrUnauthorized)
		})
	}

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects, "rejected writes must not touch the table")
}

func TestService_CreateCoercion(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	err := svc.Create(ctx, admin, shared.Fields{
		"title":    "Riverside Cafe",
		"category": "Corporate",
	})
	require.NoError(t, err)

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "Riverside Cafe", p.Title)
	assert.Equal(t, "Corporate", p.Category)
	assert.Nil(t, p.Description, "absent optional coerces to NULL")
	assert.Nil(t, p.ImageURL)
	assert.Equal(t, 0, p.Order, "missing order defaults to 0")
}

func TestService_CreateCoercesJunkTypes(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	// Numbers stringify, falsy values blank out, and a string order is
	// ignored rather than parsed.
	err := svc.Create(ctx, admin, shared.Fields{
		"title":       float64(42),
		"category":    nil,
		"description": false,
		"order":       "7",
	})
	require.NoError(t, err)

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "42", p.Title)
	assert.Equal(t, "", p.Category)
	assert.Nil(t, p.Description)
	assert.Equal(t, 0, p.Order)
}

func TestService_UpdateTouchesOnlySuppliedFields(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, admin, shared.Fields{
		"title":       "Riverside Cafe",
		"category":    "Corporate",
		"description": "brochure site",
	}))
	projects, _ := svc.List(ctx)
	id := projects[0].ID

	require.NoError(t, svc.Update(ctx, admin, id, shared.Fields{"order": float64(5)}))

	projects, _ = svc.List(ctx)
	require.Len(t, projects, 1)
	assert.Equal(t, 5, projects[0].Order)
	assert.Equal(t, "Riverside Cafe", projects[0].Title)
	require.NotNil(t, projects[0].Description)
	assert.Equal(t, "brochure site", *projects[0].Description)
}

func TestService_Delete(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, admin, shared.Fields{"title": "a", "category": "b"}))
	projects, _ := svc.List(ctx)
	require.Len(t, projects, 1)

	require.NoError(t, svc.Delete(ctx, admin, projects[0].ID))

	projects, _ = svc.List(ctx)
	assert.Empty(t, projects)

	// id 0, from a junk path param, deletes nothing and stays quiet.
	assert.NoError(t, svc.Delete(ctx, admin, 0))
}
