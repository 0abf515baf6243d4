package testimonial

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

	visitor := &user.User{OpenID: "visitor", Role: user.RoleUser}
	for _, caller := range []*user.User{nil, visitor} {
		assert.ErrorIs(t, svc.Create(ctx, caller, shared.Fields{"clientName": "x"}), shared.ErrUnauthorized)
		assert.ErrorIs(t, svc.Update(ctx, caller, 1, shared.Fields{"rating": float64(4)}), shared.ErrUnauthorized)
		assert.ErrorIs(t, svc.Delete(ctx, caller, 1), shared.ErrUnauthorized)
	}
}

func TestService_CreateDefaults(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, admin, shared.Fields{
		"clientName": "Avery Cole",
		"content":    "The site doubled our inquiries.",
	}))

	testimonials, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, testimonials, 1)

	tm := testimonials[0]
	assert.Equal(t, "Avery Cole", tm.ClientName)
	assert.Equal(t, 5, tm.Rating, "missing rating defaults to 5")
	assert.Equal(t, 0, tm.Order)
	assert.Nil(t, tm.ClientRole)
	assert.Nil(t, tm.ClientImage)
}

func TestService_CreateCoercion(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	// A string rating is not parsed; it falls back to the default. Float
	// ratings truncate.
	require.NoError(t, svc.Create(ctx, admin, shared.Fields{
		"clientName": "Avery",
		"content":    "ok",
		"rating":     "3",
		"order":      float64(2.9),
	}))

	testimonials, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, testimonials, 1)
	assert.Equal(t, 5, testimonials[0].Rating)
	assert.Equal(t, 2, testimonials[0].Order)
}

func TestService_UpdateTouchesOnlySuppliedFields(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, admin, shared.Fields{
		"clientName": "Avery",
		"clientRole": "Founder",
		"content":    "Great work",
	}))
	testimonials, _ := svc.List(ctx)
	id := testimonials[0].ID

	require.NoError(t, svc.Update(ctx, admin, id, shared.Fields{"rating": float64(3)}))

	testimonials, _ = svc.List(ctx)
	require.Len(t, testimonials, 1)
	assert.Equal(t, 3, testimonials[0].Rating)
	assert.Equal(t, "Avery", testimonials[0].ClientName)
	require.NotNil(t, testimonials[0].ClientRole)
	assert.Equal(t, "Founder", *testimonials[0].ClientRole)
}

func TestService_Delete(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, admin, shared.Fields{"clientName": "a", "content": "b"}))
	testimonials, _ := svc.List(ctx)
	require.Len(t, testimonials, 1)

	require.NoError(t, svc.Delete(ctx, admin, testimonials[0].ID))

	testimonials, _ = svc.List(ctx)
	assert.Empty(t, testimonials)
}
