package service

import (
	"context"
	"testing"

	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Profiles(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	users := NewUserService(repository.NewUserRepository(f.db), repository.NewFollowRepository(f.db))

	_, err := f.follows.Follow(ctx, principalOf(f.other), f.author.ID, 0)
	require.NoError(t, err)

	profile, err := users.GetProfile(ctx, f.other.ID, f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, "author", profile.User.Username)
	assert.True(t, profile.IsSubscribed)

	profile, err = users.GetProfile(ctx, 0, f.author.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = users.GetProfile(ctx, f.other.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	profiles, total, err := users.ListUsers(ctx, f.other.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, profiles, 3)
	for _, p := range profiles {
		assert.Equal(t, p.User.ID == f.author.ID, p.IsSubscribed, p.User.Username)
	}
}

func TestIngredientService(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	ingredients := NewIngredientService(repository.NewIngredientRepository(f.db))

	found, err := ingredients.ListIngredients(ctx, " sa")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Salt", found[0].Name)

	_, err = ingredients.GetIngredient(ctx, 9999)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}
