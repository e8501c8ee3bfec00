package service

import (
	"context"
	"testing"

	"github.com/ikkim/foodgram-backend/internal/access"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_SelfFollowAlwaysFails(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	me := principalOf(f.author)

	_, err := f.follows.Follow(ctx, me, f.author.ID, 0)
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = f.follows.Unfollow(ctx, me, f.author.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)

	// still rejected after following someone else
	_, err = f.follows.Follow(ctx, me, f.other.ID, 0)
	require.NoError(t, err)
	_, err = f.follows.Follow(ctx, me, f.author.ID, 0)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowService_FollowUnfollow(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	reader := principalOf(f.other)

	for _, name := range []string{"One", "Two", "Three"} {
		_, err := f.recipes.CreateRecipe(ctx, principalOf(f.author), f.input(name, nil, amount(f.flour.ID, 1)))
		require.NoError(t, err)
	}

	sub, err := f.follows.Follow(ctx, reader, f.author.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, f.author.ID, sub.Author.ID)
	assert.True(t, sub.IsSubscribed)
	assert.Equal(t, int64(3), sub.RecipesCount)
	require.Len(t, sub.Recipes, 2)
	assert.Equal(t, "One", sub.Recipes[0].Name)

	_, err = f.follows.Follow(ctx, reader, f.author.ID, 2)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	_, err = f.follows.Follow(ctx, reader, 9999, 2)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, f.follows.Unfollow(ctx, reader, f.author.ID))

	err = f.follows.Unfollow(ctx, reader, f.author.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)

	_, err = f.follows.Follow(ctx, access.Anonymous(), f.author.ID, 2)
	assert.ErrorIs(t, err, access.ErrNotAuthenticated)
}

func TestFollowService_ListFollowed(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()
	reader := principalOf(f.other)

	for _, name := range []string{"One", "Two"} {
		_, err := f.recipes.CreateRecipe(ctx, principalOf(f.author), f.input(name, nil, amount(f.flour.ID, 1)))
		require.NoError(t, err)
	}
	_, err := f.follows.Follow(ctx, reader, f.author.ID, 0)
	require.NoError(t, err)
	_, err = f.follows.Follow(ctx, reader, f.admin.ID, 0)
	require.NoError(t, err)

	subs, total, err := f.follows.ListFollowed(ctx, reader, 1, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, subs, 2)

	assert.Equal(t, f.author.ID, subs[0].Author.ID)
	assert.True(t, subs[0].IsSubscribed)
	assert.Len(t, subs[0].Recipes, 1)
	assert.Equal(t, int64(2), subs[0].RecipesCount)

	assert.Equal(t, f.admin.ID, subs[1].Author.ID)
	assert.Empty(t, subs[1].Recipes)
	assert.Zero(t, subs[1].RecipesCount)
}
