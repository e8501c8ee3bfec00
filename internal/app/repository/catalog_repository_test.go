package repository

import (
	"context"
	"testing"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*gorm.DB, IngredientRepository, TagRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testDB, NewIngredientRepository(testDB), NewTagRepository(testDB)
}

func TestIngredientRepository_FindAll(t *testing.T) {
	testDB, repo, _ := setupCatalogTest(t)
	ctx := context.Background()

	require.NoError(t, testDB.Create(&[]model.Ingredient{
		{Name: "sugar", MeasurementUnit: model.UnitGram},
		{Name: "Salt", MeasurementUnit: model.UnitGram},
		{Name: "salmon", MeasurementUnit: model.UnitPiece},
		{Name: "50%_cream", MeasurementUnit: model.UnitMl},
		{Name: "500 cream", MeasurementUnit: model.UnitMl},
	}).Error)

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "No prefix returns all ordered by name", prefix: "", want: []string{"50%_cream", "500 cream", "Salt", "salmon", "sugar"}},
		{name: "Prefix is case-insensitive", prefix: "SAL", want: []string{"Salt", "salmon"}},
		{name: "Wildcards are literal", prefix: "50%", want: []string{"50%_cream"}},
		{name: "No match", prefix: "xyz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindAll(ctx, tt.prefix)
			require.NoError(t, err)

			names := []string{}
			for _, ing := range found {
				names = append(names, ing.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestIngredientRepository_FirstOrCreate(t *testing.T) {
	_, repo, _ := setupCatalogTest(t)
	ctx := context.Background()

	created, err := repo.FirstOrCreate(ctx, &model.Ingredient{Name: "Flour", MeasurementUnit: model.UnitGram})
	require.NoError(t, err)
	assert.True(t, created)

	again := &model.Ingredient{Name: "Flour", MeasurementUnit: model.UnitGram}
	created, err = repo.FirstOrCreate(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NotZero(t, again.ID)

	// same name, different unit is a separate entry
	created, err = repo.FirstOrCreate(ctx, &model.Ingredient{Name: "Flour", MeasurementUnit: model.UnitKilogram})
	require.NoError(t, err)
	assert.True(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIngredientRepository_FindByIDs(t *testing.T) {
	testDB, repo, _ := setupCatalogTest(t)
	ctx := context.Background()

	flour := model.Ingredient{Name: "Flour", MeasurementUnit: model.UnitGram}
	require.NoError(t, testDB.Create(&flour).Error)

	found, err := repo.FindByIDs(ctx, []uint{flour.ID, 9999})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Flour", found[0].Name)

	found, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTagRepository(t *testing.T) {
	testDB, _, repo := setupCatalogTest(t)
	ctx := context.Background()

	require.NoError(t, db.SeedTags(testDB))

	tags, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tags, len(db.DefaultTags))
	assert.Equal(t, "breakfast", tags[0].Slug)

	tag, err := repo.FindByID(ctx, tags[1].ID)
	require.NoError(t, err)
	assert.Equal(t, tags[1].Slug, tag.Slug)

	byIDs, err := repo.FindByIDs(ctx, []uint{tags[0].ID, tags[2].ID, 9999})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
