package seed

import (
	"path/filepath"
	"testing"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupSeedTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	require.NoError(t, db.SeedTags(testDB))
	return testDB
}

func TestParseIngredientRows(t *testing.T) {
	rows := [][]string{
		{"name", "measurement_unit"},
		{" Flour ", "г"},
		{"Salt", "г"},
		{"Flour", "г"},
		{"Flour", "кг"},
		{"Water"},
		{"Mystery", "bucket"},
		{"", "г"},
	}

	ingredients, skipped := ParseIngredientRows(rows)
	assert.Equal(t, 5, skipped)
	require.Len(t, ingredients, 3)
	assert.Equal(t, model.Ingredient{Name: "Flour", MeasurementUnit: model.UnitGram}, ingredients[0])
	assert.Equal(t, model.Ingredient{Name: "Salt", MeasurementUnit: model.UnitGram}, ingredients[1])
	assert.Equal(t, model.Ingredient{Name: "Flour", MeasurementUnit: model.UnitKilogram}, ingredients[2])
}

func TestReadIngredientsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingredients.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "measurement_unit"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Milk", "мл"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Egg", "шт."}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ingredients, skipped, err := ReadIngredientsXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Milk", ingredients[0].Name)
	assert.Equal(t, model.UnitMl, ingredients[0].MeasurementUnit)
	assert.Equal(t, model.UnitItem, ingredients[1].MeasurementUnit)
}

func TestReadIngredientsXLSX_MissingFile(t *testing.T) {
	_, _, err := ReadIngredientsXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestDemo(t *testing.T) {
	testDB := setupSeedTest(t)
	require.NoError(t, testDB.Create(&[]model.Ingredient{
		{Name: "Flour", MeasurementUnit: model.UnitGram},
		{Name: "Salt", MeasurementUnit: model.UnitGram},
		{Name: "Milk", MeasurementUnit: model.UnitMl},
	}).Error)

	summary, err := Demo(testDB, Options{Users: 3, RecipesPerUser: 2, MaxIngredients: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Users)
	assert.Equal(t, 6, summary.Recipes)

	var recipes []model.Recipe
	require.NoError(t, testDB.Preload("IngredientLines").Find(&recipes).Error)
	require.Len(t, recipes, 6)
	for _, r := range recipes {
		assert.NotNil(t, r.AuthorID)
		assert.GreaterOrEqual(t, r.CookTime, 1)
		assert.NotEmpty(t, r.IngredientLines)
		assert.LessOrEqual(t, len(r.IngredientLines), 2)
	}

	var follows int64
	require.NoError(t, testDB.Model(&model.Follow{}).Count(&follows).Error)
	assert.Equal(t, int64(summary.Follows), follows)

	var selfFollows int64
	require.NoError(t, testDB.Model(&model.Follow{}).Where("user_id = author_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)
}

func TestDemo_AfterTruncate(t *testing.T) {
	testDB := setupSeedTest(t)
	ingredients := []model.Ingredient{
		{Name: "Flour", MeasurementUnit: model.UnitGram},
		{Name: "Salt", MeasurementUnit: model.UnitGram},
	}
	require.NoError(t, testDB.Create(&ingredients).Error)

	_, err := Demo(testDB, Options{Users: 2, RecipesPerUser: 1})
	require.NoError(t, err)

	// child tables are cleared before their parents, so foreign keys hold
	require.NoError(t, db.TruncateAllTables(testDB))
	for _, m := range []interface{}{&model.User{}, &model.Recipe{}, &model.IngredientLine{}, &model.Follow{}, &model.Tag{}, &model.Ingredient{}} {
		var n int64
		require.NoError(t, testDB.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}

	require.NoError(t, db.SeedTags(testDB))
	require.NoError(t, testDB.Create(&[]model.Ingredient{{Name: "Milk", MeasurementUnit: model.UnitMl}}).Error)
	summary, err := Demo(testDB, Options{Users: 2, RecipesPerUser: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Recipes)
}

func TestDemo_RequiresIngredients(t *testing.T) {
	testDB := setupSeedTest(t)

	_, err := Demo(testDB, Options{Users: 1, RecipesPerUser: 1})
	assert.Error(t, err)
}

func TestFactory_CreateUserOverrides(t *testing.T) {
	testDB := setupSeedTest(t)
	f := NewFactory(testDB)

	user, err := f.CreateUser(func(u *model.User) {
		u.Email = "chef@example.com"
		u.Role = model.RoleAdmin
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "chef@example.com", user.Email)
	assert.True(t, user.IsAdmin())
}
