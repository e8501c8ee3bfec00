package seed

import (
	"fmt"
	"strings"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

// ReadIngredientsXLSX reads (name, measurement_unit) rows from the first sheet
func ReadIngredientsXLSX(filePath string) ([]model.Ingredient, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	ingredients, skipped := ParseIngredientRows(rows)
	return ingredients, skipped, nil
}

// ParseIngredientRows keeps rows with a name and a known unit, dropping
// duplicates. A header row is skipped like any other invalid row.
func ParseIngredientRows(rows [][]string) ([]model.Ingredient, int) {
	var ingredients []model.Ingredient
	seen := make(map[string]bool)
	skipped := 0

	for _, row := range rows {
		if len(row) < 2 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		unit := model.MeasurementUnit(strings.TrimSpace(row[1]))
		if name == "" || !unit.IsValid() {
			skipped++
			continue
		}

		key := name + "|" + string(unit)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		ingredients = append(ingredients, model.Ingredient{
			Name:            name,
			MeasurementUnit: unit,
		})
	}

	return ingredients, skipped
}
