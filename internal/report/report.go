// Package report renders a shopping list as a downloadable file.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const (
	Title = "The list of goods for your recipes. "

	TextFilename = "shoplist.txt"
	XLSXFilename = "shoplist.xlsx"

	TextContentType = "text/plain; charset=utf-8"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Shopping list"
)

// RenderText lays the items out as a fixed-width table. Each column is as
// wide as its longest value (in runes); an empty list renders the title only.
func RenderText(items []model.ShoppingListItem) []byte {
	var buf bytes.Buffer
	buf.WriteString(Title)
	buf.WriteString("\n\n")

	if len(items) == 0 {
		return buf.Bytes()
	}

	rows := make([][3]string, len(items))
	var widths [3]int
	for i, item := range items {
		rows[i] = [3]string{
			item.Name,
			strconv.FormatInt(item.TotalQuantity, 10),
			string(item.MeasurementUnit),
		}
		for col, cell := range rows[i] {
			if n := utf8.RuneCountInString(cell); n > widths[col] {
				widths[col] = n
			}
		}
	}

	// 상단 테두리
	buf.WriteString(",")
	buf.WriteString(strings.Repeat("_", widths[0]+2+widths[1]+2+widths[2]+2+2))
	buf.WriteString(",\n")

	divider := "|" + strings.Repeat("_", widths[0]+2) +
		"|" + strings.Repeat("_", widths[1]+2) +
		"|" + strings.Repeat("_", widths[2]+2) + "|\n"

	for _, row := range rows {
		buf.WriteString("|")
		for col, cell := range row {
			buf.WriteString(" ")
			buf.WriteString(cell)
			buf.WriteString(strings.Repeat(" ", widths[col]-utf8.RuneCountInString(cell)))
			buf.WriteString(" |")
		}
		buf.WriteString("\n")
		buf.WriteString(divider)
	}

	return buf.Bytes()
}

// RenderXLSX writes the same rows into a single-sheet workbook
func RenderXLSX(items []model.ShoppingListItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheetName, "A1", strings.TrimSpace(Title)); err != nil {
		return nil, err
	}
	header := []interface{}{"Ingredient", "Quantity", "Unit"}
	if err := f.SetSheetRow(sheetName, "A3", &header); err != nil {
		return nil, err
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		row := []interface{}{item.Name, item.TotalQuantity, string(item.MeasurementUnit)}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
