package model

// ShoppingListItem is one aggregated row of a user's shopping list
type ShoppingListItem struct {
	Name            string          `json:"name"`
	MeasurementUnit MeasurementUnit `json:"measurement_unit"`
	TotalQuantity   int64           `json:"total_quantity"`
}
