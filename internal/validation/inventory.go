package validation

import "github.com/otcheredev/remedium-hms/internal/models"

// InventoryRules validate a stock item candidate.
var InventoryRules = []Rule[models.InventoryItem]{
	inventoryFields,
	inventoryUnique,
}

func inventoryFields(_ *Context, i *models.InventoryItem, errs *Errors) error {
	requireText(errs, "name", i.Name, 100)
	if !i.Category.Valid() {
		errs.Add("category", invalidChoice(string(i.Category)))
	}
	if !i.Unit.Valid() {
		errs.Add("unit", invalidChoice(string(i.Unit)))
	}
	if i.Quantity < 0 {
		errs.Add("quantity", "Quantity cannot be negative.")
	}
	if i.ReorderLevel < 0 {
		errs.Add("reorder_level", "Reorder level cannot be negative.")
	}
	if i.UnitCost.Valid {
		switch {
		case i.UnitCost.Decimal.IsNegative():
			errs.Add("unit_cost", "Unit cost cannot be negative.")
		case i.UnitCost.Decimal.GreaterThanOrEqual(maxAmount):
			errs.Add("unit_cost", "Ensure that there are no more than 10 digits in total.")
		}
	}
	optionalMaxLength(errs, "supplier", i.Supplier, 100)
	return nil
}

func inventoryUnique(vc *Context, i *models.InventoryItem, errs *Errors) error {
	if errs.Has("name") {
		return nil
	}
	return unique(vc, errs, "inventory_items", "name", map[string]any{"name": i.Name}, i.ID,
		"An inventory item with this name already exists.")
}
