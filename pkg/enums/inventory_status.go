package enums

import "fmt"

// InventoryStatus tracks the stock state of an inventory record.
type InventoryStatus string

const (
	InventoryStatusAvailable    InventoryStatus = "available"
	InventoryStatusOutOfStock   InventoryStatus = "out_of_stock"
	InventoryStatusInTransit    InventoryStatus = "in_transit"
	InventoryStatusDamaged      InventoryStatus = "damaged"
	InventoryStatusReserved     InventoryStatus = "reserved"
	InventoryStatusDiscontinued InventoryStatus = "discontinued"
	InventoryStatusLow          InventoryStatus = "low"
)

var validInventoryStatuses = []InventoryStatus{
	InventoryStatusAvailable,
	InventoryStatusOutOfStock,
	InventoryStatusInTransit,
	InventoryStatusDamaged,
	InventoryStatusReserved,
	InventoryStatusDiscontinued,
	InventoryStatusLow,
}

// String implements fmt.Stringer.
func (s InventoryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InventoryStatus.
func (s InventoryStatus) IsValid() bool {
	for _, candidate := range validInventoryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInventoryStatus converts raw input into an InventoryStatus.
func ParseInventoryStatus(value string) (InventoryStatus, error) {
	for _, candidate := range validInventoryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory status %q", value)
}

// DeriveStatusAfterSale computes the stock status that results from a
// sale leaving the given quantity behind. A depleted record goes to
// out_of_stock, two units or fewer go to low, and anything else keeps
// the prior status (there is no automatic promotion back to available).
func DeriveStatusAfterSale(quantity int, prior InventoryStatus) InventoryStatus {
	switch {
	case quantity == 0:
		return InventoryStatusOutOfStock
	case quantity <= 2:
		return InventoryStatusLow
	default:
		return prior
	}
}
