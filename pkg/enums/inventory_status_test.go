package enums

import "testing"

func TestParseInventoryStatus(t *testing.T) {
	status, err := ParseInventoryStatus("available")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != InventoryStatusAvailable {
		t.Fatalf("expected available, got %s", status)
	}

	if _, err := ParseInventoryStatus("sold_out"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestDeriveStatusAfterSale(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		prior    InventoryStatus
		want     InventoryStatus
	}{
		{"depleted", 0, InventoryStatusAvailable, InventoryStatusOutOfStock},
		{"one left", 1, InventoryStatusAvailable, InventoryStatusLow},
		{"two left", 2, InventoryStatusAvailable, InventoryStatusLow},
		{"plenty left", 3, InventoryStatusAvailable, InventoryStatusAvailable},
		{"plenty keeps prior", 10, InventoryStatusReserved, InventoryStatusReserved},
		{"depleted wins over low", 0, InventoryStatusLow, InventoryStatusOutOfStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveStatusAfterSale(tc.quantity, tc.prior); got != tc.want {
				t.Fatalf("DeriveStatusAfterSale(%d, %s) = %s, want %s", tc.quantity, tc.prior, got, tc.want)
			}
		})
	}
}

func TestParseProductCategory(t *testing.T) {
	category, err := ParseProductCategory("laptops")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category != ProductCategoryLaptops {
		t.Fatalf("expected laptops, got %s", category)
	}

	if _, err := ParseProductCategory("tablets"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
