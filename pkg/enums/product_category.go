package enums

import "fmt"

// ProductCategory represents the catalog categories supported by the store.
type ProductCategory string

const (
	ProductCategorySmartPhones ProductCategory = "smart_phones"
	ProductCategoryLaptops     ProductCategory = "laptops"
	ProductCategoryIPhones     ProductCategory = "iphones"
)

var validProductCategories = []ProductCategory{
	ProductCategorySmartPhones,
	ProductCategoryLaptops,
	ProductCategoryIPhones,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
