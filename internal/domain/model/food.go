package model

// FoodVariant describes a purchasable variant of a catalog item.
type FoodVariant struct {
	Name  string  `json:"name"`
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// Food is catalog item metadata fetched from the catalog service.
type Food struct {
	ID       int64
	Name     string
	Price    float64
	Active   bool
	Variants []FoodVariant
}
