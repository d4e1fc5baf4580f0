package catalog

import "errors"

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	IsFeatured  bool    `json:"is_featured"`
	Rating      float64 `json:"rating"`
}

const (
	CategoryElectronics = "electronics"
	CategoryFood        = "food"
)

func ValidCategory(category string) bool {
	return category == CategoryElectronics || category == CategoryFood
}
