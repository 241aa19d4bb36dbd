// Package model provides data models for the shopbot service.
package model

// Product represents a catalog entry in the product table.
type Product struct {
	ProductLink  string  `json:"product_link" gorm:"column:product_link;primaryKey;type:varchar(512)" csv:"product_link"`
	Title        string  `json:"title" gorm:"column:title;type:varchar(255);not null" csv:"title"`
	Brand        string  `json:"brand" gorm:"column:brand;type:varchar(128)" csv:"brand"`
	Price        int     `json:"price" gorm:"column:price" csv:"price"`
	Discount     float64 `json:"discount" gorm:"column:discount" csv:"discount"`
	AvgRating    float64 `json:"avg_rating" gorm:"column:avg_rating" csv:"avg_rating"`
	TotalRatings int     `json:"total_ratings" gorm:"column:total_ratings" csv:"total_ratings"`
}

// TableName specifies the table name for Product.
func (Product) TableName() string {
	return "product"
}

// Row is a single result row from an ad-hoc catalog query, keyed by
// column name.
type Row map[string]any
